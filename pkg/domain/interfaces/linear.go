package interfaces

import (
	"context"

	"github.com/screfy/ldw/pkg/domain/model"
)

// ActorSource defines operations for fetching user identities from the
// Linear API
type ActorSource interface {
	// Actor fetches a user by id
	Actor(ctx context.Context, id string) (*model.Actor, error)
}

// ActorSourceFactory builds an ActorSource authenticated with the API
// token extracted from one request
type ActorSourceFactory func(token string) ActorSource
