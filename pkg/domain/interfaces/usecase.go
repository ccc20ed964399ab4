package interfaces

import (
	"context"

	"github.com/screfy/ldw/pkg/domain/model"
)

// RelayUseCase defines the interface for relaying one validated event
type RelayUseCase interface {
	// ProcessEvent formats the event, enriching it via the Linear API,
	// and posts the result to the destination webhook. Unsupported
	// category/action combinations are a silent no-op.
	ProcessEvent(ctx context.Context, event *model.InboundEvent, creds *model.RelayCredentials) error
}
