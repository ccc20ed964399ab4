package interfaces

import (
	"context"

	"github.com/screfy/ldw/pkg/domain/model"
)

// WebhookPoster delivers one message to a Discord webhook
type WebhookPoster interface {
	// Post serializes msg and issues one POST to the webhook identified
	// by webhookID/webhookToken
	Post(ctx context.Context, webhookID, webhookToken string, msg *model.WebhookMessage) error
}
