package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/screfy/ldw/pkg/domain/interfaces"
	"github.com/screfy/ldw/pkg/domain/model"
)

// Defaults for the relayed message appearance
const (
	DefaultUsername   = "Linear"
	DefaultAvatarURL  = "https://ldw.screfy.com/static/linear.png"
	DefaultBaseURL    = "https://linear.app"
	DefaultBrandColor = "#5E6AD2"
)

type relayUseCase struct {
	newActorSource interfaces.ActorSourceFactory
	poster         interfaces.WebhookPoster
	username       string
	avatarURL      string
	baseURL        string
	brandColor     string
}

// Option is a functional option for relay configuration
type Option func(*relayUseCase)

// WithUsername sets the display name of the relayed message
func WithUsername(name string) Option {
	return func(uc *relayUseCase) {
		uc.username = name
	}
}

// WithAvatarURL sets the avatar of the relayed message
func WithAvatarURL(url string) Option {
	return func(uc *relayUseCase) {
		uc.avatarURL = url
	}
}

// WithBaseURL sets the Linear web base URL used for team links
func WithBaseURL(url string) Option {
	return func(uc *relayUseCase) {
		uc.baseURL = url
	}
}

// WithBrandColor sets the default embed color ("#RRGGBB")
func WithBrandColor(color string) Option {
	return func(uc *relayUseCase) {
		uc.brandColor = color
	}
}

// NewRelay creates a new instance of RelayUseCase
func NewRelay(factory interfaces.ActorSourceFactory, poster interfaces.WebhookPoster, opts ...Option) interfaces.RelayUseCase {
	uc := &relayUseCase{
		newActorSource: factory,
		poster:         poster,
		username:       DefaultUsername,
		avatarURL:      DefaultAvatarURL,
		baseURL:        DefaultBaseURL,
		brandColor:     DefaultBrandColor,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ProcessEvent formats the event and posts the result to the destination
// webhook. Enrichment completes fully before the outbound post begins; a
// failure at either stage aborts the request with no partial send.
func (uc *relayUseCase) ProcessEvent(ctx context.Context, event *model.InboundEvent, creds *model.RelayCredentials) error {
	logger := ctxlog.From(ctx)

	actors := uc.newActorSource(creds.LinearToken)
	embed, err := uc.buildEmbed(ctx, actors, event)
	if err != nil {
		return err
	}

	if embed == nil {
		logger.Info("No notification for event",
			"category", event.Category,
			"action", event.Action,
		)
		return nil
	}

	msg := &model.WebhookMessage{
		Username:  uc.username,
		AvatarURL: uc.avatarURL,
		Embeds:    []model.Embed{*embed},
	}
	if err := uc.poster.Post(ctx, creds.WebhookID, creds.WebhookToken, msg); err != nil {
		return err
	}

	logger.Info("Relayed notification",
		"category", event.Category,
		"action", event.Action,
		"title", embed.Title,
	)
	return nil
}
