package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/screfy/ldw/pkg/domain/interfaces"
	"github.com/screfy/ldw/pkg/domain/model"
)

// buildEmbed dispatches on category then action. A nil embed with nil
// error means the combination produces no notification.
func (uc *relayUseCase) buildEmbed(ctx context.Context, actors interfaces.ActorSource, event *model.InboundEvent) (*model.Embed, error) {
	switch event.Category {
	case model.CategoryIssue:
		return uc.buildIssueEmbed(ctx, actors, event)
	case model.CategoryComment:
		return uc.buildCommentEmbed(ctx, actors, event)
	default:
		return nil, nil
	}
}

func (uc *relayUseCase) buildIssueEmbed(ctx context.Context, actors interfaces.ActorSource, event *model.InboundEvent) (*model.Embed, error) {
	issue := event.Issue

	switch event.Action {
	case model.ActionCreate:
		creator, err := actors.Actor(ctx, issue.CreatorID)
		if err != nil {
			return nil, err
		}

		teamURL := fmt.Sprintf("%s/team/%s", uc.baseURL, issue.Team.Key)
		embed := &model.Embed{
			Title:     fmt.Sprintf("%s %s", event.Identifier(), issue.Title),
			URL:       event.URL,
			Color:     uc.color(uc.brandColor),
			Timestamp: event.CreatedAt.Format(time.RFC3339),
			Author:    &model.EmbedAuthor{Name: "New issue added"},
			Footer:    &model.EmbedFooter{Text: creator.Name, IconURL: creator.AvatarURL},
			Fields: []model.EmbedField{
				{Name: "Team", Value: fmt.Sprintf("[%s](%s)", issue.Team.Name, teamURL), Inline: true},
				{Name: "Status", Value: issue.State.Name, Inline: true},
			},
		}

		if issue.Assignee != nil {
			assignee, err := actors.Actor(ctx, issue.Assignee.ID)
			if err != nil {
				return nil, err
			}
			embed.Fields = append(embed.Fields, model.EmbedField{
				Name:   "Assignee",
				Value:  fmt.Sprintf("[%s](%s)", assignee.DisplayName, assignee.URL),
				Inline: true,
			})
		}
		if issue.Description != "" {
			embed.Description = issue.Description
		}
		return embed, nil

	case model.ActionUpdate:
		// Only workflow state changes are relayed; other updates are noise
		if !event.IsStateChange() {
			return nil, nil
		}

		creator, err := actors.Actor(ctx, issue.CreatorID)
		if err != nil {
			return nil, err
		}

		return &model.Embed{
			Title:       fmt.Sprintf("%s %s", event.Identifier(), issue.Title),
			URL:         event.URL,
			Color:       uc.color(issue.State.Color),
			Timestamp:   event.CreatedAt.Format(time.RFC3339),
			Author:      &model.EmbedAuthor{Name: "Status changed"},
			Footer:      &model.EmbedFooter{Text: creator.Name, IconURL: creator.AvatarURL},
			Description: fmt.Sprintf("Status: **%s**", issue.State.Name),
		}, nil

	default:
		return nil, nil
	}
}

func (uc *relayUseCase) buildCommentEmbed(ctx context.Context, actors interfaces.ActorSource, event *model.InboundEvent) (*model.Embed, error) {
	if event.Action != model.ActionCreate {
		return nil, nil
	}

	comment := event.Comment
	author, err := actors.Actor(ctx, comment.UserID)
	if err != nil {
		return nil, err
	}

	return &model.Embed{
		Title:       fmt.Sprintf("%s %s", event.Identifier(), comment.Issue.Title),
		URL:         event.URL,
		Color:       uc.color(uc.brandColor),
		Timestamp:   event.CreatedAt.Format(time.RFC3339),
		Author:      &model.EmbedAuthor{Name: "New comment"},
		Footer:      &model.EmbedFooter{Text: author.Name, IconURL: author.AvatarURL},
		Description: comment.Body,
	}, nil
}

// color parses a "#RRGGBB" hex color into Discord's integer form,
// falling back to the brand color on malformed input
func (uc *relayUseCase) color(hex string) int {
	if c, ok := parseColor(hex); ok {
		return c
	}
	c, _ := parseColor(uc.brandColor)
	return c
}

func parseColor(s string) (int, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, false
	}
	return int(v), true
}
