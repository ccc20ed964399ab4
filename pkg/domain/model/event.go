package model

import (
	"strings"
	"time"
)

// EventCategory represents the resource type an event describes
type EventCategory string

const (
	CategoryIssue   EventCategory = "Issue"
	CategoryComment EventCategory = "Comment"
)

// EventAction represents what happened to the resource
type EventAction string

const (
	ActionCreate EventAction = "create"
	ActionUpdate EventAction = "update"
	ActionRemove EventAction = "remove"
)

// InboundEvent represents a validated webhook event received from Linear.
// Exactly one of Issue or Comment is set, matching Category.
type InboundEvent struct {
	Category    EventCategory
	Action      EventAction
	CreatedAt   time.Time // normalized to UTC
	URL         string    // absolute link to the resource
	Issue       *IssueData
	Comment     *CommentData
	UpdatedFrom *UpdatedFrom // only meaningful for update actions
}

// UpdatedFrom holds the previous-state fragment of an update event
type UpdatedFrom struct {
	StateID string
}

// IssueData is the payload of an Issue event
type IssueData struct {
	ID          string
	Title       string
	Description string
	CreatorID   string
	Assignee    *AssigneeRef
	State       StateRef
	Team        TeamRef
}

// AssigneeRef is a weak reference to an assigned user
type AssigneeRef struct {
	ID string
}

// StateRef is the workflow state of an issue
type StateRef struct {
	Name  string
	Color string // hex color like "#F2C94C"
}

// TeamRef identifies the team an issue belongs to
type TeamRef struct {
	Name string
	Key  string
}

// CommentData is the payload of a Comment event
type CommentData struct {
	ID     string
	Body   string
	UserID string
	Issue  CommentIssueRef // denormalized snapshot of the parent issue
}

// CommentIssueRef is the parent-issue snapshot embedded in a comment event
type CommentIssueRef struct {
	Title string
}

// Identifier derives the short issue identifier (e.g. "ISS-123") from the
// resource URL: the 6th path-split segment, up to any "#" fragment marker.
func (e *InboundEvent) Identifier() string {
	parts := strings.Split(e.URL, "/")
	if len(parts) < 6 {
		return ""
	}
	identifier, _, _ := strings.Cut(parts[5], "#")
	return identifier
}

// IsStateChange reports whether an update event changed the workflow state
func (e *InboundEvent) IsStateChange() bool {
	return e.UpdatedFrom != nil && e.UpdatedFrom.StateID != ""
}
