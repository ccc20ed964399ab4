package schema

import (
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/model"
	"github.com/screfy/ldw/pkg/domain/types"
)

// Violation describes one failed field constraint of a strict validation
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const violationsKey = "violations"

// Violations extracts the violation list attached to a strict validation
// error, or nil if the error carries none
func Violations(err error) []Violation {
	if vs, ok := goerr.Values(err)[violationsKey].([]Violation); ok {
		return vs
	}
	return nil
}

// ParseEvent validates a raw webhook body in strict mode: it returns a
// BadRequest-tagged error listing every violated field and constraint.
func ParseEvent(data []byte) (*model.InboundEvent, error) {
	event, vs := parseEvent(data)
	if len(vs) > 0 {
		return nil, goerr.New("invalid event payload",
			goerr.T(types.ErrTagBadRequest),
			goerr.V(violationsKey, vs),
		)
	}
	return event, nil
}

// MatchEvent validates a raw webhook body in tolerant mode: a flag only,
// no error detail. Callers use it to silently skip unsupported payloads.
func MatchEvent(data []byte) (*model.InboundEvent, bool) {
	event, vs := parseEvent(data)
	if len(vs) > 0 {
		return nil, false
	}
	return event, true
}

// ParseCredentials extracts the three relay identifiers from request
// query parameters. All are required non-empty strings.
func ParseCredentials(q url.Values) (*model.RelayCredentials, error) {
	creds := &model.RelayCredentials{
		WebhookID:    q.Get("webhookId"),
		WebhookToken: q.Get("webhookToken"),
		LinearToken:  q.Get("linearToken"),
	}

	var vs []Violation
	for _, f := range []struct {
		name  string
		value string
	}{
		{"webhookId", creds.WebhookID},
		{"webhookToken", creds.WebhookToken},
		{"linearToken", creds.LinearToken},
	} {
		if f.value == "" {
			vs = append(vs, Violation{Field: f.name, Message: "required"})
		}
	}
	if len(vs) > 0 {
		return nil, goerr.New("missing credentials",
			goerr.T(types.ErrTagBadRequest),
			goerr.V(violationsKey, vs),
		)
	}
	return creds, nil
}

// Raw wire shapes. Pointer fields distinguish absent from empty; unknown
// extra fields are ignored for forward compatibility.
type rawEvent struct {
	Type        *string         `json:"type"`
	Action      *string         `json:"action"`
	CreatedAt   json.RawMessage `json:"createdAt"`
	URL         *string         `json:"url"`
	Data        json.RawMessage `json:"data"`
	UpdatedFrom *rawUpdatedFrom `json:"updatedFrom"`
}

type rawUpdatedFrom struct {
	StateID *string `json:"stateId"`
}

type rawIssue struct {
	ID          *string      `json:"id"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	CreatorID   *string      `json:"creatorId"`
	Assignee    *rawAssignee `json:"assignee"`
	State       *rawState    `json:"state"`
	Team        *rawTeam     `json:"team"`
}

type rawAssignee struct {
	ID *string `json:"id"`
}

type rawState struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type rawTeam struct {
	Name *string `json:"name"`
	Key  *string `json:"key"`
}

type rawComment struct {
	ID     *string        `json:"id"`
	Body   *string        `json:"body"`
	UserID *string        `json:"userId"`
	Issue  *rawCommentRef `json:"issue"`
}

type rawCommentRef struct {
	Title *string `json:"title"`
}

func parseEvent(data []byte) (*model.InboundEvent, []Violation) {
	var raw rawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []Violation{{Field: "(body)", Message: "not a JSON object"}}
	}

	var vs []Violation
	event := &model.InboundEvent{}

	switch {
	case raw.Type == nil:
		vs = append(vs, Violation{Field: "type", Message: "required"})
	case *raw.Type != string(model.CategoryIssue) && *raw.Type != string(model.CategoryComment):
		vs = append(vs, Violation{Field: "type", Message: fmt.Sprintf("unsupported event type %q", *raw.Type)})
	default:
		event.Category = model.EventCategory(*raw.Type)
	}

	switch {
	case raw.Action == nil:
		vs = append(vs, Violation{Field: "action", Message: "required"})
	case *raw.Action != string(model.ActionCreate) &&
		*raw.Action != string(model.ActionUpdate) &&
		*raw.Action != string(model.ActionRemove):
		vs = append(vs, Violation{Field: "action", Message: fmt.Sprintf("unsupported action %q", *raw.Action)})
	default:
		event.Action = model.EventAction(*raw.Action)
	}

	switch {
	case len(raw.CreatedAt) == 0:
		vs = append(vs, Violation{Field: "createdAt", Message: "required"})
	default:
		ts, ok := parseTimestamp(raw.CreatedAt)
		if !ok {
			vs = append(vs, Violation{Field: "createdAt", Message: "not a parsable timestamp"})
		}
		event.CreatedAt = ts
	}

	switch {
	case raw.URL == nil:
		vs = append(vs, Violation{Field: "url", Message: "required"})
	default:
		if u, err := url.Parse(*raw.URL); err != nil || !u.IsAbs() {
			vs = append(vs, Violation{Field: "url", Message: "not an absolute URL"})
		}
		event.URL = *raw.URL
	}

	switch event.Category {
	case model.CategoryIssue:
		event.Issue = parseIssueData(raw.Data, &vs)
	case model.CategoryComment:
		event.Comment = parseCommentData(raw.Data, &vs)
	}

	if raw.UpdatedFrom != nil {
		event.UpdatedFrom = &model.UpdatedFrom{}
		if raw.UpdatedFrom.StateID != nil {
			event.UpdatedFrom.StateID = requireUUID("updatedFrom.stateId", raw.UpdatedFrom.StateID, &vs)
		}
	}

	return event, vs
}

func parseIssueData(data json.RawMessage, vs *[]Violation) *model.IssueData {
	var raw rawIssue
	if len(data) == 0 || json.Unmarshal(data, &raw) != nil {
		*vs = append(*vs, Violation{Field: "data", Message: "required"})
		return nil
	}

	issue := &model.IssueData{
		ID:        requireUUID("data.id", raw.ID, vs),
		Title:     requireString("data.title", raw.Title, vs),
		CreatorID: requireUUID("data.creatorId", raw.CreatorID, vs),
	}
	if raw.Description != nil {
		issue.Description = *raw.Description
	}
	if raw.Assignee != nil {
		issue.Assignee = &model.AssigneeRef{
			ID: requireUUID("data.assignee.id", raw.Assignee.ID, vs),
		}
	}
	if raw.State == nil {
		*vs = append(*vs, Violation{Field: "data.state", Message: "required"})
	} else {
		issue.State = model.StateRef{
			Name:  requireString("data.state.name", raw.State.Name, vs),
			Color: requireString("data.state.color", raw.State.Color, vs),
		}
	}
	if raw.Team == nil {
		*vs = append(*vs, Violation{Field: "data.team", Message: "required"})
	} else {
		issue.Team = model.TeamRef{
			Name: requireString("data.team.name", raw.Team.Name, vs),
			Key:  requireString("data.team.key", raw.Team.Key, vs),
		}
	}
	return issue
}

func parseCommentData(data json.RawMessage, vs *[]Violation) *model.CommentData {
	var raw rawComment
	if len(data) == 0 || json.Unmarshal(data, &raw) != nil {
		*vs = append(*vs, Violation{Field: "data", Message: "required"})
		return nil
	}

	comment := &model.CommentData{
		ID:     requireUUID("data.id", raw.ID, vs),
		Body:   requireString("data.body", raw.Body, vs),
		UserID: requireUUID("data.userId", raw.UserID, vs),
	}
	if raw.Issue == nil {
		*vs = append(*vs, Violation{Field: "data.issue", Message: "required"})
	} else {
		comment.Issue = model.CommentIssueRef{
			Title: requireString("data.issue.title", raw.Issue.Title, vs),
		}
	}
	return comment
}

// parseTimestamp accepts an RFC3339 string or an epoch-milliseconds
// number and normalizes to UTC
func parseTimestamp(data json.RawMessage) (time.Time, bool) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, false
		}
		return ts.UTC(), true
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err == nil {
		return time.UnixMilli(int64(ms)).UTC(), true
	}

	return time.Time{}, false
}

func requireString(field string, v *string, vs *[]Violation) string {
	if v == nil {
		*vs = append(*vs, Violation{Field: field, Message: "required"})
		return ""
	}
	return *v
}

func requireUUID(field string, v *string, vs *[]Violation) string {
	s := requireString(field, v, vs)
	if s == "" {
		return s
	}
	if err := uuid.Validate(s); err != nil {
		*vs = append(*vs, Violation{Field: field, Message: "not a UUID"})
	}
	return s
}
