package schema_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/screfy/ldw/pkg/domain/model"
	"github.com/screfy/ldw/pkg/schema"
)

const (
	issueID   = "9cbd2700-7d1f-4a10-9a42-7e21b1a0bbcc"
	creatorID = "4e7f6b3a-8f21-4f5c-9d6e-2a1b3c4d5e6f"
	userID    = "1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d"
	stateID   = "7f8e9d0c-1b2a-4c3d-8e5f-6a7b8c9d0e1f"
)

func validIssuePayload() string {
	return `{
		"type": "Issue",
		"action": "create",
		"createdAt": "2021-01-01T10:00:00.000Z",
		"url": "https://linear.app/screfy/issue/ISS-123/fix-crash",
		"data": {
			"id": "` + issueID + `",
			"title": "Fix crash",
			"description": "It crashes on start",
			"creatorId": "` + creatorID + `",
			"assignee": {"id": "` + userID + `"},
			"state": {"name": "Todo", "color": "#F2C94C"},
			"team": {"name": "Core", "key": "CORE"}
		}
	}`
}

func validCommentPayload() string {
	return `{
		"type": "Comment",
		"action": "create",
		"createdAt": "2021-01-01T10:00:00.000Z",
		"url": "https://linear.app/screfy/issue/ISS-123#comment-1",
		"data": {
			"id": "` + issueID + `",
			"body": "Looks good to me",
			"userId": "` + userID + `",
			"issue": {"title": "Fix crash"}
		}
	}`
}

func TestParseEvent_IssueCreate(t *testing.T) {
	event, err := schema.ParseEvent([]byte(validIssuePayload()))
	gt.NoError(t, err)

	gt.Value(t, event.Category).Equal(model.CategoryIssue)
	gt.Value(t, event.Action).Equal(model.ActionCreate)
	gt.Value(t, event.CreatedAt).Equal(time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC))
	gt.Value(t, event.URL).Equal("https://linear.app/screfy/issue/ISS-123/fix-crash")
	gt.Value(t, event.Comment).Nil()

	issue := event.Issue
	gt.Value(t, issue).NotNil()
	gt.Value(t, issue.ID).Equal(issueID)
	gt.Value(t, issue.Title).Equal("Fix crash")
	gt.Value(t, issue.Description).Equal("It crashes on start")
	gt.Value(t, issue.CreatorID).Equal(creatorID)
	gt.Value(t, issue.Assignee.ID).Equal(userID)
	gt.Value(t, issue.State).Equal(model.StateRef{Name: "Todo", Color: "#F2C94C"})
	gt.Value(t, issue.Team).Equal(model.TeamRef{Name: "Core", Key: "CORE"})
}

func TestParseEvent_CommentCreate(t *testing.T) {
	event, err := schema.ParseEvent([]byte(validCommentPayload()))
	gt.NoError(t, err)

	gt.Value(t, event.Category).Equal(model.CategoryComment)
	gt.Value(t, event.Issue).Nil()

	comment := event.Comment
	gt.Value(t, comment).NotNil()
	gt.Value(t, comment.Body).Equal("Looks good to me")
	gt.Value(t, comment.UserID).Equal(userID)
	gt.Value(t, comment.Issue.Title).Equal("Fix crash")
}

func TestParseEvent_UpdatedFrom(t *testing.T) {
	payload := `{
		"type": "Issue",
		"action": "update",
		"createdAt": "2021-01-01T10:00:00Z",
		"url": "https://linear.app/screfy/issue/ISS-123/fix-crash",
		"updatedFrom": {"stateId": "` + stateID + `"},
		"data": {
			"id": "` + issueID + `",
			"title": "Fix crash",
			"creatorId": "` + creatorID + `",
			"state": {"name": "Done", "color": "#5E6AD2"},
			"team": {"name": "Core", "key": "CORE"}
		}
	}`

	event, err := schema.ParseEvent([]byte(payload))
	gt.NoError(t, err)
	gt.Value(t, event.UpdatedFrom.StateID).Equal(stateID)
	gt.Value(t, event.IsStateChange()).Equal(true)
}

func TestParseEvent_Violations(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		wantFields []string
	}{
		{
			name:       "not JSON",
			payload:    `not json`,
			wantFields: []string{"(body)"},
		},
		{
			name:       "unknown type tag",
			payload:    `{"type":"Project","action":"create","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x"}`,
			wantFields: []string{"type"},
		},
		{
			name:       "unknown action",
			payload:    `{"type":"Comment","action":"archive","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x","data":{"id":"` + issueID + `","body":"b","userId":"` + userID + `","issue":{"title":"t"}}}`,
			wantFields: []string{"action"},
		},
		{
			name:       "missing everything",
			payload:    `{}`,
			wantFields: []string{"type", "action", "createdAt", "url"},
		},
		{
			name:       "invalid timestamp string",
			payload:    `{"type":"Comment","action":"create","createdAt":"yesterday","url":"https://linear.app/x","data":{"id":"` + issueID + `","body":"b","userId":"` + userID + `","issue":{"title":"t"}}}`,
			wantFields: []string{"createdAt"},
		},
		{
			name:       "relative url",
			payload:    `{"type":"Comment","action":"create","createdAt":"2021-01-01T10:00:00Z","url":"/issue/ISS-1","data":{"id":"` + issueID + `","body":"b","userId":"` + userID + `","issue":{"title":"t"}}}`,
			wantFields: []string{"url"},
		},
		{
			name:       "issue data not UUID shaped",
			payload:    `{"type":"Issue","action":"create","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x","data":{"id":"issue-1","title":"t","creatorId":"me","state":{"name":"Todo","color":"#fff000"},"team":{"name":"Core","key":"CORE"}}}`,
			wantFields: []string{"data.id", "data.creatorId"},
		},
		{
			name:       "issue data missing nested objects",
			payload:    `{"type":"Issue","action":"create","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x","data":{"id":"` + issueID + `","title":"t","creatorId":"` + creatorID + `"}}`,
			wantFields: []string{"data.state", "data.team"},
		},
		{
			name:       "comment data incomplete",
			payload:    `{"type":"Comment","action":"create","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x","data":{"id":"` + issueID + `"}}`,
			wantFields: []string{"data.body", "data.userId", "data.issue"},
		},
		{
			name:       "updatedFrom stateId not UUID shaped",
			payload:    `{"type":"Comment","action":"update","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x","updatedFrom":{"stateId":"state-1"},"data":{"id":"` + issueID + `","body":"b","userId":"` + userID + `","issue":{"title":"t"}}}`,
			wantFields: []string{"updatedFrom.stateId"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.ParseEvent([]byte(tt.payload))
			gt.Error(t, err)

			vs := schema.Violations(err)
			fields := make([]string, 0, len(vs))
			for _, v := range vs {
				fields = append(fields, v.Field)
			}
			gt.Value(t, fields).Equal(tt.wantFields)
		})
	}
}

func TestParseEvent_IgnoresUnknownFields(t *testing.T) {
	payload := `{
		"type": "Comment",
		"action": "create",
		"createdAt": "2021-01-01T10:00:00Z",
		"url": "https://linear.app/x",
		"organizationId": "whatever",
		"data": {
			"id": "` + issueID + `",
			"body": "b",
			"userId": "` + userID + `",
			"issue": {"title": "t"},
			"reactionData": []
		}
	}`

	_, err := schema.ParseEvent([]byte(payload))
	gt.NoError(t, err)
}

func TestParseEvent_TimestampEquivalence(t *testing.T) {
	// The same instant as an ISO string and as epoch milliseconds must
	// normalize identically
	asString := `{"type":"Comment","action":"create","createdAt":"2021-01-01T10:00:00.000Z","url":"https://linear.app/x","data":{"id":"` + issueID + `","body":"b","userId":"` + userID + `","issue":{"title":"t"}}}`
	asMillis := `{"type":"Comment","action":"create","createdAt":1609495200000,"url":"https://linear.app/x","data":{"id":"` + issueID + `","body":"b","userId":"` + userID + `","issue":{"title":"t"}}}`

	fromString, err := schema.ParseEvent([]byte(asString))
	gt.NoError(t, err)
	fromMillis, err := schema.ParseEvent([]byte(asMillis))
	gt.NoError(t, err)

	gt.Value(t, fromString.CreatedAt).Equal(fromMillis.CreatedAt)
}

func TestMatchEvent(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantOK  bool
	}{
		{"supported issue event", validIssuePayload(), true},
		{"supported comment event", validCommentPayload(), true},
		{"unsupported resource", `{"type":"Project","action":"create","createdAt":"2021-01-01T10:00:00Z","url":"https://linear.app/x"}`, false},
		{"malformed body", `[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event, ok := schema.MatchEvent([]byte(tt.payload))
			gt.Value(t, ok).Equal(tt.wantOK)
			if tt.wantOK {
				gt.Value(t, event).NotNil()
			}
		})
	}
}

func TestParseCredentials(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		q := url.Values{
			"webhookId":    []string{"123"},
			"webhookToken": []string{"token"},
			"linearToken":  []string{"lin_api_xxx"},
		}
		creds, err := schema.ParseCredentials(q)
		gt.NoError(t, err)
		gt.Value(t, creds.WebhookID).Equal("123")
		gt.Value(t, creds.WebhookToken).Equal("token")
		gt.Value(t, creds.LinearToken).Equal("lin_api_xxx")
	})

	t.Run("missing fields are listed individually", func(t *testing.T) {
		q := url.Values{"webhookId": []string{"123"}}
		_, err := schema.ParseCredentials(q)
		gt.Error(t, err)

		vs := schema.Violations(err)
		fields := make([]string, 0, len(vs))
		for _, v := range vs {
			fields = append(fields, v.Field)
		}
		gt.Value(t, fields).Equal([]string{"webhookToken", "linearToken"})
	})
}
