package discord_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/screfy/ldw/pkg/domain/model"
	"github.com/screfy/ldw/pkg/domain/types"
	"github.com/screfy/ldw/pkg/infra/discord"
)

func testMessage() *model.WebhookMessage {
	return &model.WebhookMessage{
		Username:  "Linear",
		AvatarURL: "https://ldw.screfy.com/static/linear.png",
		Embeds: []model.Embed{{
			Title: "ISS-123 Fix crash",
			URL:   "https://linear.app/screfy/issue/ISS-123/fix-crash",
			Color: 0x5E6AD2,
		}},
	}
}

func TestClient_Post(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gt.Value(t, r.Method).Equal(http.MethodPost)
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/json")
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	poster := discord.NewClient(server.URL)
	gt.NoError(t, poster.Post(context.Background(), "123", "tok", testMessage()))

	gt.Value(t, gotPath).Equal("/123/tok")
	gt.Value(t, gotBody["username"]).Equal("Linear")
	gt.Value(t, gotBody["avatar_url"]).Equal("https://ldw.screfy.com/static/linear.png")

	embeds, ok := gotBody["embeds"].([]any)
	if !ok || len(embeds) != 1 {
		t.Fatalf("embeds = %v, want one entry", gotBody["embeds"])
	}
	embed := embeds[0].(map[string]any)
	gt.Value(t, embed["title"]).Equal("ISS-123 Fix crash")
	gt.Value(t, embed["color"]).Equal(float64(0x5E6AD2))
}

func TestClient_Post_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	poster := discord.NewClient(server.URL)
	err := poster.Post(context.Background(), "123", "tok", testMessage())
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagUpstream)).Equal(true)
}
