package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/interfaces"
	"github.com/screfy/ldw/pkg/domain/model"
	"github.com/screfy/ldw/pkg/domain/types"
)

// DefaultEndpoint is the public Linear GraphQL API endpoint
const DefaultEndpoint = "https://api.linear.app/graphql"

const userQuery = `query User($id: String!) { user(id: $id) { name displayName avatarUrl url } }`

type client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewFactory returns an ActorSourceFactory producing clients bound to
// endpoint. The API token is supplied per request by the caller.
func NewFactory(endpoint string) interfaces.ActorSourceFactory {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return func(token string) interfaces.ActorSource {
		return &client{
			endpoint:   endpoint,
			token:      token,
			httpClient: http.DefaultClient,
		}
	}
}

// Actor fetches a user identity by id via the GraphQL API
func (c *client) Actor(ctx context.Context, id string) (*model.Actor, error) {
	reqBody, err := json.Marshal(map[string]any{
		"query":     userQuery,
		"variables": map[string]string{"id": id},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal user query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Linear API request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call Linear API", goerr.T(types.ErrTagUpstream))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from Linear API",
			goerr.T(types.ErrTagUpstream),
			goerr.V("status", resp.StatusCode),
		)
	}

	var out struct {
		Data struct {
			User *struct {
				Name        string `json:"name"`
				DisplayName string `json:"displayName"`
				AvatarURL   string `json:"avatarUrl"`
				URL         string `json:"url"`
			} `json:"user"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, goerr.Wrap(err, "failed to decode Linear API response", goerr.T(types.ErrTagUpstream))
	}

	if len(out.Errors) > 0 {
		return nil, goerr.New("Linear API returned errors",
			goerr.T(types.ErrTagUpstream),
			goerr.V("message", out.Errors[0].Message),
		)
	}
	if out.Data.User == nil {
		return nil, goerr.New("user not found",
			goerr.T(types.ErrTagUpstream),
			goerr.V("user_id", id),
		)
	}

	return &model.Actor{
		Name:        out.Data.User.Name,
		DisplayName: out.Data.User.DisplayName,
		AvatarURL:   out.Data.User.AvatarURL,
		URL:         out.Data.User.URL,
	}, nil
}
