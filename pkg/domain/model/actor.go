package model

// Actor represents a user identity fetched from the Linear API.
// Fetched per request, never cached or persisted.
type Actor struct {
	Name        string
	DisplayName string
	AvatarURL   string
	URL         string
}
