package model

// RelayCredentials holds the three identifiers needed to complete one
// relay. All values are opaque strings extracted from the request query
// and scoped to a single request. The masq tags keep them out of logs.
type RelayCredentials struct {
	WebhookID    string `masq:"secret"`
	WebhookToken string `masq:"secret"`
	LinearToken  string `masq:"secret"`
}
