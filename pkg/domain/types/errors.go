package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures so the HTTP layer can map them to status
// codes without inspecting error messages.
var (
	ErrTagBadRequest       = goerr.NewTag("bad_request")
	ErrTagForbidden        = goerr.NewTag("forbidden")
	ErrTagMethodNotAllowed = goerr.NewTag("method_not_allowed")
	ErrTagUpstream         = goerr.NewTag("upstream")
)
