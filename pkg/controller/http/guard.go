package http

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/screfy/ldw/pkg/domain/types"
)

// DefaultTrustedAddrs are Linear's known webhook egress addresses.
// Rotation requires a deploy with new flags, which is accepted.
var DefaultTrustedAddrs = []string{
	"35.231.147.226",
	"35.243.134.228",
}

// OriginGuard verifies a request's forwarding address against a fixed
// allow-list. Development mode bypasses the check.
type OriginGuard struct {
	trusted map[string]struct{}
	env     types.EnvMode
}

// NewOriginGuard creates an OriginGuard for the given allow-list and
// runtime mode
func NewOriginGuard(trusted []string, env types.EnvMode) *OriginGuard {
	g := &OriginGuard{
		trusted: make(map[string]struct{}, len(trusted)),
		env:     env,
	}
	for _, addr := range trusted {
		g.trusted[addr] = struct{}{}
	}
	return g
}

// Check returns a Forbidden-tagged error unless addr is allow-listed or
// the runtime mode is development
func (g *OriginGuard) Check(addr string) error {
	if g.env.IsDevelopment() {
		return nil
	}
	if _, ok := g.trusted[addr]; ok {
		return nil
	}
	return goerr.New("request from IP address \""+addr+"\" is not allowed",
		goerr.T(types.ErrTagForbidden),
		goerr.V("address", addr),
	)
}
