package types

// Version is the application version, overridden at build time via ldflags
var Version = "dev"

// EnvMode represents the runtime environment
type EnvMode string

const (
	EnvDevelopment EnvMode = "development"
	EnvProduction  EnvMode = "production"
)

// IsDevelopment reports whether the mode bypasses production-only checks
func (m EnvMode) IsDevelopment() bool {
	return m == EnvDevelopment
}
