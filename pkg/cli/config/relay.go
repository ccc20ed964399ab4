package config

import (
	"github.com/screfy/ldw/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Relay holds relay behavior configuration
type Relay struct {
	Env          string
	TrustedAddrs []string
	Username     string
	AvatarURL    string
	BrandColor   string
	LinearAPI    string
}

// Flags returns CLI flags for relay configuration
func (c *Relay) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "env",
			Usage:       "Runtime environment (development bypasses the origin check)",
			Value:       string(types.EnvProduction),
			Destination: &c.Env,
			Sources:     cli.EnvVars("LDW_ENV"),
		},
		&cli.StringSliceFlag{
			Name:        "trusted-addrs",
			Usage:       "Origin addresses allowed to deliver webhooks",
			Destination: &c.TrustedAddrs,
			Sources:     cli.EnvVars("LDW_TRUSTED_ADDRS"),
		},
		&cli.StringFlag{
			Name:        "discord-username",
			Usage:       "Display name of relayed messages",
			Destination: &c.Username,
			Sources:     cli.EnvVars("LDW_DISCORD_USERNAME"),
		},
		&cli.StringFlag{
			Name:        "discord-avatar-url",
			Usage:       "Avatar URL of relayed messages",
			Destination: &c.AvatarURL,
			Sources:     cli.EnvVars("LDW_DISCORD_AVATAR_URL"),
		},
		&cli.StringFlag{
			Name:        "brand-color",
			Usage:       "Default embed color (#RRGGBB)",
			Destination: &c.BrandColor,
			Sources:     cli.EnvVars("LDW_BRAND_COLOR"),
		},
		&cli.StringFlag{
			Name:        "linear-api",
			Usage:       "Linear GraphQL API endpoint",
			Destination: &c.LinearAPI,
			Sources:     cli.EnvVars("LDW_LINEAR_API"),
		},
	}
}

// EnvMode returns the parsed runtime environment mode
func (c *Relay) EnvMode() types.EnvMode {
	return types.EnvMode(c.Env)
}
