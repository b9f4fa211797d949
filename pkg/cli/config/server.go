package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr        string
	ArtifactTTL time.Duration
	MaxBodySize int64
	ConfigPath  string
}

// serverFile mirrors the [server] settings accepted in a TOML config file
type serverFile struct {
	Addr        string `toml:"addr"`
	ArtifactTTL string `toml:"artifact_ttl"`
	MaxBodySize int64  `toml:"max_body_size"`
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("SALVAGE_ADDR"),
		},
		&cli.DurationFlag{
			Name:        "artifact-ttl",
			Usage:       "How long reconstructed artifacts stay downloadable",
			Value:       15 * time.Minute,
			Destination: &c.ArtifactTTL,
			Sources:     cli.EnvVars("SALVAGE_ARTIFACT_TTL"),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "TOML config file path",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("SALVAGE_CONFIG"),
		},
	}
}

// LoadFile merges values from the TOML config file into the configuration.
// Flags and environment variables that were explicitly set take precedence;
// isSet reports whether a flag was set by the user.
func (c *Server) LoadFile(isSet func(name string) bool) error {
	if c.ConfigPath == "" {
		return nil
	}

	raw, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file",
			goerr.V("path", c.ConfigPath))
	}

	var f serverFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return goerr.Wrap(err, "failed to parse config file",
			goerr.V("path", c.ConfigPath))
	}

	if f.Addr != "" && !isSet("addr") {
		c.Addr = f.Addr
	}
	if f.ArtifactTTL != "" && !isSet("artifact-ttl") {
		ttl, err := time.ParseDuration(f.ArtifactTTL)
		if err != nil {
			return goerr.Wrap(err, "invalid artifact_ttl in config file",
				goerr.V("artifact_ttl", f.ArtifactTTL))
		}
		c.ArtifactTTL = ttl
	}
	if f.MaxBodySize > 0 {
		c.MaxBodySize = f.MaxBodySize
	}

	return nil
}
