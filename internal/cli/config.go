package cli

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/serde"
)

// Supported encoding formats.
const (
	FormatJSON      = "json"
	FormatProtoJSON = "protojson"
)

// Config holds the command-line tool configuration, read from
// PURKINJE_-prefixed environment variables.
type Config struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Format   string `envconfig:"FORMAT" default:"json"`
}

// ParseConfig reads the Config from the environment.
func ParseConfig() (*Config, error) {
	var config Config

	if err := envconfig.Process("purkinje", &config); err != nil {
		return nil, fmt.Errorf("config: failed to parse from env, %v", err)
	}

	return &config, nil
}

func (c Config) serde(parser serde.Parser) (serde.Serde[message.Event, []byte], error) {
	switch c.Format {
	case FormatJSON:
		return serde.NewEventJSON(parser), nil
	case FormatProtoJSON:
		return serde.NewEventProtoJSON(parser), nil
	default:
		return nil, fmt.Errorf("config: unsupported format '%s'", c.Format)
	}
}
