package app

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/grafana/dskit/flagext"
	"github.com/grafana/dskit/server"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/zachfi/zkit/pkg/tracing"

	"github.com/zachfi/mp3carve/modules/carver"
)

type Config struct {
	Target   string         `yaml:"target"`
	LogLevel string         `yaml:"log_level,omitempty"`
	Tracing  tracing.Config `yaml:"tracing,omitempty"`
	Server   server.Config  `yaml:"server,omitempty"`
	Carver   carver.Config  `yaml:"carver,omitempty"`
}

// LoadConfigFile overlays the YAML file onto c. Unknown fields are an error.
func (c *Config) LoadConfigFile(file string) error {
	filename, _ := filepath.Abs(file)

	err := loadYamlFile(filename, c)
	if err != nil {
		return errors.Wrapf(err, "failed to load yaml file %s", file)
	}

	return nil
}

// loadYamlFile unmarshals a YAML file into the received interface{} or returns an error.
func loadYamlFile(filename string, d interface{}) error {
	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	err = yaml.UnmarshalStrict(yamlFile, d)
	if err != nil {
		return err
	}

	return nil
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	f.StringVar(&c.Target, "target", Carver, "Module to run: carver, or all to also serve metrics.")
	f.StringVar(&c.LogLevel, "log.level", "info", "Log level: debug, info, warn or error.")

	flagext.DefaultValues(&c.Server)
	f.IntVar(&c.Server.HTTPListenPort, "server.http-listen-port", 3030, "HTTP server listen port.")
	f.IntVar(&c.Server.GRPCListenPort, "server.grpc-listen-port", 9090, "gRPC server listen port.")

	c.Tracing.RegisterFlagsAndApplyDefaults("tracing", f)
	c.Carver.RegisterFlagsAndApplyDefaults("carver", f)
}
