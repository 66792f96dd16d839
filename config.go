package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Discord   DiscordConfig   `yaml:"-"` // flags/env only
	Server    ServerConfig    `yaml:"-"` // positional args
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type DiscordConfig struct {
	Token          string
	GeneralChannel uint64
	ServerChannel  uint64
}

type ServerConfig struct {
	Command string
	Args    []string
}

type TelemetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	ServiceName string        `yaml:"service_name"`
	Interval    time.Duration `yaml:"interval"`
}

func defaultConfig() Config {
	return Config{
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "mc-sync",
			Interval:    15 * time.Second,
		},
	}
}

// loadConfig parses flags (with env fallback for each) and the optional yaml
// config file. The server command and its arguments are the positional args.
func loadConfig(args []string) (Config, error) {
	cfg := defaultConfig()

	flags := pflag.NewFlagSet("mc-sync", pflag.ContinueOnError)
	// Everything from the server command onward belongs to the server.
	flags.SetInterspersed(false)
	token := flags.StringP("discord-token", "d", "", "Discord bot token (or $DISCORD_TOKEN)")
	general := flags.StringP("general-channel", "g", "", "channel ID for game notifications (or $GENERAL_CHANNEL)")
	server := flags.StringP("server-channel", "s", "", "channel ID for the raw log mirror (or $SERVER_CHANNEL)")
	configPath := flags.String("config", "/etc/mc-sync/config.yaml", "optional yaml config file")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: mc-sync [flags] <command> [args...]\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	// config file is optional — missing file is not an error
	if data, err := os.ReadFile(*configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", *configPath, err)
		}
	}

	cfg.Discord.Token = flagOrEnv(*token, "DISCORD_TOKEN")
	if cfg.Discord.Token == "" {
		return cfg, fmt.Errorf("--discord-token or DISCORD_TOKEN is required")
	}

	var err error
	cfg.Discord.GeneralChannel, err = channelID(flagOrEnv(*general, "GENERAL_CHANNEL"), "general-channel", "GENERAL_CHANNEL")
	if err != nil {
		return cfg, err
	}
	cfg.Discord.ServerChannel, err = channelID(flagOrEnv(*server, "SERVER_CHANNEL"), "server-channel", "SERVER_CHANNEL")
	if err != nil {
		return cfg, err
	}

	rest := flags.Args()
	if len(rest) == 0 {
		return cfg, fmt.Errorf("server command is required")
	}
	cfg.Server.Command = rest[0]
	cfg.Server.Args = rest[1:]

	return cfg, nil
}

func channelID(value, flagName, envName string) (uint64, error) {
	if value == "" {
		return 0, fmt.Errorf("--%s or %s is required", flagName, envName)
	}
	id, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a channel ID", flagName, value)
	}
	return id, nil
}

// flagOrEnv prefers an explicit flag value over the environment.
func flagOrEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}
