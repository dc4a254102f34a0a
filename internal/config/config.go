// Package config loads the voice client configuration from an optional
// YAML file with VOICE_* environment overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	// WebsocketURL is the streaming conversation endpoint.
	WebsocketURL string `yaml:"websocket_url"`
	// HTTPURL is the base URL of the REST endpoints.
	HTTPURL string `yaml:"http_url"`
	// KeepaliveSeconds is the ping interval; zero disables keepalive.
	KeepaliveSeconds int `yaml:"keepalive_seconds"`
}

type AudioConfig struct {
	// Backend selects the capture device implementation. One of
	// "miniaudio", "portaudio" or "none".
	Backend string `yaml:"backend"`
	// PortaudioBufferSize is the capture buffer in frames, portaudio
	// backend only.
	PortaudioBufferSize int `yaml:"portaudio_buffer_size"`
	// PlaybackEnabled turns synthesized speech playback on or off.
	PlaybackEnabled bool `yaml:"playback_enabled"`
}

type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	LogDir  string `yaml:"log_dir"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			WebsocketURL:     "ws://localhost:8000/ws",
			HTTPURL:          "http://localhost:8000",
			KeepaliveSeconds: 30,
		},
		Audio: AudioConfig{
			Backend:             "miniaudio",
			PortaudioBufferSize: 512,
			PlaybackEnabled:     true,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
			LogDir:  "logs",
		},
	}
}

// Load reads path (optional), applies environment overrides and
// validates the result. An empty path loads defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return cfg, fmt.Errorf("config file not found: %w", err)
			}
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	overrideString(&cfg.Server.WebsocketURL, "VOICE_SERVER_WEBSOCKET_URL")
	overrideString(&cfg.Server.HTTPURL, "VOICE_SERVER_HTTP_URL")
	overrideInt(&cfg.Server.KeepaliveSeconds, "VOICE_SERVER_KEEPALIVE_SECONDS")
	overrideString(&cfg.Audio.Backend, "VOICE_AUDIO_BACKEND")
	overrideInt(&cfg.Audio.PortaudioBufferSize, "VOICE_AUDIO_PORTAUDIO_BUFFER_SIZE")
	overrideBool(&cfg.Audio.PlaybackEnabled, "VOICE_AUDIO_PLAYBACK_ENABLED")
	overrideBool(&cfg.Telemetry.Enabled, "VOICE_TELEMETRY_ENABLED")
	overrideString(&cfg.Telemetry.LogDir, "VOICE_TELEMETRY_LOG_DIR")
}

func validate(cfg Config) error {
	if !strings.HasPrefix(cfg.Server.WebsocketURL, "ws://") &&
		!strings.HasPrefix(cfg.Server.WebsocketURL, "wss://") {
		return fmt.Errorf("server.websocket_url must use ws or wss scheme, got %q", cfg.Server.WebsocketURL)
	}
	if !strings.HasPrefix(cfg.Server.HTTPURL, "http://") &&
		!strings.HasPrefix(cfg.Server.HTTPURL, "https://") {
		return fmt.Errorf("server.http_url must use http or https scheme, got %q", cfg.Server.HTTPURL)
	}
	if cfg.Server.KeepaliveSeconds < 0 {
		return fmt.Errorf("server.keepalive_seconds must not be negative, got %d", cfg.Server.KeepaliveSeconds)
	}

	switch cfg.Audio.Backend {
	case "miniaudio", "portaudio", "none":
	default:
		return fmt.Errorf("audio.backend must be miniaudio, portaudio or none, got %q", cfg.Audio.Backend)
	}
	if cfg.Audio.Backend == "portaudio" && cfg.Audio.PortaudioBufferSize <= 0 {
		return fmt.Errorf("audio.portaudio_buffer_size must be positive, got %d", cfg.Audio.PortaudioBufferSize)
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.LogDir == "" {
		return fmt.Errorf("telemetry.log_dir must be set when telemetry is enabled")
	}
	return nil
}

func overrideString(target *string, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		*target = value
	}
}

func overrideInt(target *int, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

func overrideBool(target *bool, envKey string) {
	if value, ok := os.LookupEnv(envKey); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}
