package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	session "github.com/Pranav-shellkode/voice-agent-learning/core"
	"github.com/Pranav-shellkode/voice-agent-learning/core/audio/miniaudio"
	"github.com/Pranav-shellkode/voice-agent-learning/core/audio/portaudio"
	"github.com/Pranav-shellkode/voice-agent-learning/core/events"
	"github.com/Pranav-shellkode/voice-agent-learning/core/httpapi"
	"github.com/Pranav-shellkode/voice-agent-learning/core/protocol"
	"github.com/Pranav-shellkode/voice-agent-learning/core/transport"
	"github.com/Pranav-shellkode/voice-agent-learning/internal/config"
	"github.com/Pranav-shellkode/voice-agent-learning/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	serverURL := flag.String("server", "", "websocket URL of the assistant backend (overrides config)")
	oneshot := flag.String("oneshot", "", "send one message over the REST API and exit")
	dumpSchema := flag.Bool("dump-schema", false, "print the wire frame schema and exit")
	flag.Parse()

	if *dumpSchema {
		schema, err := protocol.WireSchema()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to build wire schema: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(schema))
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.WebsocketURL = *serverURL
	}

	if cfg.Telemetry.Enabled {
		if _, err := telemetry.InitLogger(cfg.Telemetry.LogDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
			os.Exit(1)
		}
		shutdown, err := telemetry.Init(context.Background(), cfg.Telemetry.LogDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize telemetry: %v\n", err)
			os.Exit(1)
		}
		defer shutdown()
	}

	if *oneshot != "" {
		if err := runOneshot(cfg, *oneshot); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runInteractive(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func runOneshot(cfg config.Config, message string) error {
	client, err := httpapi.NewClient(cfg.Server.HTTPURL)
	if err != nil {
		return fmt.Errorf("failed to build REST client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := client.Chat(ctx, message, nil)
	if err != nil {
		return fmt.Errorf("chat request failed: %w", err)
	}

	fmt.Println(result.Text)
	return nil
}

func runInteractive(cfg config.Config) error {
	socket, err := transport.NewSocket(cfg.Server.WebsocketURL)
	if err != nil {
		return fmt.Errorf("failed to build transport: %w", err)
	}

	opts := []session.SessionOption{
		session.WithChannel(socket),
		session.WithKeepaliveInterval(time.Duration(cfg.Server.KeepaliveSeconds) * time.Second),
	}

	switch cfg.Audio.Backend {
	case "miniaudio":
		client, err := miniaudio.NewClient()
		if err != nil {
			return fmt.Errorf("failed to initialize audio: %w", err)
		}
		defer client.Close()
		opts = append(opts, session.WithCaptureClient(client))
		if cfg.Audio.PlaybackEnabled {
			opts = append(opts, session.WithPlaybackResource(client))
		}
	case "portaudio":
		client, err := portaudio.NewClient(cfg.Audio.PortaudioBufferSize)
		if err != nil {
			return fmt.Errorf("failed to initialize audio: %w", err)
		}
		defer client.Close()
		opts = append(opts, session.WithCaptureClient(client))
	case "none":
	}

	var program *tea.Program
	opts = append(opts, session.WithEventHandler(func(event events.Event) {
		if program != nil {
			program.Send(sessionEventMsg{event: event})
		}
	}))

	conversation := session.NewSession(opts...)
	defer conversation.Close()

	program = tea.NewProgram(newModel(conversation), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui failed: %w", err)
	}
	return nil
}
