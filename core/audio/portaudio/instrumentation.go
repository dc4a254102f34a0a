package portaudio

import "go.opentelemetry.io/contrib/bridges/otelslog"

const scopeName = "github.com/Pranav-shellkode/voice-agent-learning/core/audio/portaudio"

var logger = otelslog.NewLogger(scopeName)
