// Package audio holds the encoding vocabulary shared by the capture
// and playback device packages.
package audio

import "time"

const (
	DefaultSampleRate = 16000
	DefaultFormat     = "linear16"
)

func GetDefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: encodingFormat(DefaultFormat)}
}

// EncodingInfo describes the raw sample stream a device produces or
// consumes. Mono is assumed throughout.
type EncodingInfo struct {
	SampleRate int
	Format     encodingFormat
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

func (e EncodingInfo) SilenceValue() byte {
	switch e.Format {
	case EncodingALaw:
		return 0x55
	case EncodingMulaw:
		return 0xFF
	case EncodingLinear16:
		return 0
	}

	return 0
}

// Duration reports how long the given payload plays for at this
// encoding, or zero when the encoding is unknown.
func (e EncodingInfo) Duration(payload []byte) time.Duration {
	byteSize := e.Format.ByteSize()
	if byteSize <= 0 || e.SampleRate <= 0 {
		return 0
	}
	samples := len(payload) / byteSize
	return time.Duration(samples) * time.Second / time.Duration(e.SampleRate)
}

type encodingFormat string

func (e encodingFormat) Name() string {
	return string(e)
}

func (e encodingFormat) ByteSize() int {
	switch e {
	case EncodingMulaw, EncodingALaw:
		return 1
	case EncodingLinear16:
		return 2
	}
	return -1
}

const (
	EncodingMulaw    encodingFormat = "mulaw"
	EncodingALaw     encodingFormat = "alaw"
	EncodingLinear16 encodingFormat = "linear16"
)
