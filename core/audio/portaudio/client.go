// Package portaudio provides a PortAudio-backed microphone capture
// device, for hosts where miniaudio is unavailable.
package portaudio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/Pranav-shellkode/voice-agent-learning/core/audio"
	"github.com/gordonklaus/portaudio"
)

type Client struct {
	bufferSize int
	stream     *portaudio.Stream
	in         []int16

	mu      sync.Mutex
	stop    chan struct{}
	stopped chan struct{}
}

func NewClient(bufferSize int) (*Client, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	in := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(1, 0, audio.DefaultSampleRate, bufferSize, in)
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	return &Client{
		bufferSize: bufferSize,
		stream:     stream,
		in:         in,
	}, nil
}

// StartCapture begins reading the default input device and feeding
// little-endian PCM to onAudio until StopCapture is called or ctx is
// cancelled.
func (c *Client) StartCapture(ctx context.Context, onAudio func(audio []byte)) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return fmt.Errorf("capture already running")
	}

	if err := c.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	c.stop = make(chan struct{})
	c.stopped = make(chan struct{})

	go c.captureLoop(ctx, c.stop, c.stopped, onAudio)
	return nil
}

func (c *Client) captureLoop(ctx context.Context, stop, stopped chan struct{}, onAudio func(audio []byte)) {
	defer close(stopped)

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		default:
			if err := c.stream.Read(); err != nil {
				logger.Warn("failed to read from portaudio stream", "error", err)
				continue
			}

			buf := bytes.Buffer{}
			_ = binary.Write(&buf, binary.LittleEndian, c.in)
			onAudio(buf.Bytes())
		}
	}
}

func (c *Client) StopCapture() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return nil
	}

	close(c.stop)
	<-c.stopped
	c.stop = nil
	c.stopped = nil

	if err := c.stream.Stop(); err != nil {
		return fmt.Errorf("failed to stop portaudio stream: %w", err)
	}
	return nil
}

func (c *Client) Close() {
	_ = c.StopCapture()
	_ = c.stream.Close()
	_ = portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.GetDefaultEncodingInfo()
}
