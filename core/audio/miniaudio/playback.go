package miniaudio

import (
	"context"
	"fmt"
	"sync"

	"github.com/Pranav-shellkode/voice-agent-learning/core/audio"
	"github.com/gen2brain/malgo"
)

// playbackClient feeds queued audio to the device callback and tracks
// per-payload completion marks so Play can block until its payload was
// actually consumed.
type playbackClient struct {
	audioContext *malgo.AllocatedContext
	device       *malgo.Device
	config       malgo.DeviceConfig

	mu sync.Mutex

	bufferMu sync.Mutex
	buffered []byte
	marks    []playbackMark
}

// playbackMark fires once the device consumed everything buffered
// before end. The [start, end) span is the mark owner's own payload.
type playbackMark struct {
	start int
	end   int
	done  chan struct{}
}

func (c *playbackClient) Init(audioContext *malgo.AllocatedContext) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sampleRate := uint32(audio.DefaultSampleRate)
	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	c.config = malgo.DefaultDeviceConfig(malgo.Playback)
	c.config.SampleRate = sampleRate
	c.config.Playback.Format = format
	c.config.Playback.Channels = uint32(channels)
	c.config.Alsa.NoMMap = 1
	c.config.PeriodSizeInFrames = sampleRate / 10 // ~100ms of audio
	c.config.Periods = 4

	c.audioContext = audioContext

	var err error
	if c.device, err = malgo.InitDevice(
		c.audioContext.Context,
		c.config,
		malgo.DeviceCallbacks{Data: c.feedDevice(bytesPerFrame)},
	); err != nil {
		return fmt.Errorf("failed to initialize playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}

	return nil
}

func (c *playbackClient) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	if err := c.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}

	c.discardBuffered()
	return nil
}

// Play buffers the payload and blocks until the device drained it. On
// cancellation only the caller's unplayed span is discarded; payloads
// buffered by other callers keep their place.
func (c *playbackClient) Play(ctx context.Context, payload []byte) error {
	if len(payload) == 0 {
		return nil
	}
	if c.device == nil {
		return fmt.Errorf("device not initialized")
	} else if !c.device.IsStarted() {
		return fmt.Errorf("device not started")
	}

	c.bufferMu.Lock()
	start := len(c.buffered)
	c.buffered = append(c.buffered, payload...)
	mark := playbackMark{start: start, end: len(c.buffered), done: make(chan struct{})}
	c.marks = append(c.marks, mark)
	c.bufferMu.Unlock()

	select {
	case <-mark.done:
		return nil
	case <-ctx.Done():
		c.bufferMu.Lock()
		c.cancelMark(mark.done)
		c.bufferMu.Unlock()
		return ctx.Err()
	}
}

// cancelMark removes the unplayed span owned by the mark identified by
// done and drops the mark, shifting later marks down. Marks belonging
// to other callers stay pending. Call with bufferMu held.
func (c *playbackClient) cancelMark(done chan struct{}) {
	for i := range c.marks {
		if c.marks[i].done != done {
			continue
		}

		start, end := c.marks[i].start, c.marks[i].end
		if start < 0 {
			start = 0
		}
		if end > len(c.buffered) {
			end = len(c.buffered)
		}
		removed := end - start
		if removed > 0 {
			c.buffered = append(c.buffered[:start], c.buffered[end:]...)
		}
		c.marks = append(c.marks[:i], c.marks[i+1:]...)

		for j := range c.marks {
			if c.marks[j].start > start {
				c.marks[j].start -= removed
			}
			if c.marks[j].end > start {
				c.marks[j].end -= removed
			}
		}
		return
	}
}

// discardBuffered drops pending audio and releases every waiter. Call
// with bufferMu held (or with the device stopped).
func (c *playbackClient) discardBuffered() {
	c.buffered = nil
	for _, mark := range c.marks {
		close(mark.done)
	}
	c.marks = nil
}

func (c *playbackClient) Uninit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.device == nil {
		return fmt.Errorf("device not initialized")
	}

	c.device.Uninit()
	c.device = nil

	c.bufferMu.Lock()
	c.discardBuffered()
	c.bufferMu.Unlock()

	return nil
}

func (c *playbackClient) feedDevice(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		need := int(frameCount) * bytesPerFrame
		if need > len(pOutput) {
			need = len(pOutput)
		}

		c.bufferMu.Lock()
		n := copy(pOutput[:need], c.buffered)
		c.buffered = c.buffered[n:]

		// Release marks the consumed span passed over; shift the rest.
		released := 0
		for i := range c.marks {
			if c.marks[i].end <= n {
				released++
				continue
			}
			c.marks[i].start -= n
			if c.marks[i].start < 0 {
				c.marks[i].start = 0
			}
			c.marks[i].end -= n
		}
		toRelease := c.marks[:released]
		c.marks = c.marks[released:]
		c.bufferMu.Unlock()

		for _, mark := range toRelease {
			close(mark.done)
		}
	}
}
