// Package portaudio captures through PortAudio.
package portaudio

import (
	"context"
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/logger"
	"github.com/pkg/errors"
)

var GlobalBackend = &Backend{}

func init() {
	input.RegisterBackend("portaudio", GlobalBackend)
}

// Backend represents the Portaudio backend. A zero-value instance is a
// valid instance.
type Backend struct {
	initialized bool
	devices     []*portaudio.DeviceInfo
}

func (b *Backend) Init() error {
	if b.initialized {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return errors.Wrap(err, "failed to initialize portaudio")
	}

	b.initialized = true
	return nil
}

func (b *Backend) Close() error {
	if !b.initialized {
		return nil
	}

	b.initialized = false
	return portaudio.Terminate()
}

// Devices lists the devices that can capture.
func (b *Backend) Devices() ([]input.Device, error) {
	if b.devices == nil {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, errors.Wrap(err, "failed to list devices")
		}
		b.devices = devices
	}

	var gDevices []input.Device
	for _, device := range b.devices {
		if device.MaxInputChannels > 0 {
			gDevices = append(gDevices, Device{device})
		}
	}

	return gDevices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	defaultHost, err := portaudio.DefaultHostApi()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default host API")
	}

	if defaultHost.DefaultInputDevice == nil {
		return nil, errors.New("no default input device found")
	}

	return Device{defaultHost.DefaultInputDevice}, nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	return NewSession(cfg)
}

// Device represents a Portaudio device.
type Device struct {
	*portaudio.DeviceInfo
}

// String returns the device name.
func (d Device) String() string {
	return d.Name
}

// Session delivers blocks from a PortAudio callback stream.
type Session struct {
	param portaudio.StreamParameters
	cfg   input.SessionConfig
}

func NewSession(cfg input.SessionConfig) (*Session, error) {
	dv, ok := cfg.Device.(Device)
	if !ok {
		return nil, fmt.Errorf("device is on unknown type %T", cfg.Device)
	}

	if dv.MaxInputChannels < cfg.FrameSize {
		return nil, errors.Errorf("device %q has %d input channels, need %d",
			dv.Name, dv.MaxInputChannels, cfg.FrameSize)
	}

	param := portaudio.LowLatencyParameters(dv.DeviceInfo, nil)
	param.Input.Channels = cfg.FrameSize
	param.SampleRate = cfg.SampleRate
	param.FramesPerBuffer = cfg.SampleSize

	return &Session{param: param, cfg: cfg}, nil
}

// Start runs the stream until ctx is done. proc is called from the
// PortAudio callback thread.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	bufs := input.MakeBuffers(s.cfg)

	callback := func(in []float32) {
		n := len(in) / s.cfg.FrameSize
		if n > s.cfg.SampleSize {
			n = s.cfg.SampleSize
		}

		input.Deinterleave(bufs, in, n)
		proc.Process(bufs)
	}

	stream, err := portaudio.OpenStream(s.param, callback)
	if err != nil {
		return errors.Wrap(err, "failed to open stream")
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return errors.Wrap(err, "failed to start stream")
	}

	logger.Debugf("portaudio stream started at %.0f Hz", s.param.SampleRate)

	<-ctx.Done()

	return errors.Wrap(stream.Stop(), "failed to stop stream")
}
