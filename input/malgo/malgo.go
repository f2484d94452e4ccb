// Package malgo captures through miniaudio.
package malgo

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/noriah/levelscope/input"
	"github.com/noriah/levelscope/logger"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("malgo", &Backend{})
}

// Backend owns one miniaudio context, created by Init.
type Backend struct {
	mu  sync.Mutex
	ctx *malgo.AllocatedContext
}

func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx != nil {
		return nil
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return errors.Wrap(err, "failed to initialize miniaudio context")
	}

	b.ctx = ctx
	return nil
}

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx == nil {
		return nil
	}

	err := b.ctx.Uninit()
	b.ctx.Free()
	b.ctx = nil

	return errors.Wrap(err, "failed to release miniaudio context")
}

func (b *Backend) context() (*malgo.AllocatedContext, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ctx == nil {
		return nil, errors.New("malgo backend not initialized")
	}
	return b.ctx, nil
}

func (b *Backend) Devices() ([]input.Device, error) {
	ctx, err := b.context()
	if err != nil {
		return nil, err
	}

	infos, err := ctx.Devices(malgo.Capture)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list capture devices")
	}

	devices := make([]input.Device, len(infos))
	for i, info := range infos {
		devices[i] = Device{name: info.Name(), id: info.ID, set: true}
	}

	return devices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	return Device{name: "default"}, nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	ctx, err := b.context()
	if err != nil {
		return nil, err
	}

	dv, ok := cfg.Device.(Device)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return &Session{ctx: ctx, dev: dv, cfg: cfg}, nil
}

// Device is a capture device. The zero ID selects the system default.
type Device struct {
	name string
	id   malgo.DeviceID
	set  bool
}

func (d Device) String() string {
	return d.name
}

// Session delivers blocks from the miniaudio data callback.
type Session struct {
	ctx *malgo.AllocatedContext
	dev Device
	cfg input.SessionConfig
}

// Start runs the capture device until ctx is done. proc is called from the
// miniaudio callback thread.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	devCfg := malgo.DefaultDeviceConfig(malgo.Capture)
	devCfg.Capture.Format = malgo.FormatF32
	devCfg.Capture.Channels = uint32(s.cfg.FrameSize)
	devCfg.SampleRate = uint32(s.cfg.SampleRate)
	devCfg.PeriodSizeInFrames = uint32(s.cfg.SampleSize)
	devCfg.Alsa.NoMMap = 1

	if s.dev.set {
		devCfg.Capture.DeviceID = s.dev.id.Pointer()
	}

	blocker := newBlocker(s.cfg, proc)

	device, err := malgo.InitDevice(s.ctx.Context, devCfg, malgo.DeviceCallbacks{
		Data: func(_, in []byte, frames uint32) {
			blocker.write(in)
		},
	})
	if err != nil {
		return errors.Wrap(err, "failed to initialize capture device")
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return errors.Wrap(err, "failed to start capture device")
	}

	logger.Debugf("malgo capture started on %q", s.dev.name)

	<-ctx.Done()

	return errors.Wrap(device.Stop(), "failed to stop capture device")
}

// blocker regroups callback payloads of any size into fixed blocks.
type blocker struct {
	proc  input.Processor
	bufs  [][]input.Sample
	ch    int
	fill  int
	frame []byte
	pend  int
}

func newBlocker(cfg input.SessionConfig, proc input.Processor) *blocker {
	return &blocker{
		proc:  proc,
		bufs:  input.MakeBuffers(cfg),
		ch:    cfg.FrameSize,
		frame: make([]byte, cfg.FrameSize*4),
	}
}

// write consumes interleaved float32le bytes.
func (b *blocker) write(p []byte) {
	for len(p) > 0 {
		n := copy(b.frame[b.pend:], p)
		p = p[n:]
		b.pend += n

		if b.pend < len(b.frame) {
			return
		}
		b.pend = 0

		for c := 0; c < b.ch; c++ {
			bits := binary.LittleEndian.Uint32(b.frame[c*4:])
			b.bufs[c][b.fill] = input.Sample(math.Float32frombits(bits))
		}

		b.fill++
		if b.fill == len(b.bufs[0]) {
			b.fill = 0
			b.proc.Process(b.bufs)
		}
	}
}
