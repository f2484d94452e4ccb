package ffmpeg

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/noriah/levelscope/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("ffmpeg-alsa", ALSA{})
}

const alsaPCMList = "/proc/asound/pcm"

type ALSA struct{}

func (p ALSA) Init() error {
	return nil
}

func (p ALSA) Close() error {
	return nil
}

// Devices lists capture-capable PCMs from /proc/asound/pcm.
func (p ALSA) Devices() ([]input.Device, error) {
	f, err := os.Open(alsaPCMList)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open pcm list")
	}
	defer f.Close()

	var devices []input.Device

	var scanner = bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.Contains(line, "capture") {
			continue
		}

		prefix := strings.SplitN(line, ":", 2)[0]

		d, err := ParseALSADevice(strings.TrimSpace(prefix))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse device %q", prefix)
		}

		devices = append(devices, d)
	}

	return devices, errors.Wrap(scanner.Err(), "failed to read pcm list")
}

func (p ALSA) DefaultDevice() (input.Device, error) {
	return ALSADevice("default"), nil
}

func (p ALSA) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(ALSADevice)
	if !ok {
		return nil, fmt.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSession(dv, cfg)
}

// ALSADevice is an ALSA PCM name such as "default" or "hw:0,1".
type ALSADevice string

// ParseALSADevice turns a /proc/asound/pcm prefix such as "00-01" into
// the hw:0,1 device name.
func ParseALSADevice(hwString string) (ALSADevice, error) {
	nparts := strings.Split(hwString, "-")
	if len(nparts) > 2 {
		return "", errors.New("mismatch alsa format")
	}

	ids := make([]string, len(nparts))
	for i, part := range nparts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return "", errors.Wrap(err, "bad alsa index")
		}
		ids[i] = strconv.Itoa(n)
	}

	return ALSADevice("hw:" + strings.Join(ids, ",")), nil
}

func (d ALSADevice) InputArgs() []string {
	return []string{"-f", "alsa", "-i", string(d)}
}

func (d ALSADevice) String() string {
	return string(d)
}
