// Package all imports all backends implemented by the input package.
package all

import (
	_ "github.com/noriah/levelscope/input/ffmpeg"
	_ "github.com/noriah/levelscope/input/malgo"
	_ "github.com/noriah/levelscope/input/parec"
	_ "github.com/noriah/levelscope/input/portaudio"
	_ "github.com/noriah/levelscope/input/stdinput"
	_ "github.com/noriah/levelscope/input/synth"
)
