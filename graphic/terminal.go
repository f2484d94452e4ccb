package graphic

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// normalizeTerminal works around terminal settings that trip up tcell.
// Inside tmux a TERMINFO pointing at the outer terminal's database makes
// screen initialization fail, so it is unset for the lifetime of the display.
//
// The returned function restores the original environment.
func normalizeTerminal() (func(), error) {
	prevTERMINFO, had := os.LookupEnv("TERMINFO")

	if had && strings.HasPrefix(os.Getenv("TERM"), "tmux") {
		if err := os.Unsetenv("TERMINFO"); err != nil {
			return nil, errors.Wrap(err, "failed to unset TERMINFO")
		}
	}

	restore := func() {
		if had {
			os.Setenv("TERMINFO", prevTERMINFO)
		}
	}

	return restore, nil
}
