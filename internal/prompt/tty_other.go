//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package prompt

import "errors"

func redirectStdin(int) error {
	return errors.New("terminal redirection is not supported on this platform")
}
