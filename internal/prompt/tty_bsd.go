//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package prompt

import "golang.org/x/sys/unix"

func redirectStdin(fd int) error {
	return unix.Dup2(fd, unix.Stdin)
}
