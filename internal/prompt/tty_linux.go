//go:build linux

package prompt

import "golang.org/x/sys/unix"

func redirectStdin(fd int) error {
	return unix.Dup3(fd, unix.Stdin, 0)
}
