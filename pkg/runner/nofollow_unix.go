//go:build !windows

package runner

import "syscall"

// oNoFollow makes opening a payload fail when its last component is a symlink.
const oNoFollow = syscall.O_NOFOLLOW
