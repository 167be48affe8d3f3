//go:build unix

package platform

import "golang.org/x/sys/unix"

func describe() Description {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return fallbackDescription(systemName(Detect()))
	}
	return Description{
		System:       unix.ByteSliceToString(uts.Sysname[:]),
		Release:      unix.ByteSliceToString(uts.Release[:]),
		Version:      unix.ByteSliceToString(uts.Version[:]),
		Architecture: unix.ByteSliceToString(uts.Machine[:]),
	}
}
