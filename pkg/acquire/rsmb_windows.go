//go:build windows

package acquire

import (
	"fmt"
	"syscall"
	"unsafe"
)

const firmwareTableProviderRSMB uint32 = 0x52534D42 // 'RSMB'

var (
	kernel32                   = syscall.NewLazyDLL("kernel32.dll")
	procGetSystemFirmwareTable = kernel32.NewProc("GetSystemFirmwareTable")
)

func firmwareTable() ([]byte, error) {
	// The first call reports the size of the buffer needed.
	r1, _, err := procGetSystemFirmwareTable.Call(
		uintptr(firmwareTableProviderRSMB),
		0,
		0,
		0,
	)
	if r1 == 0 {
		return nil, fmt.Errorf("GetSystemFirmwareTable size query failed: %v", err)
	}

	size := uint32(r1)
	buf := make([]byte, size)
	r1, _, err = procGetSystemFirmwareTable.Call(
		uintptr(firmwareTableProviderRSMB),
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(size),
	)
	if uint32(r1) != size {
		return nil, fmt.Errorf("GetSystemFirmwareTable returned %d of %d bytes: %v", r1, size, err)
	}
	return buf, nil
}
