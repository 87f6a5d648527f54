//go:build windows

package sysmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func platformAlloc(n int) []byte {
	addr, err := windows.VirtualAlloc(0, uintptr(n), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

func platformFree(b []byte) {
	addr := uintptr(unsafe.Pointer(&b[0]))
	_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
