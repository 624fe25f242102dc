//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"nowplaying/internal/media"
)

var (
	kernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procWideCharToMultiByte = kernel32.NewProc("WideCharToMultiByte")
)

const cpUTF8 = 65001

// wideToUTF8 converts a UTF-16 string to UTF-8 with the two-call protocol:
// the first call computes the required buffer size, the second converts
// into the pre-sized buffer. Zero at either step is a conversion failure.
func wideToUTF8(ws []uint16) (string, error) {
	if len(ws) == 0 {
		return "", nil
	}

	size, _, lastErr := procWideCharToMultiByte.Call(
		cpUTF8, 0,
		uintptr(unsafe.Pointer(&ws[0])), uintptr(len(ws)),
		0, 0, 0, 0)
	if size == 0 {
		return "", fmt.Errorf("%w: WideCharToMultiByte size query: %v", media.ErrInternal, lastErr)
	}

	buf := make([]byte, size)
	converted, _, lastErr := procWideCharToMultiByte.Call(
		cpUTF8, 0,
		uintptr(unsafe.Pointer(&ws[0])), uintptr(len(ws)),
		uintptr(unsafe.Pointer(&buf[0])), size,
		0, 0)
	if converted == 0 {
		return "", fmt.Errorf("%w: WideCharToMultiByte conversion: %v", media.ErrInternal, lastErr)
	}

	return string(buf[:converted]), nil
}

// utf16PtrSlice reinterprets a NUL-terminated LPWSTR as a slice without the
// terminator.
func utf16PtrSlice(p *uint16) []uint16 {
	if p == nil {
		return nil
	}
	n := 0
	for ptr := unsafe.Pointer(p); *(*uint16)(ptr) != 0; ptr = unsafe.Add(ptr, 2) {
		n++
	}
	return unsafe.Slice(p, n)
}
