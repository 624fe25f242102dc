//go:build !linux && !windows && !darwin

package platform

import (
	"fmt"
	"runtime"

	"nowplaying/internal/media"
)

// Fetch is a stub on platforms without a now-playing backend.
func Fetch() (media.Info, error) {
	return media.Info{}, fmt.Errorf("%w: no now-playing backend for %s", media.ErrUnavailable, runtime.GOOS)
}
