//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"sync"

	"golang.org/x/sys/unix"

	"nowplaying/internal/media"
)

var (
	strategyOnce sync.Once
	useHelper    bool
)

// Fetch reads the currently playing track via MediaRemote, or via the
// media-control helper on OS releases that block the private framework for
// third-party processes. The probe runs once; the chosen strategy is reused
// for the life of the process.
func Fetch() (media.Info, error) {
	strategyOnce.Do(func() {
		useHelper = restrictedDarwinVersion(osProductVersion())
	})

	if useHelper {
		return fetchViaHelper()
	}
	return fetchMediaRemote()
}

func osProductVersion() string {
	version, err := unix.Sysctl("kern.osproductversion")
	if err != nil {
		return ""
	}
	return version
}

// fetchViaHelper shells out to the media-control binary. The native path is
// known to fail on restricted releases, so a missing helper is reported
// immediately with an actionable message instead.
func fetchViaHelper() (media.Info, error) {
	path := locateHelper()
	if path == "" {
		return media.Info{}, fmt.Errorf(
			"%w: media-control helper not found; install it with 'brew install media-control'",
			media.ErrUnavailable)
	}

	out, err := exec.Command(path, "get").Output()
	if err != nil {
		return media.Info{}, fmt.Errorf("%w: %s get: %v", media.ErrPlatform, path, err)
	}
	return parseHelperOutput(out)
}
