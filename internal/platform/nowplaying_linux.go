//go:build linux

package platform

import (
	"fmt"

	"github.com/godbus/dbus/v5"

	"nowplaying/internal/media"
)

// Fetch reads the currently playing track over MPRIS. The private
// connection is scoped to the call; a shared connection would outlive the
// fetch and break the no-state-between-calls contract.
func Fetch() (media.Info, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return media.Info{}, fmt.Errorf("%w: session bus: %v", media.ErrUnavailable, err)
	}
	defer func() { _ = conn.Close() }()

	return fetchMPRIS(sessionCaller{conn: conn})
}
