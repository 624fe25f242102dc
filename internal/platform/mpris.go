package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"nowplaying/internal/media"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	playerInterface = "org.mpris.MediaPlayer2.Player"

	dbusService = "org.freedesktop.DBus"
	dbusPath    = dbus.ObjectPath("/org/freedesktop/DBus")
	mprisPath   = dbus.ObjectPath("/org/mpris/MediaPlayer2")

	// Bounds blocking on an unresponsive or absent bus. A timeout surfaces
	// as an error, never a hang.
	mprisCallTimeout = 100 * time.Millisecond
)

// busCaller is the narrow slice of a DBus connection the MPRIS walk needs.
// Tests substitute a scripted implementation.
type busCaller interface {
	Call(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...interface{}) ([]interface{}, error)
}

// sessionCaller adapts a live godbus connection to busCaller.
type sessionCaller struct {
	conn *dbus.Conn
}

func (c sessionCaller) Call(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...interface{}) ([]interface{}, error) {
	call := c.conn.Object(dest, path).CallWithContext(ctx, method, 0, args...)
	return call.Body, call.Err
}

// fetchMPRIS performs the two-call protocol walk: enumerate bus names to
// find a player, then read its Metadata property bag.
func fetchMPRIS(bus busCaller) (media.Info, error) {
	name, err := findPlayer(bus)
	if err != nil {
		return media.Info{}, err
	}

	dict, err := playerMetadata(bus, name)
	if err != nil {
		return media.Info{}, err
	}

	info := parseMetadata(dict)
	info.Player = playerShortName(name)
	return info, nil
}

// findPlayer walks the ListNames reply and selects the first MPRIS-prefixed
// bus name. First match wins: the walk does not verify that the chosen
// player is the one actually playing, only that it is registered. When
// several players hold names at once the pick is arbitrary but stable.
func findPlayer(bus busCaller) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mprisCallTimeout)
	defer cancel()

	body, err := bus.Call(ctx, dbusService, dbusPath, dbusService+".ListNames")
	if err != nil {
		return "", fmt.Errorf("%w: ListNames: %v", media.ErrPlatform, err)
	}
	if len(body) != 1 {
		return "", fmt.Errorf("%w: ListNames reply has %d arguments, want 1", media.ErrBadReply, len(body))
	}
	names, ok := body[0].([]string)
	if !ok {
		return "", fmt.Errorf("%w: ListNames reply is not a string array", media.ErrBadReply)
	}

	for _, name := range names {
		if strings.HasPrefix(name, mprisPrefix) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: no MPRIS players on the bus", media.ErrNotPlaying)
}

// playerMetadata asks the selected player for its Metadata property and
// validates the top-level reply shape: one argument, a variant wrapping a
// dictionary. Anything else is fatal regardless of what is nested deeper.
func playerMetadata(bus busCaller, name string) (map[string]dbus.Variant, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mprisCallTimeout)
	defer cancel()

	body, err := bus.Call(ctx, name, mprisPath, "org.freedesktop.DBus.Properties.Get", playerInterface, "Metadata")
	if err != nil {
		return nil, fmt.Errorf("%w: Properties.Get: %v", media.ErrPlatform, err)
	}
	if len(body) != 1 {
		return nil, fmt.Errorf("%w: Properties.Get reply has %d arguments, want 1", media.ErrBadReply, len(body))
	}
	variant, ok := body[0].(dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: Properties.Get reply argument is not a variant", media.ErrBadReply)
	}
	dict, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return nil, fmt.Errorf("%w: Metadata is not a dictionary array", media.ErrBadReply)
	}
	return dict, nil
}

// parseMetadata extracts the recognized xesam keys. Entries with an
// unexpected sub-shape are skipped, not fatal.
func parseMetadata(dict map[string]dbus.Variant) media.Info {
	var info media.Info
	for key, variant := range dict {
		switch key {
		case "xesam:title":
			if s, ok := variant.Value().(string); ok {
				info.Title = s
			}
		case "xesam:album":
			if s, ok := variant.Value().(string); ok {
				info.Album = s
			}
		case "xesam:artist":
			// The spec'd type is a string array; only the first entry is
			// used. Some players hand back untyped arrays, so accept both.
			switch artists := variant.Value().(type) {
			case []string:
				if len(artists) > 0 {
					info.Artist = artists[0]
				}
			case []interface{}:
				if len(artists) > 0 {
					if s, ok := artists[0].(string); ok {
						info.Artist = s
					}
				}
			}
		}
	}
	return info
}

// playerShortName strips the fixed MPRIS prefix from a bus name. Names
// without the prefix pass through unchanged; the selection filter should
// make that impossible, but the derivation stays total.
func playerShortName(busName string) string {
	return strings.TrimPrefix(busName, mprisPrefix)
}
