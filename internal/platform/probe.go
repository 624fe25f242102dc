package platform

import (
	"strconv"
	"strings"
)

// restrictedDarwinVersion reports whether the given macOS product version
// blocks MediaRemote for third-party processes (15.4 and later). An
// unparsable version is treated as unrestricted so the native path still
// gets a chance on odd build strings.
func restrictedDarwinVersion(version string) bool {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	if len(parts) == 0 || parts[0] == "" {
		return false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minor := 0
	if len(parts) > 1 {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			minor = m
		}
	}
	return major > 15 || (major == 15 && minor >= 4)
}
