package media

import "errors"

// The fetch contract reports every failure as one of these sentinels,
// usually wrapped with fmt.Errorf("%w: ...") to carry the native
// diagnostic (HRESULT, bus error string, helper path).
var (
	// ErrNotPlaying: no active session or player, or no media currently playing.
	ErrNotPlaying = errors.New("media: nothing playing")
	// ErrUnavailable: the native API, interface, framework or helper could
	// not be reached or created.
	ErrUnavailable = errors.New("media: api unavailable")
	// ErrBadReply: a structured reply had an unexpected shape.
	ErrBadReply = errors.New("media: malformed reply")
	// ErrInvalidArg: a call was made with arguments the native layer rejects.
	ErrInvalidArg = errors.New("media: invalid argument")
	// ErrNoMemory: the native layer reported an allocation failure.
	ErrNoMemory = errors.New("media: out of memory")
	// ErrInternal: a conversion or other low-level operation failed.
	ErrInternal = errors.New("media: internal failure")
	// ErrPlatform: a native transport-level error carrying the original
	// diagnostic text, e.g. a DBus error string.
	ErrPlatform = errors.New("media: platform error")
)

// CodeOf maps a wrapped taxonomy error back to its short code name for
// logging and display. Errors outside the taxonomy report as "Unknown".
func CodeOf(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, ErrNotPlaying):
		return "NotFound"
	case errors.Is(err, ErrUnavailable):
		return "ApiUnavailable"
	case errors.Is(err, ErrBadReply):
		return "ParseError"
	case errors.Is(err, ErrInvalidArg):
		return "InvalidArgument"
	case errors.Is(err, ErrNoMemory):
		return "OutOfMemory"
	case errors.Is(err, ErrInternal):
		return "InternalError"
	case errors.Is(err, ErrPlatform):
		return "PlatformSpecific"
	default:
		return "Unknown"
	}
}
