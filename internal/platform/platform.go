// Package platform reads "currently playing media" metadata from the host
// operating system. Each OS exposes this through a different native
// mechanism; exactly one backend is compiled per target behind the single
// Fetch function:
//
//   - Linux: MPRIS over the DBus session bus
//   - Windows: the NPSM (Now Playing Session Manager) COM API
//   - macOS: the MediaRemote private framework, or the media-control helper
//     on releases that block the framework for third-party code
//
// Fetch is synchronous and blocking, constructs a fresh media.Info per call
// and never caches: media state changes too frequently for any TTL to be
// useful. Callers own the polling cadence and retry policy.
package platform
