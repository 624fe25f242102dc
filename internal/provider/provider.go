// Package provider wraps the platform fetch in poll-cycle bookkeeping: the
// last successful record and the last error, the way a consuming display
// layer wants them. A failed poll records its error and keeps going; it
// never disables the provider.
package provider

import (
	"fmt"
	"log/slog"
	"sync"

	"nowplaying/internal/media"
)

// FetchFunc is the platform backend signature. Injectable for tests.
type FetchFunc func() (media.Info, error)

// Provider polls a backend and retains the most recent result.
type Provider struct {
	fetch FetchFunc
	log   *slog.Logger

	mu      sync.Mutex
	current media.Info
	hasData bool
	lastErr error
}

// New builds a provider around the given fetch function, typically
// platform.Fetch. A nil logger disables logging.
func New(fetch FetchFunc, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Provider{fetch: fetch, log: log}
}

// Collect runs one poll cycle. A record without a title is normalized into
// ErrNotPlaying so every backend honors the same "no title means nothing
// playing" rule. On failure the previous record is kept and the error is
// retained for LastError; retry is the caller's next poll.
func (p *Provider) Collect() error {
	info, err := p.fetch()
	if err == nil && !info.Playing() {
		err = fmt.Errorf("%w: no title in record", media.ErrNotPlaying)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		p.lastErr = err
		p.log.Debug("now-playing poll failed", "code", media.CodeOf(err), "err", err)
		return err
	}

	p.current = info
	p.hasData = true
	p.lastErr = nil
	p.log.Debug("now-playing poll", "title", info.Title, "player", info.Player)
	return nil
}

// Current returns the last successfully collected record.
func (p *Provider) Current() (media.Info, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.hasData
}

// LastError returns the error from the most recent poll, or nil if it
// succeeded.
func (p *Provider) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Fields returns the set fields of the current record as a flat map for
// generic consumers.
func (p *Provider) Fields() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	fields := make(map[string]string)
	if !p.hasData {
		return fields
	}
	if p.current.Title != "" {
		fields["title"] = p.current.Title
	}
	if p.current.Artist != "" {
		fields["artist"] = p.current.Artist
	}
	if p.current.Album != "" {
		fields["album"] = p.current.Album
	}
	if p.current.Player != "" {
		fields["player"] = p.current.Player
	}
	return fields
}

// Display returns the one-line display form, "Artist - Title" or the bare
// title.
func (p *Provider) Display() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.hasData || p.current.Title == "" {
		return "", fmt.Errorf("%w: no media currently playing", media.ErrNotPlaying)
	}
	if p.current.Artist != "" {
		return fmt.Sprintf("%s - %s", p.current.Artist, p.current.Title), nil
	}
	return p.current.Title, nil
}
