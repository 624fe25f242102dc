// Package media defines the record all platform backends populate and the
// closed error taxonomy they report failures through.
package media

// Info holds metadata about the currently playing media. An empty string
// means the field is unknown; no backend ever produces a meaningful empty
// value. Serialization omits unset fields.
type Info struct {
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Artist string `json:"artist,omitempty" yaml:"artist,omitempty"`
	Album  string `json:"album,omitempty" yaml:"album,omitempty"`
	// Player is the short player name, derived from the MPRIS bus name on
	// Linux. The other backends never set it.
	Player string `json:"playerName,omitempty" yaml:"playerName,omitempty"`
}

// Playing reports whether the record describes an active track. A missing
// title is the canonical "nothing playing" signal, even when a backend
// returned the record without an error.
func (i Info) Playing() bool {
	return i.Title != ""
}
