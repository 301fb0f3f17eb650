package moqt

import "strings"

// TrackName identifies a specific track within a broadcast path.
// Track names are case-sensitive strings that uniquely identify media tracks
// (e.g. "video", "audio/en").
type TrackName string

// String returns the string representation of the track name.
func (name TrackName) String() string {
	return string(name)
}

// Empty reports whether the track name carries no characters.
func (name TrackName) Empty() bool {
	return len(name) == 0
}

// HasPrefix reports whether name begins with prefix, compared as plain
// strings; segment boundaries are not checked.
func (name TrackName) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(name), prefix)
}
