package moqt

import "strings"

// BroadcastPath identifies a group of related tracks published together,
// such as the audio and video tracks of one camera feed. Paths are
// slash-separated, URL-path-like strings, e.g. "/live/camera1".
type BroadcastPath string

func (bc BroadcastPath) String() string {
	return string(bc)
}

// HasPrefix reports whether bc starts with prefix.
func (bc BroadcastPath) HasPrefix(prefix string) bool {
	return len(bc) >= len(prefix) && strings.HasPrefix(string(bc), prefix)
}

// GetSuffix returns what remains of bc after prefix, and false if bc
// doesn't start with prefix.
func (bc BroadcastPath) GetSuffix(prefix string) (string, bool) {
	if !bc.HasPrefix(prefix) {
		return "", false
	}
	return strings.TrimPrefix(string(bc), prefix), true
}

// Extension returns the final path segment's extension, e.g. ".mp4", or ""
// if it has none.
func (bc BroadcastPath) Extension() string {
	i := strings.LastIndex(string(bc), ".")
	if i < 0 || i < strings.LastIndex(string(bc), "/") {
		return ""
	}
	return string(bc)[i:]
}

// Equal reports whether bc and target name the same broadcast.
func (bc BroadcastPath) Equal(target BroadcastPath) bool {
	return bc == target
}
