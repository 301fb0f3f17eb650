// Package bitrate provides helpers for recognizing sudden changes in a
// track's observed data rate, so a subscriber can react (e.g. requesting a
// lower-priority rendition) without waiting for an explicit signal from the
// publisher.
package bitrate

// ShiftDetector watches a stream of rate samples (bytes/sec, bits/sec, or
// any consistent unit) and reports when the rate has moved far enough from
// its recent trend to be considered a shift rather than noise.
type ShiftDetector interface {
	// Detect records rate and reports whether it constitutes a shift from
	// the trend established by prior samples.
	Detect(rate float64) bool
}
