package moqt

import (
	"fmt"
)

// GroupSequence numbers a group within a track. Values count up from
// FirstGroupSequence; GroupSequenceNotSpecified (the zero value) stands in
// for "no sequence given" wherever a range endpoint or cursor is optional,
// e.g. an open MinGroupSequence/MaxGroupSequence bound or "start from the
// latest group" on a fresh subscription.
type GroupSequence uint64

const (
	GroupSequenceNotSpecified GroupSequence = 0
	FirstGroupSequence        GroupSequence = 1
	MaxGroupSequence          GroupSequence = 0xFFFFFFFF
)

func (gs GroupSequence) String() string {
	return fmt.Sprintf("GroupSequence: %d", gs)
}

// IsSpecified reports whether gs names an actual group rather than standing
// for "unspecified".
func (gs GroupSequence) IsSpecified() bool {
	return gs != GroupSequenceNotSpecified
}

// Next returns the sequence following gs, wrapping from MaxGroupSequence
// back to FirstGroupSequence.
func (gs GroupSequence) Next() GroupSequence {
	if gs == GroupSequenceNotSpecified || gs == MaxGroupSequence {
		return FirstGroupSequence
	}

	return gs + 1
}
