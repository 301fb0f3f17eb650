package moqt

import (
	"fmt"
)

// TrackConfig holds subscription parameters for a track. It is used to
// specify the range of group sequences to receive and the delivery priority
// for the track.
type TrackConfig struct {
	TrackPriority    TrackPriority
	MinGroupSequence GroupSequence
	MaxGroupSequence GroupSequence
}

// IsInRange reports whether seq falls within the configured
// [MinGroupSequence, MaxGroupSequence] window. A bound left unspecified
// leaves that side of the window open.
func (config *TrackConfig) IsInRange(seq GroupSequence) bool {
	belowMin := config.MinGroupSequence.IsSpecified() && seq < config.MinGroupSequence
	aboveMax := config.MaxGroupSequence.IsSpecified() && seq > config.MaxGroupSequence

	return !belowMin && !aboveMax
}

func (sc TrackConfig) String() string {
	return fmt.Sprintf("{ track_priority: %d, min_group_sequence: %d, max_group_sequence: %d }",
		sc.TrackPriority, sc.MinGroupSequence, sc.MaxGroupSequence)
}
