package moqt

import "fmt"

// Info summarizes a track's current publishing state, as returned in
// response to an INFO_REQUEST or attached to a fresh SUBSCRIBE.
type Info struct {
	TrackPriority       TrackPriority
	LatestGroupSequence GroupSequence
	GroupOrder          GroupOrder
}

func (i Info) String() string {
	return fmt.Sprintf("Info: { TrackPriority: %d, LatestGroupSequence: %d, GroupOrder: %s }",
		i.TrackPriority, i.LatestGroupSequence, i.GroupOrder)
}
