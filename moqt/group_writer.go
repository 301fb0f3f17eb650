package moqt

import "time"

// GroupWriter writes the frames of one group to its own stream. A
// subscription in send mode opens one GroupWriter per group it publishes;
// closing it marks the group complete, CancelWrite abandons it early with
// an error code the subscriber can observe.
type GroupWriter interface {
	GroupSequence() GroupSequence
	WriteFrame(*Frame) error
	CancelWrite(GroupErrorCode) error
	SetWriteDeadline(time.Time) error
	Close() error
}
