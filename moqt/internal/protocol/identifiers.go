package protocol

// SubscribeID identifies a subscription within a session. It is assigned by
// the subscriber and scoped to the session's lifetime.
type SubscribeID uint64

// TrackAlias is a short-lived identifier a publisher assigns to a track for
// use on data streams, avoiding repeating the broadcast path and track name.
type TrackAlias uint64

// GroupSequence identifies a group within a track. Sequence numbers increase
// monotonically but are not required to be contiguous.
type GroupSequence uint64

// TrackPriority orders a track's data relative to other tracks sharing a
// session, lower values are scheduled first.
type TrackPriority byte
