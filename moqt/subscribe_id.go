package moqt

import "fmt"

// SubscribeID uniquely identifies a subscription within a session.
// It is assigned by the subscriber and used to correlate subscription-related
// messages (group streams, updates, gaps) with the subscription that
// requested them.
type SubscribeID uint64

func (id SubscribeID) String() string {
	return fmt.Sprintf("SubscribeID(%d)", uint64(id))
}
