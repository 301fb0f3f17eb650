package moqt

// TrackPriority is the publisher-assigned priority of a track, 0 being highest.
type TrackPriority byte

// Spec-aligned aliases for GroupOrder (defined in group_order.go), matching
// the moq-transport draft's Default/OldestFirst/NewestFirst naming.
const (
	GroupOrderOldestFirst = GroupOrderAscending
	GroupOrderNewestFirst = GroupOrderDescending
)

// groupOrderBits is the width, in bits, of the group-id field packed into a
// StreamPriority.
const groupOrderBits = 21

// groupOrderMask selects the low groupOrderBits bits of a group id.
const groupOrderMask = (1 << groupOrderBits) - 1

// StreamPriority is the 64-bit value quic-go's stream scheduler sorts on,
// numerically higher values scheduled first.
type StreamPriority uint64

// computeStreamPriority packs subscriber priority, publisher priority, group
// id, and subgroup id into a single 64-bit scheduling key.
//
// Layout (MSB to LSB): 6 reserved bits, 8 bits subscriber priority, 8 bits
// publisher priority, 21 bits group-order-adjusted group id, 21 bits
// subgroup id.
func computeStreamPriority(subscriberPriority, publisherPriority TrackPriority, group GroupSequence, subgroup uint64, order GroupOrder) StreamPriority {
	groupBits := uint64(group) & groupOrderMask
	if order == GroupOrderDescending {
		groupBits = groupOrderMask - groupBits
	}

	subgroupBits := subgroup & groupOrderMask

	return StreamPriority(
		uint64(subscriberPriority)<<50 |
			uint64(publisherPriority)<<42 |
			groupBits<<groupOrderBits |
			subgroupBits,
	)
}
