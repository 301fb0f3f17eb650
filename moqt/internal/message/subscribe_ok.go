package message

import (
	"io"
)

/*
 * SUBSCRIBE_OK Message {
 *   Group Order (varint),
 * }
 */
type SubscribeOkMessage struct {
	GroupOrder GroupOrder
}

func (som SubscribeOkMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, numberLen(uint64(som.GroupOrder)))
	p = appendNumber(p, uint64(som.GroupOrder))

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (som *SubscribeOkMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	num, err := readNumber(mr)
	if err != nil {
		return err
	}
	som.GroupOrder = GroupOrder(num)

	return checkExhausted(mr)
}
