package message

import (
	"bytes"
	"io"

	"github.com/quic-go/quic-go/quicvarint"
)

const (
	ENDED  AnnounceStatus = 0x0
	ACTIVE AnnounceStatus = 0x1
	LIVE   AnnounceStatus = 0x2
)

type AnnounceStatus byte

type AnnounceMessage struct {
	AnnounceStatus AnnounceStatus
	TrackSuffix    string
	Parameters     Parameters
}

func (a AnnounceMessage) Len() int {
	l := 0
	l += numberLen(uint64(a.AnnounceStatus))
	l += stringLen(a.TrackSuffix)
	l += parametersLen(a.Parameters)
	return l
}

func (a AnnounceMessage) Encode(w io.Writer) (int, error) {
	p := make([]byte, 0, a.Len())
	p = appendNumber(p, uint64(a.AnnounceStatus))
	p = appendString(p, a.TrackSuffix)
	p = appendParameters(p, a.Parameters)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	return w.Write(b)
}

func (am *AnnounceMessage) Decode(r io.Reader) (int, error) {
	buf, err := readBytes(quicvarint.NewReader(r))
	if err != nil {
		return 0, err
	}
	n := quicvarint.Len(uint64(len(buf))) + len(buf)

	mr := quicvarint.NewReader(bytes.NewReader(buf))

	status, err := readNumber(mr)
	if err != nil {
		return n, err
	}
	am.AnnounceStatus = AnnounceStatus(status)

	am.TrackSuffix, err = readString(mr)
	if err != nil {
		return n, err
	}

	am.Parameters, err = readParameters(mr)
	if err != nil {
		return n, err
	}

	return n, nil
}
