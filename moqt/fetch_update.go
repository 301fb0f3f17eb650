package moqt

import (
	"fmt"
	"io"

	"github.com/nanoqt/moqsession/moqt/internal/message"
)

type FetchUpdate struct {
	TrackPriority TrackPriority
}

func (fu FetchUpdate) String() string {
	return fmt.Sprintf("FetchUpdate: { TrackPriority: %d }", fu.TrackPriority)
}

func readFetchUpdate(r io.Reader) (FetchUpdate, error) {
	var fum message.FetchUpdateMessage
	_, err := fum.Decode(r)
	if err != nil {
		return FetchUpdate{}, err
	}

	return FetchUpdate{TrackPriority: TrackPriority(fum.TrackPriority)}, nil
}

func writeFetchUpdate(w io.Writer, update FetchUpdate) error {
	// Send a fetch update message
	fum := message.FetchUpdateMessage{
		TrackPriority: message.TrackPriority(update.TrackPriority),
	}
	_, err := fum.Encode(w)
	if err != nil {
		return err
	}

	return nil
}

func updateFetch(fetch FetchRequest, update FetchUpdate) (FetchRequest, error) {
	fetch.TrackPriority = update.TrackPriority

	return fetch, nil
}
