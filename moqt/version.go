package moqt

import "github.com/nanoqt/moqsession/moqt/internal/protocol"

// Version identifies a revision of the MOQ wire protocol. It is an alias for
// protocol.Version so application code never has to import the internal
// package just to compare or log a version.
type Version = protocol.Version

const (
	Develop Version = protocol.Develop
	Draft01 Version = protocol.Draft01
	Draft02 Version = protocol.Draft02
	Draft03 Version = protocol.Draft03
)

// DefaultClientVersions lists the versions a client offers during the
// handshake, in order of preference.
var DefaultClientVersions = []Version{Develop}

// DefaultServerVersion is the version a server selects when it supports
// more than one and the client hasn't narrowed the choice.
var DefaultServerVersion Version = Develop
