package moqt

// AnnounceConfig scopes an announcement subscription to broadcast paths
// matching TrackPattern, a path pattern using "*" and "**" wildcards.
type AnnounceConfig struct {
	TrackPattern string
}

func (ac AnnounceConfig) String() string {
	return "TrackPattern: " + ac.TrackPattern
}
