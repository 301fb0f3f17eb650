package moqt

import (
	"context"
	"log/slog"
	"strings"
	"sync"
)

// DefaultMux is the package-level TrackMux used by the top-level Publish,
// PublishFunc and Announce functions.
var DefaultMux = NewTrackMux()

// NewTrackMux builds an empty TrackMux: a publish index keyed by full
// broadcast path, plus a prefix tree used to fan announcements out to
// whichever ANNOUNCE subscriptions overlap a given path.
func NewTrackMux() *TrackMux {
	return &TrackMux{
		routes:  newRouteNode(""),
		tracks:  make(map[BroadcastPath]*boundTrackHandler),
	}
}

// Publish registers handler on DefaultMux for path, active until ctx is
// canceled.
func Publish(ctx context.Context, path BroadcastPath, handler TrackHandler) {
	DefaultMux.Publish(ctx, path, handler)
}

// PublishFunc is Publish for a plain function instead of a TrackHandler.
func PublishFunc(ctx context.Context, path BroadcastPath, f func(tw *TrackWriter)) {
	DefaultMux.PublishFunc(ctx, path, f)
}

// Announce binds handler to an already-constructed Announcement on
// DefaultMux, bypassing Publish's own Announcement creation.
func Announce(announcement *Announcement, handler TrackHandler) {
	DefaultMux.Announce(announcement, handler)
}

// TrackMux routes incoming track requests to the handler registered for
// their broadcast path, and fans announcements out to any ANNOUNCE
// subscription whose prefix matches. Both structures are safe for
// concurrent use.
type TrackMux struct {
	trackMu sync.RWMutex
	tracks  map[BroadcastPath]*boundTrackHandler

	routes *routeNode
}

// PublishFunc is Publish for a plain function instead of a TrackHandler.
func (mux *TrackMux) PublishFunc(ctx context.Context, path BroadcastPath, f func(tw *TrackWriter)) {
	mux.Publish(ctx, path, TrackHandlerFunc(f))
}

// Publish creates an Announcement for path and binds handler to it, active
// until ctx is canceled.
func (mux *TrackMux) Publish(ctx context.Context, path BroadcastPath, handler TrackHandler) {
	if ctx == nil {
		panic("moqt: Publish called with nil context")
	}
	if !isValidPath(path) {
		panic("moqt: Publish called with invalid track path " + string(path))
	}

	ann := NewAnnouncement(ctx, path)
	mux.Announce(ann, handler)
}

// Announce binds handler to announcement and notifies every matching
// ANNOUNCE subscription. A prior handler bound to the same broadcast path
// is evicted. The binding is torn down automatically when announcement
// ends.
func (mux *TrackMux) Announce(announcement *Announcement, handler TrackHandler) {
	if announcement == nil {
		slog.Debug("moqt: Announce called with nil announcement")
		return
	}
	if !announcement.IsActive() {
		slog.Debug("moqt: Announce called with an already-ended announcement", "path", announcement.path)
		return
	}

	bound := mux.bind(announcement, handler)
	leaf := mux.notify(announcement)

	announcement.AfterFunc(func() {
		leaf.removeAnnouncement(announcement)
		mux.unbind(bound)
	})
}

func (mux *TrackMux) bind(ann *Announcement, handler TrackHandler) *boundTrackHandler {
	path := ann.BroadcastPath()
	bound := &boundTrackHandler{Announcement: ann, TrackHandler: handler}

	mux.trackMu.Lock()
	prior, hadPrior := mux.tracks[path]
	mux.tracks[path] = bound
	mux.trackMu.Unlock()

	if hadPrior {
		prior.end()
	}

	return bound
}

func (mux *TrackMux) unbind(bound *boundTrackHandler) {
	path := bound.BroadcastPath()

	mux.trackMu.Lock()
	defer mux.trackMu.Unlock()
	if current, ok := mux.tracks[path]; ok && current == bound {
		delete(mux.tracks, path)
	}
}

// notify walks the prefix tree for announcement's path, delivering it to
// every node's subscribers along the way, and returns the leaf node so the
// caller can later remove the announcement from it.
func (mux *TrackMux) notify(announcement *Announcement) *routeNode {
	prefix, _ := pathSegments(announcement.BroadcastPath())

	node := mux.routes
	node.addAnnouncement(announcement)
	node.broadcast(announcement)
	for _, seg := range prefix {
		node = node.child(seg)
		node.addAnnouncement(announcement)
		node.broadcast(announcement)
	}
	return node
}

// TrackHandler returns the handler bound to path, or NotFoundTrackHandler
// if none is registered.
func (mux *TrackMux) TrackHandler(path BroadcastPath) (*Announcement, TrackHandler) {
	bound := mux.lookup(path)
	if bound == nil {
		return nil, NotFoundTrackHandler
	}
	return bound.Announcement, bound.TrackHandler
}

func (mux *TrackMux) lookup(path BroadcastPath) *boundTrackHandler {
	if !isValidPath(path) {
		return nil
	}

	mux.trackMu.RLock()
	bound, ok := mux.tracks[path]
	mux.trackMu.RUnlock()
	if !ok || bound == nil || bound.Announcement == nil || bound.TrackHandler == nil {
		return nil
	}

	if hf, ok := bound.TrackHandler.(TrackHandlerFunc); ok && hf == nil {
		slog.Warn("moqt: bound handler func is nil", "path", path)
		return nil
	}

	return bound
}

// serveTrack dispatches tw to the handler bound to its broadcast path,
// closing tw with TrackNotFoundErrorCode when nothing is bound.
func (mux *TrackMux) serveTrack(tw *TrackWriter) {
	if tw == nil {
		slog.Error("moqt: serveTrack called with nil track writer")
		return
	}

	bound := mux.lookup(tw.BroadcastPath)
	if bound == nil {
		slog.Warn("moqt: no handler bound for path", "path", tw.BroadcastPath)
		tw.CloseWithError(TrackNotFoundErrorCode)
		return
	}

	stop := bound.AfterFunc(func() { tw.Close() })
	bound.TrackHandler.ServeTrack(tw)
	stop()
}

// serveAnnouncements streams the set of currently-active announcements
// under aw's prefix to aw, then keeps aw updated as matching announcements
// start and end until aw's context is canceled.
func (mux *TrackMux) serveAnnouncements(aw *AnnouncementWriter) {
	if aw == nil {
		slog.Error("moqt: serveAnnouncements called with nil announcement writer")
		return
	}
	if !isValidPrefix(aw.prefix) {
		aw.CloseWithError(InvalidPrefixErrorCode)
		return
	}

	leaf := mux.routes.descend(prefixSegments(aw.prefix))

	leaf.mu.Lock()
	active := make(map[*Announcement]struct{}, len(leaf.announcements))
	for ann := range leaf.announcements {
		active[ann] = struct{}{}
	}
	updates := make(chan *Announcement, 8)
	if leaf.subscribers == nil {
		leaf.subscribers = make(map[*AnnouncementWriter]chan *Announcement)
	}
	leaf.subscribers[aw] = updates
	leaf.mu.Unlock()

	defer func() {
		leaf.mu.Lock()
		delete(leaf.subscribers, aw)
		leaf.mu.Unlock()
	}()

	if err := aw.init(active); err != nil {
		slog.Error("moqt: failed to prime announcement writer", "error", err)
		aw.CloseWithError(InternalAnnounceErrorCode)
		return
	}

	for {
		select {
		case ann, ok := <-updates:
			if !ok {
				return
			}
			if err := aw.SendAnnouncement(ann); err != nil {
				aw.CloseWithError(InternalAnnounceErrorCode)
				return
			}
		case <-aw.Context().Done():
			return
		}
	}
}

// newRouteNode builds an empty prefix-tree node for path segment seg.
func newRouteNode(seg prefixSegment) *routeNode {
	return &routeNode{
		segment:       seg,
		announcements: make(map[*Announcement]struct{}),
		children:      make(map[string]*routeNode),
		subscribers:   make(map[*AnnouncementWriter]chan *Announcement),
	}
}

type prefixSegment = string

// routeNode is one segment of the announcement prefix tree: the root
// represents "/", and each child extends the prefix by one path segment.
// ANNOUNCE subscriptions register on the node matching their prefix;
// announcements are recorded on every node along their own path so a
// subscription sees announcements made before it attached.
type routeNode struct {
	mu sync.RWMutex

	parent  *routeNode
	segment prefixSegment

	children map[prefixSegment]*routeNode

	subscribers   map[*AnnouncementWriter]chan *Announcement
	announcements map[*Announcement]struct{}
}

func (node *routeNode) child(seg prefixSegment) *routeNode {
	node.mu.Lock()
	defer node.mu.Unlock()
	if node.children == nil {
		node.children = make(map[string]*routeNode)
	}
	c, ok := node.children[seg]
	if !ok {
		c = newRouteNode(seg)
		c.parent = node
		node.children[seg] = c
	}
	return c
}

// descend walks (creating as needed) the child chain named by segments.
func (node *routeNode) descend(segments []prefixSegment) *routeNode {
	n := node
	for _, seg := range segments {
		n = n.child(seg)
	}
	return n
}

func (node *routeNode) addAnnouncement(ann *Announcement) {
	node.mu.Lock()
	node.announcements[ann] = struct{}{}
	node.mu.Unlock()
}

// broadcast delivers ann to every subscriber currently attached to node,
// retrying in the background if a subscriber's channel is momentarily full.
func (node *routeNode) broadcast(ann *Announcement) {
	node.mu.RLock()
	subs := make([]chan *Announcement, 0, len(node.subscribers))
	for _, ch := range node.subscribers {
		subs = append(subs, ch)
	}
	node.mu.RUnlock()

	for _, ch := range subs {
		select {
		case ch <- ann:
		case <-ann.Done():
		default:
			go func(ch chan *Announcement) {
				select {
				case ch <- ann:
				case <-ann.Done():
				}
			}(ch)
		}
	}
}

// removeAnnouncement drops ann from node and prunes node (and any
// now-empty ancestors) out of the tree once it holds neither announcements
// nor children.
func (node *routeNode) removeAnnouncement(ann *Announcement) {
	node.mu.Lock()
	delete(node.announcements, ann)
	empty := len(node.announcements) == 0 && len(node.children) == 0
	node.mu.Unlock()

	if !empty || node.parent == nil {
		return
	}

	node.parent.mu.Lock()
	delete(node.parent.children, node.segment)
	node.parent.mu.Unlock()
	node.parent.removeAnnouncement(ann)
}

func isValidPath(path BroadcastPath) bool {
	return path != "" && strings.HasPrefix(string(path), "/")
}

func isValidPrefix(prefix string) bool {
	return prefix != "" && strings.HasPrefix(prefix, "/") && strings.HasSuffix(prefix, "/")
}

// TrackHandler serves a single subscribed or fetched track.
type TrackHandler interface {
	ServeTrack(*TrackWriter)
}

// TrackHandlerFunc adapts a plain function to TrackHandler.
type TrackHandlerFunc func(*TrackWriter)

func (f TrackHandlerFunc) ServeTrack(tw *TrackWriter) { f(tw) }

// NotFoundTrackHandler closes the track writer with TrackNotFoundErrorCode.
// It's what TrackMux hands back when no handler is bound to a path.
var NotFoundTrackHandler TrackHandler = TrackHandlerFunc(func(tw *TrackWriter) {
	if tw != nil {
		tw.CloseWithError(TrackNotFoundErrorCode)
	}
})

var _ TrackHandler = (*boundTrackHandler)(nil)

// boundTrackHandler pairs a TrackHandler with the Announcement that
// justifies serving it.
type boundTrackHandler struct {
	TrackHandler
	*Announcement
}

// prefixSegments splits an ANNOUNCE prefix like "/a/b/" into ["a", "b"].
func prefixSegments(prefix string) []prefixSegment {
	segments := strings.Split(prefix, "/")
	return segments[1 : len(segments)-1]
}

// pathSegments splits a broadcast path like "/a/b/track" into its
// directory segments ["a", "b"] and final segment "track".
func pathSegments(path BroadcastPath) (segments []prefixSegment, last string) {
	parts := strings.Split(string(path), "/")
	return parts[1 : len(parts)-1], parts[len(parts)-1]
}
