// Package collab decouples the layout engine from any collaboration
// transport. The engine consumes remote selections through a read-only
// Provider; how they arrive (RPC, CRDT sync, replay) is the embedder's
// concern.
package collab

import (
	"sort"

	"github.com/google/uuid"

	"github.com/dshills/glint/internal/display"
)

// PeerID identifies a collaborating peer.
type PeerID = uuid.UUID

// RemoteSelection is one collaborator selection overlapping the
// visible range.
type RemoteSelection struct {
	Peer      PeerID
	ReplicaID uint16
	// ParticipantIndex selects the peer's palette color; nil peers
	// render with the absent color.
	ParticipantIndex *int
	Selection        display.Selection[display.BufferPoint]
	LineMode         bool
	CursorShape      display.CursorShape
}

// Provider enumerates remote selections intersecting an anchor range.
// Implementations must be safe for concurrent readers and must not
// mutate returned values after the call.
type Provider interface {
	SelectionsInRange(start, end display.Anchor, snap display.Snapshot) []RemoteSelection
}

// StaticProvider is an in-memory Provider for tests and replays.
type StaticProvider struct {
	selections []RemoteSelection
}

// NewStaticProvider creates a provider over a fixed selection set.
func NewStaticProvider(selections ...RemoteSelection) *StaticProvider {
	return &StaticProvider{selections: selections}
}

// SelectionsInRange implements Provider. Anchors mint through the
// snapshot so ordering matches the frame being laid out.
func (p *StaticProvider) SelectionsInRange(start, end display.Anchor, snap display.Snapshot) []RemoteSelection {
	var out []RemoteSelection
	for _, sel := range p.selections {
		selStart := snap.AnchorBefore(sel.Selection.Start)
		selEnd := snap.AnchorAfter(sel.Selection.End)
		if anchorLess(selEnd, start) || anchorLess(end, selStart) {
			continue
		}
		out = append(out, sel)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ReplicaID < out[j].ReplicaID
	})
	return out
}

// anchorLess orders anchors in document order, honoring the min/max
// sentinels.
func anchorLess(a, b display.Anchor) bool {
	rank := func(x display.Anchor) int {
		switch x {
		case display.AnchorMin:
			return -1
		case display.AnchorMax:
			return 1
		default:
			return 0
		}
	}
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra < rb
	}
	if ra != 0 {
		return false
	}
	return a.Offset < b.Offset
}
