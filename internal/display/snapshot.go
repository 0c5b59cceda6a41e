package display

// Bias breaks ties when clipping a position that falls inside an
// indivisible region (a fold placeholder, a wide glyph, an excerpt
// header).
type Bias uint8

const (
	// BiasLeft resolves toward the document start.
	BiasLeft Bias = iota
	// BiasRight resolves toward the document end.
	BiasRight
)

// Anchor is an edit-stable reference into the buffer. The snapshot
// mints anchors and resolves them back to points; the layout engine
// only carries them.
type Anchor struct {
	// Offset is the anchored byte offset, or -1/-2 for the document
	// start/end sentinels.
	Offset int
}

// Anchor sentinels.
var (
	// AnchorMin always resolves to the document start.
	AnchorMin = Anchor{Offset: -1}
	// AnchorMax always resolves to the document end.
	AnchorMax = Anchor{Offset: -2}
)

// AnchorRange is a pair of anchors bounding a buffer region.
type AnchorRange struct {
	Start Anchor
	End   Anchor
}

// FoldStatus reports whether a buffer row can be folded or is folded.
type FoldStatus uint8

const (
	// FoldStatusNone marks a row with no foldable region.
	FoldStatusNone FoldStatus = iota
	// FoldStatusFoldable marks an unfolded row that starts a foldable
	// region.
	FoldStatusFoldable
	// FoldStatusFolded marks a row whose region is collapsed.
	FoldStatusFolded
)

// Chunk is a run of display text sharing one classification. Tabs
// arrive expanded to spaces with IsTab set so invisibles can be drawn.
type Chunk struct {
	Text  string
	IsTab bool
}

// Snapshot is the read-only display map the engine consumes for one
// frame: buffer<->display conversion, clipping, fold and wrap queries.
// All methods must be safe for concurrent readers; a snapshot is never
// mutated after creation.
type Snapshot interface {
	// ToDisplayPoint converts a buffer point to display space.
	ToDisplayPoint(p BufferPoint) DisplayPoint

	// ToBufferPoint converts a display point back to buffer space.
	ToBufferPoint(p DisplayPoint) BufferPoint

	// ClipPoint snaps a possibly-invalid display point to the nearest
	// valid position in the given direction. Clipping an excerpt
	// header row moves to the adjacent excerpt content.
	ClipPoint(p DisplayPoint, bias Bias) DisplayPoint

	// MaxPoint returns the last valid display point.
	MaxPoint() DisplayPoint

	// MaxBufferRow returns the highest buffer row across all excerpts.
	MaxBufferRow() uint32

	// LineLen returns the column count of a display row.
	LineLen(row uint32) uint32

	// Line returns the text of a display row with tabs expanded.
	Line(row uint32) string

	// Chunks returns the classified runs of a display row.
	Chunks(row uint32) []Chunk

	// LongestRow returns the display row with the widest content.
	LongestRow() uint32

	// BufferRowForDisplayRow returns the buffer row backing a display
	// row, or ok=false for spacer rows (excerpt headers, wrap
	// continuations) that have no line of their own.
	BufferRowForDisplayRow(row uint32) (bufferRow uint32, ok bool)

	// FoldForRow reports the fold status of a buffer row.
	FoldForRow(bufferRow uint32) FoldStatus

	// PrevLineBoundary returns the buffer/display start of the display
	// line containing p.
	PrevLineBoundary(p BufferPoint) (BufferPoint, DisplayPoint)

	// NextLineBoundary returns the buffer/display end of the display
	// line containing p.
	NextLineBoundary(p BufferPoint) (BufferPoint, DisplayPoint)

	// ExpandToLine widens a buffer range to whole buffer lines.
	ExpandToLine(r BufferRange) BufferRange

	// AnchorBefore mints an anchor biased before the given point.
	AnchorBefore(p BufferPoint) Anchor

	// AnchorAfter mints an anchor biased after the given point.
	AnchorAfter(p BufferPoint) Anchor

	// IsEmpty returns true if the document holds no text.
	IsEmpty() bool
}

// Source produces snapshots and accepts the wrap width the layout pass
// derives from the viewport. SetWrapWidth returns true when the new
// width changed the wrap map, in which case the caller must re-fetch
// the snapshot.
type Source interface {
	Snapshot() Snapshot
	SetWrapWidth(columns uint32) bool
}
