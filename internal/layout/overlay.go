package layout

import (
	"github.com/dshills/glint/internal/display"
	"github.com/dshills/glint/internal/geo"
)

const (
	// HoverPopoverGap separates stacked hover popovers from the
	// hovered line and from each other.
	HoverPopoverGap = 10.0
	// MinPopoverLineHeights is the vertical room, in line heights,
	// reserved above the hovered point before popovers flip below.
	MinPopoverLineHeights = 1.5
	// MaxContextMenuLines caps the context menu height in lines.
	MaxContextMenuLines = 12
)

// OverlayLayout is a positioned rectangle for a popover or menu,
// remembering the display point it is anchored to.
type OverlayLayout struct {
	Anchor display.DisplayPoint
	Bounds geo.Rect
}

// placeContextMenu anchors a menu just below the cursor at point. The
// menu is nudged left so it never escapes the right edge of bounds,
// and flipped above the cursor line when it would escape the bottom.
func placeContextMenu(
	point display.DisplayPoint,
	size geo.Size,
	contentOrigin geo.Point,
	bounds geo.Rect,
	line LineWithInvisibles,
	lineHeight float64,
	scrollPixels geo.Point,
) OverlayLayout {
	x := line.Line.XForIndex(int(point.Column)) - scrollPixels.X
	y := float64(point.Row+1)*lineHeight - scrollPixels.Y
	origin := contentOrigin.Add(geo.Pt(x, y))

	if origin.X+size.Width > bounds.Right() {
		origin.X = bounds.Right() - size.Width
	}
	if origin.Y+size.Height > bounds.Bottom() {
		origin.Y -= lineHeight + size.Height
	}

	return OverlayLayout{Anchor: point, Bounds: geo.Rect{Origin: origin, Size: size}}
}

// placeHoverPopovers stacks popovers above the hovered point, closest
// first, or below it when the space above cannot fit the first popover
// plus the reserved headroom. Each popover is clamped to the right
// edge of bounds.
func placeHoverPopovers(
	point display.DisplayPoint,
	sizes []geo.Size,
	contentOrigin geo.Point,
	bounds geo.Rect,
	line LineWithInvisibles,
	lineHeight float64,
	scrollPixels geo.Point,
) []OverlayLayout {
	if len(sizes) == 0 {
		return nil
	}

	x := line.Line.XForIndex(int(point.Column)) - scrollPixels.X
	y := float64(point.Row)*lineHeight - scrollPixels.Y
	hovered := contentOrigin.Add(geo.Pt(x, y))

	layouts := make([]OverlayLayout, 0, len(sizes))
	heightToReserve := sizes[0].Height + MinPopoverLineHeights*lineHeight

	if hovered.Y-heightToReserve > 0 {
		// Stack upward.
		currentY := hovered.Y
		for _, size := range sizes {
			origin := geo.Pt(hovered.X, currentY-size.Height-HoverPopoverGap)
			if origin.X+size.Width > bounds.Right() {
				origin.X = bounds.Right() - size.Width
			}
			layouts = append(layouts, OverlayLayout{Anchor: point, Bounds: geo.Rect{Origin: origin, Size: size}})
			currentY = origin.Y
		}
	} else {
		// Stack downward, below the hovered line.
		currentY := hovered.Y + lineHeight
		for _, size := range sizes {
			origin := geo.Pt(hovered.X, currentY+HoverPopoverGap)
			if origin.X+size.Width > bounds.Right() {
				origin.X = bounds.Right() - size.Width
			}
			layouts = append(layouts, OverlayLayout{Anchor: point, Bounds: geo.Rect{Origin: origin, Size: size}})
			currentY = origin.Y + size.Height
		}
	}

	return layouts
}
