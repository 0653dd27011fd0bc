package main

// Vertical and horizontal anchoring for a line of text inside the canvas.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignCenter
	AlignBottom
)

type HAlign int

const (
	AlignLeft HAlign = iota
	AlignHCenter
	AlignRight
)

// Fixed canvas margins and line padding, in pixels.
const (
	layoutInsetTop    = 2.0
	layoutInsetBottom = 2.0
	layoutInsetLeft   = 3.0
	layoutInsetRight  = 3.0
	layoutPadAbove    = 2.0
	layoutPadBelow    = 2.0
)

// BandHeight returns the vertical space a band reserves for one line of
// the given font height.
func BandHeight(fontLineHeight, padAbove, padBelow float64) float64 {
	return padAbove + fontLineHeight + padBelow
}

// LayoutFrame computes text positions over three vertical bands: an
// optional title band on top, an optional footer band at the bottom and
// the body band in between. Band reservations are per frame; BeginFrame
// must run before any positioning query of that frame. Canvas sizes of
// zero or less are the caller's problem.
type LayoutFrame struct {
	Width  float64
	Height float64

	titleHeight  float64
	footerHeight float64
}

// BeginFrame resets the frame to a bare canvas with no reserved bands.
func (f *LayoutFrame) BeginFrame(width, height float64) {
	f.Width = width
	f.Height = height
	f.titleHeight = 0
	f.footerHeight = 0
}

func (f *LayoutFrame) ReserveTitle(height float64)  { f.titleHeight = height }
func (f *LayoutFrame) ReserveFooter(height float64) { f.footerHeight = height }

func (f *LayoutFrame) TitleHeight() float64  { return f.titleHeight }
func (f *LayoutFrame) FooterHeight() float64 { return f.footerHeight }

// PositionLine returns the y coordinate of a line's top edge. The shift is
// in line heights and may be fractional; stacked lines reuse the centered
// anchor and differ only in their shift.
func (f *LayoutFrame) PositionLine(valign VAlign, lineHeight, shift float64) float64 {
	var y float64
	switch valign {
	case AlignTop:
		y = layoutInsetTop + layoutPadAbove + f.titleHeight
	case AlignBottom:
		y = f.Height - lineHeight - f.footerHeight - layoutPadBelow - layoutInsetBottom
	case AlignCenter:
		bodyTop := layoutInsetTop + f.titleHeight
		bodyBottom := f.Height - layoutInsetBottom - f.footerHeight
		y = bodyTop + (bodyBottom-bodyTop)/2 - lineHeight/2
	}
	return y + shift*lineHeight
}

// AnchorX returns the horizontal anchor for the given alignment,
// independent of any band state.
func (f *LayoutFrame) AnchorX(halign HAlign) float64 {
	switch halign {
	case AlignRight:
		return f.Width - layoutInsetRight
	case AlignHCenter:
		return f.Width / 2
	}
	return layoutInsetLeft
}

// PlacedLine is one line of a stacked block with its shift off the
// centered anchor.
type PlacedLine struct {
	Text  string
	Shift float64
}

// StackLines distributes n lines symmetrically around the body band's
// center: line i (1-based) gets shift -n/2 - 0.5 + i, so a single line
// lands exactly on the anchor.
func StackLines(lines []string) []PlacedLine {
	n := float64(len(lines))
	placed := make([]PlacedLine, 0, len(lines))
	for i, line := range lines {
		placed = append(placed, PlacedLine{
			Text:  line,
			Shift: -n/2 - 0.5 + float64(i+1),
		})
	}
	return placed
}
