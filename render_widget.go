package main

import (
	"image"
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
)

// parseColor converts a hex color string to color.Color.
func parseColor(hexColor string) color.Color {
	if hexColor == "" {
		return color.RGBA{255, 255, 255, 255}
	}

	if hexColor[0] == '#' {
		hexColor = hexColor[1:]
	}

	if len(hexColor) != 6 {
		return color.RGBA{255, 255, 255, 255}
	}

	r, _ := strconv.ParseUint(hexColor[0:2], 16, 8)
	g, _ := strconv.ParseUint(hexColor[2:4], 16, 8)
	b, _ := strconv.ParseUint(hexColor[4:6], 16, 8)

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// WidgetRenderer rasterizes a DisplaySnapshot. The widget core decides
// what to show and the LayoutFrame decides where; this glue only fills
// rectangles and draws strings.
type WidgetRenderer struct {
	fonts *FontCache
	frame LayoutFrame
}

func NewWidgetRenderer(fonts *FontCache) *WidgetRenderer {
	return &WidgetRenderer{fonts: fonts}
}

func (r *WidgetRenderer) Render(snap DisplaySnapshot, cfg *WidgetConfig, width, height int) image.Image {
	dc := gg.NewContext(width, height)
	r.frame.BeginFrame(float64(width), float64(height))

	bodySize := FontSizeForIndex(cfg.FontSizeIndex)
	bandSize := FontSizeForIndex(cfg.FontSizeIndex - 1)

	// Canvas background is the state background.
	if snap.Bg != "" {
		dc.SetColor(parseColor(snap.Bg))
	} else {
		dc.SetColor(color.Black)
	}
	dc.Clear()

	bandFace := r.fonts.GetFont(bandSize)
	dc.SetFontFace(bandFace)
	bandLineH := dc.FontHeight()

	// Reserve both bands before any body positioning.
	if snap.ShowTitle {
		r.frame.ReserveTitle(BandHeight(bandLineH, layoutPadAbove, layoutPadBelow))
	}
	if snap.Footer != "" {
		r.frame.ReserveFooter(BandHeight(bandLineH, layoutPadAbove, layoutPadBelow))
	}

	if snap.ShowTitle {
		if snap.TitleBg != "" {
			dc.SetColor(parseColor(snap.TitleBg))
			dc.DrawRectangle(0, 0, r.frame.Width, r.frame.TitleHeight())
			dc.Fill()
		}
		dc.SetColor(parseColor(snap.TitleFg))
		dc.DrawStringAnchored(snap.Title, r.frame.AnchorX(AlignHCenter), layoutInsetTop+layoutPadAbove, 0.5, 0)
	}

	if snap.Footer != "" {
		dc.SetColor(parseColor(snap.Fg))
		y := r.frame.Height - layoutInsetBottom - layoutPadBelow - bandLineH
		dc.DrawStringAnchored(snap.Footer, r.frame.AnchorX(AlignHCenter), y, 0.5, 0)
	}

	bodyFace := r.fonts.GetFont(bodySize)
	dc.SetFontFace(bodyFace)
	bodyLineH := dc.FontHeight()
	dc.SetColor(parseColor(snap.Fg))

	for _, line := range StackLines(snap.Lines) {
		y := r.frame.PositionLine(AlignCenter, bodyLineH, line.Shift)
		dc.DrawStringAnchored(line.Text, r.frame.AnchorX(AlignHCenter), y, 0.5, 0)
	}

	return dc.Image()
}
