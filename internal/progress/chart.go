package progress

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Bar is one labelled value on a progress chart.
type Bar struct {
	Label string
	Value float64
}

// Rasterizer turns a titled bar series into an encoded image.
type Rasterizer interface {
	Render(title string, bars []Bar) ([]byte, error)
}

const (
	chartWidth  = 800
	chartHeight = 500
	marginLeft  = 80
	marginRight = 30
	marginTop   = 60
	marginBot   = 70
	yMax        = 100.0
)

var (
	skyBlue   = color.RGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xFF}
	axisColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF}
	gridColor = color.RGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
)

// PNGRasterizer draws bar charts with gg using the bundled Go Regular font.
type PNGRasterizer struct {
	face      font.Face
	titleFace font.Face
}

// NewPNGRasterizer parses the embedded font at the given point size.
func NewPNGRasterizer(fontSize float64) (*PNGRasterizer, error) {
	if fontSize <= 0 {
		fontSize = 14
	}
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return &PNGRasterizer{
		face:      truetype.NewFace(parsed, &truetype.Options{Size: fontSize, DPI: 72, Hinting: font.HintingNone}),
		titleFace: truetype.NewFace(parsed, &truetype.Options{Size: fontSize * 1.3, DPI: 72, Hinting: font.HintingNone}),
	}, nil
}

func (r *PNGRasterizer) Render(title string, bars []Bar) ([]byte, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if r == nil || r.face == nil {
		return nil, errors.New("rasterizer not initialized")
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(color.White)
	dc.Clear()

	plotW := float64(chartWidth - marginLeft - marginRight)
	plotH := float64(chartHeight - marginTop - marginBot)
	x0, y0 := float64(marginLeft), float64(chartHeight-marginBot)

	// Grid and y tick labels.
	dc.SetFontFace(r.face)
	dc.SetLineWidth(1)
	for tick := 0.0; tick <= yMax; tick += 20 {
		y := y0 - plotH*tick/yMax
		dc.SetColor(gridColor)
		dc.DrawLine(x0, y, x0+plotW, y)
		dc.Stroke()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(fmt.Sprintf("%.0f", tick), x0-8, y, 1, 0.5)
	}

	slot := plotW / float64(len(bars))
	barW := slot * 0.8
	for i, bar := range bars {
		h := plotH * clamp(bar.Value, 0, yMax) / yMax
		x := x0 + slot*float64(i) + (slot-barW)/2
		dc.SetColor(skyBlue)
		dc.DrawRectangle(x, y0-h, barW, h)
		dc.Fill()
		dc.SetColor(axisColor)
		dc.DrawStringAnchored(bar.Label, x+barW/2, y0+14, 0.5, 0.5)
	}

	dc.SetColor(axisColor)
	dc.SetLineWidth(1.5)
	dc.DrawLine(x0, y0, x0+plotW, y0)
	dc.DrawLine(x0, y0, x0, y0-plotH)
	dc.Stroke()

	dc.Push()
	dc.RotateAbout(gg.Radians(-90), 24, y0-plotH/2)
	dc.DrawStringAnchored("Completion %", 24, y0-plotH/2, 0.5, 0.5)
	dc.Pop()

	dc.SetFontFace(r.titleFace)
	dc.DrawStringAnchored(title, float64(chartWidth)/2, float64(marginTop)/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
