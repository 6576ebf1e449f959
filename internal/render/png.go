package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"

	"countrypulse/internal/domain"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	imageWidth  = 1200
	imageHeight = 630
)

var ink = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}

// PNGRenderer draws the refresh summary onto a fixed-size white canvas:
// title, total, refresh timestamp and the numbered top-5 list.
type PNGRenderer struct{}

func NewPNGRenderer() *PNGRenderer { return &PNGRenderer{} }

func (*PNGRenderer) Render(total int64, top []domain.Country, refreshedAt string) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, imageWidth, imageHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawText(img, 40, 70, "Countries Summary")
	drawText(img, 40, 120, fmt.Sprintf("Total countries: %d", total))
	drawText(img, 40, 160, "Last refresh: "+refreshedAt)
	drawText(img, 40, 210, "Top 5 by estimated GDP:")

	y := 250
	for i, c := range top {
		var gdp float64
		if c.EstimatedGDP != nil {
			gdp = *c.EstimatedGDP
		}
		line := fmt.Sprintf("%d. %s - %s", i+1, c.Name, strconv.FormatFloat(gdp, 'f', 2, 64))
		drawText(img, 60, y, line)
		y += 34
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode summary image: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ink),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
