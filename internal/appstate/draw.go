package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"golang.org/x/exp/shiny/screen"

	"github.com/example/croptag/internal/geometry"
	"github.com/example/croptag/internal/theme"
)

const (
	statusHeight  = 24
	captionHeight = 24
	handleSize    = 12
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 24, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// fitScale returns the zoom that fits an image of the given size into the
// content area between the status and caption bars. Images smaller than the
// area are shown at their natural size.
func fitScale(imgW, imgH, winW, winH int) float64 {
	availW := winW
	availH := winH - statusHeight - captionHeight
	if imgW <= 0 || imgH <= 0 || availW <= 0 || availH <= 0 {
		return 1
	}
	zx := float64(availW) / float64(imgW)
	zy := float64(availH) / float64(imgH)
	z := zx
	if zy < z {
		z = zy
	}
	if z > 1 {
		z = 1
	}
	return z
}

// imageRect returns the destination rectangle for drawing the image, centred
// within the content area between the two bars.
func imageRect(imgW, imgH, winW, winH int, scale float64) image.Rectangle {
	w := int(float64(imgW) * scale)
	h := int(float64(imgH) * scale)
	availH := winH - statusHeight - captionHeight
	x0 := (winW - w) / 2
	y0 := statusHeight + (availH-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// backdropCache holds a cached checkerboard backdrop.
var backdropCache *image.RGBA

func drawBackdrop(dst *image.RGBA, th *theme.Theme) {
	b := dst.Bounds()
	if backdropCache == nil || backdropCache.Bounds() != b {
		backdropCache = image.NewRGBA(b)
		drawCheckerboard(backdropCache, backdropCache.Bounds(), 8, th.CheckerLight, th.CheckerDark)
	}
	draw.Draw(dst, b, backdropCache, image.Point{}, draw.Src)
}

func drawHLine(img *image.RGBA, x0, x1, y int, col color.Color) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		img.Set(x, y, col)
	}
}

func drawVLine(img *image.RGBA, x, y0, y1 int, col color.Color) {
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		img.Set(x, y, col)
	}
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	drawHLine(img, rect.Min.X, rect.Max.X-1, rect.Min.Y, col)
	drawHLine(img, rect.Min.X, rect.Max.X-1, rect.Max.Y-1, col)
	drawVLine(img, rect.Min.X, rect.Min.Y, rect.Max.Y-1, col)
	drawVLine(img, rect.Max.X-1, rect.Min.Y, rect.Max.Y-1, col)
}

func drawDashedLine(img *image.RGBA, x0, y0, x1, y1, dash, thickness int, c1, c2 color.Color) {
	horiz := y0 == y1
	length := x1 - x0
	if !horiz {
		length = y1 - y0
	}
	if length < 0 {
		length = -length
	}
	for i := 0; i <= length; i += dash * 2 {
		for j := 0; j < dash && i+j <= length; j++ {
			col := c1
			if horiz {
				for t := 0; t < thickness; t++ {
					if x0 < x1 {
						img.Set(x0+i+j, y0+t, col)
					} else {
						img.Set(x0-i-j, y0+t, col)
					}
				}
			} else {
				for t := 0; t < thickness; t++ {
					if y0 < y1 {
						img.Set(x0+t, y0+i+j, col)
					} else {
						img.Set(x0+t, y0-i-j, col)
					}
				}
			}
		}
		for j := 0; j < dash && i+dash+j <= length; j++ {
			col := c2
			if horiz {
				for t := 0; t < thickness; t++ {
					if x0 < x1 {
						img.Set(x0+i+dash+j, y0+t, col)
					} else {
						img.Set(x0-i-dash-j, y0+t, col)
					}
				}
			} else {
				for t := 0; t < thickness; t++ {
					if y0 < y1 {
						img.Set(x0+t, y0+i+dash+j, col)
					} else {
						img.Set(x0+t, y0-i-dash-j, col)
					}
				}
			}
		}
	}
}

func drawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thickness int, c1, c2 color.Color) {
	drawDashedLine(img, rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Min.Y, rect.Max.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Max.X, rect.Max.Y, rect.Min.X, rect.Max.Y, dash, thickness, c1, c2)
	drawDashedLine(img, rect.Min.X, rect.Max.Y, rect.Min.X, rect.Min.Y, dash, thickness, c1, c2)
}

// cropHandleRects returns the four corner handle rectangles for a crop
// rectangle in display coordinates, ordered top-left, top-right,
// bottom-right, bottom-left.
func cropHandleRects(rect image.Rectangle) []image.Rectangle {
	hs := handleSize / 2
	return []image.Rectangle{
		image.Rect(rect.Min.X-hs, rect.Min.Y-hs, rect.Min.X+hs, rect.Min.Y+hs),
		image.Rect(rect.Max.X-hs, rect.Min.Y-hs, rect.Max.X+hs, rect.Min.Y+hs),
		image.Rect(rect.Max.X-hs, rect.Max.Y-hs, rect.Max.X+hs, rect.Max.Y+hs),
		image.Rect(rect.Min.X-hs, rect.Max.Y-hs, rect.Min.X+hs, rect.Max.Y+hs),
	}
}

// displayRect converts a crop box from image coordinates to display
// coordinates relative to the image's destination rectangle.
func displayRect(box geometry.Box, dst image.Rectangle, scale float64) image.Rectangle {
	return image.Rect(
		dst.Min.X+int(float64(box.X0)*scale),
		dst.Min.Y+int(float64(box.Y0)*scale),
		dst.Min.X+int(float64(box.X1)*scale),
		dst.Min.Y+int(float64(box.Y1)*scale),
	)
}

type paintState struct {
	width, height  int
	img            *image.RGBA
	scale          float64
	box            geometry.Box
	statusLine     string
	captionText    string
	captionEditing bool
	message        string
	messageUntil   time.Time
	theme          *theme.Theme
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	drawBackdrop(b.RGBA(), st.theme)
	if ctx.Err() != nil {
		return
	}

	ib := st.img.Bounds()
	dst := imageRect(ib.Dx(), ib.Dy(), st.width, st.height, st.scale)
	xdraw.NearestNeighbor.Scale(b.RGBA(), dst, st.img, ib, draw.Over, nil)
	if ctx.Err() != nil {
		return
	}

	sel := displayRect(st.box, dst, st.scale)
	drawDashedRect(b.RGBA(), sel, 4, 2, st.theme.Outline, st.theme.OutlineAccent)
	for _, hr := range cropHandleRects(sel) {
		if ctx.Err() != nil {
			return
		}
		draw.Draw(b.RGBA(), hr, &image.Uniform{st.theme.HandleFill}, image.Point{}, draw.Src)
		drawRect(b.RGBA(), hr, st.theme.HandleBorder)
	}

	if ctx.Err() != nil {
		return
	}

	drawStatusBar(b.RGBA(), st.width, st.statusLine, st.theme)
	drawCaptionBar(b.RGBA(), st.width, st.height, st.captionText, st.captionEditing, st.theme)

	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: b.RGBA(), Src: image.Black, Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(b.RGBA(), rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
		drawRect(b.RGBA(), rect, color.Black)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawStatusBar(dst *image.RGBA, width int, line string, th *theme.Theme) {
	draw.Draw(dst, image.Rect(0, 0, width, statusHeight),
		&image.Uniform{th.BarBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.BarText), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString(line)
}

func drawCaptionBar(dst *image.RGBA, width, height int, text string, editing bool, th *theme.Theme) {
	rect := image.Rect(0, height-captionHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{th.BarBackground}, image.Point{}, draw.Src)
	if editing {
		text += "|"
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.BarText), Face: basicfont.Face7x13,
		Dot: fixed.P(4, height-captionHeight+16)}
	d.DrawString(text)
}
