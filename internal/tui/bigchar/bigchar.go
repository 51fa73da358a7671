// Package bigchar renders character previews as half-block art.
package bigchar

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/f3rmion/symbols/internal/charset"
)

const (
	faceSize    = 64
	padding     = 4
	threshold   = 40
	memoTTL     = 30 * time.Minute
	memoCleanup = 10 * time.Minute
)

// SystemFontPaths lists fonts with broad symbol coverage, most preferred first.
var SystemFontPaths = []string{
	// macOS
	"/System/Library/Fonts/Apple Symbols.ttf",
	"/Library/Fonts/Arial Unicode.ttf",
	"/System/Library/Fonts/Supplemental/Arial Unicode.ttf",
	// Linux
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/ancient-scripts/Symbola_hint.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansSymbols2-Regular.ttf",
	"/usr/share/fonts/truetype/noto/NotoSansSymbols2-Regular.ttf",
	// Windows
	"C:\\Windows\\Fonts\\seguisym.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// LoadFace parses the first usable font among paths.
func LoadFace(paths []string) (font.Face, error) {
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if face, err := ParseFace(data); err == nil {
			return face, nil
		}
	}
	return nil, fmt.Errorf("no usable font among %d candidates", len(paths))
}

// ParseFace builds a face from a font file or the first font of a collection.
func ParseFace(data []byte) (font.Face, error) {
	opts := &opentype.FaceOptions{Size: faceSize, DPI: 72}

	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		if fnt, err := coll.Font(0); err == nil {
			return opentype.NewFace(fnt, opts)
		}
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	return opentype.NewFace(fnt, opts)
}

// Renderer draws previews with one font face and memoizes the results by
// entry id and size. Entries themselves are never modified.
type Renderer struct {
	face font.Face
	memo *gocache.Cache
}

// NewRenderer creates a renderer. A nil face yields a renderer whose
// previews are always empty.
func NewRenderer(face font.Face) *Renderer {
	return &Renderer{
		face: face,
		memo: gocache.New(memoTTL, memoCleanup),
	}
}

// Available reports whether a font face was loaded.
func (r *Renderer) Available() bool {
	return r != nil && r.face != nil
}

// Preview returns the memoized block rendering of entry at cols x rows cells.
func (r *Renderer) Preview(entry charset.Entry, cols, rows int) string {
	if !r.Available() || cols <= 0 || rows <= 0 {
		return ""
	}
	key := fmt.Sprintf("%s@%dx%d", entry.ID, cols, rows)
	if cached, ok := r.memo.Get(key); ok {
		return cached.(string)
	}
	rendered := r.Render(entry.Text(), cols, rows)
	r.memo.SetDefault(key, rendered)
	return rendered
}

// Memoized returns how many previews are held.
func (r *Renderer) Memoized() int {
	if r == nil {
		return 0
	}
	return r.memo.ItemCount()
}

// Forget drops every memoized preview.
func (r *Renderer) Forget() {
	if r == nil {
		return
	}
	r.memo.Flush()
}

// Render draws text (which may be several code points) into cols x rows
// terminal cells using ▀ ▄ █.
func (r *Renderer) Render(text string, cols, rows int) string {
	if text == "" || !r.Available() {
		return ""
	}

	bounds, _ := font.BoundString(r.face, text)
	glyphW := (bounds.Max.X - bounds.Min.X).Ceil()
	glyphH := (bounds.Max.Y - bounds.Min.Y).Ceil()

	srcW := max(glyphW+padding*2, faceSize)
	srcH := max(glyphH+padding*2, faceSize)

	src := image.NewGray(image.Rect(0, 0, srcW, srcH))
	draw.Draw(src, src.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  src,
		Src:  image.White,
		Face: r.face,
		Dot: fixed.Point26_6{
			X: fixed.I((srcW-glyphW)/2) - bounds.Min.X,
			Y: fixed.I(srcH-padding) - bounds.Max.Y,
		},
	}
	d.DrawString(text)

	// Two vertical pixels per cell.
	return halfBlocks(downsample(src, cols, rows*2), cols, rows)
}

// downsample shrinks src to w x h by averaging each covered area.
func downsample(src *image.Gray, w, h int) *image.Gray {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	xr := float64(sw) / float64(w)
	yr := float64(sh) / float64(h)

	for y := 0; y < h; y++ {
		y0, y1 := int(float64(y)*yr), min(int(float64(y+1)*yr), sh)
		for x := 0; x < w; x++ {
			x0, x1 := int(float64(x)*xr), min(int(float64(x+1)*xr), sw)
			sum, n := 0, 0
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					n++
				}
			}
			if n > 0 {
				dst.SetGray(x, y, color.Gray{Y: uint8(sum / n)})
			}
		}
	}
	return dst
}

func halfBlocks(img *image.Gray, cols, rows int) string {
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := lit(img, col, row*2)
			bottom := lit(img, col, row*2+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func lit(img *image.Gray, x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return false
	}
	return img.GrayAt(x, y).Y > threshold
}
