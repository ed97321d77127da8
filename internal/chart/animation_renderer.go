package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"math"
	"os"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	frameTitleLayout = "02 January 2006, 15:04"
	edgeLabelLayout  = "02 January 2006"
)

var animationEdgeColor = drawing.ColorBlue

// AnimationRenderer reveals the series one sample per frame into an animated GIF.
type AnimationRenderer struct {
	opts   Options
	dir    string
	width  int
	height int
	logger providers.Logger
}

func (ar *AnimationRenderer) Kind() Kind { return KindAnimation }

// FrameDelay spreads duration seconds over frames, in the 1/100 s units GIF uses.
func FrameDelay(frames, durationSeconds int) int {
	if frames <= 0 {
		return 0
	}
	return max(1, int(math.Round(float64(100*durationSeconds)/float64(frames))))
}

func (ar *AnimationRenderer) Render(series models.RankSeries) (string, error) {
	if len(series) == 0 {
		return "", models.ErrNoData
	}
	sorted := series.Sorted()
	frames := ar.frames(sorted)
	delay := FrameDelay(len(frames), ar.opts.duration())

	anim := &gif.GIF{LoopCount: -1}
	var prev *image.Paletted
	for i, f := range frames {
		data, err := f.renderPNG()
		if err != nil {
			return "", fmt.Errorf("frame %d: %w", i+1, err)
		}
		cur, err := toPaletted(data)
		if err != nil {
			return "", fmt.Errorf("frame %d: %w", i+1, err)
		}

		img := cur
		if prev != nil {
			img = cropDelta(prev, cur)
		}
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
		prev = cur

		if (i+1)%100 == 0 {
			ar.logger.Debugf(providers.TypeChart, "Rendered %d/%d frames", i+1, len(frames))
		}
	}

	if err := os.MkdirAll(ar.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating video dir: %w", err)
	}
	path := OutputPath(ar.dir, ar.opts, "gif")
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating animation: %w", err)
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return "", fmt.Errorf("encoding animation: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	ar.logger.Infof(providers.TypeChart, "Animation of %d frames (%d/100 s each) saved to %s", len(frames), delay, path)
	return path, nil
}

// frames builds one frame per sample on a fixed canvas. Extremes show up once the
// timeline has reached them.
func (ar *AnimationRenderer) frames(sorted models.RankSeries) []frame {
	xMin, xMax := xBounds(sorted)
	yMin, yMax := YBounds(sorted, ar.opts.Zoomed)
	edges := edgeMarkers(sorted, edgeLabelLayout, animationEdgeColor)

	var extrema []marker
	if ar.opts.Detailed {
		g := models.GranularityForSpan(sorted.Span())
		extrema = extremaMarkers(models.BucketExtrema(sorted, g), 1)
	}

	out := make([]frame, len(sorted))
	for i, current := range sorted {
		var markers []marker
		for _, m := range edges {
			if !m.sample.Timestamp.After(current.Timestamp) {
				markers = append(markers, m)
			}
		}
		for _, m := range extrema {
			if !m.sample.Timestamp.After(current.Timestamp) {
				markers = append(markers, m)
			}
		}

		out[i] = frame{
			title:   fmt.Sprintf("%s, Rank: %d", current.Timestamp.Format(frameTitleLayout), current.Rank),
			width:   ar.width,
			height:  ar.height,
			visible: sorted[:i+1],
			xMin:    xMin,
			xMax:    xMax,
			yMin:    yMin,
			yMax:    yMax,
			invert:  ar.opts.Inverted,
			markers: markers,
		}
	}
	return out
}

func toPaletted(data []byte) (*image.Paletted, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding frame: %w", err)
	}
	b := src.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst, nil
}

// cropDelta returns a copy of the smallest rectangle of cur that differs from prev.
// With DisposalNone the decoder keeps the rest of the previous frame on screen.
func cropDelta(prev, cur *image.Paletted) *image.Paletted {
	b := cur.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X-1, b.Min.Y-1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if cur.ColorIndexAt(x, y) != prev.ColorIndexAt(x, y) {
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
			}
		}
	}

	rect := image.Rect(minX, minY, maxX+1, maxY+1)
	if maxX < minX {
		rect = image.Rect(b.Min.X, b.Min.Y, b.Min.X+1, b.Min.Y+1)
	}
	out := image.NewPaletted(rect, cur.Palette)
	draw.Draw(out, rect, cur, rect.Min, draw.Src)
	return out
}
