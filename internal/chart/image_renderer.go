package chart

import (
	"fmt"
	"os"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
)

const imageTitle = "Rank Evolution Over Time"

// ImageRenderer draws the whole series into one PNG.
type ImageRenderer struct {
	opts   Options
	dir    string
	width  int
	height int
	logger providers.Logger
}

func (ir *ImageRenderer) Kind() Kind { return KindImage }

func (ir *ImageRenderer) Render(series models.RankSeries) (string, error) {
	if len(series) == 0 {
		return "", models.ErrNoData
	}
	sorted := series.Sorted()

	f := ir.frame(sorted)
	data, err := f.renderPNG()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(ir.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating image dir: %w", err)
	}
	path := OutputPath(ir.dir, ir.opts, "png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing image: %w", err)
	}

	ir.logger.Infof(providers.TypeChart, "Plot of %d samples saved to %s", len(sorted), path)
	return path, nil
}

func (ir *ImageRenderer) frame(sorted models.RankSeries) frame {
	xMin, xMax := xBounds(sorted)
	yMin, yMax := YBounds(sorted, ir.opts.Zoomed)

	markers := edgeMarkers(sorted, axisDateLayout, edgeColor)
	if ir.opts.Detailed {
		markers = append(markers, extremaMarkers(models.BucketExtrema(sorted, models.GranularityMonth), 2)...)
	}

	return frame{
		title:   imageTitle,
		width:   ir.width,
		height:  ir.height,
		visible: sorted,
		xMin:    xMin,
		xMax:    xMax,
		yMin:    yMin,
		yMax:    yMax,
		invert:  ir.opts.Inverted,
		markers: markers,
	}
}
