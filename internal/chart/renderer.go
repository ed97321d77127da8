package chart

import (
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
)

// Renderer turns an ascending series into a file and returns its path.
type Renderer interface {
	Render(series models.RankSeries) (string, error)
	Kind() Kind
}

// NewRenderer picks the strategy once, from opts.Kind.
func NewRenderer(opts Options, conf *structures.Config, logger providers.Logger) Renderer {
	if opts.Kind == KindAnimation {
		return &AnimationRenderer{
			opts:   opts,
			dir:    conf.Chart.VideoDir,
			width:  conf.Chart.AnimationWidth,
			height: conf.Chart.AnimationHeight,
			logger: logger,
		}
	}
	return &ImageRenderer{
		opts:   opts,
		dir:    conf.Chart.ImageDir,
		width:  conf.Chart.Width,
		height: conf.Chart.Height,
		logger: logger,
	}
}

// Factory builds a Renderer for one run's options.
type Factory func(opts Options) Renderer

func NewFactory(conf *structures.Config, logger providers.Logger) Factory {
	return func(opts Options) Renderer {
		return NewRenderer(opts, conf, logger)
	}
}
