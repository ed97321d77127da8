package services

import (
	"context"
	"errors"
	"fmt"
	"rankwatch/internal/backup"
	"rankwatch/internal/chart"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
	"time"
)

const (
	flagDateLayout   = "2006-01-02"
	uploadTimeLayout = "2006-01-02 15:04:05"
)

// ChartReport describes what a chart run produced.
type ChartReport struct {
	Fresh      int
	Plotted    int
	ChartPath  string
	BackupPath string
	Uploaded   bool
}

type ChartServiceInterface interface {
	Run(ctx context.Context, flags structures.ChartFlags) (*ChartReport, error)
}

type ChartService struct {
	conf     *structures.Config
	history  HistoryServiceInterface
	backups  backup.BackupStoreInterface
	renderer chart.Factory
	notifier NotifierServiceInterface
	logger   providers.Logger
	now      func() time.Time
}

func NewChartService(conf *structures.Config, history HistoryServiceInterface, backups backup.BackupStoreInterface, renderer chart.Factory, notifier NotifierServiceInterface, logger providers.Logger) ChartServiceInterface {
	return &ChartService{
		conf:     conf,
		history:  history,
		backups:  backups,
		renderer: renderer,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// ParseFlagDate reads a YYYY-MM-DD flag as local midnight. Empty means unbounded.
func ParseFlagDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(flagDateLayout, value, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", value, err)
	}
	return &t, nil
}

// ChartOptions maps CLI flags onto renderer options.
func ChartOptions(flags structures.ChartFlags) chart.Options {
	kind := chart.KindImage
	if flags.Video {
		kind = chart.KindAnimation
	}
	return chart.Options{
		Inverted:        flags.Inverted,
		Detailed:        flags.Detailed,
		Zoomed:          flags.ZoomedIn,
		Kind:            kind,
		DurationSeconds: flags.Duration,
		Start:           flags.StartDate,
		End:             flags.EndDate,
	}
}

func (cs *ChartService) Run(ctx context.Context, flags structures.ChartFlags) (*ChartReport, error) {
	start, err := ParseFlagDate(flags.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseFlagDate(flags.EndDate)
	if err != nil {
		return nil, err
	}

	report := &ChartReport{}

	var existing models.RankSeries
	query := HistoryQuery{Start: start, End: end}
	if flags.Backup {
		// the snapshot must hold everything, so the walk ignores the plot range
		query = HistoryQuery{}
		if !flags.ForceFetch {
			existing, query.ResumeAfter = cs.resumePoint()
		}
	}

	fresh, err := cs.history.Collect(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("collecting history: %w", err)
	}
	report.Fresh = len(fresh)

	all := fresh
	if flags.Backup {
		report.BackupPath, err = cs.backups.Append(existing, fresh)
		if err != nil {
			return nil, fmt.Errorf("writing backup: %w", err)
		}
		all = append(append(models.RankSeries{}, existing...), fresh...)
	}

	series := all.Between(start, end)
	series.Sort()
	if len(series) == 0 {
		return report, models.ErrNoData
	}
	report.Plotted = len(series)

	opts := ChartOptions(flags)
	report.ChartPath, err = cs.renderer(opts).Render(series)
	if err != nil {
		return report, fmt.Errorf("rendering %s: %w", opts.Kind, err)
	}

	if !flags.Send {
		return report, nil
	}

	paths := []string{report.ChartPath}
	if report.BackupPath != "" {
		paths = append(paths, report.BackupPath)
	}
	if err := cs.notifier.Upload(ctx, cs.uploadMessage(opts.Kind, flags.Notify), flags.Pin, paths...); err != nil {
		return report, err
	}
	report.Uploaded = true
	return report, nil
}

// resumePoint loads the newest backup. Any failure falls back to a full walk.
func (cs *ChartService) resumePoint() (models.RankSeries, *time.Time) {
	path, ok, err := cs.backups.Latest()
	if err != nil {
		cs.logger.Warnf(providers.TypeBackup, "Cannot list backups, fetching full history: %s", err)
		return nil, nil
	}
	if !ok {
		cs.logger.Infof(providers.TypeBackup, "No backup found, fetching full history")
		return nil, nil
	}

	existing, err := cs.backups.Load(path)
	if err != nil {
		cs.logger.Warnf(providers.TypeBackup, "Cannot read backup %s, fetching full history: %s", path, err)
		return nil, nil
	}
	last, ok := existing.Last()
	if !ok {
		cs.logger.Warnf(providers.TypeBackup, "Backup %s is empty, fetching full history", path)
		return nil, nil
	}

	cs.logger.Infof(providers.TypeBackup, "Resuming after %s from %s (%d samples)", last.Timestamp.Format(uploadTimeLayout), path, len(existing))
	ts := last.Timestamp
	return existing, &ts
}

func (cs *ChartService) uploadMessage(kind chart.Kind, mention bool) string {
	what := "plot"
	if kind == chart.KindAnimation {
		what = "animation"
	}
	msg := fmt.Sprintf("Rank evolution %s generated on %s", what, cs.now().Format(uploadTimeLayout))
	if mention && cs.conf.Discord.Mention != "" {
		msg = cs.conf.Discord.Mention + " " + msg
	}
	return msg
}

// IsNoData reports whether err means there was nothing to plot.
func IsNoData(err error) bool {
	return errors.Is(err, models.ErrNoData)
}
