package internal

import (
	"context"
	"rankwatch/internal/backup"
	"rankwatch/internal/providers"
	"rankwatch/internal/services"
	"rankwatch/internal/structures"
)

// ChartTool runs one chart generation for the CLI.
type ChartTool struct {
	service services.ChartServiceInterface
	backups backup.BackupStoreInterface
	logger  providers.Logger
}

func NewChartTool(service services.ChartServiceInterface, backups backup.BackupStoreInterface, logger providers.Logger) *ChartTool {
	return &ChartTool{
		service: service,
		backups: backups,
		logger:  logger,
	}
}

// Run reports an empty selection as a warning, not a failure.
func (ct *ChartTool) Run(ctx context.Context, flags structures.ChartFlags) error {
	report, err := ct.service.Run(ctx, flags)
	if services.IsNoData(err) {
		ct.logger.Warnf(providers.TypeChart, "No rank samples in the selected range, nothing to plot")
		return nil
	}
	if err != nil {
		return err
	}

	ct.logger.Infof(providers.TypeChart, "Plotted %d samples (%d fetched) to %s", report.Plotted, report.Fresh, report.ChartPath)
	if report.BackupPath != "" {
		ct.logger.Infof(providers.TypeChart, "Backup at %s", report.BackupPath)
	}
	if report.Uploaded {
		ct.logger.Infof(providers.TypeChart, "Uploaded to the history channel")
	}
	return nil
}

func (ct *ChartTool) Close() {
	ct.backups.Close()
	ct.logger.Close()
}
