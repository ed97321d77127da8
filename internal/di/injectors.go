//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"rankwatch/internal"
	"rankwatch/internal/backup"
	"rankwatch/internal/chart"
	"rankwatch/internal/controllers"
	"rankwatch/internal/providers"
	"rankwatch/internal/scheduler"
	"rankwatch/internal/services"
	"rankwatch/internal/structures"
)

var baseSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
)

var notifySet = wire.NewSet(
	providers.NewChatProvider,
	providers.NewWebhookProvider,
	services.NewNotifierService,
)

var rankSet = wire.NewSet(
	providers.NewInstrumentedCacheProvider,
	providers.NewLeaderboardProvider,
	services.NewRankFetcher,
	services.NewMessageComposer,
	services.NewRankUpdateService,
)

var backupSet = wire.NewSet(
	backup.NewZstdCompressor,
	backup.NewBackupStore,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		baseSet,
		notifySet,
		rankSet,
		backupSet,

		scheduler.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitChartTool(cfg *structures.CliFlags) (*internal.ChartTool, error) {

	wire.Build(
		baseSet,
		notifySet,
		backupSet,

		services.NewHistoryService,
		chart.NewFactory,
		services.NewChartService,
		internal.NewChartTool,
	)

	return nil, nil
}

func InitLambda(cfg *structures.CliFlags) (*internal.LambdaHandler, error) {

	wire.Build(
		baseSet,
		notifySet,
		rankSet,

		internal.NewLambdaHandler,
	)

	return nil, nil
}
