package controllers

import (
	"errors"
	"net/http"
	"rankwatch/internal/backup"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/scheduler/interfaces"
	"rankwatch/internal/services"
	"rankwatch/internal/structures"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const rankCacheKey = "api:rank"

type rankResponse struct {
	Rank        int    `json:"rank"`
	ChannelName string `json:"channel_name"`
	FetchedAt   string `json:"fetched_at"`
}

type runResponse struct {
	*services.UpdateReport
	Failed []string `json:"failed"`
}

type backupResponse struct {
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
	Rank      int    `json:"rank"`
}

type ApiController struct {
	logger    providers.Logger
	fetcher   services.RankFetcherInterface
	scheduler interfaces.SchedulerInterface
	backups   backup.BackupStoreInterface
	cache     providers.CacheProviderInterface
	prefix    string
}

func NewApiController(logger providers.Logger, fetcher services.RankFetcherInterface, scheduler interfaces.SchedulerInterface, backups backup.BackupStoreInterface, cache providers.CacheProviderInterface, conf *structures.Config) *ApiController {
	return &ApiController{
		logger:    logger,
		fetcher:   fetcher,
		scheduler: scheduler,
		backups:   backups,
		cache:     cache,
		prefix:    conf.Channel.Prefix,
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *ApiController) writeResult(w http.ResponseWriter, status int, result any) {
	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

// GetRank serves the current rank. ?fresh=1 bypasses both caches.
func (ac *ApiController) GetRank(w http.ResponseWriter, r *http.Request) {
	if cast.ToBool(r.URL.Query().Get("fresh")) {
		ac.fetcher.Refresh()
		ac.cache.Delete(rankCacheKey)
	}

	if data, ok := ac.cache.Get(rankCacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	rank, err := ac.fetcher.CurrentRank(r.Context())
	if errors.Is(err, models.ErrRankNotFound) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Rank lookup failed: %s", err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	gson, err := json.Marshal(rankResponse{
		Rank:        rank,
		ChannelName: models.FormatChannelName(ac.prefix, rank, models.TrendNone),
		FetchedAt:   time.Now().Format(time.RFC3339),
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	ac.cache.Set(rankCacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

// Run triggers an update immediately with a fresh leaderboard.
func (ac *ApiController) Run(w http.ResponseWriter, r *http.Request) {
	ac.fetcher.Refresh()
	ac.cache.Delete(rankCacheKey)

	report, err := ac.scheduler.Trigger(r.Context())
	if err != nil {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	if report == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	failed := report.Failed()
	if failed == nil {
		failed = []string{}
	}
	ac.writeResult(w, http.StatusOK, runResponse{UpdateReport: report, Failed: failed})
}

// GetBackup describes the newest backup file and its last sample.
func (ac *ApiController) GetBackup(w http.ResponseWriter, _ *http.Request) {
	path, ok, err := ac.backups.Latest()
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Listing backups failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	last, err := ac.backups.LastSample(path)
	if errors.Is(err, models.ErrNoData) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "Reading backup failed: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.writeResult(w, http.StatusOK, backupResponse{
		Path:      path,
		Timestamp: last.Timestamp.Format(time.RFC3339),
		Rank:      last.Rank,
	})
}
