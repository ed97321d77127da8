package testutil

import (
	"context"
	"fmt"
	"net/http"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"strings"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (e LogEntry) Message() string {
	return fmt.Sprintf(e.Format, e.Args...)
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Contains reports whether any formatted entry at level contains substr.
func (m *MockLogger) Contains(level, substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Logs {
		if e.Level == level && strings.Contains(e.Message(), substr) {
			return true
		}
	}
	return false
}

// MockCompressor passes data through unless a func override is set.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	return val, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	Requests      int
	CacheHits     int
	CacheMisses   int
	Notifications map[string][]int
	Rank          int
	HistoryPages  int
	BackupWrites  int
	Fetches       int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncNotifications(target string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Notifications == nil {
		m.Notifications = make(map[string][]int)
	}
	m.Notifications[target] = append(m.Notifications[target], status)
}
func (m *MockMetrics) ObserveLeaderboardDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches++
}
func (m *MockMetrics) SetCurrentRank(rank int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rank = rank
}
func (m *MockMetrics) IncHistoryPages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistoryPages++
}
func (m *MockMetrics) ObserveBackupDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackupWrites++
}

// MockCache is an in-memory providers.CacheProviderInterface without expiry.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Data == nil {
		m.Data = make(map[string][]byte)
	}
	m.Data[key] = value
}

func (m *MockCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockLeaderboard implements providers.LeaderboardProviderInterface.
type MockLeaderboard struct {
	Response      *models.LeaderboardResponse
	Err           error
	Calls         int
	Invalidations int
}

func (m *MockLeaderboard) Fetch(_ context.Context) (*models.LeaderboardResponse, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

func (m *MockLeaderboard) Invalidate() { m.Invalidations++ }

// WebhookPost is one recorded MockWebhook call.
type WebhookPost struct {
	URL     string
	Content string
}

// MockWebhook records posts and answers with Status (200 when unset).
type MockWebhook struct {
	mu     sync.Mutex
	Posts  []WebhookPost
	Status map[string]int
	Err    map[string]error
}

func (m *MockWebhook) Post(_ context.Context, webhookURL, content string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Posts = append(m.Posts, WebhookPost{URL: webhookURL, Content: content})
	if err := m.Err[webhookURL]; err != nil {
		return 0, err
	}
	if status, ok := m.Status[webhookURL]; ok {
		return status, nil
	}
	return http.StatusOK, nil
}

// SentFiles is one recorded FakeChat upload.
type SentFiles struct {
	ChannelID string
	Content   string
	Paths     []string
	MessageID string
}

// FakeChat is an in-memory providers.ChatProviderInterface. History holds
// messages per channel, newest first, the order the chat API pages them in.
type FakeChat struct {
	mu           sync.Mutex
	Names        map[string]string
	History      map[string][]models.ChatMessage
	NameErr      error
	RenameStatus int
	RenameErr    error
	HistoryErr   error
	SendErr      error
	PinErr       error
	Renames      []string
	PageRequests []string
	Sent         []SentFiles
	Pins         []string
}

func (f *FakeChat) ChannelName(_ context.Context, channelID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NameErr != nil {
		return "", f.NameErr
	}
	return f.Names[channelID], nil
}

func (f *FakeChat) RenameChannel(_ context.Context, channelID, name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Renames = append(f.Renames, name)
	if f.RenameErr != nil {
		return f.RenameStatus, f.RenameErr
	}
	if f.Names == nil {
		f.Names = make(map[string]string)
	}
	f.Names[channelID] = name
	if f.RenameStatus != 0 {
		return f.RenameStatus, nil
	}
	return http.StatusOK, nil
}

func (f *FakeChat) MessagesBefore(_ context.Context, channelID, beforeID string, limit int) ([]models.ChatMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PageRequests = append(f.PageRequests, beforeID)
	if f.HistoryErr != nil {
		return nil, f.HistoryErr
	}

	all := f.History[channelID]
	start := 0
	if beforeID != "" {
		start = len(all)
		for i, m := range all {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := min(start+limit, len(all))
	return append([]models.ChatMessage(nil), all[start:end]...), nil
}

func (f *FakeChat) SendFiles(_ context.Context, channelID, content string, paths ...string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SendErr != nil {
		return "", f.SendErr
	}
	id := fmt.Sprintf("sent-%d", len(f.Sent)+1)
	f.Sent = append(f.Sent, SentFiles{ChannelID: channelID, Content: content, Paths: paths, MessageID: id})
	return id, nil
}

func (f *FakeChat) Pin(_ context.Context, _ string, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.PinErr != nil {
		return f.PinErr
	}
	f.Pins = append(f.Pins, messageID)
	return nil
}

// LogHistory builds a newest-first history from chronological samples,
// interleaving a chatter message after every rank line.
func LogHistory(samples []models.RankSample) []models.ChatMessage {
	out := make([]models.ChatMessage, 0, 2*len(samples))
	id := 2 * len(samples)
	for i := len(samples) - 1; i >= 0; i-- {
		out = append(out, models.ChatMessage{ID: fmt.Sprintf("%d", id), Content: "gg"})
		id--
		out = append(out, models.ChatMessage{
			ID:      fmt.Sprintf("%d", id),
			Content: models.FormatLogLine(samples[i].Timestamp, samples[i].Rank),
		})
		id--
	}
	return out
}
