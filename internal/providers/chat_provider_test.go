package providers

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"rankwatch/internal/structures"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
}

// newStubbedChat routes every discord REST call through respond.
func newStubbedChat(t *testing.T, respond func(r *http.Request) (int, string)) (*DiscordChat, *[]recordedRequest) {
	t.Helper()
	chat, err := NewChatProvider(&structures.Config{Discord: structures.DiscordConfig{BotToken: "token"}})
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		reqs []recordedRequest
	)
	dc := chat.(*DiscordChat)
	dc.session.Client = &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
		}
		mu.Lock()
		reqs = append(reqs, recordedRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)})
		mu.Unlock()

		status, payload := respond(r)
		return &http.Response{
			StatusCode: status,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(payload)),
			Request:    r,
		}, nil
	})}
	return dc, &reqs
}

func TestDiscordChat_ChannelName(t *testing.T) {
	chat, reqs := newStubbedChat(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `{"id":"42","name":"andrei-rank-95-📈"}`
	})

	name, err := chat.ChannelName(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, "andrei-rank-95-📈", name)
	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodGet, (*reqs)[0].method)
	assert.True(t, strings.HasSuffix((*reqs)[0].path, "/channels/42"))
}

func TestDiscordChat_RenameReportsStatus(t *testing.T) {
	chat, reqs := newStubbedChat(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `{"id":"42","name":"andrei-rank-90 📈"}`
	})

	status, err := chat.RenameChannel(context.Background(), "42", "andrei-rank-90 📈")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, http.MethodPatch, (*reqs)[0].method)
	assert.Contains(t, (*reqs)[0].body, "andrei-rank-90")
}

func TestDiscordChat_RenameForbidden(t *testing.T) {
	chat, _ := newStubbedChat(t, func(_ *http.Request) (int, string) {
		return http.StatusForbidden, `{"message":"Missing Permissions","code":50013}`
	})

	status, err := chat.RenameChannel(context.Background(), "42", "x")

	assert.Error(t, err)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestDiscordChat_MessagesBeforeUsesCursor(t *testing.T) {
	chat, reqs := newStubbedChat(t, func(_ *http.Request) (int, string) {
		return http.StatusOK, `[
			{"id":"9","content":"01/03/2024-12:00:00 - Rank: 5","timestamp":"2024-03-01T12:00:01+00:00"},
			{"id":"8","content":"gg","timestamp":"2024-03-01T11:00:00+00:00"}
		]`
	})

	page, err := chat.MessagesBefore(context.Background(), "42", "10", 2)

	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "9", page[0].ID)
	assert.Equal(t, "01/03/2024-12:00:00 - Rank: 5", page[0].Content)
	assert.Equal(t, 2024, page[0].Timestamp.Year())
	assert.Contains(t, (*reqs)[0].query, "before=10")
	assert.Contains(t, (*reqs)[0].query, "limit=2")
}

func TestDiscordChat_SendFilesAndPin(t *testing.T) {
	chat, reqs := newStubbedChat(t, func(r *http.Request) (int, string) {
		if r.Method == http.MethodPut {
			return http.StatusNoContent, ``
		}
		return http.StatusOK, `{"id":"777","channel_id":"42","content":"chart"}`
	})
	path := filepath.Join(t.TempDir(), "rank.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))

	id, err := chat.SendFiles(context.Background(), "42", "chart", path)
	require.NoError(t, err)
	assert.Equal(t, "777", id)
	require.NoError(t, chat.Pin(context.Background(), "42", id))

	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodPost, (*reqs)[0].method)
	assert.Contains(t, (*reqs)[0].body, `filename="rank.png"`)
	assert.Equal(t, http.MethodPut, (*reqs)[1].method)
	assert.True(t, strings.HasSuffix((*reqs)[1].path, "/pins/777"))
}

func TestDiscordChat_SendFilesMissingAttachment(t *testing.T) {
	chat, reqs := newStubbedChat(t, func(_ *http.Request) (int, string) { return http.StatusOK, `{}` })

	_, err := chat.SendFiles(context.Background(), "42", "chart", filepath.Join(t.TempDir(), "missing.png"))

	assert.ErrorContains(t, err, "opening attachment")
	assert.Empty(t, *reqs)
}
