package providers

import (
	"os"
	"path/filepath"
	"rankwatch/internal/structures"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLogTypeByRequestType(t *testing.T) {
	assert.Equal(t, TypePost, GetLogTypeByRequestType("POST"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("GET"))
	assert.Equal(t, TypeGet, GetLogTypeByRequestType("PUT"))
}

func TestTypeEnum_String(t *testing.T) {
	cases := map[TypeEnum]string{
		TypeApp:     "app",
		TypeGet:     "get",
		TypePost:    "post",
		TypeRank:    "rank",
		TypeHistory: "history",
		TypeBackup:  "backup",
		TypeChart:   "chart",
		TypeNotify:  "notify",
	}
	for typ, want := range cases {
		assert.Equal(t, want, typ.String())
	}
}

func TestNewLogProvider_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)

	logger.Infof(TypeRank, "rank is %d", 42)
	logger.Debugf(TypeGet, "filtered out")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "rank is 42")
	assert.Contains(t, string(data), `"type":"rank"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestNewLogProvider_DebugFlagLowersLevel(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Debug: true,
		Logger: structures.LoggerConfig{
			Level: "error",
			Mode:  0644,
			Dir:   dir,
		},
	}

	logger, err := NewLogProvider(conf)
	require.NoError(t, err)
	logger.Debugf(TypeChart, "frame rendered")
	logger.Close()

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame rendered")
}

func TestNewLogProvider_InvalidLevel(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{Level: "loud", Mode: 0644, Dir: t.TempDir()},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}

func TestNewLogProvider_InvalidDir(t *testing.T) {
	conf := &structures.Config{
		Logger: structures.LoggerConfig{
			Level: "info",
			Mode:  0644,
			Dir:   "/nonexistent/directory/path",
		},
	}

	_, err := NewLogProvider(conf)
	assert.Error(t, err)
}
