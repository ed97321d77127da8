package backup

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"rankwatch/internal/backup/interfaces"
	"rankwatch/internal/models"
	"rankwatch/internal/providers"
	"rankwatch/internal/structures"
	"strconv"
	"strings"
	"time"
)

const (
	filePrefix     = "rank_backup_"
	fileTimeLayout = "2006-01-02_15-04-05"
	rowTimeLayout  = "2006-01-02 15:04:05"
	csvExt         = ".csv"
	zstExt         = ".zst"
)

var csvHeader = []string{"DateTime", "Rank"}

type BackupStoreInterface interface {
	// Latest returns the newest backup file, ok == false when there is none.
	Latest() (path string, ok bool, err error)
	Load(path string) (models.RankSeries, error)
	LastSample(path string) (models.RankSample, error)
	// Append writes existing ∪ fresh to a new file and returns its path.
	Append(existing, fresh models.RankSeries) (string, error)
	Close()
}

type BackupStore struct {
	dir        string
	compress   bool
	compressor interfaces.CompressorInterface
	metrics    providers.MetricsProviderInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewBackupStore(conf *structures.Config, compressor interfaces.CompressorInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) BackupStoreInterface {
	return &BackupStore{
		dir:        conf.Backup.Dir,
		compress:   conf.Backup.Compress,
		compressor: compressor,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

func isBackupName(name string) bool {
	return strings.HasPrefix(name, filePrefix) &&
		(strings.HasSuffix(name, csvExt) || strings.HasSuffix(name, csvExt+zstExt))
}

func (b *BackupStore) Latest() (string, bool, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("listing backups in %s: %w", b.dir, err)
	}

	var (
		bestName string
		bestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !isBackupName(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return "", false, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		mod := info.ModTime()
		if bestName == "" || mod.After(bestTime) || (mod.Equal(bestTime) && entry.Name() > bestName) {
			bestName, bestTime = entry.Name(), mod
		}
	}
	if bestName == "" {
		return "", false, nil
	}
	return filepath.Join(b.dir, bestName), true, nil
}

func (b *BackupStore) Load(path string) (models.RankSeries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup %s: %w", path, err)
	}
	if strings.HasSuffix(path, zstExt) {
		if data, err = b.compressor.Decompress(data); err != nil {
			return nil, fmt.Errorf("decompressing backup %s: %w", path, err)
		}
	}

	series, err := decodeCSV(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing backup %s: %w", path, err)
	}
	b.logger.Debugf(providers.TypeBackup, "Loaded %d samples from %s", len(series), path)
	return series, nil
}

func (b *BackupStore) LastSample(path string) (models.RankSample, error) {
	series, err := b.Load(path)
	if err != nil {
		return models.RankSample{}, err
	}
	last, ok := series.Last()
	if !ok {
		return models.RankSample{}, fmt.Errorf("backup %s: %w", path, models.ErrNoData)
	}
	return last, nil
}

func (b *BackupStore) Append(existing, fresh models.RankSeries) (string, error) {
	start := time.Now()

	merged := make(models.RankSeries, 0, len(existing)+len(fresh))
	merged = append(merged, existing...)
	merged = append(merged, fresh...)
	merged.Sort()

	var buf bytes.Buffer
	if err := encodeCSV(&buf, merged); err != nil {
		return "", err
	}
	data := buf.Bytes()

	ext := csvExt
	if b.compress {
		compressed, err := b.compressor.Compress(data)
		if err != nil {
			return "", fmt.Errorf("compressing backup: %w", err)
		}
		data, ext = compressed, csvExt+zstExt
	}

	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating backup dir: %w", err)
	}
	path, err := b.freePath(ext)
	if err != nil {
		return "", err
	}
	if err := writeAtomic(path, data); err != nil {
		return "", err
	}

	b.metrics.ObserveBackupDuration(time.Since(start))
	b.logger.Infof(providers.TypeBackup, "Backup written: %s (%d samples, %d new)", path, len(merged), len(fresh))
	return path, nil
}

// freePath picks a name not already taken; backups are never overwritten.
func (b *BackupStore) freePath(ext string) (string, error) {
	ts := b.now()
	for {
		path := filepath.Join(b.dir, filePrefix+ts.Format(fileTimeLayout)+ext)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking backup name %s: %w", path, err)
		}
		ts = ts.Add(time.Second)
	}
}

func (b *BackupStore) Close() {
	b.compressor.Close()
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing backup: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing backup: %w", err)
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing backup: %w", err)
	}
	return os.Rename(tmpName, path)
}

func encodeCSV(w io.Writer, series models.RankSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range series {
		if err := cw.Write([]string{s.Timestamp.Format(rowTimeLayout), strconv.Itoa(s.Rank)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func decodeCSV(r io.Reader) (models.RankSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return models.RankSeries{}, nil
	}
	if err != nil {
		return nil, err
	}
	if header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return nil, fmt.Errorf("unexpected header %q", strings.Join(header, ","))
	}

	var series models.RankSeries
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ts, err := time.ParseInLocation(rowTimeLayout, row[0], time.Local)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rank, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		series = append(series, models.RankSample{Timestamp: ts, Rank: rank})
	}
	series.Sort()
	return series, nil
}
