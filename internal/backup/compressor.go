package backup

import (
	"fmt"
	"rankwatch/internal/backup/interfaces"

	"github.com/klauspost/compress/zstd"
)

// maxSnapshotBytes caps what a single backup may inflate to.
const maxSnapshotBytes = 64 << 20

// snapshotCodec compresses whole CSV snapshots in one call. Backups are written
// at most once per run, so one encoder and one decoder are enough.
type snapshotCodec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func (c *snapshotCodec) Compress(csv []byte) ([]byte, error) {
	return c.enc.EncodeAll(csv, nil), nil
}

func (c *snapshotCodec) Decompress(frame []byte) ([]byte, error) {
	csv, err := c.dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("inflating snapshot: %w", err)
	}
	return csv, nil
}

func (c *snapshotCodec) Close() {
	_ = c.enc.Close()
	c.dec.Close()
}

// NewZstdCompressor returns the codec behind .csv.zst backups. Frames carry a
// checksum, and an empty snapshot still yields a readable frame.
func NewZstdCompressor() (interfaces.CompressorInterface, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderCRC(true),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(maxSnapshotBytes),
	)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("snapshot decoder: %w", err)
	}
	return &snapshotCodec{enc: enc, dec: dec}, nil
}
