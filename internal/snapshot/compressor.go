package snapshot

import (
	"fmt"

	"github.com/evanchen13/wb-sustainability/internal/snapshot/interfaces"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/klauspost/compress/zstd"
)

// maxSnapshotSize bounds the decoded snapshot so a corrupt file cannot
// exhaust memory on restore.
const maxSnapshotSize = 256 << 20

// ZstdCompression encodes dataset snapshots. One encoder and one decoder are
// shared; EncodeAll and DecodeAll are safe for concurrent use.
type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/4)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return out, nil
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

// compressionLevel maps persistence.compression to a zstd level. Empty
// selects SpeedBetterCompression, snapshots are written rarely.
func compressionLevel(name string) (zstd.EncoderLevel, error) {
	if name == "" {
		return zstd.SpeedBetterCompression, nil
	}
	ok, level := zstd.EncoderLevelFromString(name)
	if !ok {
		return 0, fmt.Errorf("unknown snapshot compression %q", name)
	}
	return level, nil
}

func NewZstdCompressor(conf *structures.Config) (interfaces.CompressorInterface, error) {
	level, err := compressionLevel(conf.Persistence.Compression)
	if err != nil {
		return nil, err
	}
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0), zstd.WithDecoderMaxMemory(maxSnapshotSize))
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
