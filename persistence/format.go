package persistence

import "errors"

const (
	// MagicNumber identifies hierseg snapshot files (ASCII: "HSG1").
	MagicNumber = 0x48534731
	// Version is the current snapshot format version.
	Version = 0x00010000
)

// Compression selects the codec applied to snapshot sections.
type Compression uint8

const (
	// CompressionNone stores sections uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

var (
	ErrInvalidMagic       = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("unsupported version")
	ErrInvalidCompression = errors.New("unsupported compression codec")
	ErrChecksumMismatch   = errors.New("section checksum mismatch")
)

// fileHeader is the fixed header at the start of every snapshot.
// All multi-byte fields are little-endian.
type fileHeader struct {
	Magic       uint32
	Version     uint32
	Compression uint8
	Padding     [3]byte
	NumLabels   uint64
	NumMerges   uint64
}

// MergeStep is one recorded contraction: the graph edge that merged and the
// absorbed / surviving region pair, with the score it merged at.
type MergeStep struct {
	Edge  uint32
	From  uint32
	To    uint32
	Score float64
}

// Snapshot is the persisted result of an agglomeration run: the final label
// of every original region, plus the ordered merge history.
type Snapshot struct {
	Labels []uint32
	Merges []MergeStep
}
