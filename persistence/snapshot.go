// Package persistence provides binary serialization for agglomeration
// results: final region labels and the merge history, stored as one
// checksummed, optionally compressed snapshot.
package persistence

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	labelSize = 4
	mergeSize = 4 + 4 + 4 + 8
)

// Write serializes a snapshot. The payload (labels then merges) is
// compressed with the given codec and guarded by a CRC32 of the stored
// bytes, so corruption is detected before decompression.
func Write(w io.Writer, snap *Snapshot, comp Compression) error {
	header := fileHeader{
		Magic:       MagicNumber,
		Version:     Version,
		Compression: uint8(comp),
		NumLabels:   uint64(len(snap.Labels)),
		NumMerges:   uint64(len(snap.Merges)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	payload := encodePayload(snap)
	stored, err := compress(payload, comp)
	if err != nil {
		return err
	}

	sizes := [2]uint64{uint64(len(payload)), uint64(len(stored))}
	if err := binary.Write(w, binary.LittleEndian, &sizes); err != nil {
		return fmt.Errorf("write section sizes: %w", err)
	}
	if _, err := w.Write(stored); err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, ComputeChecksum(stored)); err != nil {
		return fmt.Errorf("write checksum: %w", err)
	}
	return nil
}

// Read deserializes a snapshot written by Write.
func Read(r io.Reader) (*Snapshot, error) {
	var header fileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if header.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if header.Version != Version {
		return nil, ErrInvalidVersion
	}
	comp := Compression(header.Compression)
	if comp > CompressionZSTD {
		return nil, ErrInvalidCompression
	}

	var sizes [2]uint64
	if err := binary.Read(r, binary.LittleEndian, &sizes); err != nil {
		return nil, fmt.Errorf("read section sizes: %w", err)
	}
	stored := make([]byte, sizes[1])
	if _, err := io.ReadFull(r, stored); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	var checksum uint32
	if err := binary.Read(r, binary.LittleEndian, &checksum); err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}
	if checksum != ComputeChecksum(stored) {
		return nil, ErrChecksumMismatch
	}

	payload, err := decompress(stored, comp, sizes[0])
	if err != nil {
		return nil, err
	}
	return decodePayload(payload, header.NumLabels, header.NumMerges)
}

func encodePayload(snap *Snapshot) []byte {
	payload := make([]byte, 0, len(snap.Labels)*labelSize+len(snap.Merges)*mergeSize)
	for _, l := range snap.Labels {
		payload = binary.LittleEndian.AppendUint32(payload, l)
	}
	for _, m := range snap.Merges {
		payload = binary.LittleEndian.AppendUint32(payload, m.Edge)
		payload = binary.LittleEndian.AppendUint32(payload, m.From)
		payload = binary.LittleEndian.AppendUint32(payload, m.To)
		payload = binary.LittleEndian.AppendUint64(payload, math.Float64bits(m.Score))
	}
	return payload
}

func decodePayload(payload []byte, numLabels, numMerges uint64) (*Snapshot, error) {
	want := numLabels*labelSize + numMerges*mergeSize
	if uint64(len(payload)) != want {
		return nil, fmt.Errorf("payload size %d, want %d", len(payload), want)
	}

	snap := &Snapshot{
		Labels: make([]uint32, numLabels),
		Merges: make([]MergeStep, numMerges),
	}
	off := 0
	for i := range snap.Labels {
		snap.Labels[i] = binary.LittleEndian.Uint32(payload[off:])
		off += labelSize
	}
	for i := range snap.Merges {
		snap.Merges[i] = MergeStep{
			Edge:  binary.LittleEndian.Uint32(payload[off:]),
			From:  binary.LittleEndian.Uint32(payload[off+4:]),
			To:    binary.LittleEndian.Uint32(payload[off+8:]),
			Score: math.Float64frombits(binary.LittleEndian.Uint64(payload[off+12:])),
		}
		off += mergeSize
	}
	return snap, nil
}

func compress(payload []byte, comp Compression) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return payload, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(payload); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := zw.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	case CompressionZSTD:
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil
	default:
		return nil, ErrInvalidCompression
	}
}

func decompress(stored []byte, comp Compression, uncompressedSize uint64) ([]byte, error) {
	switch comp {
	case CompressionNone:
		return stored, nil
	case CompressionLZ4:
		zr := lz4.NewReader(bytes.NewReader(stored))
		payload := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(zr, payload); err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return payload, nil
	case CompressionZSTD:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer dec.Close()
		payload, err := dec.DecodeAll(stored, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return payload, nil
	default:
		return nil, ErrInvalidCompression
	}
}
