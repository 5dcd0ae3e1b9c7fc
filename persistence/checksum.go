package persistence

// Snapshot integrity uses CRC32 (IEEE polynomial): fast, hardware
// accelerated on modern CPUs, and well suited to detecting storage
// corruption. Not cryptographically secure; it detects accidental
// corruption, not tampering.

import "hash/crc32"

// ComputeChecksum computes the CRC32 checksum of data.
func ComputeChecksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}
