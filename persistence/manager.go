package persistence

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/hierseg/hierseg/blobstore"
)

// Save writes a snapshot to a blob store under the given name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, snap *Snapshot, comp Compression) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create snapshot blob %q: %w", name, err)
	}
	if err := Write(w, snap, comp); err != nil {
		_ = w.Close()
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize snapshot %q: %w", name, err)
	}
	return nil
}

// Load reads a snapshot previously written with Save.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Snapshot, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open snapshot blob %q: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	data := make([]byte, blob.Size())
	if _, err := blob.ReadAt(ctx, data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("read snapshot %q: %w", name, err)
	}

	snap, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", name, err)
	}
	return snap, nil
}
