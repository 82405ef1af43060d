package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
)

type (
	// Manager snapshots the database file to an object store and
	// restores it.
	Manager interface {
		Store(ctx context.Context, path string) error
		Load(ctx context.Context, path string) error
		Close()
	}

	manager struct {
		object *storage.ObjectHandle
		close  func()
	}
)

var (
	// ErrBackupNotExist ...
	ErrBackupNotExist = errors.New("backup does not exist")
)

// NewManager ...
func NewManager(ctx context.Context, bucket, object string) (Manager, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating cloud storage client: %w", err)
	}
	if object == "" {
		object = "killshot.db"
	}
	return &manager{
		object: client.Bucket(bucket).Object(object),
		close:  func() { client.Close() },
	}, nil
}

// Close ...
func (m *manager) Close() {
	m.close()
}

// Store ...
func (m *manager) Store(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening database file: %w", err)
	}
	defer f.Close()

	w := m.object.NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		w.Close()
		return fmt.Errorf("error uploading backup: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("error finishing backup upload: %w", err)
	}
	return nil
}

// RestoreIfMissing downloads the backup into path when no database file
// exists there yet. Reports whether a restore happened; a missing
// backup object or a nil manager is not an error.
func RestoreIfMissing(ctx context.Context, m Manager, path string) (bool, error) {
	if m == nil {
		return false, nil
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("error checking database file: %w", err)
	}
	if err := m.Load(ctx, path); err != nil {
		if errors.Is(err, ErrBackupNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Load ...
func (m *manager) Load(ctx context.Context, path string) error {
	r, err := m.object.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return ErrBackupNotExist
		}
		return fmt.Errorf("error creating backup reader: %w", err)
	}
	defer r.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating database file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("error downloading backup: %w", err)
	}
	return nil
}
