package secrets

import (
	"context"
	"sync"
)

type (
	mockService struct {
		cache   map[string]string
		cacheMu sync.Mutex
	}
)

// NewMockService returns an in-memory Service generating random secrets
// on first read. Meant for tests and local development.
func NewMockService() Service {
	return &mockService{cache: make(map[string]string)}
}

func (m *mockService) Close() {
}

func (m *mockService) Read(ctx context.Context, id string) (string, error) {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	if c, ok := m.cache[id]; ok {
		return c, nil
	}

	secret, err := Generate()
	if err != nil {
		return "", err
	}
	m.cache[id] = secret

	return secret, nil
}

func (m *mockService) ReadBinary(ctx context.Context, id string) ([]byte, error) {
	secret, err := m.Read(ctx, id)
	if err != nil {
		return nil, err
	}
	return readBinary(secret)
}

func (m *mockService) Rotate(ctx context.Context, id string) error {
	m.cacheMu.Lock()
	defer m.cacheMu.Unlock()

	secret, err := Generate()
	if err != nil {
		return err
	}
	m.cache[id] = secret
	return nil
}
