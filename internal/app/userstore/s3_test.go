package userstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrigen/internal/app/storage"
)

type memObjects struct {
	objects      map[string][]byte
	contentTypes map[string]string
	getErr       error
}

func newMemObjects() *memObjects {
	return &memObjects{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (m *memObjects) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.objects[key]
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return data, nil
}

func (m *memObjects) Put(_ context.Context, key, contentType string, data []byte) error {
	m.objects[key] = data
	m.contentTypes[key] = contentType
	return nil
}

func TestS3Store_LoadMissingObject(t *testing.T) {
	store := NewS3Store(newMemObjects(), "users.json")

	users, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestS3Store_SaveThenLoad(t *testing.T) {
	objects := newMemObjects()
	store := NewS3Store(objects, "data/users.json")
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Users{"alice": "pw1"}))

	assert.Equal(t, "application/json", objects.contentTypes["data/users.json"])
	assert.Equal(t, "{\n    \"alice\": \"pw1\"\n}", string(objects.objects["data/users.json"]))

	users, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, Users{"alice": "pw1"}, users)
}

func TestS3Store_LoadPropagatesErrors(t *testing.T) {
	objects := newMemObjects()
	objects.getErr = errors.New("connection refused")

	_, err := NewS3Store(objects, "users.json").Load(context.Background())
	assert.Error(t, err)
}
