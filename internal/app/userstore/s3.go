package userstore

import (
	"context"
	"errors"

	"nutrigen/internal/app/storage"
)

// S3Store keeps the mapping as one JSON object under a fixed key.
type S3Store struct {
	objects storage.ObjectStore
	key     string
}

// NewS3Store returns an S3Store writing the object key through objects.
func NewS3Store(objects storage.ObjectStore, key string) *S3Store {
	return &S3Store{objects: objects, key: key}
}

// Load downloads and decodes the object; a missing object yields an empty mapping.
func (s *S3Store) Load(ctx context.Context) (Users, error) {
	data, err := s.objects.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return Users{}, nil
		}
		return nil, err
	}
	return Decode(data)
}

// Save uploads the full mapping, replacing the previous object.
func (s *S3Store) Save(ctx context.Context, users Users) error {
	data, err := Encode(users)
	if err != nil {
		return err
	}
	return s.objects.Put(ctx, s.key, "application/json", data)
}
