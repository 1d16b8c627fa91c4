/*
Package userstore persists the username to password mapping.

The mapping is always loaded and saved as a whole: Save rewrites the complete
collection, so concurrent writers race and the last one wins. Three backends are
available: a local JSON file, a JSON object in S3-compatible storage, and a
PostgreSQL table.
*/
package userstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"nutrigen/internal/app/db"
	"nutrigen/internal/app/storage"
	"nutrigen/internal/configs"
)

// Users maps a username to its stored password value.
type Users map[string]string

// Clone returns an independent copy of u.
func (u Users) Clone() Users {
	out := make(Users, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

// Store loads and saves the complete user mapping.
type Store interface {
	// Load returns the persisted mapping, or an empty mapping when nothing is persisted yet.
	Load(ctx context.Context) (Users, error)

	// Save replaces the persisted mapping with users.
	Save(ctx context.Context, users Users) error
}

// Encode renders users as a pretty-printed JSON object with 4-space indentation and
// keys in sorted order. HTML characters are written as-is.
func Encode(users Users) ([]byte, error) {
	if users == nil {
		users = Users{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")

	if err := enc.Encode(users); err != nil {
		return nil, fmt.Errorf("failed to encode users: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Decode parses a JSON object of username to password.
func Decode(data []byte) (Users, error) {
	users := Users{}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	if users == nil {
		users = Users{}
	}

	return users, nil
}

// New builds the Store selected by cfg.UserStore. The returned close function releases
// backend resources and is never nil.
func New(ctx context.Context, cfg *configs.AppConfig) (Store, func(), error) {
	noop := func() {}

	switch cfg.UserStore {
	case configs.UserStoreFile:
		return NewFileStore(cfg.UserDataFile), noop, nil

	case configs.UserStoreS3:
		objects, err := storage.NewObjectStore(ctx, storage.ServiceConfig{
			S3BucketName:      cfg.S3BucketName,
			S3Endpoint:        cfg.S3Endpoint,
			S3AccessKeyID:     cfg.S3AccessKeyID,
			S3SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewS3Store(objects, cfg.S3UsersKey), noop, nil

	case configs.UserStorePostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, noop, err
		}
		return NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown user store backend %q", cfg.UserStore)
	}
}
