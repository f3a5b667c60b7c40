package boltstore

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"tangled.org/brewguide.app/brewguide/internal/database"
)

// Fixed settings keys, matching the named storage keys the client app
// uses for its persisted blobs.
const (
	// SettingsKeyApp holds the main app settings blob
	SettingsKeyApp = "brewGuideSettings"

	// SettingsKeyQuickDecrements holds the preset quick-decrement amounts
	SettingsKeyQuickDecrements = "quickDecrementPresets"
)

// SettingsStore provides get/set-by-key persistence for settings
// blobs. Values are opaque JSON; callers own the schema.
type SettingsStore struct {
	db *bolt.DB
}

// Get returns the raw JSON stored under key, or database.ErrNotFound.
func (s *SettingsStore) Get(key string) (json.RawMessage, error) {
	var value json.RawMessage

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketSettings).Get([]byte(key))
		if data == nil {
			return database.ErrNotFound
		}
		value = make(json.RawMessage, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores raw JSON under key, replacing any previous value.
func (s *SettingsStore) Put(key string, value json.RawMessage) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketSettings).Put([]byte(key), value)
	})
}

// Delete removes the value under key. Deleting a missing key is a
// no-op.
func (s *SettingsStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketSettings).Delete([]byte(key))
	})
}

// Keys lists all stored settings keys.
func (s *SettingsStore) Keys() []string {
	var keys []string

	s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketSettings).ForEach(func(k, v []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})

	return keys
}
