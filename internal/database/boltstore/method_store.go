package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"tangled.org/brewguide.app/brewguide/internal/database"
	"tangled.org/brewguide.app/brewguide/internal/models"
)

// CreateMethod stores a new brewing method and assigns it an id.
// The caller is responsible for computing TotalSeconds and TotalWater
// before saving.
func (s *Store) CreateMethod(ctx context.Context, method *models.Method) (*models.Method, error) {
	now := time.Now().UTC()
	method.ID = uuid.NewString()
	method.CreatedAt = now
	method.UpdatedAt = now

	if err := s.putMethod(method); err != nil {
		return nil, err
	}
	return method, nil
}

// GetMethod retrieves a brewing method by id.
func (s *Store) GetMethod(ctx context.Context, id string) (*models.Method, error) {
	var method *models.Method

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketMethods).Get([]byte(id))
		if data == nil {
			return database.ErrNotFound
		}

		method = &models.Method{}
		return json.Unmarshal(data, method)
	})
	if err != nil {
		return nil, err
	}
	return method, nil
}

// ListMethods returns all brewing methods sorted by creation time,
// newest first.
func (s *Store) ListMethods(ctx context.Context) ([]*models.Method, error) {
	var methods []*models.Method

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketMethods).ForEach(func(k, v []byte) error {
			var method models.Method
			if err := json.Unmarshal(v, &method); err != nil {
				return nil
			}
			methods = append(methods, &method)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(methods, func(i, j int) bool {
		return methods[i].CreatedAt.After(methods[j].CreatedAt)
	})
	return methods, nil
}

// UpdateMethod replaces a stored method, preserving id and creation
// time.
func (s *Store) UpdateMethod(ctx context.Context, id string, method *models.Method) (*models.Method, error) {
	existing, err := s.GetMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	method.ID = existing.ID
	method.CreatedAt = existing.CreatedAt
	method.UpdatedAt = time.Now().UTC()

	if err := s.putMethod(method); err != nil {
		return nil, err
	}
	return method, nil
}

// DeleteMethod removes a brewing method. Deleting a missing method
// returns database.ErrNotFound.
func (s *Store) DeleteMethod(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BucketMethods)
		if bucket.Get([]byte(id)) == nil {
			return database.ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

func (s *Store) putMethod(method *models.Method) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(method)
		if err != nil {
			return fmt.Errorf("failed to marshal method: %w", err)
		}
		return tx.Bucket(BucketMethods).Put([]byte(method.ID), data)
	})
}
