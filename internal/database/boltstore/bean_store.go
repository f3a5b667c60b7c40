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

// CreateBean stores a new bean record and assigns it an id.
func (s *Store) CreateBean(ctx context.Context, req *models.CreateBeanRequest) (*models.Bean, error) {
	now := time.Now().UTC()
	bean := &models.Bean{
		ID:           uuid.NewString(),
		Name:         req.Name,
		RoastState:   req.RoastState,
		RoastLevel:   req.RoastLevel,
		Capacity:     req.Capacity,
		Remaining:    req.Remaining,
		RoastDate:    req.RoastDate,
		PurchaseDate: req.PurchaseDate,
		FlavorTags:   req.FlavorTags,
		Blend:        req.Blend,
		Rating:       req.Rating,
		StartDay:     req.StartDay,
		EndDay:       req.EndDay,
		IsFrozen:     req.IsFrozen,
		IsInTransit:  req.IsInTransit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.putBean(bean); err != nil {
		return nil, err
	}
	return bean, nil
}

// GetBean retrieves a bean by id.
func (s *Store) GetBean(ctx context.Context, id string) (*models.Bean, error) {
	var bean *models.Bean

	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(BucketBeans).Get([]byte(id))
		if data == nil {
			return database.ErrNotFound
		}

		bean = &models.Bean{}
		return json.Unmarshal(data, bean)
	})
	if err != nil {
		return nil, err
	}
	return bean, nil
}

// ListBeans returns all beans sorted by creation time, newest first.
func (s *Store) ListBeans(ctx context.Context) ([]*models.Bean, error) {
	var beans []*models.Bean

	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(BucketBeans).ForEach(func(k, v []byte) error {
			var bean models.Bean
			if err := json.Unmarshal(v, &bean); err != nil {
				// Skip corrupt entries rather than failing the listing
				return nil
			}
			beans = append(beans, &bean)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(beans, func(i, j int) bool {
		return beans[i].CreatedAt.After(beans[j].CreatedAt)
	})
	return beans, nil
}

// UpdateBean replaces a bean's fields from the request, preserving id
// and creation time.
func (s *Store) UpdateBean(ctx context.Context, id string, req *models.UpdateBeanRequest) (*models.Bean, error) {
	bean, err := s.GetBean(ctx, id)
	if err != nil {
		return nil, err
	}

	bean.Name = req.Name
	bean.RoastState = req.RoastState
	bean.RoastLevel = req.RoastLevel
	bean.Capacity = req.Capacity
	bean.Remaining = req.Remaining
	bean.RoastDate = req.RoastDate
	bean.PurchaseDate = req.PurchaseDate
	bean.FlavorTags = req.FlavorTags
	bean.Blend = req.Blend
	bean.Rating = req.Rating
	bean.StartDay = req.StartDay
	bean.EndDay = req.EndDay
	bean.IsFrozen = req.IsFrozen
	bean.IsInTransit = req.IsInTransit
	bean.UpdatedAt = time.Now().UTC()

	if err := s.putBean(bean); err != nil {
		return nil, err
	}
	return bean, nil
}

// SaveBean persists an already-loaded bean in place.
func (s *Store) SaveBean(ctx context.Context, bean *models.Bean) error {
	if bean.ID == "" {
		return fmt.Errorf("cannot save bean without id")
	}
	bean.UpdatedAt = time.Now().UTC()
	return s.putBean(bean)
}

// DeleteBean removes a bean. Deleting a missing bean returns
// database.ErrNotFound.
func (s *Store) DeleteBean(ctx context.Context, id string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(BucketBeans)
		if bucket.Get([]byte(id)) == nil {
			return database.ErrNotFound
		}
		return bucket.Delete([]byte(id))
	})
}

func (s *Store) putBean(bean *models.Bean) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(bean)
		if err != nil {
			return fmt.Errorf("failed to marshal bean: %w", err)
		}
		return tx.Bucket(BucketBeans).Put([]byte(bean.ID), data)
	})
}
