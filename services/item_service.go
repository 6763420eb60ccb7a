package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"
	"rental-backend/repository"
)

type ItemService struct {
	Store repository.Store
	Cache *CatalogCache
}

func NewItemService(store repository.Store, cache *CatalogCache) *ItemService {
	return &ItemService{Store: store, Cache: cache}
}

// ActiveItems serves the public catalog, preferring the cache.
func (s *ItemService) ActiveItems(ctx context.Context) ([]models.Item, error) {
	if items, ok := s.Cache.GetItems(ctx); ok {
		return items, nil
	}
	items, err := s.Store.ListItems(true)
	if err != nil {
		return nil, err
	}
	s.Cache.SetItems(ctx, items)
	return items, nil
}

func (s *ItemService) AllItems() ([]models.Item, error) {
	return s.Store.ListItems(false)
}

func (s *ItemService) Create(ctx context.Context, item *models.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.Store.CreateItem(item); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

func (s *ItemService) Update(ctx context.Context, item *models.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.Store.UpdateItem(item); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: item %d", ErrItemNotFound, item.ID)
		}
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// Delete removes an item unless any booking line references it; admins
// must disable referenced items instead. The reference check and the
// delete run in one transaction so a booking landing in between cannot
// reference a just-deleted item.
func (s *ItemService) Delete(ctx context.Context, id uint) error {
	err := s.Store.InTransaction(func(tx repository.Store) error {
		referenced, err := tx.ItemReferenced(id)
		if err != nil {
			return err
		}
		if referenced {
			return fmt.Errorf("%w: item %d", ErrItemReferenced, id)
		}
		if err := tx.DeleteItem(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%w: item %d", ErrItemNotFound, id)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}

func validateItem(item *models.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if item.PricePerDay <= 0 {
		return fmt.Errorf("%w: price_per_day must be positive", ErrValidation)
	}
	if item.QuantityTotal <= 0 {
		return fmt.Errorf("%w: quantity_total must be positive", ErrValidation)
	}
	return nil
}
