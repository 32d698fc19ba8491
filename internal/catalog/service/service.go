package service

import (
	"context"
	"fmt"
	"strings"

	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/internal/events"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/logger"
)

const (
	defaultPageCount = 20
	maxPageCount     = 100

	msgStoreRequired    = "merchant store cannot be null"
	msgLanguageRequired = "language cannot be null"
)

// Service is the catalog facade: it validates store and language scope,
// checks uniqueness and ownership, and delegates persistence.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// SaveCatalog creates a catalog. A code already used in the store is a conflict
// and nothing is written.
func (s *Service) SaveCatalog(ctx context.Context, req *transport.PersistableCatalog, merchant *storerepo.MerchantStore, lang *storerepo.Language) (transport.ReadableCatalog, error) {
	if req == nil {
		return transport.ReadableCatalog{}, apperr.Validation("catalog object cannot be null")
	}
	if err := validateScope(merchant, lang); err != nil {
		return transport.ReadableCatalog{}, err
	}

	toSave := catalogFromPersistable(*req, merchant)
	if toSave.Code == "" {
		return transport.ReadableCatalog{}, apperr.Validation("catalog code cannot be empty")
	}
	exists, err := s.repo.ExistsByCode(ctx, merchant.ID, toSave.Code)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}
	if exists {
		return transport.ReadableCatalog{}, apperr.Conflict(fmt.Sprintf("Catalog [%s] already exists", toSave.Code))
	}

	if _, err := s.repo.SaveOrUpdate(ctx, toSave); err != nil {
		return transport.ReadableCatalog{}, err
	}

	saved, err := s.repo.GetByCode(ctx, merchant.ID, toSave.Code)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}

	s.log.Info("catalog created", "store", merchant.Code, "id", saved.ID, "code", saved.Code)
	s.publishSaved(ctx, merchant, saved, true)
	return toReadableCatalog(saved, nil, merchant), nil
}

// DeleteCatalog removes a catalog owned by the store.
func (s *Service) DeleteCatalog(ctx context.Context, id int64, merchant *storerepo.MerchantStore, lang *storerepo.Language) error {
	if err := validateScope(merchant, lang); err != nil {
		return err
	}
	catalog, err := s.catalogByID(ctx, id, merchant)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, catalog.ID); err != nil {
		// Deleted concurrently since the lookup above.
		if apperr.Is(err, apperr.KindNotFound) {
			return err
		}
		s.log.DatabaseError("delete catalog", err)
		return apperr.Internal(fmt.Sprintf("error while deleting catalog id [%d]", id), err)
	}

	s.log.Info("catalog deleted", "store", merchant.Code, "id", catalog.ID, "code", catalog.Code)
	s.bus.Publish(ctx, events.CatalogDeleted{
		BaseEvent: events.NewBaseEvent(),
		StoreCode: merchant.Code,
		CatalogID: catalog.ID,
		Code:      catalog.Code,
	})
	return nil
}

// GetCatalogByCode returns a store's catalog with its entries.
func (s *Service) GetCatalogByCode(ctx context.Context, code string, merchant *storerepo.MerchantStore, lang *storerepo.Language) (transport.ReadableCatalog, error) {
	if err := validateScope(merchant, lang); err != nil {
		return transport.ReadableCatalog{}, err
	}
	catalog, err := s.catalogByCode(ctx, code, merchant)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}
	return s.readable(ctx, catalog, merchant, lang)
}

// GetCatalogByID returns a store's catalog with its entries.
func (s *Service) GetCatalogByID(ctx context.Context, id int64, merchant *storerepo.MerchantStore, lang *storerepo.Language) (transport.ReadableCatalog, error) {
	if err := validateScope(merchant, lang); err != nil {
		return transport.ReadableCatalog{}, err
	}
	catalog, err := s.catalogByID(ctx, id, merchant)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}
	return s.readable(ctx, catalog, merchant, lang)
}

// UpdateCatalog overwrites the visible and defaultCatalog flags. The code never changes.
func (s *Service) UpdateCatalog(ctx context.Context, id int64, patch *transport.PersistableCatalog, merchant *storerepo.MerchantStore, lang *storerepo.Language) (transport.ReadableCatalog, error) {
	if patch == nil {
		return transport.ReadableCatalog{}, apperr.Validation("catalog object cannot be null")
	}
	if err := validateScope(merchant, lang); err != nil {
		return transport.ReadableCatalog{}, err
	}
	catalog, err := s.catalogByID(ctx, id, merchant)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}

	catalog.DefaultCatalog = patch.DefaultCatalog
	catalog.Visible = patch.Visible
	updated, err := s.repo.SaveOrUpdate(ctx, catalog)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}

	s.log.Info("catalog updated", "store", merchant.Code, "id", updated.ID, "visible", updated.Visible, "default", updated.DefaultCatalog)
	s.publishSaved(ctx, merchant, updated, false)
	return s.readable(ctx, updated, merchant, lang)
}

// ListCatalogs returns one page of the store's catalogs, optionally filtered
// by code. Page is zero-based.
func (s *Service) ListCatalogs(ctx context.Context, code string, merchant *storerepo.MerchantStore, lang *storerepo.Language, page int, count int) (transport.ReadableEntityList[transport.ReadableCatalog], error) {
	if err := validateScope(merchant, lang); err != nil {
		return transport.ReadableEntityList[transport.ReadableCatalog]{}, err
	}
	if page < 0 {
		page = 0
	}
	if count < 1 {
		count = defaultPageCount
	}
	if count > maxPageCount {
		count = maxPageCount
	}

	items, total, err := s.repo.List(ctx, repository.ListCatalogsParams{
		StoreID: merchant.ID,
		Code:    strings.TrimSpace(code),
		Offset:  page * count,
		Limit:   count,
	})
	if err != nil {
		return transport.ReadableEntityList[transport.ReadableCatalog]{}, err
	}
	if len(items) == 0 {
		return emptyCatalogList(), nil
	}
	return toReadableCatalogList(items, total, count, merchant), nil
}

// AddCatalogEntry attaches a store category to a store catalog.
func (s *Service) AddCatalogEntry(ctx context.Context, req *transport.PersistableCatalogEntry, merchant *storerepo.MerchantStore, lang *storerepo.Language) (transport.ReadableCatalogEntry, error) {
	if err := validateScope(merchant, lang); err != nil {
		return transport.ReadableCatalogEntry{}, err
	}
	if req == nil {
		return transport.ReadableCatalogEntry{}, apperr.Validation("catalog entry cannot be null")
	}
	if strings.TrimSpace(req.Catalog) == "" {
		return transport.ReadableCatalogEntry{}, apperr.Validation("catalog entry catalog cannot be null")
	}

	catalog, err := s.catalogByCode(ctx, req.Catalog, merchant)
	if err != nil {
		return transport.ReadableCatalogEntry{}, err
	}
	category, err := s.repo.GetCategoryByCode(ctx, merchant.ID, strings.TrimSpace(req.Category), lang.ID)
	if err != nil {
		return transport.ReadableCatalogEntry{}, err
	}

	entry, err := s.repo.AddEntry(ctx, entryFromPersistable(*req, catalog, category))
	if err != nil {
		return transport.ReadableCatalogEntry{}, err
	}

	s.log.Info("catalog entry added", "store", merchant.Code, "catalog", catalog.Code, "category", category.Code)
	s.bus.Publish(ctx, events.CatalogEntryAdded{
		BaseEvent:    events.NewBaseEvent(),
		StoreCode:    merchant.Code,
		CatalogCode:  catalog.Code,
		EntryID:      entry.ID,
		CategoryCode: category.Code,
	})
	return toReadableCatalogEntry(entry, catalog.Code), nil
}

// CatalogCodeExists reports whether code is already taken in the store.
func (s *Service) CatalogCodeExists(ctx context.Context, code string, merchant *storerepo.MerchantStore) (bool, error) {
	if merchant == nil {
		return false, apperr.Validation(msgStoreRequired)
	}
	return s.repo.ExistsByCode(ctx, merchant.ID, strings.TrimSpace(code))
}

func (s *Service) catalogByID(ctx context.Context, id int64, merchant *storerepo.MerchantStore) (repository.Catalog, error) {
	catalog, err := s.repo.GetByID(ctx, id)
	if err != nil && !apperr.Is(err, apperr.KindNotFound) {
		return repository.Catalog{}, err
	}
	if err != nil || catalog.StoreID != merchant.ID {
		return repository.Catalog{}, apperr.NotFoundf("Catalog with id [%d] not found or does not belong to the specified store", id)
	}
	return catalog, nil
}

func (s *Service) catalogByCode(ctx context.Context, code string, merchant *storerepo.MerchantStore) (repository.Catalog, error) {
	catalog, err := s.repo.GetByCode(ctx, merchant.ID, strings.TrimSpace(code))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return repository.Catalog{}, apperr.NotFoundf("Catalog with code [%s] not found", code)
		}
		return repository.Catalog{}, err
	}
	return catalog, nil
}

func (s *Service) readable(ctx context.Context, catalog repository.Catalog, merchant *storerepo.MerchantStore, lang *storerepo.Language) (transport.ReadableCatalog, error) {
	entries, err := s.repo.ListEntries(ctx, catalog.ID, lang.ID)
	if err != nil {
		return transport.ReadableCatalog{}, err
	}
	return toReadableCatalog(catalog, entries, merchant), nil
}

func (s *Service) publishSaved(ctx context.Context, merchant *storerepo.MerchantStore, catalog repository.Catalog, created bool) {
	s.bus.Publish(ctx, events.CatalogSaved{
		BaseEvent:      events.NewBaseEvent(),
		StoreCode:      merchant.Code,
		CatalogID:      catalog.ID,
		Code:           catalog.Code,
		Visible:        catalog.Visible,
		DefaultCatalog: catalog.DefaultCatalog,
		Created:        created,
	})
}

func validateScope(merchant *storerepo.MerchantStore, lang *storerepo.Language) error {
	if merchant == nil {
		return apperr.Validation(msgStoreRequired)
	}
	if lang == nil {
		return apperr.Validation(msgLanguageRequired)
	}
	return nil
}
