package service

import (
	"time"

	"storefront_backend/internal/catalog/repository"
	"storefront_backend/internal/catalog/transport"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/sanitize"
)

const creationDateLayout = time.RFC3339

func catalogFromPersistable(req transport.PersistableCatalog, merchant *storerepo.MerchantStore) repository.Catalog {
	return repository.Catalog{
		StoreID:        merchant.ID,
		Code:           sanitize.Code(req.Code),
		Visible:        req.Visible,
		DefaultCatalog: req.DefaultCatalog,
	}
}

func entryFromPersistable(req transport.PersistableCatalogEntry, catalog repository.Catalog, category repository.Category) repository.CatalogEntry {
	return repository.CatalogEntry{
		CatalogID: catalog.ID,
		Category:  category,
		Visible:   req.Visible,
	}
}

func toReadableCatalog(catalog repository.Catalog, entries []repository.CatalogEntry, merchant *storerepo.MerchantStore) transport.ReadableCatalog {
	readableEntries := make([]transport.ReadableCatalogEntry, len(entries))
	for i, entry := range entries {
		readableEntries[i] = toReadableCatalogEntry(entry, catalog.Code)
	}
	return transport.ReadableCatalog{
		ID:             catalog.ID,
		Code:           catalog.Code,
		Visible:        catalog.Visible,
		DefaultCatalog: catalog.DefaultCatalog,
		Store:          merchant.Code,
		CreationDate:   catalog.CreatedAt.Format(creationDateLayout),
		Entries:        readableEntries,
	}
}

func toReadableCatalogEntry(entry repository.CatalogEntry, catalogCode string) transport.ReadableCatalogEntry {
	return transport.ReadableCatalogEntry{
		ID:           entry.ID,
		Catalog:      catalogCode,
		Visible:      entry.Visible,
		CreationDate: entry.CreatedAt.Format(creationDateLayout),
		Category: transport.ReadableCategory{
			ID:   entry.Category.ID,
			Code: entry.Category.Code,
			Name: entry.Category.Name,
		},
	}
}

func toReadableCatalogList(items []repository.Catalog, total int, count int, merchant *storerepo.MerchantStore) transport.ReadableEntityList[transport.ReadableCatalog] {
	readable := make([]transport.ReadableCatalog, len(items))
	for i, item := range items {
		readable[i] = toReadableCatalog(item, nil, merchant)
	}
	totalPages := 0
	if count > 0 {
		totalPages = (total + count - 1) / count
	}
	return transport.ReadableEntityList[transport.ReadableCatalog]{
		Items:           readable,
		TotalPages:      totalPages,
		Number:          len(readable),
		RecordsTotal:    total,
		RecordsFiltered: total,
	}
}

func emptyCatalogList() transport.ReadableEntityList[transport.ReadableCatalog] {
	return transport.ReadableEntityList[transport.ReadableCatalog]{
		Items: []transport.ReadableCatalog{},
	}
}
