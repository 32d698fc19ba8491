package repository

import (
	"context"
	"time"
)

// Catalog is a store-scoped grouping of categories. Code is unique per store.
type Catalog struct {
	ID             int64     `db:"id"`
	StoreID        int64     `db:"store_id"`
	Code           string    `db:"code"`
	Visible        bool      `db:"visible"`
	DefaultCatalog bool      `db:"default_catalog"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// Category is the minimal category view needed to link it to a catalog.
type Category struct {
	ID      int64  `db:"id"`
	StoreID int64  `db:"store_id"`
	Code    string `db:"code"`
	// Name is the description in the requested language; empty when the
	// category has no description in that language.
	Name string `db:"name"`
}

// CatalogEntry links a category to a catalog.
type CatalogEntry struct {
	ID        int64     `db:"id"`
	CatalogID int64     `db:"catalog_id"`
	Category  Category  `db:"-"`
	Visible   bool      `db:"visible"`
	CreatedAt time.Time `db:"created_at"`
}

// ListCatalogsParams defines filters for listing catalogs.
type ListCatalogsParams struct {
	StoreID int64
	Code    string
	Offset  int
	Limit   int
}

// Repository defines catalog storage operations.
type Repository interface {
	ExistsByCode(ctx context.Context, storeID int64, code string) (bool, error)
	// SaveOrUpdate inserts the catalog when ID is zero and updates its flags otherwise.
	SaveOrUpdate(ctx context.Context, catalog Catalog) (Catalog, error)
	GetByID(ctx context.Context, id int64) (Catalog, error)
	GetByCode(ctx context.Context, storeID int64, code string) (Catalog, error)
	List(ctx context.Context, params ListCatalogsParams) ([]Catalog, int, error)
	Delete(ctx context.Context, id int64) error

	GetCategoryByCode(ctx context.Context, storeID int64, code string, languageID int) (Category, error)
	AddEntry(ctx context.Context, entry CatalogEntry) (CatalogEntry, error)
	ListEntries(ctx context.Context, catalogID int64, languageID int) ([]CatalogEntry, error)
}
