package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront_backend/platform/apperr"
)

const (
	catalogNotFoundMessage  = "catalog not found"
	categoryNotFoundMessage = "category not found"

	uniqueViolationCode = "23505"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ExistsByCode reports whether a catalog with code exists in the store.
func (r *Repo) ExistsByCode(ctx context.Context, storeID int64, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM catalogs WHERE store_id = $1 AND code = $2)`
	if err := r.pool.QueryRow(ctx, query, storeID, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("check catalog code: %w", err)
	}
	return exists, nil
}

// SaveOrUpdate inserts a new catalog or updates the flags of an existing one.
// The (store_id, code) unique constraint turns a racing duplicate insert into
// a Conflict.
func (r *Repo) SaveOrUpdate(ctx context.Context, catalog Catalog) (Catalog, error) {
	if catalog.ID == 0 {
		return r.insert(ctx, catalog)
	}
	return r.update(ctx, catalog)
}

func (r *Repo) insert(ctx context.Context, catalog Catalog) (Catalog, error) {
	query := `
		INSERT INTO catalogs (store_id, code, visible, default_catalog)
		VALUES ($1, $2, $3, $4)
		RETURNING id, store_id, code, visible, default_catalog, created_at, updated_at`

	var saved Catalog
	if err := r.pool.QueryRow(ctx, query,
		catalog.StoreID, catalog.Code, catalog.Visible, catalog.DefaultCatalog,
	).Scan(
		&saved.ID, &saved.StoreID, &saved.Code, &saved.Visible, &saved.DefaultCatalog, &saved.CreatedAt, &saved.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return Catalog{}, apperr.Conflict(fmt.Sprintf("Catalog [%s] already exists", catalog.Code))
		}
		return Catalog{}, fmt.Errorf("insert catalog: %w", err)
	}
	return saved, nil
}

func (r *Repo) update(ctx context.Context, catalog Catalog) (Catalog, error) {
	query := `
		UPDATE catalogs
		SET visible = $2,
			default_catalog = $3,
			updated_at = now()
		WHERE id = $1
		RETURNING id, store_id, code, visible, default_catalog, created_at, updated_at`

	var saved Catalog
	if err := r.pool.QueryRow(ctx, query, catalog.ID, catalog.Visible, catalog.DefaultCatalog).Scan(
		&saved.ID, &saved.StoreID, &saved.Code, &saved.Visible, &saved.DefaultCatalog, &saved.CreatedAt, &saved.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Catalog{}, apperr.NotFound(catalogNotFoundMessage)
		}
		return Catalog{}, fmt.Errorf("update catalog: %w", err)
	}
	return saved, nil
}

// GetByID retrieves a catalog by ID regardless of store; callers filter by store.
func (r *Repo) GetByID(ctx context.Context, id int64) (Catalog, error) {
	query := `
		SELECT id, store_id, code, visible, default_catalog, created_at, updated_at
		FROM catalogs
		WHERE id = $1`

	var c Catalog
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.StoreID, &c.Code, &c.Visible, &c.DefaultCatalog, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Catalog{}, apperr.NotFound(catalogNotFoundMessage)
		}
		return Catalog{}, fmt.Errorf("get catalog by id: %w", err)
	}
	return c, nil
}

// GetByCode retrieves a catalog by code within a store.
func (r *Repo) GetByCode(ctx context.Context, storeID int64, code string) (Catalog, error) {
	query := `
		SELECT id, store_id, code, visible, default_catalog, created_at, updated_at
		FROM catalogs
		WHERE store_id = $1 AND code = $2`

	var c Catalog
	if err := r.pool.QueryRow(ctx, query, storeID, code).Scan(
		&c.ID, &c.StoreID, &c.Code, &c.Visible, &c.DefaultCatalog, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Catalog{}, apperr.NotFound(catalogNotFoundMessage)
		}
		return Catalog{}, fmt.Errorf("get catalog by code: %w", err)
	}
	return c, nil
}

// List lists a store's catalogs, optionally filtered by a literal code prefix.
func (r *Repo) List(ctx context.Context, params ListCatalogsParams) ([]Catalog, int, error) {
	where := "store_id = $1"
	args := []interface{}{params.StoreID}
	argIdx := 2

	if params.Code != "" {
		where += fmt.Sprintf(" AND code ILIKE $%d", argIdx)
		args = append(args, codePrefixPattern(params.Code))
		argIdx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM catalogs WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count catalogs: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT id, store_id, code, visible, default_catalog, created_at, updated_at
		FROM catalogs
		WHERE %s
		ORDER BY code ASC
		LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()

	items := make([]Catalog, 0)
	for rows.Next() {
		var c Catalog
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Code, &c.Visible, &c.DefaultCatalog, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan catalog: %w", err)
		}
		items = append(items, c)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("iterate catalogs: %w", rows.Err())
	}

	return items, total, nil
}

// codePrefixPattern matches codes starting with code literally. Backslash is
// the default LIKE escape character in Postgres.
func codePrefixPattern(code string) string {
	return likeEscaper.Replace(code) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Delete removes a catalog and, by cascade, its entries.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM catalogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(catalogNotFoundMessage)
	}
	return nil
}

// GetCategoryByCode retrieves a store category with its name in the given language.
func (r *Repo) GetCategoryByCode(ctx context.Context, storeID int64, code string, languageID int) (Category, error) {
	query := `
		SELECT c.id, c.store_id, c.code, COALESCE(d.name, '')
		FROM categories c
		LEFT JOIN category_descriptions d ON d.category_id = c.id AND d.language_id = $3
		WHERE c.store_id = $1 AND c.code = $2`

	var cat Category
	if err := r.pool.QueryRow(ctx, query, storeID, code, languageID).Scan(&cat.ID, &cat.StoreID, &cat.Code, &cat.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Category{}, apperr.NotFound(categoryNotFoundMessage)
		}
		return Category{}, fmt.Errorf("get category by code: %w", err)
	}
	return cat, nil
}

// AddEntry attaches a category to a catalog.
func (r *Repo) AddEntry(ctx context.Context, entry CatalogEntry) (CatalogEntry, error) {
	query := `
		INSERT INTO catalog_entries (catalog_id, category_id, visible)
		VALUES ($1, $2, $3)
		RETURNING id, catalog_id, visible, created_at`

	saved := CatalogEntry{Category: entry.Category}
	if err := r.pool.QueryRow(ctx, query, entry.CatalogID, entry.Category.ID, entry.Visible).Scan(
		&saved.ID, &saved.CatalogID, &saved.Visible, &saved.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return CatalogEntry{}, apperr.Conflict(fmt.Sprintf("Category [%s] is already in this catalog", entry.Category.Code))
		}
		return CatalogEntry{}, fmt.Errorf("add catalog entry: %w", err)
	}
	return saved, nil
}

// ListEntries lists a catalog's entries with category names in the given language.
func (r *Repo) ListEntries(ctx context.Context, catalogID int64, languageID int) ([]CatalogEntry, error) {
	query := `
		SELECT e.id, e.catalog_id, e.visible, e.created_at,
			c.id, c.store_id, c.code, COALESCE(d.name, '')
		FROM catalog_entries e
		JOIN categories c ON c.id = e.category_id
		LEFT JOIN category_descriptions d ON d.category_id = c.id AND d.language_id = $2
		WHERE e.catalog_id = $1
		ORDER BY c.code ASC`

	rows, err := r.pool.Query(ctx, query, catalogID, languageID)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	defer rows.Close()

	entries := make([]CatalogEntry, 0)
	for rows.Next() {
		var e CatalogEntry
		if err := rows.Scan(
			&e.ID, &e.CatalogID, &e.Visible, &e.CreatedAt,
			&e.Category.ID, &e.Category.StoreID, &e.Category.Code, &e.Category.Name,
		); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate catalog entries: %w", rows.Err())
	}
	return entries, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
