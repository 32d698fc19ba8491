package transport

// Catalogs

type PersistableCatalog struct {
	Code           string `json:"code" validate:"required,min=1,max=100"`
	Visible        bool   `json:"visible"`
	DefaultCatalog bool   `json:"defaultCatalog"`
}

type ListCatalogsRequest struct {
	Code  string `form:"code" validate:"omitempty,max=100"`
	Page  int    `form:"page" validate:"omitempty,min=0"`
	Count int    `form:"count" validate:"omitempty,min=1,max=100"`
}

type CatalogCodeRequest struct {
	Code string `form:"code" validate:"required,min=1,max=100"`
}

type ReadableCatalog struct {
	ID             int64                  `json:"id"`
	Code           string                 `json:"code"`
	Visible        bool                   `json:"visible"`
	DefaultCatalog bool                   `json:"defaultCatalog"`
	Store          string                 `json:"store"`
	CreationDate   string                 `json:"creationDate"`
	Entries        []ReadableCatalogEntry `json:"entries"`
}

type EntityExists struct {
	Exists bool `json:"exists"`
}

// Entries

type PersistableCatalogEntry struct {
	Catalog  string `json:"catalog" validate:"required,min=1,max=100"`
	Category string `json:"category" validate:"required,min=1,max=100"`
	Visible  bool   `json:"visible"`
}

type ReadableCategory struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type ReadableCatalogEntry struct {
	ID           int64            `json:"id"`
	Catalog      string           `json:"catalog"`
	Visible      bool             `json:"visible"`
	CreationDate string           `json:"creationDate"`
	Category     ReadableCategory `json:"category"`
}

// ReadableEntityList is the paginated list envelope. Number is the number
// of items on the current page.
type ReadableEntityList[T any] struct {
	Items           []T `json:"items"`
	TotalPages      int `json:"totalPages"`
	Number          int `json:"number"`
	RecordsTotal    int `json:"recordsTotal"`
	RecordsFiltered int `json:"recordsFiltered"`
}
