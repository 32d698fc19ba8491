// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"storefront_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Catalog Domain Events
// =============================================================================

// CatalogSaved is published after a catalog is created or its flags change.
type CatalogSaved struct {
	BaseEvent
	StoreCode      string `json:"storeCode"`
	CatalogID      int64  `json:"catalogId"`
	Code           string `json:"code"`
	Visible        bool   `json:"visible"`
	DefaultCatalog bool   `json:"defaultCatalog"`
	Created        bool   `json:"created"`
}

func (e CatalogSaved) EventName() string { return "catalog.saved" }

// CatalogDeleted is published after a catalog is removed.
type CatalogDeleted struct {
	BaseEvent
	StoreCode string `json:"storeCode"`
	CatalogID int64  `json:"catalogId"`
	Code      string `json:"code"`
}

func (e CatalogDeleted) EventName() string { return "catalog.deleted" }

// CatalogEntryAdded is published after a category is attached to a catalog.
type CatalogEntryAdded struct {
	BaseEvent
	StoreCode    string `json:"storeCode"`
	CatalogCode  string `json:"catalogCode"`
	EntryID      int64  `json:"entryId"`
	CategoryCode string `json:"categoryCode"`
}

func (e CatalogEntryAdded) EventName() string { return "catalog.entry.added" }
