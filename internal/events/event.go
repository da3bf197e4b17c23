// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/gustavo-devfull/fabricas-sub000/platform/events"

	"github.com/google/uuid"
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
// Quotes Domain Events
// =============================================================================

// QuoteCreated is published when a factory quote line is registered.
type QuoteCreated struct {
	BaseEvent
	QuoteID   uuid.UUID `json:"quoteId"`
	FactoryID uuid.UUID `json:"factoryId"`
	Ref       string    `json:"ref"`
}

func (e QuoteCreated) EventName() string { return "quotes.quote.created" }

// QuoteUpdated is published when a quote line's fields change.
type QuoteUpdated struct {
	BaseEvent
	QuoteID   uuid.UUID `json:"quoteId"`
	FactoryID uuid.UUID `json:"factoryId"`
}

func (e QuoteUpdated) EventName() string { return "quotes.quote.updated" }

// QuoteDeleted is published when a quote line is removed.
type QuoteDeleted struct {
	BaseEvent
	QuoteID   uuid.UUID `json:"quoteId"`
	FactoryID uuid.UUID `json:"factoryId"`
}

func (e QuoteDeleted) EventName() string { return "quotes.quote.deleted" }

// =============================================================================
// Imports Domain Events
// =============================================================================

// FactoryExportToggled is published after a factory-wide export toggle,
// including partial completions.
type FactoryExportToggled struct {
	BaseEvent
	FactoryID uuid.UUID `json:"factoryId"`
	Exported  bool      `json:"exported"`
	Updated   int       `json:"updated"`
	Failed    int       `json:"failed"`
	ActorName string    `json:"actorName"`
}

func (e FactoryExportToggled) EventName() string { return "imports.factory.export_toggled" }

// ImportMetadataUpdated is published when an import's overlay (name, order
// date, lot, replacement flag) changes.
type ImportMetadataUpdated struct {
	BaseEvent
	FactoryID uuid.UUID `json:"factoryId"`
	ImportID  string    `json:"importId"`
}

func (e ImportMetadataUpdated) EventName() string { return "imports.metadata.updated" }

// =============================================================================
// Comments Domain Events
// =============================================================================

// CommentAdded is published when a user comments on an import.
type CommentAdded struct {
	BaseEvent
	CommentID  uuid.UUID `json:"commentId"`
	FactoryID  uuid.UUID `json:"factoryId"`
	ImportID   string    `json:"importId"`
	AuthorName string    `json:"authorName"`
}

func (e CommentAdded) EventName() string { return "comments.comment.added" }

// =============================================================================
// Export Jobs Domain Events
// =============================================================================

// SpreadsheetExportRequested is published when a spreadsheet export job is
// enqueued.
type SpreadsheetExportRequested struct {
	BaseEvent
	JobID       uuid.UUID `json:"jobId"`
	RequestedBy string    `json:"requestedBy"`
}

func (e SpreadsheetExportRequested) EventName() string { return "exports.spreadsheet.requested" }

// SpreadsheetExportCompleted is published by the worker when the generated
// file has been uploaded to storage.
type SpreadsheetExportCompleted struct {
	BaseEvent
	JobID       uuid.UUID `json:"jobId"`
	ObjectKey   string    `json:"objectKey"`
	RequestedBy string    `json:"requestedBy"`
	NotifyEmail string    `json:"notifyEmail,omitempty"`
}

func (e SpreadsheetExportCompleted) EventName() string { return "exports.spreadsheet.completed" }

// SpreadsheetExportFailed is published by the worker when generation fails
// after retries.
type SpreadsheetExportFailed struct {
	BaseEvent
	JobID       uuid.UUID `json:"jobId"`
	Reason      string    `json:"reason"`
	RequestedBy string    `json:"requestedBy"`
	NotifyEmail string    `json:"notifyEmail,omitempty"`
}

func (e SpreadsheetExportFailed) EventName() string { return "exports.spreadsheet.failed" }
