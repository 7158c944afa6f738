package event

import "time"

type Type string

const (
	TypeQuoteCreated       Type = "quote.created"
	TypeQuoteStatusChanged Type = "quote.status_changed"
)

type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Payload    any       `json:"payload"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Bus interface {
	Publish(e Event)
	Subscribe() (<-chan Event, func())
}

// QuoteCreatedPayload is published after a quote request is persisted.
// ProductNames is resolved before publishing so subscribers need no
// database access.
type QuoteCreatedPayload struct {
	QuoteID      int32
	CompanyName  string
	CompanyTaxID string
	ContactName  string
	Email        string
	Phone        *string
	ProductNames []string
	Message      *string
}

// QuoteStatusChangedPayload is published after an admin moves a quote
// to a new status.
type QuoteStatusChangedPayload struct {
	QuoteID int32
	Status  string
}
