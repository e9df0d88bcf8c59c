package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"countryref/internal/country/models"
)

// Operation names the write that produced a version.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationSeed   Operation = "seed"
)

// VersionAppended announces that a new version joined a chain.
type VersionAppended struct {
	EventID    uuid.UUID
	Operation  Operation
	Country    models.Country
	OccurredAt time.Time
}

// NewVersionAppended stamps a fresh event ID.
func NewVersionAppended(op Operation, c models.Country, at time.Time) VersionAppended {
	return VersionAppended{
		EventID:    uuid.New(),
		Operation:  op,
		Country:    c.Clone(),
		OccurredAt: at.UTC(),
	}
}

// Key is the partition key: every version of one chain lands on the same
// partition, so consumers see a chain in append order.
func (e VersionAppended) Key() []byte {
	return []byte(e.Country.Alpha2)
}

type payload struct {
	EventID     string     `json:"eventId"`
	Operation   Operation  `json:"operation"`
	OccurredAt  time.Time  `json:"occurredAt"`
	Name        string     `json:"name"`
	Alpha2Code  string     `json:"alpha2Code"`
	Alpha3Code  string     `json:"alpha3Code"`
	NumericCode string     `json:"numericCode"`
	CreateDate  time.Time  `json:"createDate"`
	ExpiryDate  *time.Time `json:"expiryDate"`
	IsDeleted   bool       `json:"isDeleted"`
}

// MarshalJSON renders the event with the same field names the HTTP API uses.
func (e VersionAppended) MarshalJSON() ([]byte, error) {
	return json.Marshal(payload{
		EventID:     e.EventID.String(),
		Operation:   e.Operation,
		OccurredAt:  e.OccurredAt,
		Name:        e.Country.Name,
		Alpha2Code:  e.Country.Alpha2,
		Alpha3Code:  e.Country.Alpha3,
		NumericCode: e.Country.Numeric,
		CreateDate:  e.Country.CreatedAt,
		ExpiryDate:  e.Country.ExpiresAt,
		IsDeleted:   e.Country.Deleted,
	})
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, VersionAppended) error { return nil }
