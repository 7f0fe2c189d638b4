// internal/model/report.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CustomReport is a pre-built report definition created for each workspace
// during seeding. Its tables come from an external reporting plugin and are
// not part of the workspace foreign-key cascade graph, so the sweeper has to
// clean them up explicitly.
type CustomReport struct {
	ID          uuid.UUID `db:"id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Name        string    `db:"name"`
	DataModel   string    `db:"data_model"`
	Columns     []byte    `db:"columns"`  // jsonb
	Filters     []byte    `db:"filters"`  // jsonb
	Sorts       []byte    `db:"sorts"`    // jsonb
	Settings    []byte    `db:"settings"` // jsonb
	CreatedAt   time.Time `db:"created_at"`
}

// ReportColumn, ReportFilter and ReportSort describe the jsonb payloads above.
type ReportColumn struct {
	Name       string `json:"name"`
	Label      string `json:"label"`
	Type       string `json:"type,omitempty"`
	Searchable bool   `json:"searchable,omitempty"`
}

type ReportFilter struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

type ReportSort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}
