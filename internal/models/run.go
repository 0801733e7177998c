// Package models holds the persistence-layer types distinct from the
// optimizer's own in-memory value types (internal/optimizer). Nothing here
// is consumed by the solve loop; it exists purely for auditability of past
// runs, per SPEC_FULL.md's "Run history" supplemented feature.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// OptimizationRun records one call to the lineup generator: what was asked
// for, which backend served it, and how long it took. It never stores the
// player pool or solved lineups themselves — those are request-scoped and
// not a durable domain object (see SPEC_FULL.md §4).
type OptimizationRun struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Site  string `gorm:"size:16;index" json:"site"`
	Sport string `gorm:"size:16;index" json:"sport"`

	Solver        string `gorm:"size:16" json:"solver"`
	RequestDigest string `gorm:"size:64;index" json:"requestDigest"`

	NumberOfLineupsRequested int `json:"numberOfLineupsRequested"`
	LineupsProduced          int `json:"lineupsProduced"`

	DurationMillis int64 `json:"durationMillis"`

	Failed       bool   `json:"failed"`
	ErrorMessage string `gorm:"size:512" json:"errorMessage,omitempty"`

	// Constraints is a compact snapshot of the normalized request for
	// debugging ("why did this only return 3 lineups"), stored as JSON
	// rather than a dozen extra columns.
	Constraints datatypes.JSON `json:"constraints,omitempty"`
}

func (OptimizationRun) TableName() string {
	return "optimization_runs"
}
