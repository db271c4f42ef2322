package analysis

import (
	"time"

	"github.com/google/uuid"
)

// Run ties a resolved configuration to a unique run identity so downstream
// components can tag artifacts (encodings, refits, reports) per run.
type Run struct {
	ID      string
	Name    string
	Started time.Time
	Config  *RootConfig
}

// NewRun stamps cfg with a fresh run ID. The configuration itself is shared,
// not copied; it is immutable by contract.
func NewRun(cfg *RootConfig) Run {
	return Run{
		ID:      uuid.New().String(),
		Name:    cfg.Name,
		Started: time.Now().UTC(),
		Config:  cfg,
	}
}
