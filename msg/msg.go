// Package msg defines the app-level tea.Msg types of the feed client.
// It has no upstream imports (client, snapshot) to avoid import cycles.
package msg

import (
	"encoding/json"
	"time"
)

// -- Lifecycle --

// HealthResult from the initial health check.
type HealthResult struct {
	Status        string
	Version       string
	UptimeSeconds int64
	Err           error
}

// Seed is a cached first page read from the snapshot store.
type Seed struct {
	Items   json.RawMessage
	HasMore bool
	SavedAt time.Time
}

// StartupResult bundles the health check and the snapshot reads that run in
// parallel on launch. Seeds is keyed by feed name; feeds without a snapshot
// are absent.
type StartupResult struct {
	Health HealthResult
	Seeds  map[string]Seed
}

// -- Feed actions --

// CallDeleted reports the outcome of DELETE /api/v1/calls/{id}.
type CallDeleted struct {
	ID  string
	Err error
}

// SnapshotSaved reports the outcome of a snapshot write or removal;
// successes are silent.
type SnapshotSaved struct {
	Feed string
	Err  error
}
