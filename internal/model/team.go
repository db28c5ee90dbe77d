package model

import "github.com/google/uuid"

// Team is a stable entity independent of any competition. It is created on
// first observation and never auto-deleted (spec.md §3).
type Team struct {
	ID             uuid.UUID
	Name           string // canonical name, unique within the active scope
	ExternalIDs    map[string]string
	Nationality    string
	Confederation  string
}

// NewTeam creates a Team with a freshly generated identifier.
func NewTeam(name string) *Team {
	return &Team{
		ID:          uuid.New(),
		Name:        name,
		ExternalIDs: make(map[string]string),
	}
}
