// Package domain contains entity without logic, just meta-data
package domain

// ConnID is the transport-assigned identity of a live connection.
// It is opaque here; the registry is its single owner.
type ConnID string

// Participant ties a live connection to a display name.
// Entries are never mutated after creation; name changes are not supported.
type Participant struct {
	ConnID ConnID `json:"-"`
	Name   string `json:"name"`
}
