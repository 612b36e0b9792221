// Package asset defines the core data model shared by every stage of the
// asset pipeline: identity, type tags, cross-asset references, dependency
// edges and the per-target cook record persisted by the registry.
package asset

import (
	"fmt"

	"github.com/google/uuid"
)

// Handle is a 128-bit identifier for an asset, stable across reimports.
// Its canonical string form is the standard 36-character UUID representation.
type Handle uuid.UUID

// NilHandle is the zero handle, used as a sentinel for "no asset".
var NilHandle = Handle(uuid.Nil)

// NewHandle generates a new random asset handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// ParseHandle parses a canonical 36-character UUID string into a Handle.
func ParseHandle(s string) (Handle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilHandle, fmt.Errorf("parse asset handle %q: %w", s, err)
	}
	return Handle(id), nil
}

// String returns the canonical 36-character form of the handle.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// IsNil reports whether h is the zero handle.
func (h Handle) IsNil() bool {
	return h == NilHandle
}

// MarshalJSON encodes the handle as its canonical string form.
func (h Handle) MarshalJSON() ([]byte, error) {
	return []byte(`"` + h.String() + `"`), nil
}

// UnmarshalJSON decodes a canonical UUID string into the handle.
func (h *Handle) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("invalid handle JSON %q", data)
	}
	parsed, err := ParseHandle(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
