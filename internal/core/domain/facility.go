// internal/core/domain/facility.go
package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var facilityIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// Facility identifies a place with a published daily schedule.
type Facility struct {
	ID      string
	Name    string
	Aliases []string
}

// NewFacility crea una facility con id y nombre normalizados.
func NewFacility(id, name string) Facility {
	return Facility{
		ID:   strings.TrimSpace(id),
		Name: strings.TrimSpace(name),
	}
}

// Validate checks the id is usable as a provider key.
func (f Facility) Validate() error {
	if f.ID == "" {
		return ErrEmptyFacilityID
	}
	if !facilityIDPattern.MatchString(f.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidFacilityID, f.ID)
	}
	return nil
}

// DisplayName is the name spoken back to the user.
func (f Facility) DisplayName() string {
	if f.Name != "" {
		return f.Name
	}
	return f.ID
}
