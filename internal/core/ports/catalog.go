// internal/core/ports/catalog.go
package ports

import "openhours/internal/core/domain"

// FacilityCatalog maps identifiers and spoken names to facilities.
type FacilityCatalog interface {
	Lookup(id string) (domain.Facility, bool)
	Match(spoken string) (domain.Facility, bool)
	All() []domain.Facility
}
