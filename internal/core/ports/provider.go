// internal/core/ports/provider.go
package ports

import (
	"context"
	"time"

	"openhours/internal/core/domain"
)

// ScheduleProvider es el port para cualquier origen de horarios diarios
// (API remota, archivo local). Fetch es el único punto bloqueante del flujo.
type ScheduleProvider interface {
	// Name retorna el nombre único del proveedor (ej: "bonappetit", "file")
	Name() string

	// FetchSchedule returns the facility's schedule for the calendar day of
	// day. A missing facility is reported as domain.ErrScheduleUnavailable;
	// unparseable windows as domain.ErrMalformedWindow.
	FetchSchedule(ctx context.Context, facilityID string, day time.Time) (*domain.DaySchedule, error)

	// Close libera recursos utilizados por el proveedor
	Close() error
}

// ProviderConfig contiene la configuración de un proveedor.
type ProviderConfig struct {
	// BaseURL para proveedores HTTP
	BaseURL string

	// SchedulePath para proveedores basados en archivo
	SchedulePath string

	// Timeout por petición
	Timeout time.Duration

	// Retries de la capa HTTP (0 = sin reintentos)
	Retries int

	// RateLimit peticiones por segundo (0 = sin límite)
	RateLimit float64

	// ProxyURL opcional para peticiones salientes
	ProxyURL string

	// UserAgent enviado al proveedor
	UserAgent string

	// Custom contiene opciones específicas del proveedor
	Custom map[string]interface{}
}

// ProviderMetadata contiene metadatos sobre un proveedor.
type ProviderMetadata struct {
	Name        string
	Description string
	Type        domain.ProviderType
}
