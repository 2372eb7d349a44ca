// internal/core/domain/enums.go
package domain

import "strings"

// DailyStatus es el estado agregado del día publicado por el proveedor.
// Solo DailyStatusClosed tiene semántica propia: anula la lista de ventanas.
type DailyStatus string

const (
	// DailyStatusOpen indica que las ventanas del día deciden el estado
	DailyStatusOpen DailyStatus = "open"

	// DailyStatusClosed indica que la instalación está cerrada todo el día
	DailyStatusClosed DailyStatus = "closed"
)

// ParseDailyStatus normaliza el string del proveedor. Un valor vacío se
// trata como abierto; valores desconocidos se conservan tal cual y no
// cortocircuitan el escaneo de ventanas.
func ParseDailyStatus(s string) DailyStatus {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "", "open":
		return DailyStatusOpen
	case "closed":
		return DailyStatusClosed
	default:
		return DailyStatus(norm)
	}
}

// IsClosed reporta si el día completo está cerrado.
func (s DailyStatus) IsClosed() bool {
	return s == DailyStatusClosed
}

// String retorna la representación string del estado.
func (s DailyStatus) String() string {
	return string(s)
}

// ProviderType describe cómo obtiene horarios un proveedor.
type ProviderType string

const (
	// ProviderTypeAPI consulta un servicio HTTP remoto
	ProviderTypeAPI ProviderType = "api"

	// ProviderTypeFile lee horarios desde un archivo local
	ProviderTypeFile ProviderType = "file"
)

// String retorna la representación string del tipo.
func (t ProviderType) String() string {
	return string(t)
}
