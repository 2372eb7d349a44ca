// internal/providers/file/registry.go
package file

import (
	"fmt"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/logx"
	"openhours/internal/platform/registry"
)

// Auto-registro del proveedor al importar el package
func init() {
	if err := registry.Global().Register(
		"file",
		factory,
		ports.ProviderMetadata{
			Name:        "file",
			Description: "Daily schedules read from a local YAML file",
			Type:        domain.ProviderTypeFile,
		},
	); err != nil {
		logx.New().Warn("failed to register file provider", "error", err.Error())
	}
}

func factory(cfg ports.ProviderConfig, logger logx.Logger) (ports.ScheduleProvider, error) {
	if err := registry.ValidateRequiredString("schedule_path", cfg.SchedulePath); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return New(cfg.SchedulePath, logger)
}
