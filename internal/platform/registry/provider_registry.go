// internal/platform/registry/provider_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/logx"
)

// ProviderRegistry gestiona el registro y construcción de proveedores de
// horarios. Cada paquete bajo internal/providers se registra desde init().
type ProviderRegistry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
	metadata  map[string]ports.ProviderMetadata
	logger    logx.Logger
}

// ProviderFactory crea una instancia de ScheduleProvider.
type ProviderFactory func(cfg ports.ProviderConfig, logger logx.Logger) (ports.ScheduleProvider, error)

var (
	globalRegistry *ProviderRegistry
	once           sync.Once
)

// Global retorna la instancia global del registry.
func Global() *ProviderRegistry {
	once.Do(func() {
		globalRegistry = NewProviderRegistry(logx.NewSilent())
	})
	return globalRegistry
}

// NewProviderRegistry crea un registry vacío.
func NewProviderRegistry(logger logx.Logger) *ProviderRegistry {
	return &ProviderRegistry{
		factories: make(map[string]ProviderFactory),
		metadata:  make(map[string]ports.ProviderMetadata),
		logger:    logger.With("component", "provider-registry"),
	}
}

// Register registra una factory con su metadata.
func (r *ProviderRegistry) Register(name string, factory ProviderFactory, meta ports.ProviderMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for provider %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("provider %s is already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("provider registered", "name", name, "type", meta.Type)

	return nil
}

// Build construye el proveedor name con cfg.
func (r *ProviderRegistry) Build(name string, cfg ports.ProviderConfig, logger logx.Logger) (ports.ScheduleProvider, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q (registered: %v)", domain.ErrProviderNotFound, name, r.List())
	}

	provider, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build provider %s: %w", name, err)
	}

	r.logger.Debug("provider built", "name", name, "base_url", cfg.BaseURL, "path", cfg.SchedulePath)
	return provider, nil
}

// List retorna los nombres registrados, ordenados.
func (r *ProviderRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna el metadata de un proveedor.
func (r *ProviderRegistry) GetMetadata(name string) (ports.ProviderMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, exists := r.metadata[name]
	return meta, exists
}

// IsRegistered verifica si un proveedor está registrado.
func (r *ProviderRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// Clear elimina todos los proveedores (útil para testing).
func (r *ProviderRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories = make(map[string]ProviderFactory)
	r.metadata = make(map[string]ports.ProviderMetadata)
}
