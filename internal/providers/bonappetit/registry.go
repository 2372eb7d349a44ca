// internal/providers/bonappetit/registry.go
package bonappetit

import (
	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/httpclient"
	"openhours/internal/platform/logx"
	"openhours/internal/platform/registry"
)

// Auto-registro del proveedor al importar el package
func init() {
	if err := registry.Global().Register(
		"bonappetit",
		factory,
		ports.ProviderMetadata{
			Name:        "bonappetit",
			Description: "Daily cafe hours from the Bon Appétit legacy cafes API",
			Type:        domain.ProviderTypeAPI,
		},
	); err != nil {
		logx.New().Warn("failed to register bonappetit provider", "error", err.Error())
	}
}

func factory(cfg ports.ProviderConfig, logger logx.Logger) (ports.ScheduleProvider, error) {
	httpCfg := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		httpCfg.Timeout = cfg.Timeout
	}
	if cfg.UserAgent != "" {
		httpCfg.UserAgent = cfg.UserAgent
	}
	httpCfg.MaxRetries = cfg.Retries
	httpCfg.RateLimit = cfg.RateLimit
	httpCfg.ProxyURL = cfg.ProxyURL

	return New(Options{
		BaseURL:    cfg.BaseURL,
		QueryParam: registry.GetStringConfig(cfg.Custom, "query_param", defaultQueryParam),
		HTTP:       httpCfg,
	}, logger)
}
