// internal/platform/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/validator"
)

const envPrefix = "OPENHOURS_"

type Config struct {
	// Core
	Facility string `yaml:"facility"` // id, o nombre hablado resuelto por el catálogo
	Name     string `yaml:"name"`     // nombre a anunciar (override del catálogo)
	At       string `yaml:"at"`       // HH:MM, evalúa a esa hora de hoy en vez de ahora
	Timezone string `yaml:"timezone"` // IANA, "" = local
	TimeoutS int    `yaml:"timeout"`  // segundos (0 = sin timeout)
	Format   string `yaml:"format"`   // text | json | pretty | table
	Natural  bool   `yaml:"natural"`  // unidades con plural ("1 hour and 1 minute")
	All      bool   `yaml:"all"`      // status board de todo el catálogo
	Serve    bool   `yaml:"serve"`    // front-end HTTP
	LogLevel string `yaml:"log_level"`
	Workers  int    `yaml:"workers"`

	PrintVersion bool   `yaml:"-"`
	ConfigFile   string `yaml:"-"`
	EnvFile      string `yaml:"-"`

	Provider   Provider   `yaml:"provider"`
	Catalog    Catalog    `yaml:"catalog"`
	Cache      Cache      `yaml:"cache"`
	Resilience Resilience `yaml:"resilience"`
	Server     Server     `yaml:"server"`
}

type Provider struct {
	Name         string                 `yaml:"name"` // bonappetit | file
	BaseURL      string                 `yaml:"base_url"`
	SchedulePath string                 `yaml:"schedule_path"`
	ProxyURL     string                 `yaml:"proxy_url"`
	UserAgent    string                 `yaml:"user_agent"`
	Timeout      time.Duration          `yaml:"timeout"`
	Retries      int                    `yaml:"retries"`    // reintentos de la capa HTTP
	RateLimit    float64                `yaml:"rate_limit"` // req/s, 0 = sin límite
	Custom       map[string]interface{} `yaml:"custom"`
}

type Catalog struct {
	Path string `yaml:"path"` // "" = catálogo embebido
}

type Cache struct {
	Backend       string        `yaml:"backend"` // memory | redis | none
	TTL           time.Duration `yaml:"ttl"`
	Capacity      int           `yaml:"capacity"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
}

type Resilience struct {
	// Retry configuration
	MaxRetries  int           `yaml:"max_retries"`
	BackoffBase time.Duration `yaml:"backoff_base"`

	// Circuit Breaker configuration
	CircuitBreakerEnabled   bool          `yaml:"circuit_breaker"`
	CircuitBreakerThreshold int           `yaml:"circuit_breaker_threshold"`
	CircuitBreakerCooldown  time.Duration `yaml:"circuit_breaker_cooldown"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	WarmInterval time.Duration `yaml:"warm_interval"` // 0 = sin warmer
	CORSOrigins  string        `yaml:"cors_origins"`
}

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		TimeoutS: 15,
		Format:   "text",
		LogLevel: "info",
		Workers:  4,
		EnvFile:  ".env",

		Provider: Provider{
			Name:    "bonappetit",
			Timeout: 10 * time.Second,
			Retries: 0,
			Custom:  make(map[string]interface{}),
		},

		Cache: Cache{
			Backend:   "memory",
			TTL:       10 * time.Minute,
			Capacity:  256,
			RedisAddr: "localhost:6379",
		},

		Resilience: Resilience{
			MaxRetries:              2,
			BackoffBase:             500 * time.Millisecond,
			CircuitBreakerEnabled:   true,
			CircuitBreakerThreshold: 5,
			CircuitBreakerCooldown:  30 * time.Second,
		},

		Server: Server{
			Addr:         ":8080",
			WarmInterval: 5 * time.Minute,
			CORSOrigins:  "*",
		},
	}
}

// Load inicializa la configuración por capas:
// defaults -> YAML (--config) -> .env -> OPENHOURS_* -> flags.
// pflag.ErrHelp se propaga para que main imprima la ayuda.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	if v := prescan(args, "env-file", ""); v != "" {
		cfg.EnvFile = v
	}
	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return cfg, err
	}

	cfg.ConfigFile = prescan(args, "config", "c")
	if cfg.ConfigFile == "" {
		cfg.ConfigFile = getenv(envPrefix+"CONFIG", "")
	}
	if cfg.ConfigFile != "" {
		if err := loadFromFile(&cfg, cfg.ConfigFile); err != nil {
			return cfg, err
		}
	}

	loadFromEnv(&cfg)

	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	normalize(&cfg)
	return cfg, nil
}

// loadEnvFile carga un .env sin pisar variables con valor. Un archivo
// inexistente se ignora.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("%w: env file %s: %v", domain.ErrInvalidConfig, path, err)
	}
	for k, v := range vars {
		if getenv(k, "") != "" {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return fmt.Errorf("%w: env file %s: %v", domain.ErrInvalidConfig, path, err)
		}
	}
	return nil
}

// loadFromFile aplica un YAML sobre la configuración actual; las claves
// ausentes conservan su valor.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: config file: %v", domain.ErrInvalidConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return fmt.Errorf("%w: config file %s: %v", domain.ErrInvalidConfig, path, err)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(envPrefix+"FACILITY", ""); v != "" {
		cfg.Facility = v
	}
	if v := getenv(envPrefix+"NAME", ""); v != "" {
		cfg.Name = v
	}
	if v := getenv(envPrefix+"TIMEZONE", ""); v != "" {
		cfg.Timezone = v
	}
	if v := getenv(envPrefix+"TIMEOUT", ""); v != "" {
		cfg.TimeoutS = parseInt(v, cfg.TimeoutS)
	}
	if v := getenv(envPrefix+"FORMAT", ""); v != "" {
		cfg.Format = v
	}
	if v := getenv(envPrefix+"NATURAL", ""); v != "" {
		cfg.Natural = parseBool(v)
	}
	if v := getenv(envPrefix+"LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(envPrefix+"WORKERS", ""); v != "" {
		cfg.Workers = parseInt(v, cfg.Workers)
	}

	// Provider
	if v := getenv(envPrefix+"PROVIDER", ""); v != "" {
		cfg.Provider.Name = v
	}
	if v := getenv(envPrefix+"BASE_URL", ""); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := getenv(envPrefix+"SCHEDULE_PATH", ""); v != "" {
		cfg.Provider.SchedulePath = v
	}
	if v := getenv(envPrefix+"PROXY_URL", ""); v != "" {
		cfg.Provider.ProxyURL = v
	}
	if v := getenv(envPrefix+"USER_AGENT", ""); v != "" {
		cfg.Provider.UserAgent = v
	}
	if v := getenv(envPrefix+"PROVIDER_RETRIES", ""); v != "" {
		cfg.Provider.Retries = parseInt(v, cfg.Provider.Retries)
	}
	if v := getenv(envPrefix+"RATE_LIMIT", ""); v != "" {
		cfg.Provider.RateLimit = parseFloat(v, cfg.Provider.RateLimit)
	}

	// Catalog
	if v := getenv(envPrefix+"CATALOG", ""); v != "" {
		cfg.Catalog.Path = v
	}

	// Cache
	if v := getenv(envPrefix+"CACHE", ""); v != "" {
		cfg.Cache.Backend = v
	}
	if v := getenv(envPrefix+"CACHE_TTL", ""); v != "" {
		cfg.Cache.TTL = parseDuration(v, cfg.Cache.TTL)
	}
	if v := getenv(envPrefix+"CACHE_CAPACITY", ""); v != "" {
		cfg.Cache.Capacity = parseInt(v, cfg.Cache.Capacity)
	}
	if v := getenv(envPrefix+"REDIS_ADDR", ""); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := getenv(envPrefix+"REDIS_PASSWORD", ""); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := getenv(envPrefix+"REDIS_DB", ""); v != "" {
		cfg.Cache.RedisDB = parseInt(v, cfg.Cache.RedisDB)
	}

	// Resilience
	if v := getenv(envPrefix+"RESILIENCE_MAX_RETRIES", ""); v != "" {
		cfg.Resilience.MaxRetries = parseInt(v, cfg.Resilience.MaxRetries)
	}
	if v := getenv(envPrefix+"RESILIENCE_BACKOFF_BASE", ""); v != "" {
		cfg.Resilience.BackoffBase = parseDuration(v, cfg.Resilience.BackoffBase)
	}
	if v := getenv(envPrefix+"RESILIENCE_CB_ENABLED", ""); v != "" {
		cfg.Resilience.CircuitBreakerEnabled = parseBool(v)
	}
	if v := getenv(envPrefix+"RESILIENCE_CB_THRESHOLD", ""); v != "" {
		cfg.Resilience.CircuitBreakerThreshold = parseInt(v, cfg.Resilience.CircuitBreakerThreshold)
	}
	if v := getenv(envPrefix+"RESILIENCE_CB_COOLDOWN", ""); v != "" {
		cfg.Resilience.CircuitBreakerCooldown = parseDuration(v, cfg.Resilience.CircuitBreakerCooldown)
	}

	// Server
	if v := getenv(envPrefix+"ADDR", ""); v != "" {
		cfg.Server.Addr = v
	}
	if v := getenv(envPrefix+"WARM_INTERVAL", ""); v != "" {
		cfg.Server.WarmInterval = parseDuration(v, cfg.Server.WarmInterval)
	}
	if v := getenv(envPrefix+"CORS_ORIGINS", ""); v != "" {
		cfg.Server.CORSOrigins = v
	}
}

// loadFromFlags parsea flags de CLI (overrides de todo lo anterior).
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("openhours", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// Core
	fs.StringVarP(&cfg.Facility, "facility", "f", cfg.Facility, "Facility id or spoken name")
	fs.StringVarP(&cfg.Name, "name", "n", cfg.Name, "Display name to announce")
	fs.StringVar(&cfg.At, "at", cfg.At, "Evaluate at HH:MM today instead of now")
	fs.StringVar(&cfg.Timezone, "tz", cfg.Timezone, "IANA time zone of the facility")
	fs.IntVarP(&cfg.TimeoutS, "timeout", "T", cfg.TimeoutS, "Global timeout in seconds (0 = none)")
	fs.StringVarP(&cfg.Format, "format", "o", cfg.Format, "Output format: text|json|pretty|table")
	fs.BoolVar(&cfg.Natural, "natural", cfg.Natural, "Pluralize duration units")
	fs.BoolVarP(&cfg.All, "all", "a", cfg.All, "Status board for every catalog facility")
	fs.BoolVar(&cfg.Serve, "serve", cfg.Serve, "Run the HTTP front-end")
	fs.StringVarP(&cfg.LogLevel, "log-level", "l", cfg.LogLevel, "debug|info|warn|error")
	fs.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Concurrent checks for --all")
	fs.BoolVarP(&cfg.PrintVersion, "version", "v", false, "Print version and exit")
	fs.StringVarP(&cfg.ConfigFile, "config", "c", cfg.ConfigFile, "YAML config file")
	fs.StringVar(&cfg.EnvFile, "env-file", cfg.EnvFile, "dotenv file")

	// Provider
	fs.StringVar(&cfg.Provider.Name, "provider", cfg.Provider.Name, "Schedule provider: bonappetit|file")
	fs.StringVar(&cfg.Provider.BaseURL, "base-url", cfg.Provider.BaseURL, "Provider base URL")
	fs.StringVar(&cfg.Provider.SchedulePath, "schedule", cfg.Provider.SchedulePath, "YAML schedule file (file provider)")
	fs.StringVarP(&cfg.Provider.ProxyURL, "proxy", "p", cfg.Provider.ProxyURL, "Proxy URL for outbound requests")
	fs.Float64Var(&cfg.Provider.RateLimit, "rate-limit", cfg.Provider.RateLimit, "Provider requests per second (0 = unlimited)")

	// Catalog
	fs.StringVar(&cfg.Catalog.Path, "catalog", cfg.Catalog.Path, "Facility catalog YAML")

	// Cache
	fs.StringVar(&cfg.Cache.Backend, "cache", cfg.Cache.Backend, "Cache backend: memory|redis|none")
	fs.DurationVar(&cfg.Cache.TTL, "cache-ttl", cfg.Cache.TTL, "Schedule cache TTL")
	fs.StringVar(&cfg.Cache.RedisAddr, "redis-addr", cfg.Cache.RedisAddr, "Redis address")
	fs.IntVar(&cfg.Cache.RedisDB, "redis-db", cfg.Cache.RedisDB, "Redis database")

	// Resilience
	fs.IntVarP(&cfg.Resilience.MaxRetries, "retries", "r", cfg.Resilience.MaxRetries, "Max retries per fetch")
	fs.BoolVar(&cfg.Resilience.CircuitBreakerEnabled, "circuit-breaker", cfg.Resilience.CircuitBreakerEnabled, "Enable circuit breaker")

	// Server
	fs.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	fs.DurationVar(&cfg.Server.WarmInterval, "warm-interval", cfg.Server.WarmInterval, "Cache warm interval (0 = off)")

	return fs.Parse(args)
}

// prescan busca --name/-short en args antes del parseo completo.
func prescan(args []string, long, short string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		for _, name := range []string{"--" + long, "-" + short} {
			if name == "-" {
				continue
			}
			if a == name && i+1 < len(args) {
				return args[i+1]
			}
			if strings.HasPrefix(a, name+"=") {
				return strings.TrimPrefix(a, name+"=")
			}
		}
	}
	return ""
}

func normalize(c *Config) {
	c.Facility = strings.TrimSpace(c.Facility)
	c.Name = strings.TrimSpace(c.Name)
	c.At = strings.TrimSpace(c.At)
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Provider.Name = strings.ToLower(strings.TrimSpace(c.Provider.Name))
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))

	if c.Provider.BaseURL != "" {
		c.Provider.BaseURL = validator.NormalizeURL(c.Provider.BaseURL)
	}
	if c.Provider.Custom == nil {
		c.Provider.Custom = make(map[string]interface{})
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TimeoutS < 0 {
		c.TimeoutS = 0
	}
	if c.Format == "" {
		c.Format = "text"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.Capacity < 1 {
		c.Cache.Capacity = 256
	}
	if c.Resilience.MaxRetries < 0 {
		c.Resilience.MaxRetries = 0
	}
	if c.Resilience.BackoffBase < 0 {
		c.Resilience.BackoffBase = 500 * time.Millisecond
	}
	if c.Resilience.CircuitBreakerThreshold < 1 {
		c.Resilience.CircuitBreakerThreshold = 5
	}
	if c.Server.WarmInterval < 0 {
		c.Server.WarmInterval = 0
	}
}

// Validate revisa combinaciones que normalize no puede corregir.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json", "pretty", "table":
	default:
		return fmt.Errorf("%w: format %q (want text|json|pretty|table)", domain.ErrInvalidConfig, c.Format)
	}
	switch c.Cache.Backend {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("%w: cache backend %q (want memory|redis|none)", domain.ErrInvalidConfig, c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && !validator.IsHostPort(c.Cache.RedisAddr) {
		return fmt.Errorf("%w: redis address %q", domain.ErrInvalidConfig, c.Cache.RedisAddr)
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("%w: provider name is required", domain.ErrInvalidConfig)
	}
	if c.Provider.BaseURL != "" && !validator.IsHTTPURL(c.Provider.BaseURL) {
		return fmt.Errorf("%w: base url %q", domain.ErrInvalidConfig, c.Provider.BaseURL)
	}
	if c.Provider.ProxyURL != "" && !validator.IsURL(c.Provider.ProxyURL) {
		return fmt.Errorf("%w: proxy url %q", domain.ErrInvalidConfig, c.Provider.ProxyURL)
	}
	if c.Provider.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must be >= 0", domain.ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.At != "" {
		if _, err := domain.ParseClockTime(c.At); err != nil {
			return fmt.Errorf("%w: --at: %v", domain.ErrInvalidConfig, err)
		}
	}
	if c.Serve {
		if !validator.IsListenAddr(c.Server.Addr) {
			return fmt.Errorf("%w: server address %q", domain.ErrInvalidConfig, c.Server.Addr)
		}
		return nil
	}
	if !c.All && validator.IsEmpty(c.Facility) {
		return fmt.Errorf("%w: --facility is required (or use --all / --serve)", domain.ErrInvalidConfig)
	}
	return nil
}

// Timeout devuelve un time.Duration útil si prefieres trabajar con duración.
func (c Config) Timeout() time.Duration {
	if c.TimeoutS <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutS) * time.Second
}

// Location resuelve la zona horaria configurada; "" es la local.
func (c Config) Location() (*time.Location, error) {
	switch strings.TrimSpace(c.Timezone) {
	case "":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", domain.ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// ProviderConfig construye la configuración que recibe la factory del registry.
func (c Config) ProviderConfig() ports.ProviderConfig {
	custom := make(map[string]interface{}, len(c.Provider.Custom))
	for k, v := range c.Provider.Custom {
		custom[k] = v
	}
	return ports.ProviderConfig{
		BaseURL:      c.Provider.BaseURL,
		SchedulePath: c.Provider.SchedulePath,
		Timeout:      c.Provider.Timeout,
		Retries:      c.Provider.Retries,
		RateLimit:    c.Provider.RateLimit,
		ProxyURL:     c.Provider.ProxyURL,
		UserAgent:    c.Provider.UserAgent,
		Custom:       custom,
	}
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// parseDuration acepta "30s"/"5m" o un entero de segundos.
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second
	}
	return def
}
