// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
openhours - is it open right now?

USAGE:
  openhours -f <facility> [options]
  openhours --all [options]
  openhours --serve [options]

CORE OPTIONS:
  -f, --facility string    Facility id (e.g. 1447) or spoken name (e.g. "the commons")
  -n, --name string        Name to announce (default: catalog or provider name)
      --at HH:MM           Evaluate at this time today instead of now
      --tz string          IANA time zone of the facility (default: local)
  -T, --timeout int        Global timeout in seconds, 0=no timeout (default: 15)
  -o, --format string      text | json | pretty | table (default: text)
      --natural            "1 hour and 1 minute" instead of "1 hours and 1 minutes"
  -a, --all                Check every facility in the catalog
  -w, --workers int        Concurrent checks for --all (default: 4)

PROVIDER OPTIONS:
      --provider string    bonappetit | file (default: bonappetit)
      --base-url string    Provider base URL
      --schedule string    YAML schedule file for the file provider
  -p, --proxy string       HTTP(S)/SOCKS5 proxy URL (optional)
      --rate-limit float   Requests per second to the provider, 0=unlimited
      --catalog string     Facility catalog YAML (default: built-in)

CACHE OPTIONS:
      --cache string       memory | redis | none (default: memory)
      --cache-ttl dur      Schedule cache TTL (default: 10m)
      --redis-addr string  Redis address (default: localhost:6379)
      --redis-db int       Redis database (default: 0)

RESILIENCE OPTIONS:
  -r, --retries int        Max retries per fetch (default: 2)
      --circuit-breaker    Enable circuit breaker (default: true)

SERVER OPTIONS:
      --serve              Run the HTTP front-end
      --addr string        Listen address (default: :8080)
      --warm-interval dur  Pre-fetch catalog schedules every interval, 0=off (default: 5m)

INFO:
  -c, --config string      YAML config file
      --env-file string    dotenv file (default: .env)
  -l, --log-level string   debug | info | warn | error (default: info)
  -v, --version            Print version information and exit
  -h, --help               Show this help message

EXAMPLES:
  openhours -f 1447
  openhours -f "the commons" --at 10:30 -o pretty
  openhours --all -o table
  openhours --provider file --schedule configs/schedules.example.yaml -f 1447
  openhours --serve --addr :9000 --cache redis

ENVIRONMENT VARIABLES:
  Most options can be set with the OPENHOURS_ prefix:

  OPENHOURS_FACILITY=1447           Facility
  OPENHOURS_TIMEZONE=America/Chicago
  OPENHOURS_PROVIDER=file           Provider
  OPENHOURS_SCHEDULE_PATH=/path     Schedule file
  OPENHOURS_CACHE=redis             Cache backend
  OPENHOURS_REDIS_ADDR=host:6379    Redis address
  OPENHOURS_ADDR=:8080              Listen address
  OPENHOURS_LOG_LEVEL=debug         Log level

  Note: CLI flags override environment variables, which override the config file.

EXIT CODES:
  0  status reported
  1  the check failed (provider unavailable, malformed schedule)
  2  usage or configuration error
`

// PrintHelp escribe la ayuda en w.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion escribe la información de versión en w.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "openhours %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
}
