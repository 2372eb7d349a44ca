// internal/providers/file/file.go
package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/logx"
)

// Provider sirve horarios desde un archivo YAML local:
//
//	facilities:
//	  "1447":
//	    name: Commons Cafe
//	    status: open
//	    windows:
//	      - {start: "07:00", end: "10:00", label: Breakfast}
//	    weekly:
//	      sunday: {status: closed}
//
// A weekly entry, when present for the requested weekday, replaces the
// default status and windows.
type Provider struct {
	path   string
	logger logx.Logger

	mu         sync.RWMutex
	facilities map[string]facilityDoc
}

var _ ports.ScheduleProvider = (*Provider)(nil)

type document struct {
	Facilities map[string]facilityDoc `yaml:"facilities"`
}

type facilityDoc struct {
	Name    string            `yaml:"name"`
	Default dayDoc            `yaml:",inline"`
	Weekly  map[string]dayDoc `yaml:"weekly"`
}

type dayDoc struct {
	Status  string      `yaml:"status"`
	Windows []windowDoc `yaml:"windows"`
}

type windowDoc struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
	Label string `yaml:"label"`
}

// New lee y valida path.
func New(path string, logger logx.Logger) (*Provider, error) {
	p := &Provider{path: path, logger: logger.With("provider", "file")}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload vuelve a leer el archivo. Every window is parsed up front so a
// bad file fails here and not on the first query.
func (p *Provider) Reload() error {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("%w: schedule file: %w", domain.ErrInvalidConfig, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: schedule file %s: %w", domain.ErrInvalidConfig, p.path, err)
	}

	facilities := make(map[string]facilityDoc, len(doc.Facilities))
	for id, f := range doc.Facilities {
		if _, err := f.Default.toSchedule(id); err != nil {
			return fmt.Errorf("schedule file %s: facility %s: %w", p.path, id, err)
		}
		weekly := make(map[string]dayDoc, len(f.Weekly))
		for name, d := range f.Weekly {
			wd := strings.ToLower(strings.TrimSpace(name))
			if _, ok := weekdays[wd]; !ok {
				return fmt.Errorf("%w: schedule file %s: facility %s: unknown weekday %q", domain.ErrInvalidConfig, p.path, id, name)
			}
			if _, err := d.toSchedule(id); err != nil {
				return fmt.Errorf("schedule file %s: facility %s %s: %w", p.path, id, wd, err)
			}
			weekly[wd] = d
		}
		f.Weekly = weekly
		facilities[id] = f
	}

	p.mu.Lock()
	p.facilities = facilities
	p.mu.Unlock()

	p.logger.Debug("schedule file loaded", "path", p.path, "facilities", len(facilities))
	return nil
}

// Name retorna el nombre del proveedor.
func (p *Provider) Name() string {
	return "file"
}

// FetchSchedule devuelve el horario de facilityID para el día de la semana
// de day.
func (p *Provider) FetchSchedule(ctx context.Context, facilityID string, day time.Time) (*domain.DaySchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	f, ok := p.facilities[facilityID]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: facility %s not in %s", domain.ErrScheduleUnavailable, facilityID, p.path)
	}

	d := f.Default
	if override, ok := f.Weekly[strings.ToLower(day.Weekday().String())]; ok {
		d = override
	}

	s, err := d.toSchedule(facilityID)
	if err != nil {
		return nil, err
	}
	s.FacilityName = f.Name
	s.Date = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s, nil
}

// Close no mantiene recursos abiertos.
func (p *Provider) Close() error {
	return nil
}

func (d dayDoc) toSchedule(id string) (*domain.DaySchedule, error) {
	s := &domain.DaySchedule{
		FacilityID: id,
		Status:     domain.ParseDailyStatus(d.Status),
		Windows:    make([]domain.TimeWindow, 0, len(d.Windows)),
	}
	for i, w := range d.Windows {
		tw, err := domain.NewTimeWindow(w.Start, w.End, w.Label)
		if err != nil {
			return nil, fmt.Errorf("window %d: %w", i, err)
		}
		s.Windows = append(s.Windows, tw)
	}
	return s, nil
}

var weekdays = map[string]struct{}{
	"sunday": {}, "monday": {}, "tuesday": {}, "wednesday": {},
	"thursday": {}, "friday": {}, "saturday": {},
}
