// internal/providers/bonappetit/bonappetit.go
package bonappetit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"openhours/internal/core/domain"
	"openhours/internal/core/ports"
	"openhours/internal/platform/errors"
	"openhours/internal/platform/httpclient"
	"openhours/internal/platform/logx"
)

const (
	// DefaultBaseURL es el endpoint legacy de cafes.
	DefaultBaseURL = "https://legacy.cafebonappetit.com/api/2/cafes"

	defaultQueryParam = "cafe"
)

// Provider lee el horario del día de una cafetería Bon Appétit. Only the
// first day in the response is used, which the API reports as today.
type Provider struct {
	client     *httpclient.Client
	baseURL    string
	queryParam string
	logger     logx.Logger
}

var _ ports.ScheduleProvider = (*Provider)(nil)

// Options configura el Provider.
type Options struct {
	BaseURL    string
	QueryParam string
	HTTP       httpclient.Config
}

// New crea un Provider.
func New(opts Options, logger logx.Logger) (*Provider, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.QueryParam == "" {
		opts.QueryParam = defaultQueryParam
	}

	u, err := url.Parse(opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: bonappetit base url %q", domain.ErrInvalidConfig, opts.BaseURL)
	}

	client, err := httpclient.New(opts.HTTP, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	return &Provider{
		client:     client,
		baseURL:    opts.BaseURL,
		queryParam: opts.QueryParam,
		logger:     logger.With("provider", "bonappetit"),
	}, nil
}

// Name retorna el nombre del proveedor.
func (p *Provider) Name() string {
	return "bonappetit"
}

// FetchSchedule consulta la API y convierte el primer día en un DaySchedule.
func (p *Provider) FetchSchedule(ctx context.Context, facilityID string, day time.Time) (*domain.DaySchedule, error) {
	endpoint, err := p.endpoint(facilityID)
	if err != nil {
		return nil, err
	}

	body, err := p.client.FetchJSON(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var resp cafesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: cafe %s: %w", errors.ErrInvalidResponse, facilityID, err)
	}

	schedule, err := toSchedule(facilityID, resp, day.Location())
	if err != nil {
		return nil, err
	}

	p.logger.Debug("schedule fetched",
		"facility", facilityID,
		"status", schedule.Status,
		"windows", len(schedule.Windows),
	)
	return schedule, nil
}

func (p *Provider) endpoint(facilityID string) (string, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set(p.queryParam, facilityID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// toSchedule extrae cafes[id].days[0]. The date, when present, is parsed in
// loc so it compares with the caller's local day.
func toSchedule(facilityID string, resp cafesResponse, loc *time.Location) (*domain.DaySchedule, error) {
	c, ok := resp.Cafes[facilityID]
	if !ok {
		return nil, fmt.Errorf("%w: cafe %s not in response", domain.ErrScheduleUnavailable, facilityID)
	}
	if len(c.Days) == 0 {
		return nil, fmt.Errorf("%w: cafe %s has no days", domain.ErrScheduleUnavailable, facilityID)
	}
	today := c.Days[0]

	schedule := &domain.DaySchedule{
		FacilityID:   facilityID,
		FacilityName: c.Name,
		Status:       domain.ParseDailyStatus(today.Status),
		Windows:      make([]domain.TimeWindow, 0, len(today.Dayparts)),
	}

	if today.Date != "" {
		if loc == nil {
			loc = time.Local
		}
		if d, err := time.ParseInLocation(time.DateOnly, today.Date, loc); err == nil {
			schedule.Date = d
		}
	}

	if schedule.ClosedAllDay() {
		return schedule, nil
	}

	for i, part := range today.Dayparts {
		w, err := domain.NewTimeWindow(part.StartTime, part.EndTime, part.Label)
		if err != nil {
			return nil, fmt.Errorf("cafe %s daypart %d: %w", facilityID, i, err)
		}
		schedule.Windows = append(schedule.Windows, w)
	}
	return schedule, nil
}

// Close no mantiene recursos abiertos.
func (p *Provider) Close() error {
	return nil
}
