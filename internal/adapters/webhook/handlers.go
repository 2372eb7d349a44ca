// internal/adapters/webhook/handlers.go
package webhook

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"openhours/internal/adapters/output"
	"openhours/internal/core/domain"
	"openhours/internal/core/usecases"
)

const (
	intentLaunch  = "launch"
	intentAskCafe = "askcafename"
	intentCafe    = "cafe"

	askPrompt   = "Hey there! Which dining hall are you interested in?"
	askReprompt = "Hi there! Where do you want to eat?"
)

type facilityDTO struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// FulfillmentRequest es lo que envía la plataforma de voz. Basta con
// facility_id o con facility (nombre hablado, resuelto por el catálogo).
type FulfillmentRequest struct {
	Intent     string `json:"intent"`
	FacilityID string `json:"facility_id"`
	Facility   string `json:"facility"`
	Name       string `json:"name"`
}

// FulfillmentResponse es la respuesta hablada.
type FulfillmentResponse struct {
	Speech     string `json:"speech"`
	Reprompt   string `json:"reprompt,omitempty"`
	EndSession bool   `json:"end_session"`

	FacilityID string `json:"facility_id,omitempty"`
	IsOpen     bool   `json:"is_open"`
	Available  bool   `json:"available"`
	Duration   string `json:"duration,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "ok",
		"facilities": len(s.catalog.All()),
		"time":       s.service.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleFacilities(c *fiber.Ctx) error {
	all := s.catalog.All()
	out := make([]facilityDTO, 0, len(all))
	for _, f := range all {
		out = append(out, facilityDTO{ID: f.ID, Name: f.DisplayName(), Aliases: f.Aliases})
	}
	return c.JSON(out)
}

// handleStatus: GET /v1/facilities/:id/status[?name=...&at=HH:MM]
func (s *Server) handleStatus(c *fiber.Ctx) error {
	facility := s.facilityByID(c.Params("id"))
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		facility.Name = name
	}

	now := s.service.Now()
	if at := c.Query("at"); at != "" {
		tod, err := domain.ParseClockTime(at)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid at: "+err.Error())
		}
		now = tod.On(now)
	}

	report, err := s.service.CheckAt(c.UserContext(), facility, now)
	return c.Status(statusCode(err)).JSON(output.NewReportDTO(report, err))
}

// handleFulfillment: POST /v1/fulfillment
func (s *Server) handleFulfillment(c *fiber.Ctx) error {
	var req FulfillmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse request body")
	}

	switch normalizeIntent(req.Intent) {
	case intentLaunch, intentAskCafe:
		return c.JSON(askResponse(askPrompt))
	}

	facility, ok := s.resolveFacility(req)
	if !ok {
		if req.FacilityID == "" && req.Facility == "" {
			return c.JSON(askResponse(askPrompt))
		}
		return c.JSON(askResponse("Sorry, I don't know that dining hall. Which one are you interested in?"))
	}

	report, err := s.service.Check(c.UserContext(), facility)
	if report == nil {
		return fiber.NewError(statusCode(err), err.Error())
	}

	resp := FulfillmentResponse{
		Speech:     report.Message,
		EndSession: true,
		FacilityID: report.Facility.ID,
		IsOpen:     report.Result.IsOpen,
		Available:  report.Available(),
		Reason:     output.Reason(err),
	}
	if report.HasDuration {
		resp.Duration = report.Duration
	}
	if errors.Is(err, domain.ErrMalformedWindow) {
		resp.Speech = usecases.AnnounceUnavailable(facility.DisplayName())
	}
	return c.JSON(resp)
}

// resolveFacility: id explícito primero (con nombre del catálogo si existe),
// luego el nombre hablado contra el catálogo.
func (s *Server) resolveFacility(req FulfillmentRequest) (domain.Facility, bool) {
	var facility domain.Facility
	switch {
	case strings.TrimSpace(req.FacilityID) != "":
		facility = s.facilityByID(req.FacilityID)
	case strings.TrimSpace(req.Facility) != "":
		f, ok := s.catalog.Match(req.Facility)
		if !ok {
			return domain.Facility{}, false
		}
		facility = f
	default:
		return domain.Facility{}, false
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		facility.Name = name
	}
	return facility, true
}

func (s *Server) facilityByID(id string) domain.Facility {
	id = strings.TrimSpace(id)
	if f, ok := s.catalog.Lookup(id); ok {
		return f
	}
	return domain.NewFacility(id, "")
}

func askResponse(speech string) FulfillmentResponse {
	return FulfillmentResponse{Speech: speech, Reprompt: askReprompt}
}

// normalizeIntent acepta "CafeIntent", "cafe_intent", "LAUNCH", etc.
func normalizeIntent(intent string) string {
	n := strings.ToLower(strings.TrimSpace(intent))
	n = strings.ReplaceAll(n, "_", "")
	n = strings.TrimSuffix(n, "intent")
	switch n {
	case "", "cafename":
		return intentCafe
	}
	return n
}

func statusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, domain.ErrMalformedWindow):
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrScheduleUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrEmptyFacilityID),
		errors.Is(err, domain.ErrInvalidFacilityID),
		errors.Is(err, domain.ErrUnknownFacility):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
