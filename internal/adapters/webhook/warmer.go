// internal/adapters/webhook/warmer.go
package webhook

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// startWarmer programa Warm cada WarmInterval. No-op sin Refresher o sin
// intervalo.
func (s *Server) startWarmer(ctx context.Context) error {
	if s.refresher == nil || s.opts.WarmInterval <= 0 {
		return nil
	}

	s.cron = cron.New()
	expr := fmt.Sprintf("@every %s", s.opts.WarmInterval)
	if _, err := s.cron.AddFunc(expr, func() { s.Warm(ctx) }); err != nil {
		return fmt.Errorf("schedule cache warmer: %w", err)
	}
	s.cron.Start()

	s.logger.Info("cache warmer started", "every", s.opts.WarmInterval)

	// primer pase inmediato para no esperar un intervalo completo
	go s.Warm(ctx)
	return nil
}

func (s *Server) stopWarmer() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Warm re-fetches every catalog facility into the cache and returns how many
// succeeded. Failures are logged and skipped.
func (s *Server) Warm(ctx context.Context) int {
	if s.refresher == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.WarmTimeout)
	defer cancel()

	start := time.Now()
	day := s.service.Now()
	facilities := s.catalog.All()

	ok := 0
	for _, f := range facilities {
		if ctx.Err() != nil {
			break
		}
		if err := s.refresher.Refresh(ctx, f.ID, day); err != nil {
			s.logger.Warn("warm failed", "facility", f.ID, "error", err.Error())
			continue
		}
		ok++
	}

	s.logger.Debug("cache warmed",
		"facilities", len(facilities),
		"ok", ok,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return ok
}
