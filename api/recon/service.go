package recon

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"

	"CatalystPaySaas/internal/jobs"
	"CatalystPaySaas/internal/serviceiface"
)

// ReconService owns the submission endpoint, the roster cache and its
// scheduled refresher.
type ReconService struct {
	config map[string]interface{}
	cron   *cron.Cron
}

func NewReconService(cfg map[string]interface{}) serviceiface.Service {
	return &ReconService{config: cfg}
}

func (s *ReconService) Name() string {
	return "recon"
}

func (s *ReconService) Start() error {
	deps := BuildDependencies(s.config)

	// Warm the roster cache in the background; submissions that arrive before
	// the first fetch completes fall back to form-supplied fields.
	go func() {
		if err := deps.Store.RefreshInto(context.Background(), deps.Cache); err != nil {
			log.Printf("[Recon] initial roster fetch failed: %v", err)
		}
	}()

	refreshCfg := jobs.NewDefaultRosterRefreshConfig()
	refreshCfg.Schedule = cfgString(s.config, "roster_schedule", refreshCfg.Schedule)
	refreshCfg.TimeZone = cfgString(s.config, "timezone", refreshCfg.TimeZone)
	c, err := jobs.StartRosterRefresher(refreshCfg, func() error {
		return deps.Store.RefreshInto(context.Background(), deps.Cache)
	})
	if err != nil {
		return err
	}
	s.cron = c

	go StartReconService(deps, s.config)
	return nil
}

func (s *ReconService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}
