package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"CatalystPaySaas/internal/config"
	"CatalystPaySaas/internal/logger"
)

// RosterRefreshConfig controls the scheduled roster re-fetch.
type RosterRefreshConfig struct {
	Schedule string
	TimeZone string
}

func NewDefaultRosterRefreshConfig() RosterRefreshConfig {
	return RosterRefreshConfig{
		Schedule: config.DefaultRosterSchedule,
		TimeZone: config.DefaultTimeZone,
	}
}

// StartRosterRefresher schedules refresh on the given cron spec so the cached
// roster tracks manual edits to the ledger without a submission having to pay
// for the download. The returned cron is already running; the caller owns
// stopping it.
func StartRosterRefresher(cfg RosterRefreshConfig, refresh func() error) (*cron.Cron, error) {
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultRosterSchedule
	}
	if cfg.TimeZone == "" {
		cfg.TimeZone = config.DefaultTimeZone
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone for roster refresher: %v", err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.Schedule, func() {
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(fmt.Sprintf("Running roster refresh at %s", time.Now().In(loc)))
		}
		if err := refresh(); err != nil {
			msg := fmt.Sprintf("Roster refresh failed: %v", err)
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(msg)
			} else {
				log.Println(msg)
			}
			return
		}
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit("Roster refresh completed at " + time.Now().In(loc).String())
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule roster refresher: %v", err)
	}

	c.Start()
	log.Println("Roster refresher scheduled:", cfg.Schedule)
	return c, nil
}
