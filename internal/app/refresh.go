package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StartRefresh re-sincroniza la cuenta activa según SYNC_REFRESH_SCHEDULE.
// Sin schedule no hace nada. La función devuelta detiene el cron y espera al job en curso.
func (a *App) StartRefresh(ctx context.Context) (func(), error) {
	schedule := strings.TrimSpace(a.Config.Sync.RefreshSchedule)
	if schedule == "" {
		return func() {}, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { a.refreshOnce(ctx) }); err != nil {
		return nil, fmt.Errorf("refresh schedule %q: %w", schedule, err)
	}
	c.Start()
	a.Log.Info("periodic refresh enabled", map[string]any{"schedule": schedule})

	return func() { <-c.Stop().Done() }, nil
}

func (a *App) refreshOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	account, res, err := a.Commands.Refresh(ctx)
	if err != nil {
		a.Log.Warn("periodic refresh failed", map[string]any{"account": account, "err": err})
		return
	}
	a.Log.Debug("periodic refresh", map[string]any{"account": account, "cows": len(res.Cows)})
}
