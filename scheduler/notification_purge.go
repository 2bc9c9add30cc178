package scheduler

import (
	"context"
	"room_booking/repository"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// NotificationPurge removes read notifications older than the retention
// period.
type NotificationPurge struct {
	notifications repository.NotificationRepository
	retention     time.Duration
	log           *zap.Logger
	now           func() time.Time

	cron *cron.Cron
}

func NewNotificationPurge(notifications repository.NotificationRepository, retention time.Duration, log *zap.Logger) *NotificationPurge {
	return &NotificationPurge{notifications: notifications, retention: retention, log: log, now: time.Now}
}

func (p *NotificationPurge) Run(ctx context.Context) {
	purged, err := p.notifications.PurgeRead(ctx, p.now().Add(-p.retention))
	if err != nil {
		p.log.Error("notification purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		p.log.Info("old notifications purged", zap.Int64("rows", purged))
	}
}

// Start schedules the purge with a standard five-field cron spec.
func (p *NotificationPurge) Start(spec string, loc *time.Location) error {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)
	if _, err := c.AddFunc(spec, func() { p.Run(context.Background()) }); err != nil {
		return err
	}
	p.cron = c
	c.Start()
	p.log.Info("notification purge scheduled", zap.String("spec", spec))
	return nil
}

func (p *NotificationPurge) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}
