package scheduler

import (
	"context"
	"room_booking/repository"
	"room_booking/utils"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// MeetingStatusJob moves meetings through scheduled, ongoing and completed
// as the wall clock in loc passes their slots.
type MeetingStatusJob struct {
	meetings repository.MeetingRepository
	loc      *time.Location
	log      *zap.Logger
	now      func() time.Time

	scheduler gocron.Scheduler
}

func NewMeetingStatusJob(meetings repository.MeetingRepository, loc *time.Location, log *zap.Logger) *MeetingStatusJob {
	return &MeetingStatusJob{meetings: meetings, loc: loc, log: log, now: time.Now}
}

// Run advances statuses once.
func (j *MeetingStatusJob) Run(ctx context.Context) {
	now := j.now().In(j.loc)
	started, completed, err := j.meetings.AdvanceStatuses(ctx, utils.DateOf(now), utils.ClockOf(now))
	if err != nil {
		j.log.Error("advance meeting statuses failed", zap.Error(err))
		return
	}
	if started > 0 || completed > 0 {
		j.log.Info("meeting statuses advanced",
			zap.Int64("started", started),
			zap.Int64("completed", completed))
	}
}

// Start runs the job every minute until Stop.
func (j *MeetingStatusJob) Start() error {
	s, err := gocron.NewScheduler(gocron.WithLocation(j.loc))
	if err != nil {
		return err
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(func() { j.Run(context.Background()) }),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	j.scheduler = s
	s.Start()
	j.log.Info("meeting status scheduler started")
	return nil
}

func (j *MeetingStatusJob) Stop() {
	if j.scheduler == nil {
		return
	}
	if err := j.scheduler.Shutdown(); err != nil {
		j.log.Warn("meeting status scheduler shutdown", zap.Error(err))
	}
}
