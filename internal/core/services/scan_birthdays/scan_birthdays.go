package scanbirthdays

import (
	"birthdaybot/internal/core/domain/birthday"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	"context"
	"time"
)

type Input struct{}

type Result struct {
	OwnerCount     int
	ScheduledCount int
}

type service struct {
	log       logging.Logger
	birthdays birthday.Repository
	scheduler birthday.DigestScheduler
	now       func() time.Time
}

func New(
	log logging.Logger,
	birthdays birthday.Repository,
	scheduler birthday.DigestScheduler,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if birthdays == nil {
		panic(e.NewNilArgumentError("birthdays"))
	}
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, birthdays: birthdays, scheduler: scheduler, now: now}
}

// Run walks every owner once and schedules a digest for those with a
// birthday today. A failure for one owner is logged and the scan moves
// on to the next.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	owners, err := s.birthdays.Owners(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}
	result.OwnerCount = len(owners)

	for _, owner := range owners {
		records, err := s.birthdays.ListByDay(ctx, owner, now.Day(), int(now.Month()))
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("owner", owner))
			continue
		}
		if len(records) == 0 {
			continue
		}
		if err := s.scheduler.ScheduleDigest(ctx, owner, now); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("owner", owner))
			continue
		}
		result.ScheduledCount++
	}

	s.log.Info(
		ctx,
		"Birthday scan finished.",
		logging.Entry("ownerCount", result.OwnerCount),
		logging.Entry("scheduledCount", result.ScheduledCount),
	)
	return result, nil
}
