package todaybirthdays

import (
	"birthdaybot/internal/core/domain/birthday"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	"context"
	"time"
)

type Input struct {
	Owner birthday.ChatID
}

type Result struct {
	Records []birthday.Record
}

type service struct {
	log       logging.Logger
	birthdays birthday.Repository
	now       func() time.Time
}

func New(
	log logging.Logger,
	birthdays birthday.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if birthdays == nil {
		panic(e.NewNilArgumentError("birthdays"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{log: log, birthdays: birthdays, now: now}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	records, err := s.birthdays.ListByDay(ctx, input.Owner, now.Day(), int(now.Month()))
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.Records = records
	return result, nil
}
