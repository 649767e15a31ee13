package addbirthday

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/dates"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	"context"
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type Input struct {
	Owner   birthday.ChatID
	Name    string
	Date    string
	Service string
	Handle  string
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, 256)),
		validation.Field(&i.Date, validation.Required),
		validation.Field(&i.Handle, validation.Length(0, 256)),
	)
}

type Result struct {
	Record birthday.Record
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
	if err := input.Validate(); err != nil {
		return result, err
	}
	date, err := dates.Parse(input.Date)
	if err != nil {
		return result, err
	}
	tag, err := birthday.ParseServiceTag(input.Service)
	if err != nil {
		return result, err
	}

	record, err := s.birthdays.Create(ctx, birthday.CreateInput{
		Owner:     input.Owner,
		Name:      input.Name,
		Date:      date,
		Service:   tag,
		Handle:    input.Handle,
		CreatedAt: s.now(),
	})
	if err != nil {
		if !errors.Is(err, birthday.ErrAlreadyExists) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.log.Info(
		ctx,
		"Birthday successfully added.",
		logging.Entry("owner", record.Owner),
		logging.Entry("name", record.Name),
	)
	result.Record = record
	return result, nil
}
