package removebirthday

import (
	"birthdaybot/internal/core/domain/birthday"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Owner birthday.ChatID
	Name  string
}

type Result struct{}

type service struct {
	log       logging.Logger
	birthdays birthday.Repository
}

func New(log logging.Logger, birthdays birthday.Repository) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if birthdays == nil {
		panic(e.NewNilArgumentError("birthdays"))
	}
	return &service{log: log, birthdays: birthdays}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.birthdays.Delete(ctx, input.Owner, input.Name)
	if err != nil {
		if !errors.Is(err, birthday.ErrDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}
	s.log.Info(
		ctx,
		"Birthday successfully removed.",
		logging.Entry("owner", input.Owner),
		logging.Entry("name", input.Name),
	)
	return result, nil
}
