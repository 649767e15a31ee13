package getbirthdays

import (
	"birthdaybot/internal/core/domain/birthday"
	c "birthdaybot/internal/core/domain/common"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	"context"
	"errors"
)

type Input struct {
	Owner birthday.ChatID
	// Names holds the per-name lookups. Empty means "list everything".
	Names []string
}

type Entry struct {
	Name   string
	Record c.Optional[birthday.Record]
}

type Result struct {
	ListedAll bool
	Entries   []Entry
}

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
	if len(input.Names) == 0 {
		return s.listAll(ctx, input)
	}

	result.Entries = make([]Entry, 0, len(input.Names))
	for _, name := range input.Names {
		record, err := s.birthdays.GetByName(ctx, input.Owner, name)
		if errors.Is(err, birthday.ErrDoesNotExist) {
			// Misses are reported inline, they never abort the batch.
			result.Entries = append(result.Entries, Entry{Name: name})
			continue
		}
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
			return result, err
		}
		result.Entries = append(result.Entries, Entry{Name: name, Record: c.NewOptional(record, true)})
	}
	return result, nil
}

func (s *service) listAll(ctx context.Context, input Input) (result Result, err error) {
	records, err := s.birthdays.List(ctx, input.Owner)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.ListedAll = true
	result.Entries = make([]Entry, 0, len(records))
	for _, record := range records {
		result.Entries = append(result.Entries, Entry{Name: record.Name, Record: c.NewOptional(record, true)})
	}
	return result, nil
}
