package senddigest

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/bot"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	"context"
	"time"
)

type Input struct {
	Owner birthday.ChatID
	// At is the scan moment the digest was scheduled for.
	At time.Time
}

type Result struct {
	Sent        bool
	RecordCount int
}

type service struct {
	log       logging.Logger
	birthdays birthday.Repository
	sender    bot.MessageSender
}

func New(
	log logging.Logger,
	birthdays birthday.Repository,
	sender bot.MessageSender,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if birthdays == nil {
		panic(e.NewNilArgumentError("birthdays"))
	}
	if sender == nil {
		panic(e.NewNilArgumentError("sender"))
	}
	return &service{log: log, birthdays: birthdays, sender: sender}
}

// Run re-reads the owner's matches at delivery time so that a record
// removed between scan and delivery is not announced.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	records, err := s.birthdays.ListByDay(ctx, input.Owner, input.At.Day(), int(input.At.Month()))
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	result.RecordCount = len(records)
	if len(records) == 0 {
		s.log.Info(ctx, "No birthdays left for digest, skipping.", logging.Entry("owner", input.Owner))
		return result, nil
	}

	text := birthday.FormatDigest(records, input.At)
	if err := s.sender.SendMessage(ctx, input.Owner, text); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("owner", input.Owner))
		return result, err
	}

	result.Sent = true
	s.log.Info(
		ctx,
		"Birthday digest sent.",
		logging.Entry("owner", input.Owner),
		logging.Entry("recordCount", result.RecordCount),
	)
	return result, nil
}
