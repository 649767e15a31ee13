package dispatchcommand

import (
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/dates"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	addbirthday "birthdaybot/internal/core/services/add_birthday"
	getbirthdays "birthdaybot/internal/core/services/get_birthdays"
	removebirthday "birthdaybot/internal/core/services/remove_birthday"
	todaybirthdays "birthdaybot/internal/core/services/today_birthdays"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const helpText = `This bot sends you birthday reminders at 6:45 AM GMT

Available commands:
/start - get this message
/help - get this message
/add <name>,<birthday> - add a birthday
/add <name>,<birthday>,<whatsapp|telegram>,<handle> - add a birthday with link
/remove <name> - remove a birthday
/get - list all birthdays
/list - list all birthdays
/get <name> - list a particular birthday
/today - list all birthdays today`

type Input struct {
	Owner birthday.ChatID
	Text  string
}

type Result struct {
	ReplyText string
}

type service struct {
	log            logging.Logger
	addBirthday    services.Service[addbirthday.Input, addbirthday.Result]
	removeBirthday services.Service[removebirthday.Input, removebirthday.Result]
	getBirthdays   services.Service[getbirthdays.Input, getbirthdays.Result]
	todayBirthdays services.Service[todaybirthdays.Input, todaybirthdays.Result]
	maintainer     birthday.ChatID
	now            func() time.Time
}

func New(
	log logging.Logger,
	addBirthday services.Service[addbirthday.Input, addbirthday.Result],
	removeBirthday services.Service[removebirthday.Input, removebirthday.Result],
	getBirthdays services.Service[getbirthdays.Input, getbirthdays.Result],
	todayBirthdays services.Service[todaybirthdays.Input, todaybirthdays.Result],
	maintainer birthday.ChatID,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if addBirthday == nil {
		panic(e.NewNilArgumentError("addBirthday"))
	}
	if removeBirthday == nil {
		panic(e.NewNilArgumentError("removeBirthday"))
	}
	if getBirthdays == nil {
		panic(e.NewNilArgumentError("getBirthdays"))
	}
	if todayBirthdays == nil {
		panic(e.NewNilArgumentError("todayBirthdays"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:            log,
		addBirthday:    addBirthday,
		removeBirthday: removeBirthday,
		getBirthdays:   getBirthdays,
		todayBirthdays: todayBirthdays,
		maintainer:     maintainer,
		now:            now,
	}
}

// Run always produces a reply, the returned error is nil even for
// faulted dispatches so that one broken interaction never silently
// drops or blocks a batch.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result.ReplyText = s.faultReply(ctx, input, fmt.Errorf("panic during dispatch: %v", r))
		}
	}()

	cmd, parseErr := parseCommand(input.Text)
	var usage *usageError
	if errors.As(parseErr, &usage) {
		return Result{ReplyText: usage.reply}, nil
	}
	if parseErr != nil {
		return Result{ReplyText: s.faultReply(ctx, input, parseErr)}, nil
	}

	switch cmd := cmd.(type) {
	case helpCommand:
		result.ReplyText = helpText
	case addCommand:
		result.ReplyText = s.handleAdd(ctx, input, cmd)
	case removeCommand:
		result.ReplyText = s.handleRemove(ctx, input, cmd)
	case getCommand:
		result.ReplyText = s.handleGet(ctx, input, cmd)
	case todayCommand:
		result.ReplyText = s.handleToday(ctx, input)
	case unknownCommand:
		result.ReplyText = fmt.Sprintf("Unknown command %s", cmd.Token)
	}
	return result, nil
}

func (s *service) handleAdd(ctx context.Context, input Input, cmd addCommand) string {
	added, err := s.addBirthday.Run(ctx, addbirthday.Input{
		Owner:   input.Owner,
		Name:    cmd.Name,
		Date:    cmd.Date,
		Service: cmd.Service,
		Handle:  cmd.Handle,
	})
	var validationErrs validation.Errors
	switch {
	case errors.Is(err, dates.ErrInvalidDate):
		return "Incorrect date.\n" + addFormatHint
	case errors.Is(err, birthday.ErrInvalidServiceTag):
		return "Service must be either whatsapp or telegram.\n" + addFormatHint
	case errors.As(err, &validationErrs):
		return validationErrs.Error() + "\n" + addFormatHint
	case errors.Is(err, birthday.ErrAlreadyExists):
		return fmt.Sprintf("There is already a birthday reminder for %s.", cmd.Name)
	case err != nil:
		return s.faultReply(ctx, input, err)
	}
	return fmt.Sprintf("%s has been added to your birthday reminders.", added.Record.Name)
}

func (s *service) handleRemove(ctx context.Context, input Input, cmd removeCommand) string {
	_, err := s.removeBirthday.Run(ctx, removebirthday.Input{Owner: input.Owner, Name: cmd.Name})
	switch {
	case errors.Is(err, birthday.ErrDoesNotExist):
		return "Could not find a birthday with that name"
	case err != nil:
		return s.faultReply(ctx, input, err)
	}
	return fmt.Sprintf("Removed birthday for `%s`", cmd.Name)
}

func (s *service) handleGet(ctx context.Context, input Input, cmd getCommand) string {
	result, err := s.getBirthdays.Run(ctx, getbirthdays.Input{Owner: input.Owner, Names: cmd.Names})
	if err != nil {
		return s.faultReply(ctx, input, err)
	}

	if result.ListedAll {
		records := make([]birthday.Record, 0, len(result.Entries))
		for _, entry := range result.Entries {
			records = append(records, entry.Record.Value)
		}
		return birthday.FormatList(records)
	}

	lines := make([]string, 0, len(result.Entries))
	for _, entry := range result.Entries {
		if !entry.Record.IsPresent {
			lines = append(lines, fmt.Sprintf("Could not find a birthday for `%s`", entry.Name))
			continue
		}
		lines = append(lines, birthday.FormatRecord(entry.Record.Value, false, s.now()))
	}
	return strings.Join(lines, "\n")
}

func (s *service) handleToday(ctx context.Context, input Input) string {
	result, err := s.todayBirthdays.Run(ctx, todaybirthdays.Input{Owner: input.Owner})
	if err != nil {
		return s.faultReply(ctx, input, err)
	}
	if len(result.Records) == 0 {
		return "There are no birthdays today."
	}
	return birthday.FormatDigest(result.Records, s.now())
}

// faultReply renders the generic internal fault reply, verbose when
// the interacting chat is the configured maintainer.
func (s *service) faultReply(ctx context.Context, input Input, err error) string {
	logging.Error(ctx, s.log, err, logging.Entry("owner", input.Owner), logging.Entry("text", input.Text))
	if s.maintainer != 0 && input.Owner == s.maintainer {
		return fmt.Sprintf("Operation resulted in error. Exception: %v", err)
	}
	return "Operation resulted in an unexpected error."
}
