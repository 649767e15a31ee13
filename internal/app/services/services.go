package services

import (
	"birthdaybot/internal/app/deps"
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/services"
	addbirthday "birthdaybot/internal/core/services/add_birthday"
	dispatchcommand "birthdaybot/internal/core/services/dispatch_command"
	getbirthdays "birthdaybot/internal/core/services/get_birthdays"
	removebirthday "birthdaybot/internal/core/services/remove_birthday"
	scanbirthdays "birthdaybot/internal/core/services/scan_birthdays"
	senddigest "birthdaybot/internal/core/services/send_digest"
	todaybirthdays "birthdaybot/internal/core/services/today_birthdays"
)

type Services struct {
	AddBirthday    services.Service[addbirthday.Input, addbirthday.Result]
	RemoveBirthday services.Service[removebirthday.Input, removebirthday.Result]
	GetBirthdays   services.Service[getbirthdays.Input, getbirthdays.Result]
	TodayBirthdays services.Service[todaybirthdays.Input, todaybirthdays.Result]

	DispatchCommand services.Service[dispatchcommand.Input, dispatchcommand.Result]

	ScanBirthdays services.Service[scanbirthdays.Input, scanbirthdays.Result]
	SendDigest    services.Service[senddigest.Input, senddigest.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.AddBirthday = addbirthday.New(
		deps.Logger,
		deps.BirthdayRepository,
		deps.Now,
	)
	s.RemoveBirthday = removebirthday.New(
		deps.Logger,
		deps.BirthdayRepository,
	)
	s.GetBirthdays = getbirthdays.New(
		deps.Logger,
		deps.BirthdayRepository,
	)
	s.TodayBirthdays = todaybirthdays.New(
		deps.Logger,
		deps.BirthdayRepository,
		deps.Now,
	)

	s.DispatchCommand = dispatchcommand.New(
		deps.Logger,
		s.AddBirthday,
		s.RemoveBirthday,
		s.GetBirthdays,
		s.TodayBirthdays,
		birthday.ChatID(deps.Config.MaintainerChatID),
		deps.Now,
	)

	s.ScanBirthdays = scanbirthdays.New(
		deps.Logger,
		deps.BirthdayRepository,
		deps.DigestScheduler,
		deps.Now,
	)
	s.SendDigest = senddigest.New(
		deps.Logger,
		deps.BirthdayRepository,
		deps.TelegramBotMessageSender,
	)

	return s
}
