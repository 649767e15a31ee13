package digestscheduler

import (
	"birthdaybot/internal/core/domain/birthday"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/rabbitmq"
	"birthdaybot/internal/rabbitmq/schema"
	"context"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type RabbitMQ struct {
	log      logging.Logger
	channel  *rabbitmq.Channel
	exchange string
	queue    string
}

func NewRabbitMQ(log logging.Logger, channel *rabbitmq.Channel, exchange string, queue string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange, queue: queue}
}

func (s *RabbitMQ) ScheduleDigest(ctx context.Context, owner birthday.ChatID, at time.Time) error {
	digest := schema.Digest{ChatID: int64(owner), At: at}
	body, err := digest.Marshal()
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	err = s.channel.PublishWithContext(ctx, s.exchange, s.queue, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return err
	}
	s.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", s.exchange),
		logging.Entry("queue", s.queue),
		logging.Entry("chatID", owner),
	)
	return nil
}
