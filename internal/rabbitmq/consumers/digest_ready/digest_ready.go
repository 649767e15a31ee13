package digestready

import (
	"birthdaybot/internal/core/domain/birthday"
	e "birthdaybot/internal/core/domain/errors"
	"birthdaybot/internal/core/domain/logging"
	"birthdaybot/internal/core/services"
	senddigest "birthdaybot/internal/core/services/send_digest"
	"birthdaybot/internal/rabbitmq"
	"birthdaybot/internal/rabbitmq/schema"
	"context"

	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	log     logging.Logger
	channel *rabbitmq.Channel
	queue   string
	service services.Service[senddigest.Input, senddigest.Result]
}

func New(
	log logging.Logger,
	channel *rabbitmq.Channel,
	queue string,
	service services.Service[senddigest.Input, senddigest.Result],
) *Consumer {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	if queue == "" {
		panic("queue name must not be empty")
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}

	return &Consumer{log: log, channel: channel, queue: queue, service: service}
}

func (c *Consumer) Consume() error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		c.log.Error(context.Background(), "Could not start cosuming.", logging.Entry("err", err))
		return err
	}

	go func() {
		for delivery := range deliveries {
			digest := &schema.Digest{}
			if err := digest.Unmarshal(delivery.Body); err != nil {
				c.log.Error(
					context.Background(),
					"Could not unmarshal digest.",
					logging.Entry("err", err),
					logging.Entry("delivery", delivery),
				)
				c.Ack(delivery)
				continue
			}

			c.log.Info(
				context.Background(),
				"Got ready for sending birthday digest.",
				logging.Entry("digest", digest),
			)
			_, err := c.service.Run(
				context.Background(),
				senddigest.Input{Owner: birthday.ChatID(digest.ChatID), At: digest.At},
			)
			if err != nil {
				c.log.Error(
					context.Background(),
					"Could not send digest, service returned an error.",
					logging.Entry("digest", digest),
					logging.Entry("err", err),
				)
			}
			c.Ack(delivery)
		}
	}()
	return nil
}

func (c *Consumer) Ack(delivery amqp091.Delivery) {
	if err := delivery.Ack(true); err != nil {
		c.log.Error(context.Background(), "Could not ACK AMQP message.", logging.Entry("err", err))
	}
}
