package consumers

import (
	"birthdaybot/internal/app/deps"
	"birthdaybot/internal/app/services"
	dl "birthdaybot/internal/core/domain/logging"
	digestready "birthdaybot/internal/rabbitmq/consumers/digest_ready"
	"context"
)

func initDigestReadyConsumer(deps *deps.Deps, services *services.Services) func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	queue := deps.Config.RabbitmqDigestQueue
	digestReadyConsumer := digestready.New(
		deps.Logger,
		rabbitmqChannel,
		queue,
		services.SendDigest,
	)
	if err = digestReadyConsumer.Consume(); err != nil {
		deps.Logger.Error(
			context.Background(),
			"Could not start RabbitMQ consuming.",
			dl.Entry("err", err),
			dl.Entry("queue", queue),
		)
		panic(err)
	}

	deps.Logger.Info(context.Background(), "Consumer has started.", dl.Entry("queue", queue))
	return func() { rabbitmqChannel.Close() }
}

func InitConsumers(deps *deps.Deps, services *services.Services) func() {
	shutdownDigestReadyConsumer := initDigestReadyConsumer(deps, services)

	return func() {
		shutdownDigestReadyConsumer()
	}
}
