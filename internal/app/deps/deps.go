package deps

import (
	"birthdaybot/internal/config"
	"birthdaybot/internal/core/domain/birthday"
	"birthdaybot/internal/core/domain/bot"
	dl "birthdaybot/internal/core/domain/logging"
	drl "birthdaybot/internal/core/domain/rate_limiter"
	"birthdaybot/internal/db"
	dbbirthday "birthdaybot/internal/db/birthday"
	"birthdaybot/internal/implementations/logging"
	ratelimiter "birthdaybot/internal/implementations/rate_limiter"
	telegrambotmessagesender "birthdaybot/internal/implementations/telegram_bot_message_sender"
	updatecursor "birthdaybot/internal/implementations/update_cursor"
	"birthdaybot/internal/rabbitmq"
	digestscheduler "birthdaybot/internal/rabbitmq/publishers/digest_scheduler"
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	BirthdayRepository birthday.Repository

	RateLimiter   drl.RateLimiter
	ChatRateLimit drl.Limit

	TelegramBotMessageSender *telegrambotmessagesender.TelegramBotMessageSender
	UpdateCursor             bot.UpdateCursor

	DigestScheduler birthday.DigestScheduler
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	if err := db.ApplyMigrations(deps.Config.MigrationsPath, deps.Config.PostgresqlURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply migrations.", dl.Entry("err", err))
		panic(err)
	}

	deps.BirthdayRepository = dbbirthday.NewPgxBirthdayRepository(deps.DB)

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)
	deps.ChatRateLimit = drl.Limit{Interval: drl.Minute, Value: deps.Config.ChatRateLimitPerMinute}

	deps.TelegramBotMessageSender = telegrambotmessagesender.New(
		deps.Config.TelegramBaseURL,
		deps.Config.TelegramToken,
		deps.Config.TelegramRequestTimeout,
	)
	deps.UpdateCursor = updatecursor.NewRedis(deps.Redis)

	closeDigestScheduler := deps.initRabbitmqDigestScheduler()

	return deps, func() {
		closeFuncs := []func(){
			closeDigestScheduler,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initRabbitmqDigestScheduler() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	_, err = rabbitmqChannel.QueueDeclare(deps.Config.RabbitmqDigestQueue, true, false, false, false, nil)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ queue.", dl.Entry("err", err))
		panic(err)
	}

	// Publishing through the default exchange routes by queue name.
	deps.DigestScheduler = digestscheduler.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		"",
		deps.Config.RabbitmqDigestQueue,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down digest scheduler.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Digest scheduler shut down.")
	}
}
