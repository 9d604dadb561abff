package publisher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding"
	"errors"
	"fmt"
	"time"

	"github.com/decentraland/thirdparty-registry/src/utils/config"
	"github.com/decentraland/thirdparty-registry/src/utils/monitoring"
	"github.com/decentraland/thirdparty-registry/src/utils/task"

	"github.com/redis/go-redis/v9"
	"go.uber.org/ratelimit"
)

// Subset of the Redis client used for publishing
type Client interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Forwards messages to Redis
type RedisPublisher[In encoding.BinaryMarshaler] struct {
	*task.Task

	redisConfig config.Redis

	monitor monitoring.Monitor

	client      Client
	limiter     ratelimit.Limiter
	channelName string
	input       chan In
}

func NewRedisPublisher[In encoding.BinaryMarshaler](config *config.Config, redisConfig config.Redis, name string) (self *RedisPublisher[In]) {
	self = new(RedisPublisher[In])

	self.redisConfig = redisConfig
	self.channelName = redisConfig.ChannelName
	self.input = make(chan In, redisConfig.InputChannelSize)

	self.limiter = ratelimit.NewUnlimited()
	if redisConfig.MaxPublishRate > 0 {
		self.limiter = ratelimit.New(redisConfig.MaxPublishRate)
	}

	self.Task = task.NewTask(config, name).
		WithSubtaskFunc(self.run).
		WithOnBeforeStart(self.connect).
		WithWorkerPool(redisConfig.MaxWorkers, redisConfig.MaxQueueSize).
		WithOnAfterStop(self.disconnect)

	return
}

// Client used instead of connecting on start
func (self *RedisPublisher[In]) WithClient(v Client) *RedisPublisher[In] {
	self.client = v
	return self
}

func (self *RedisPublisher[In]) WithChannelName(v string) *RedisPublisher[In] {
	self.channelName = v
	return self
}

func (self *RedisPublisher[In]) WithMonitor(monitor monitoring.Monitor) *RedisPublisher[In] {
	self.monitor = monitor
	return self
}

// Queues messages for publishing. Never blocks, messages that don't fit in the buffer are dropped.
func (self *RedisPublisher[In]) Push(messages ...In) {
	for _, message := range messages {
		select {
		case self.input <- message:
		default:
			self.Log.Error("Input channel full, message dropped")
			self.monitor.GetReport().RedisPublisher.Errors.Dropped.Inc()
		}
	}
}

func (self *RedisPublisher[In]) disconnect() {
	err := self.client.Close()
	if err != nil {
		self.Log.WithError(err).Error("Failed to close connection")
	}
}

func (self *RedisPublisher[In]) connect() (err error) {
	if self.client == nil {
		opts := redis.Options{
			ClientName:      fmt.Sprintf("decentraland/%s", self.Name),
			Addr:            fmt.Sprintf("%s:%d", self.redisConfig.Host, self.redisConfig.Port),
			Password:        self.redisConfig.Password,
			Username:        self.redisConfig.User,
			DB:              self.redisConfig.DB,
			MinIdleConns:    self.redisConfig.MinIdleConns,
			MaxIdleConns:    self.redisConfig.MaxIdleConns,
			ConnMaxIdleTime: self.redisConfig.ConnMaxIdleTime,
			PoolSize:        self.redisConfig.MaxOpenConns,
			ConnMaxLifetime: self.redisConfig.ConnMaxLifetime,
		}

		if self.redisConfig.ClientCert != "" && self.redisConfig.ClientKey != "" && self.redisConfig.CaCert != "" {
			cert, err := tls.X509KeyPair([]byte(self.redisConfig.ClientCert), []byte(self.redisConfig.ClientKey))
			if err != nil {
				self.Log.WithError(err).Error("Failed to load client cert")
				return err
			}

			caCertPool := x509.NewCertPool()
			if !caCertPool.AppendCertsFromPEM([]byte(self.redisConfig.CaCert)) {
				return errors.New("failed to append CA cert to pool")
			}

			opts.TLSConfig = &tls.Config{
				MinVersion:   tls.VersionTLS12,
				RootCAs:      caCertPool,
				Certificates: []tls.Certificate{cert},
			}
		}

		self.client = redis.NewClient(&opts)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = self.client.Ping(ctx).Err()
	if err != nil {
		self.Log.WithError(err).Error("Failed to ping Redis")
		return
	}

	return
}

func (self *RedisPublisher[In]) run() (err error) {
	for {
		select {
		case <-self.Ctx.Done():
			return nil
		case payload := <-self.input:
			self.limiter.Take()
			self.SubmitToWorker(func() {
				self.publish(payload)
			})
		}
	}
}

func (self *RedisPublisher[In]) publish(payload In) {
	err := task.NewRetry().
		WithContext(self.Ctx).
		WithMaxElapsedTime(self.redisConfig.MaxElapsedTime).
		WithMaxInterval(self.redisConfig.MaxInterval).
		WithOnError(func(err error) error {
			self.Log.WithError(err).Warn("Failed to publish message, retrying")
			self.monitor.GetReport().RedisPublisher.Errors.Publish.Inc()
			return err
		}).
		Run(func() error {
			return self.client.Publish(self.Ctx, self.channelName, payload).Err()
		})
	if err != nil {
		self.Log.WithError(err).Error("Failed to publish message, giving up")
		self.monitor.GetReport().RedisPublisher.Errors.PersistentFailure.Inc()
		return
	}

	self.monitor.GetReport().RedisPublisher.State.MessagesPublished.Inc()
	self.monitor.GetReport().RedisPublisher.State.LastSuccessfulMessageTimestamp.Store(time.Now().Unix())
}
