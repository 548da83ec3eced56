// Package redisrepo подключается к Redis, используемому как бэкенд хранилища.
package redisrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxAttempts   uint = 10
	defaultRetryInterval      = 2 * time.Second
)

// Connect разбирает URL вида redis://host:port/db и проверяет соединение, повторяя попытки.
func Connect(ctx context.Context, url string, l *logrus.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	var attempts uint
	for {
		pingErr := client.Ping(ctx).Err()
		if pingErr == nil {
			return client, nil
		}
		attempts++
		if attempts >= defaultMaxAttempts {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping failed after %d attempts: %w", attempts, pingErr)
		}
		l.WithError(pingErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempts, defaultMaxAttempts)).
			Warnf("redis ping error, retrying in %.f seconds", defaultRetryInterval.Seconds())

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err() //nolint:wrapcheck
		case <-time.After(defaultRetryInterval):
		}
	}
}
