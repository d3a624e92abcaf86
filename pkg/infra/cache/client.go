package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/textsentry/textsentry/pkg/analysis"
)

const resultKeyPattern = "detect:%s:%s"

// Client caches final detection results keyed by input text and threshold.
// The extension rescans pages, so identical strings arrive repeatedly; a
// hit skips the whole pipeline.
type Client interface {
	GetResult(ctx context.Context, text string, threshold float64) (*analysis.FusedResult, error)
	SaveResult(ctx context.Context, text string, threshold float64, result analysis.FusedResult) error
	Close() error
}

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type client struct {
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewClient(config Config, logger *logrus.Logger) (Client, error) {
	options := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	}
	redisClient := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithError(err).WithField("host", config.Host).Error("failed to connect to redis")
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return FromRedis(redisClient, config.TTL, logger), nil
}

// FromRedis wraps an existing redis client; used by tests with redismock.
func FromRedis(redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) Client {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &client{redisClient: redisClient, ttl: ttl, logger: logger}
}

func (c *client) GetResult(ctx context.Context, text string, threshold float64) (*analysis.FusedResult, error) {
	raw, err := c.redisClient.Get(ctx, resultKey(text, threshold)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}
	var result analysis.FusedResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("cache entry unmarshal failed: %w", err)
	}
	return &result, nil
}

func (c *client) SaveResult(ctx context.Context, text string, threshold float64, result analysis.FusedResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("cache entry marshal failed: %w", err)
	}
	if err := c.redisClient.Set(ctx, resultKey(text, threshold), string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

func (c *client) Close() error {
	return c.redisClient.Close()
}

// resultKey renders the threshold at full precision so nearby sensitivities
// never share an entry.
func resultKey(text string, threshold float64) string {
	sum := sha256.Sum256([]byte(text))
	return fmt.Sprintf(resultKeyPattern, hex.EncodeToString(sum[:]),
		strconv.FormatFloat(threshold, 'g', -1, 64))
}
