package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/config"
	"github.com/go-redis/redis/v8"
)

type Redis struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedis(cfg *config.RedisConfig) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *Redis) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *Redis) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// OTPRecord is a pending password reset. The key's TTL is the validity
// window, so an expired OTP simply stops existing.
type OTPRecord struct {
	Hash     string `json:"hash"`
	Attempts int    `json:"attempts"`
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

func (r *Redis) PutOTP(ctx context.Context, email string, rec *OTPRecord, ttl time.Duration) error {
	return r.SetJSON(ctx, otpKey(email), rec, ttl)
}

func (r *Redis) GetOTP(ctx context.Context, email string) (*OTPRecord, error) {
	var rec OTPRecord
	if err := r.GetJSON(ctx, otpKey(email), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// BumpOTPAttempts increments the failed-attempt counter without
// extending the validity window.
func (r *Redis) BumpOTPAttempts(ctx context.Context, email string, rec *OTPRecord) error {
	rec.Attempts++
	ttl, err := r.client.TTL(ctx, otpKey(email)).Result()
	if err != nil || ttl <= 0 {
		return err
	}
	return r.SetJSON(ctx, otpKey(email), rec, ttl)
}

func (r *Redis) DeleteOTP(ctx context.Context, email string) error {
	return r.Del(ctx, otpKey(email))
}

const dashboardKey = "admin:dashboard"

func (r *Redis) CacheDashboard(ctx context.Context, stats interface{}, ttl time.Duration) error {
	return r.SetJSON(ctx, dashboardKey, stats, ttl)
}

func (r *Redis) GetDashboard(ctx context.Context, dest interface{}) error {
	return r.GetJSON(ctx, dashboardKey, dest)
}
