// Package cache keeps rendered QR images in Redis so repeated previews of an
// unchanged invoice skip the render step. The server degrades gracefully to
// uncached operation when Redis is unreachable.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"freelance-backend/internal/config"
)

const qrImageTTL = 24 * time.Hour

var client *redis.Client

// Init initializes the Redis connection
func Init(cfg *config.Config) error {
	addr := cfg.Redis.Addr
	if addr == "" {
		addr = "localhost:6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// qrImageKey derives the cache key from the payload itself: identical
// payloads render identical images.
func qrImageKey(payload string, size int) string {
	h := sha256.Sum256([]byte(payload))
	return fmt.Sprintf("qr:%s:%d", hex.EncodeToString(h[:])[:32], size)
}

// GetQRImage returns a cached rendered QR PNG, if any
func GetQRImage(ctx context.Context, payload string, size int) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, qrImageKey(payload, size)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetQRImage caches a rendered QR PNG
func SetQRImage(ctx context.Context, payload string, size int, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, qrImageKey(payload, size), data, qrImageTTL)
}
