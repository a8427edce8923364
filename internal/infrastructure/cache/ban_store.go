package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/fenwicknet/vpnctl/internal/infrastructure/database/redis"
	"github.com/fenwicknet/vpnctl/pkg/logger"
)

// BanStore holds the Protection Layer's IP ban ledger: DDoS and
// suspicious-activity bans, each a Redis key whose TTL is the remaining ban
// duration. The presence of the key is the ban; its TTL is the retry-after.
type BanStore struct {
	redisClient *redis.RedisClient
	prefix      string
}

// NewBanStore creates a new ban store.
func NewBanStore(redisClient *redis.RedisClient) *BanStore {
	return &BanStore{
		redisClient: redisClient,
		prefix:      "ban:",
	}
}

// BanReason identifies why an IP was banned.
type BanReason string

const (
	BanReasonDDoS        BanReason = "ddos"
	BanReasonSuspicious  BanReason = "suspicious_activity"
)

// Ban writes a ban record for ip with the given TTL, overwriting any existing
// ban whatever its remaining TTL.
func (b *BanStore) Ban(ctx context.Context, ip string, reason BanReason, duration time.Duration) error {
	key := b.getBanKey(ip)
	if err := b.redisClient.Set(ctx, key, string(reason), duration); err != nil {
		logger.Error("Failed to write ban record", err, "ip", sanitizeForLog(ip), "reason", reason)
		return fmt.Errorf("failed to ban ip: %w", err)
	}
	logger.Info("IP banned", "ip", sanitizeForLog(ip), "reason", reason, "duration", duration)
	return nil
}

// BanResult describes the outcome of a ban check.
type BanResult struct {
	Banned     bool
	Reason     string
	RetryAfter time.Duration
}

// Check reports whether ip currently has an unexpired ban record, and if so
// the remaining TTL to use as the retry-after.
func (b *BanStore) Check(ctx context.Context, ip string) (*BanResult, error) {
	key := b.getBanKey(ip)
	exists, err := b.redisClient.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check ban record: %w", err)
	}
	if !exists {
		return &BanResult{Banned: false}, nil
	}

	reason, err := b.redisClient.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read ban reason: %w", err)
	}
	ttl, err := b.redisClient.TTL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read ban ttl: %w", err)
	}

	return &BanResult{Banned: true, Reason: reason, RetryAfter: ttl}, nil
}

// Unban removes an IP's ban record, if any.
func (b *BanStore) Unban(ctx context.Context, ip string) error {
	return b.redisClient.Del(ctx, b.getBanKey(ip))
}

// CountDDoSRequest increments ip's request counter for the current DDoS
// window and returns the new count.
func (b *BanStore) CountDDoSRequest(ctx context.Context, ip string, window time.Duration) (int64, error) {
	key := b.getDDoSCounterKey(ip)
	count, err := b.redisClient.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment ddos counter: %w", err)
	}
	if count == 1 {
		if err := b.redisClient.Expire(ctx, key, window); err != nil {
			logger.Error("Failed to set ddos counter expiry", err, "ip", sanitizeForLog(ip))
		}
	}
	return count, nil
}

// CountSuspiciousEvent increments ip's failed-auth counter for the current
// suspicious-activity window and returns the new count.
func (b *BanStore) CountSuspiciousEvent(ctx context.Context, ip string, window time.Duration) (int64, error) {
	key := b.getSuspiciousCounterKey(ip)
	count, err := b.redisClient.Incr(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment suspicious activity counter: %w", err)
	}
	if count == 1 {
		if err := b.redisClient.Expire(ctx, key, window); err != nil {
			logger.Error("Failed to set suspicious counter expiry", err, "ip", sanitizeForLog(ip))
		}
	}
	return count, nil
}

func (b *BanStore) getBanKey(ip string) string {
	return fmt.Sprintf("%sip:%s", b.prefix, ip)
}

func (b *BanStore) getDDoSCounterKey(ip string) string {
	return fmt.Sprintf("%sddos_count:%s", b.prefix, ip)
}

func (b *BanStore) getSuspiciousCounterKey(ip string) string {
	return fmt.Sprintf("%ssuspicious_count:%s", b.prefix, ip)
}

// sanitizeForLog strips control characters and caps length before an
// externally-controlled value is attached to a log field, preventing log
// injection via crafted client IPs or headers.
func sanitizeForLog(s string) string {
	const maxLen = 64
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s) && len(out) < maxLen; i++ {
		c := s[i]
		if c >= 0x20 && c != 0x7f {
			out = append(out, c)
		}
	}
	return string(out)
}
