package upload

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// Config controls the checks applied to newsletter upload requests.
type Config struct {
	// Secret signs upload bodies (HMAC-SHA256). Empty disables the check.
	Secret string

	// AllowedIPs whitelists sources; entries may be plain IPs or CIDRs.
	// Empty means no IP restriction.
	AllowedIPs []string

	// RateLimitPerMin caps extraction requests per source per minute.
	RateLimitPerMin int
}

// Guard validates newsletter upload requests before they reach the
// extraction pipeline. OCR and LLM calls are expensive, so unauthenticated
// or repeated traffic is cut off here.
type Guard struct {
	config      Config
	rateLimiter *rateLimiter
}

func NewGuard(config Config) *Guard {
	return &Guard{
		config:      config,
		rateLimiter: newRateLimiter(config.RateLimitPerMin),
	}
}

// ValidateSignature verifies the upload body signature, sent by the app
// gateway as "sha256=<hex>".
func (g *Guard) ValidateSignature(payload []byte, signature string) error {
	if g.config.Secret == "" {
		return fmt.Errorf("upload secret not configured")
	}

	if !strings.HasPrefix(signature, "sha256=") {
		return fmt.Errorf("invalid signature format")
	}

	expectedSig, err := hex.DecodeString(signature[7:])
	if err != nil {
		return fmt.Errorf("invalid signature hex encoding: %w", err)
	}

	mac := hmac.New(sha256.New, []byte(g.config.Secret))
	mac.Write(payload)

	// Constant-time comparison on raw bytes.
	if !hmac.Equal(expectedSig, mac.Sum(nil)) {
		return fmt.Errorf("signature verification failed")
	}

	return nil
}

// ValidateIPAddress checks if the request IP is whitelisted.
func (g *Guard) ValidateIPAddress(r *http.Request) error {
	if len(g.config.AllowedIPs) == 0 {
		return nil
	}

	ip := extractIP(r)

	for _, allowedIP := range g.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if ipNet.Contains(net.ParseIP(ip)) {
				return nil
			}
		}
	}

	return fmt.Errorf("IP %s not whitelisted", ip)
}

// CheckRateLimit enforces the per-source rate limit.
func (g *Guard) CheckRateLimit(source string) error {
	return g.rateLimiter.Allow(source)
}

func extractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	ip, _, _ := net.SplitHostPort(r.RemoteAddr)
	return ip
}

// rateLimiter tracks one token bucket per source with auto-cleanup.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,          // max unique sources
			nil,           // no eviction callback
			time.Minute*5, // TTL
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: burst,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for %s", key)
	}
	return nil
}
