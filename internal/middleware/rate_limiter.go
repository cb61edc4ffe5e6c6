package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/Aniket-89/recrm/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// rateEntry tracks request counts per IP within a sliding window.
type rateEntry struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

var (
	loginRateMap   = make(map[string]*rateEntry)
	loginRateMapMu sync.Mutex

	apiRateMap   = make(map[string]*rateEntry)
	apiRateMapMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limiter(loginRateMap, &loginRateMapMu, 20, time.Minute,
		"Too many login attempts. Try again in a minute.")
}

// RateLimiter returns a general-purpose sliding-window rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return limiter(apiRateMap, &apiRateMapMu, limit, window,
		"Too many requests. Try again shortly.")
}

func limiter(entries map[string]*rateEntry, mapMu *sync.Mutex, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		mapMu.Lock()
		entry, exists := entries[ip]
		if !exists {
			entry = &rateEntry{}
			entries[ip] = entry
		}
		mapMu.Unlock()

		entry.mu.Lock()
		defer entry.mu.Unlock()

		now := time.Now()
		if now.After(entry.windowEnd) {
			entry.count = 0
			entry.windowEnd = now.Add(window)
		}

		entry.count++
		if entry.count > limit {
			c.Header("Retry-After", entry.windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// Expired entries are purged periodically so IPs that never return don't
// accumulate forever.
const purgeInterval = 5 * time.Minute

func init() {
	go purgeExpiredEntries()
}

func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purged := 0
		for _, m := range []struct {
			entries map[string]*rateEntry
			mu      *sync.Mutex
		}{
			{loginRateMap, &loginRateMapMu},
			{apiRateMap, &apiRateMapMu},
		} {
			m.mu.Lock()
			for ip, entry := range m.entries {
				entry.mu.Lock()
				if now.After(entry.windowEnd) {
					delete(m.entries, ip)
					purged++
				}
				entry.mu.Unlock()
			}
			m.mu.Unlock()
		}
		if purged > 0 {
			log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
		}
	}
}
