package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyCacheTTL = 24 * time.Hour

// Idempotency guards money-moving POSTs (payout, payslip send): a repeated
// Idempotency-Key returns the cached first response, and a concurrent
// duplicate is rejected while the original is still in flight.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		employeeID := c.GetString("employee_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), employeeID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"ok": true, "data": cachedRes})
			return
		}

		// SetNX with a short expiry: if the server dies mid-request the lock
		// clears itself instead of wedging the key forever.
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", 30*time.Second).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this key is still being processed",
			})
			return
		}

		// handlers release the lock and fill the cache after completing
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

// ReleaseIdempotencyLock clears the in-flight lock set by Idempotency. Guarded
// handlers defer it before doing any work.
func ReleaseIdempotencyLock(c *gin.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		rdb.Del(c.Request.Context(), lockKey)
	}
}

// CacheIdempotentResponse stores a successful response body so a replay of the
// same Idempotency-Key returns it instead of re-running the handler.
func CacheIdempotentResponse(c *gin.Context, rdb *redis.Client, resp any) {
	if rdb == nil {
		return
	}
	cacheKey := c.GetString("idempotency_cache_key")
	if cacheKey == "" {
		return
	}
	if payload, err := json.Marshal(resp); err == nil {
		_ = rdb.Set(c.Request.Context(), cacheKey, payload, idempotencyCacheTTL).Err()
	}
}
