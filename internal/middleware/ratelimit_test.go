package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiterBurstThenRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewIPRateLimiter(1, zap.NewNop()) // effectively no refill during the test
	router := gin.New()
	router.POST("/limited", limiter.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	var codes []int
	for i := 0; i < 7; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// Burst of 5, then 429s.
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, codes[i])
	}
	assert.Equal(t, http.StatusTooManyRequests, codes[5])
	assert.Equal(t, http.StatusTooManyRequests, codes[6])
}

func TestRateLimiterConcurrentRequestsShareOneBucket(t *testing.T) {
	// Parallel requests from one address must all land on the same
	// bucket while the background sweeper runs; run with -race.
	limiter := NewIPRateLimiter(60, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				limiter.getLimiter("203.0.113.9")
			}
		}()
	}
	wg.Wait()

	assert.Same(t, limiter.getLimiter("203.0.113.9"), limiter.getLimiter("203.0.113.9"))
}

func TestRateLimiterIsPerIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewIPRateLimiter(1, zap.NewNop())
	router := gin.New()
	router.POST("/limited", limiter.Handler(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	exhaust := func(addr string) int {
		var last int
		for i := 0; i < 6; i++ {
			req := httptest.NewRequest(http.MethodPost, "/limited", nil)
			req.RemoteAddr = addr
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			last = w.Code
		}
		return last
	}

	assert.Equal(t, http.StatusTooManyRequests, exhaust("203.0.113.9:1234"))

	// A different client still has its full budget.
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	req.RemoteAddr = "198.51.100.7:4321"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
