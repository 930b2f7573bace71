package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(1, 2))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		if got := do("10.0.0.1:1234"); got != want {
			t.Errorf("request %d status = %d, want %d", i, got, want)
		}
	}
	if got := do("10.0.0.2:1234"); got != http.StatusOK {
		t.Errorf("other client status = %d, want %d", got, http.StatusOK)
	}
}

func TestSweepDropsIdleVisitors(t *testing.T) {
	rl := newIPRateLimiter(1, 1)
	rl.getLimiter("10.0.0.1")
	rl.visitors["10.0.0.1"].lastSeen = time.Now().Add(-2 * visitorTTL)

	rl.sweep(time.Now())
	if _, ok := rl.visitors["10.0.0.1"]; ok {
		t.Error("idle visitor was not swept")
	}
}
