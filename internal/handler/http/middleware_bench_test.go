package http_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	httpHandler "yatube/internal/handler/http"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func BenchmarkRateLimiter_SameIP(b *testing.B) {
	handler := httpHandler.NewRateLimiter(1e9, 1e9, time.Minute).Limit(okHandler())
	req := httptest.NewRequest(http.MethodPost, "/auth/login/", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func BenchmarkRateLimiter_ManyIPs(b *testing.B) {
	handler := httpHandler.NewRateLimiter(1, 5, time.Minute).Limit(okHandler())
	reqs := make([]*http.Request, 256)
	for i := range reqs {
		reqs[i] = httptest.NewRequest(http.MethodPost, "/auth/login/", nil)
		reqs[i].RemoteAddr = "10.0.0." + strconv.Itoa(i) + ":1234"
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			handler.ServeHTTP(httptest.NewRecorder(), reqs[i%len(reqs)])
			i++
		}
	})
}

func BenchmarkChain(b *testing.B) {
	handler := httpHandler.Chain(okHandler(),
		httpHandler.LimitRequestBody(1<<20),
		httpHandler.Timeout(time.Second),
		httpHandler.MetricsMiddleware,
	)
	req := httptest.NewRequest(http.MethodGet, "/posts/1/", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
