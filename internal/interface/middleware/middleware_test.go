package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/saas-landing-api/config"
	"github.com/oksasatya/saas-landing-api/internal/application"
	"github.com/oksasatya/saas-landing-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func perMinute(n int) config.RateLimit {
	return config.RateLimit{Max: n, Window: time.Minute}
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	_, rdb := newRedis(t)
	r := gin.New()
	r.Use(RealIP())
	r.GET("/limited", RateLimit(rdb, perMinute(2), KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "2" {
			t.Fatalf("missing limit header: %v", rec.Header())
		}
	}
	rec := serve(r, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d (%s)", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" || rec.Header().Get("Retry-After") == "" {
		t.Fatalf("unexpected headers: %v", rec.Header())
	}

	// a different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.9")
	if rec := serve(r, req); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for another IP, got %d", rec.Code)
	}
}

func TestRateLimitBypassAndDisabled(t *testing.T) {
	_, rdb := newRedis(t)
	r := gin.New()
	r.Use(RealIP())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/healthz", RateLimit(rdb, perMinute(1), KeyByIP(), AllowPrivateIP()), ok)
	r.GET("/open", RateLimit(nil, perMinute(1), KeyByIP(), nil), ok)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set("X-Forwarded-For", "10.0.0.5")
		if rec := serve(r, req); rec.Code != http.StatusOK {
			t.Fatalf("private IP should bypass, got %d", rec.Code)
		}
		if rec := serve(r, httptest.NewRequest(http.MethodGet, "/open", nil)); rec.Code != http.StatusOK {
			t.Fatalf("nil redis should not limit, got %d", rec.Code)
		}
	}
}

func TestRateLimitFailsOpen(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer rdb.Close()
	r := gin.New()
	r.GET("/x", RateLimit(rdb, perMinute(1), KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 2; i++ {
		if rec := serve(r, httptest.NewRequest(http.MethodGet, "/x", nil)); rec.Code != http.StatusOK {
			t.Fatalf("expected fail-open 200, got %d", rec.Code)
		}
	}
}

func TestAuth(t *testing.T) {
	mr, rdb := newRedis(t)
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	sub := helpers.Subject{UserID: "u1", Name: "A", Email: "a@x.com", SessionID: "s1"}
	token, _, err := jwt.GenerateAccessToken(sub)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	r := gin.New()
	r.GET("/me", Auth(rdb, jwt), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userEmail"))
	})

	withCookie := func(v string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if v != "" {
			req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: v})
		}
		return req
	}

	if rec := serve(r, withCookie("")); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing cookie: expected 401, got %d", rec.Code)
	}
	if rec := serve(r, withCookie("garbage")); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: expected 401, got %d", rec.Code)
	}
	if rec := serve(r, withCookie(token)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no session: expected 401, got %d", rec.Code)
	}

	mr.HSet(application.SessionKey("u1"), "sid", "s1")
	rec := serve(r, withCookie(token))
	if rec.Code != http.StatusOK || rec.Body.String() != "a@x.com" {
		t.Fatalf("expected 200 a@x.com, got %d %q", rec.Code, rec.Body.String())
	}

	mr.HSet(application.SessionKey("u1"), "sid", "rotated")
	if rec := serve(r, withCookie(token)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale session id: expected 401, got %d", rec.Code)
	}
}

func TestAuthWithoutRedis(t *testing.T) {
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	token, _, _ := jwt.GenerateAccessToken(helpers.Subject{UserID: "u1", Name: "A", Email: "a@x.com"})
	r := gin.New()
	r.GET("/me", Auth(nil, jwt), func(c *gin.Context) { c.String(http.StatusOK, c.GetString("userName")) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: token})
	if rec := serve(r, req); rec.Code != http.StatusOK || rec.Body.String() != "A" {
		t.Fatalf("expected 200 A, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRequestIDAndRealIP(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RealIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id")+"|"+c.GetString("real_ip"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "203.0.113.1")
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rec := serve(r, req)
	id := rec.Header().Get(HeaderRequestID)
	if id == "" || rec.Body.String() != id+"|203.0.113.1" {
		t.Fatalf("unexpected body %q (id %q)", rec.Body.String(), id)
	}

	const given = "3f0c3c8e-2f4b-4a57-9a8e-8a8f7f4d0b11"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, given)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	rec = serve(r, req)
	if rec.Body.String() != given+"|198.51.100.1" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
