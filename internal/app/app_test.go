package app

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/membersonly/internal/config"
	pkgAuth "github.com/polkiloo/membersonly/internal/pkg/auth"
	testhelpers "github.com/polkiloo/membersonly/internal/test"
	"github.com/polkiloo/membersonly/internal/worker"
)

func newTestHashPool() *worker.HashPool {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return worker.NewHashPool(&testhelpers.HasherStub{}, 1, logger)
}

func newTestStrategy(pool *worker.HashPool) *pkgAuth.LocalStrategy {
	return pkgAuth.NewLocalStrategy(testhelpers.NewUserRepositoryStub(), pool)
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	hasher := &testhelpers.HasherStub{}
	pool := worker.NewHashPool(hasher, 1, logger)
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Hashers:    pool,
		Strategy:   newTestStrategy(pool),
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if hasher.HashCalls() != 1 {
		t.Fatalf("expected the dummy login hash to be primed on start, got %d hashes", hasher.HashCalls())
	}
	// the pool must outlive the start context
	cancel()

	if _, err := pool.Hash(context.Background(), "pw"); err != nil {
		t.Fatalf("expected running hash pool, got %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}

	if _, err := pool.Hash(context.Background(), "pw"); err != worker.ErrHashPoolStopped {
		t.Fatalf("expected stopped pool, got %v", err)
	}
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	server := &http.Server{Addr: "bad addr"}
	pool := newTestHashPool()

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     logger,
		Server:     server,
		Hashers:    pool,
		Strategy:   newTestStrategy(pool),
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestRegisterLifecycleWarnsOnDefaultSessionSecret(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		warn   bool
	}{
		{"default secret", "change-me-in-production", true},
		{"configured secret", "s3cret", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			recorder := &testhelpers.LifecycleRecorder{}
			pool := worker.NewHashPool(&testhelpers.HasherStub{}, 1, logger)

			registerLifecycle(lifecycleParams{
				Lifecycle:  recorder,
				Shutdowner: &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)},
				Logger:     logger,
				Server:     &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
				Hashers:    pool,
				Strategy:   newTestStrategy(pool),
				Config:     &config.Config{SessionSecret: tc.secret, ShutdownTimeout: time.Second},
			})

			hook := recorder.Hooks[0]
			if err := hook.OnStart(context.Background()); err != nil {
				t.Fatalf("on start failed: %v", err)
			}
			t.Cleanup(func() { _ = hook.OnStop(context.Background()) })

			logged := strings.Contains(buf.String(), "using default session secret")
			if logged != tc.warn {
				t.Fatalf("expected warning logged=%v, got logs %s", tc.warn, buf.String())
			}
		})
	}
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}

func TestShutdownerStub(t *testing.T) {
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	if err := shutdowner.Shutdown(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-shutdowner.Called:
	default:
		t.Fatal("expected shutdown notification")
	}
}
