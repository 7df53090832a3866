package main

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

type appStub struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	started  bool
	stopped  bool
}

func (a *appStub) Start(context.Context) error {
	a.started = true
	return a.startErr
}

func (a *appStub) Stop(context.Context) error {
	a.stopped = true
	return a.stopErr
}

func (a *appStub) Done() <-chan os.Signal { return a.done }

func TestRunStopsOnContextCancel(t *testing.T) {
	app := &appStub{done: make(chan os.Signal)}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := run(ctx, app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.started || !app.stopped {
		t.Fatalf("expected start and stop, got %+v", app)
	}
}

func TestRunStopsOnShutdownRequest(t *testing.T) {
	app := &appStub{done: make(chan os.Signal, 1)}
	app.done <- os.Interrupt

	if err := run(context.Background(), app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.stopped {
		t.Fatal("expected stop after shutdown request")
	}
}

func TestRunReportsErrors(t *testing.T) {
	boom := errors.New("boom")

	app := &appStub{startErr: boom, done: make(chan os.Signal)}
	if err := run(context.Background(), app); !errors.Is(err, boom) {
		t.Fatalf("expected start error, got %v", err)
	}
	if app.stopped {
		t.Fatal("stop must not run after failed start")
	}

	app = &appStub{stopErr: boom, done: make(chan os.Signal, 1)}
	app.done <- os.Interrupt
	if err := run(context.Background(), app); !errors.Is(err, boom) {
		t.Fatalf("expected stop error, got %v", err)
	}
}
