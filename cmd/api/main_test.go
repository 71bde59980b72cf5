package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoforge/promoforge/config"
	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/pkg/logger"
)

// fakeApp implements app.AppInterface without any real dependencies.
type fakeApp struct {
	initErr  error
	startErr error

	started  chan struct{}
	stop     chan struct{}
	shutdown bool
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		started: make(chan struct{}),
		stop:    make(chan struct{}),
	}
}

func (f *fakeApp) Initialize() error { return f.initErr }

func (f *fakeApp) Start() error {
	close(f.started)
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stop
	return nil
}

func (f *fakeApp) Shutdown(ctx context.Context) error {
	f.shutdown = true
	close(f.stop)
	return nil
}

func (f *fakeApp) GetConfig() *config.Config                  { return nil }
func (f *fakeApp) GetLogger() logger.Logger                   { return nil }
func (f *fakeApp) GetMux() *http.ServeMux                     { return nil }
func (f *fakeApp) GetTemplateService() domain.TemplateService { return nil }
func (f *fakeApp) GetRenderService() domain.RenderService     { return nil }
func (f *fakeApp) GetCopyService() domain.CopyService         { return nil }

func TestRunServer_InitializeFailure(t *testing.T) {
	fake := newFakeApp()
	fake.initErr = errors.New("db unreachable")

	err := runServer(fake, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db unreachable")
}

func TestRunServer_StartFailure(t *testing.T) {
	fake := newFakeApp()
	fake.startErr = errors.New("listen failed")

	err := runServer(fake, logger.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen failed")
}

func TestRunServer_GracefulShutdownOnSignal(t *testing.T) {
	fake := newFakeApp()

	var sigCh chan<- os.Signal
	origNotify := signalNotify
	signalNotify = func(c chan<- os.Signal, sig ...os.Signal) {
		sigCh = c
	}
	defer func() { signalNotify = origNotify }()

	done := make(chan error, 1)
	go func() {
		done <- runServer(fake, logger.NewTestLogger(t))
	}()

	select {
	case <-fake.started:
	case <-time.After(2 * time.Second):
		t.Fatal("server never started")
	}

	sigCh <- syscall.SIGTERM

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, fake.shutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("runServer did not return after signal")
	}
}
