package sentry

import (
	"errors"
	"testing"

	sentrygo "github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestSentry_BuilderPattern(t *testing.T) {
	t.Run("WithContext sets context", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(nil, nil)
		s := new(Sentry)

		result := s.WithContext(ctx)

		assert.Equal(t, ctx, result.context)
		assert.Equal(t, s, result, "should return same instance for chaining")
	})

	t.Run("WithError sets error", func(t *testing.T) {
		err := errors.New("test error")
		s := new(Sentry)

		result := s.WithError(err)

		assert.Equal(t, err, result.error)
		assert.Equal(t, s, result, "should return same instance for chaining")
	})

	t.Run("WithMessage sets message", func(t *testing.T) {
		s := new(Sentry)

		result := s.WithMessage("test message")

		assert.Equal(t, "test message", result.message)
	})

	t.Run("methods can be chained together", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(nil, nil)
		err := errors.New("test error")
		extras := map[string]interface{}{"key": "value"}
		tags := map[string]string{"env": "test"}

		s := new(Sentry).
			WithContext(ctx).
			WithError(err).
			WithMessage("test").
			WithLevel(sentrygo.LevelError).
			WithExtras(extras).
			WithTags(tags)

		assert.Equal(t, ctx, s.context)
		assert.Equal(t, err, s.error)
		assert.Equal(t, "test", s.message)
		assert.Equal(t, sentrygo.LevelError, s.level)
		assert.Equal(t, extras, s.extras)
		assert.Equal(t, tags, s.tags)
	})
}

func TestSentry_SendingBehavior(t *testing.T) {
	t.Run("does not send when APP_ENV is local", func(t *testing.T) {
		t.Setenv("APP_ENV", "local")
		t.Setenv("SENTRY_DSN", "https://test@sentry.io/123")

		s := new(Sentry)
		// Should not panic or error
		s.WithMessage("test").WithLevel(sentrygo.LevelInfo).sendMessage()
		s.WithError(errors.New("test")).WithLevel(sentrygo.LevelError).sendError()
	})

	t.Run("does not send when SENTRY_DSN is empty", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SENTRY_DSN", "")

		s := new(Sentry)
		s.WithMessage("test").WithLevel(sentrygo.LevelInfo).sendMessage()
		s.WithError(errors.New("test")).WithLevel(sentrygo.LevelError).sendError()
	})

	t.Run("sends error when conditions are met", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("SENTRY_DSN", "https://public@sentry.example.com/1")

		err := sentrygo.Init(sentrygo.ClientOptions{
			Dsn: "https://public@sentry.example.com/1",
		})
		assert.NoError(t, err)
		defer sentrygo.Flush(0)

		s := new(Sentry)
		s.WithError(errors.New("test error")).
			WithLevel(sentrygo.LevelError).
			WithExtras(map[string]interface{}{"key": "value"}).
			WithTags(map[string]string{"env": "test"}).
			sendError()
	})
}

func TestSentry_LogLevelMethods(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	s := new(Sentry)

	// Should execute without panic
	s.Debug("debug message")
	s.Debugf("debug: %s", "test")
	s.Info("info message")
	s.Infof("info: %s", "test")
	s.Warning("warning message")
	s.Warningf("warning: %s", "test")
	s.Error(errors.New("error"))
	s.Errorf("error: %s", "test")
}

func TestSentry_Fatal(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	originalFlushTime := FlushTime
	FlushTime = 0
	defer func() { FlushTime = originalFlushTime }()

	s := new(Sentry)
	// Should not panic and must not exit the process
	s.Fatal(errors.New("fatal error"))
	s.Fatalf("fatal: %s", "test")
}

func TestSentry_ConvenienceFunctions(t *testing.T) {
	t.Setenv("APP_ENV", "local")

	t.Run("WithContext creates sentry with context", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(nil, nil)

		s := WithContext(ctx)

		assert.NotNil(t, s)
		assert.Equal(t, ctx, s.context)
	})

	t.Run("WithTags creates sentry with tags", func(t *testing.T) {
		tags := map[string]string{"env": "test"}

		s := WithTags(tags)

		assert.NotNil(t, s)
		assert.Equal(t, tags, s.tags)
	})

	t.Run("standalone capture functions run", func(t *testing.T) {
		Debug("test")
		Debugf("debug: %s", "test")
		Info("test")
		Infof("info: %s", "test")
		Warning("test")
		Warningf("warning: %s", "test")
		Error(errors.New("test"))
		Errorf("error: %s", "test")
	})
}

func TestSentry_GetHub(t *testing.T) {
	t.Run("returns current hub when no context", func(t *testing.T) {
		s := new(Sentry)
		hub := s.getHub()

		assert.NotNil(t, hub, "should return a valid hub")
	})

	t.Run("returns hub from echo context when available", func(t *testing.T) {
		e := echo.New()
		ctx := e.NewContext(nil, nil)
		hub := sentrygo.CurrentHub().Clone()
		ctx.Set("sentry", hub)

		s := new(Sentry).WithContext(ctx)

		assert.NotNil(t, s.getHub(), "should return a valid hub")
	})
}

func TestSentry_ConfigScope(t *testing.T) {
	s := new(Sentry)
	s.level = sentrygo.LevelError
	s.extras = map[string]interface{}{"key": "value"}
	s.tags = map[string]string{"env": "test"}
	s.contextValues = map[string]sentrygo.Context{"custom": {}}

	scope := sentrygo.NewScope()
	s.configScope(scope)

	assert.NotNil(t, scope)
}
