package acquire_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rfontes/anuncio"
	"github.com/rfontes/anuncio/acquire"
	"github.com/rfontes/anuncio/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noDelays keeps retry tests fast.
var noDelays = []time.Duration{0, 0, 0}

func TestFallback_Acquire(t *testing.T) {
	t.Parallel()

	t.Run("dynamic success skips static entirely", func(t *testing.T) {
		t.Parallel()

		var staticCalls int
		dynamic := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>rendered</html>", nil
			},
		}
		static := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				staticCalls++
				return "<html>static</html>", nil
			},
		}

		acq, err := acquire.NewFallback(dynamic, static, acquire.WithRetryDelays(noDelays))
		require.NoError(t, err)

		html, backend, err := acq.Acquire(context.Background(), "https://sp.olx.com.br/ad-12345678")
		require.NoError(t, err)
		assert.Equal(t, "<html>rendered</html>", html)
		assert.Equal(t, anuncio.BackendDynamic, backend)
		assert.Zero(t, staticCalls)
	})

	t.Run("dynamic failure falls back to static", func(t *testing.T) {
		t.Parallel()

		dynamic := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("browser crashed")
			},
		}
		static := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>static</html>", nil
			},
		}

		acq, err := acquire.NewFallback(dynamic, static, acquire.WithRetryDelays(noDelays))
		require.NoError(t, err)

		html, backend, err := acq.Acquire(context.Background(), "https://sp.olx.com.br/ad-12345678")
		require.NoError(t, err)
		assert.Equal(t, "<html>static</html>", html)
		assert.Equal(t, anuncio.BackendStatic, backend)
	})

	t.Run("dynamic retries before falling back", func(t *testing.T) {
		t.Parallel()

		var dynamicCalls int
		dynamic := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				dynamicCalls++
				return "", errors.New("timeout")
			},
		}
		static := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>static</html>", nil
			},
		}

		acq, err := acquire.NewFallback(dynamic, static, acquire.WithRetryDelays(noDelays))
		require.NoError(t, err)

		_, _, err = acq.Acquire(context.Background(), "https://sp.olx.com.br/ad-12345678")
		require.NoError(t, err)
		assert.Equal(t, 4, dynamicCalls) // 1 initial + 3 retries
	})

	t.Run("both backends failing is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		dynamic := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("browser crashed")
			},
		}
		static := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("HTTP 503")
			},
		}

		acq, err := acquire.NewFallback(dynamic, static, acquire.WithRetryDelays(noDelays))
		require.NoError(t, err)

		_, _, err = acq.Acquire(context.Background(), "https://sp.olx.com.br/ad-12345678")
		require.Error(t, err)
		assert.Equal(t, anuncio.EUNAVAILABLE, anuncio.ErrorCode(err))
		assert.Contains(t, anuncio.ErrorMessage(err), "browser crashed")
		assert.Contains(t, anuncio.ErrorMessage(err), "HTTP 503")
	})

	t.Run("static-only operation", func(t *testing.T) {
		t.Parallel()

		static := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>static</html>", nil
			},
		}

		acq, err := acquire.NewFallback(nil, static)
		require.NoError(t, err)

		html, backend, err := acq.Acquire(context.Background(), "https://sp.olx.com.br/ad-12345678")
		require.NoError(t, err)
		assert.Equal(t, "<html>static</html>", html)
		assert.Equal(t, anuncio.BackendStatic, backend)
	})

	t.Run("dynamic-only failure is EUNAVAILABLE", func(t *testing.T) {
		t.Parallel()

		dynamic := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("browser crashed")
			},
		}

		acq, err := acquire.NewFallback(dynamic, nil, acquire.WithRetryDelays(noDelays))
		require.NoError(t, err)

		_, _, err = acq.Acquire(context.Background(), "https://sp.olx.com.br/ad-12345678")
		require.Error(t, err)
		assert.Equal(t, anuncio.EUNAVAILABLE, anuncio.ErrorCode(err))
	})

	t.Run("context cancellation propagates", func(t *testing.T) {
		t.Parallel()

		dynamic := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", ctx.Err()
			},
		}
		static := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				t.Fatal("static should not run after cancellation")
				return "", nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		acq, err := acquire.NewFallback(dynamic, static, acquire.WithRetryDelays(noDelays))
		require.NoError(t, err)

		_, _, err = acq.Acquire(ctx, "https://sp.olx.com.br/ad-12345678")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewFallback_RequiresBackend(t *testing.T) {
	t.Parallel()

	_, err := acquire.NewFallback(nil, nil)
	require.Error(t, err)
	assert.Equal(t, anuncio.EINVALID, anuncio.ErrorCode(err))
}

func TestFallback_Close_ClosesBothBackends(t *testing.T) {
	t.Parallel()

	var dynamicClosed, staticClosed bool
	dynamic := &mock.Fetcher{
		CloseFn: func() error {
			dynamicClosed = true
			return nil
		},
	}
	static := &mock.Fetcher{
		CloseFn: func() error {
			staticClosed = true
			return nil
		},
	}

	acq, err := acquire.NewFallback(dynamic, static)
	require.NoError(t, err)

	require.NoError(t, acq.Close())
	assert.True(t, dynamicClosed)
	assert.True(t, staticClosed)
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on later attempt", func(t *testing.T) {
		t.Parallel()

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("flaky")
			}
			return "ok", nil
		}

		html, err := acquire.FetchWithRetryDelays(context.Background(), "u", fetch, noDelays)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error after exhausting attempts", func(t *testing.T) {
		t.Parallel()

		fetch := func(ctx context.Context, url string) (string, error) {
			return "", errors.New("permanent")
		}

		_, err := acquire.FetchWithRetryDelays(context.Background(), "u", fetch, noDelays)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "permanent")
	})

	t.Run("stops during backoff when context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		var calls int
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			cancel()
			return "", errors.New("flaky")
		}

		_, err := acquire.FetchWithRetryDelays(ctx, "u", fetch, []time.Duration{time.Minute})
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
