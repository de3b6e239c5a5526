package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rfontes/anuncio"
	main "github.com/rfontes/anuncio/cmd/anuncio"
	"github.com/rfontes/anuncio/mock"
)

func TestCollectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints discovered listing URLs", func(t *testing.T) {
		t.Parallel()

		urls := []string{
			"https://sp.olx.com.br/autos-e-pecas/carros/gol-11111111",
			"https://sp.olx.com.br/autos-e-pecas/carros/uno-22222222",
		}

		var discovered string
		source := &mock.URLSource{
			DiscoverFn: func(ctx context.Context, sourceURL string) ([]string, error) {
				discovered = sourceURL
				return urls, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Source: source,
		}

		cmd := &main.CollectCmd{URL: "https://sp.olx.com.br/autos-e-pecas/carros"}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, "https://sp.olx.com.br/autos-e-pecas/carros", discovered)
		for _, u := range urls {
			assert.Contains(t, stdout.String(), u)
		}
		assert.Contains(t, stderr.String(), "2 listing URLs")
	})

	t.Run("rejects URLs outside the site", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Source: &mock.URLSource{},
		}

		cmd := &main.CollectCmd{URL: "https://example.com/autos"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, anuncio.EINVALID, anuncio.ErrorCode(err))
	})

	t.Run("reports discovery failure", func(t *testing.T) {
		t.Parallel()

		source := &mock.URLSource{
			DiscoverFn: func(ctx context.Context, sourceURL string) ([]string, error) {
				return nil, anuncio.Errorf(anuncio.EUNAVAILABLE, "search page unavailable")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: source,
		}

		cmd := &main.CollectCmd{URL: "https://sp.olx.com.br/autos-e-pecas/carros"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "search page unavailable")
	})
}
