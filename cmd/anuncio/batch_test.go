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

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	searchURL := "https://sp.olx.com.br/autos-e-pecas/carros"
	urls := []string{
		"https://sp.olx.com.br/autos-e-pecas/carros/gol-11111111",
		"https://sp.olx.com.br/autos-e-pecas/carros/uno-22222222",
	}

	t.Run("processes and stores every discovered listing", func(t *testing.T) {
		t.Parallel()

		var saved []string
		p := testProcessor()
		p.Source = &mock.URLSource{
			DiscoverFn: func(ctx context.Context, sourceURL string) ([]string, error) {
				return urls, nil
			},
		}
		p.Listings = &mock.ListingService{
			CreateListingFn: func(ctx context.Context, listing *anuncio.Listing) error {
				saved = append(saved, listing.URL)
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Processor: p,
		}

		cmd := &main.BatchCmd{URL: searchURL, Concurrency: 1}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, urls, saved)
		assert.Contains(t, stdout.String(), "Found 2 listings")
		assert.Contains(t, stdout.String(), "Saved 2 listings, 0 failed")
	})

	t.Run("per-listing failures show as skips", func(t *testing.T) {
		t.Parallel()

		p := testProcessor()
		p.Acquirer = &mock.Acquirer{
			AcquireFn: func(ctx context.Context, url string) (string, anuncio.Backend, error) {
				if url == urls[0] {
					return "", "", anuncio.Errorf(anuncio.EUNAVAILABLE, "all backends failed")
				}
				return "<html></html>", anuncio.BackendStatic, nil
			},
		}
		p.Source = &mock.URLSource{
			DiscoverFn: func(ctx context.Context, sourceURL string) ([]string, error) {
				return urls, nil
			},
		}
		p.Listings = &mock.ListingService{
			CreateListingFn: func(ctx context.Context, listing *anuncio.Listing) error { return nil },
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    stdout,
			Stderr:    stderr,
			Processor: p,
		}

		cmd := &main.BatchCmd{URL: searchURL, Concurrency: 1}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "skip")
		assert.Contains(t, stdout.String(), "Saved 1 listings, 1 failed")
	})

	t.Run("rejects URLs outside the site", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Processor: testProcessor(),
		}

		cmd := &main.BatchCmd{URL: "https://example.com/autos"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, anuncio.EINVALID, anuncio.ErrorCode(err))
	})
}
