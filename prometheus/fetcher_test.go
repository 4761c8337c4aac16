package prometheus_test

import (
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/pagetext"
	"github.com/fwojciec/pagetext/mock"
	pageprom "github.com/fwojciec/pagetext/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("counts fetches by outcome", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagetext.Document, error) {
				switch url {
				case "https://site.test/missing":
					return nil, &pagetext.Error{Code: pagetext.EHTTP, Status: 404}
				case "https://down.test/":
					return nil, pagetext.Errorf(pagetext.ECONNECT, "refused")
				}
				return &pagetext.Document{URL: url}, nil
			},
		}
		fetcher, err := pageprom.NewMetricsFetcher(inner, reg)
		require.NoError(t, err)

		for _, url := range []string{"https://site.test/", "https://site.test/a", "https://site.test/missing", "https://down.test/"} {
			_, _ = fetcher.Fetch(context.Background(), url)
		}

		expected := `
# HELP pagetext_fetches_total Page fetches by outcome.
# TYPE pagetext_fetches_total counter
pagetext_fetches_total{outcome="connect"} 1
pagetext_fetches_total{outcome="http"} 1
pagetext_fetches_total{outcome="ok"} 2
`
		err = testutil.GatherAndCompare(reg, strings.NewReader(expected), "pagetext_fetches_total")
		assert.NoError(t, err)
	})

	t.Run("observes durations", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagetext.Document, error) {
				return &pagetext.Document{URL: url}, nil
			},
		}
		fetcher, err := pageprom.NewMetricsFetcher(inner, reg)
		require.NoError(t, err)

		_, err = fetcher.Fetch(context.Background(), "https://site.test/")
		require.NoError(t, err)

		count, err := testutil.GatherAndCount(reg, "pagetext_fetch_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("returns the wrapped result unchanged", func(t *testing.T) {
		t.Parallel()

		want := &pagetext.Document{URL: "https://site.test/"}
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*pagetext.Document, error) {
				return want, nil
			},
		}
		fetcher, err := pageprom.NewMetricsFetcher(inner, prometheus.NewRegistry())
		require.NoError(t, err)

		doc, err := fetcher.Fetch(context.Background(), "https://site.test/")

		require.NoError(t, err)
		assert.Same(t, want, doc)
	})
}

func TestNewMetricsFetcher_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	inner := &mock.Fetcher{}

	_, err := pageprom.NewMetricsFetcher(inner, reg)
	require.NoError(t, err)
	_, err = pageprom.NewMetricsFetcher(inner, reg)

	require.Error(t, err)
	assert.Equal(t, pagetext.EINTERNAL, pagetext.ErrorCode(err))
}

func TestMetricsFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}
	fetcher, err := pageprom.NewMetricsFetcher(inner, prometheus.NewRegistry())
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	assert.True(t, closed)
}
