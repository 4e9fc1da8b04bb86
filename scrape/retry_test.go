package scrape_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	timeoutErr := func(url string) error {
		return &brandscan.FetchError{URL: url, Reason: brandscan.FetchTimeout}
	}

	t.Run("returns the first success without retrying", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
			calls++
			return &brandscan.FetchResult{Body: "ok", StatusCode: 200}, nil
		}

		res, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "ok", res.Body)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
			calls++
			if calls < 3 {
				return nil, timeoutErr(url)
			}
			return &brandscan.FetchResult{Body: "third time", StatusCode: 200}, nil
		}

		res, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{0, 0})

		require.NoError(t, err)
		assert.Equal(t, "third time", res.Body)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after exhausting every attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
			calls++
			return nil, timeoutErr(url)
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 3, calls, "one initial attempt plus two retries")

		var fe *brandscan.FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, brandscan.FetchTimeout, fe.Reason)
	})

	t.Run("does not retry a 404", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
			calls++
			return nil, &brandscan.FetchError{URL: url, Reason: brandscan.FetchHTTPStatus, StatusCode: 404}
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries 5xx and 429 statuses", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{500, 503, 429} {
			calls := 0
			fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
				calls++
				return nil, &brandscan.FetchError{URL: url, Reason: brandscan.FetchHTTPStatus, StatusCode: status}
			}

			_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{0})

			require.Error(t, err)
			assert.Equal(t, 2, calls, "status %d should be retried", status)
		}
	})

	t.Run("does not retry errors outside the fetch taxonomy", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(_ context.Context, _ string) (*brandscan.FetchResult, error) {
			calls++
			return nil, errors.New("boom")
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops when the context is canceled before a backoff", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
			calls++
			cancel()
			return nil, timeoutErr(url)
		}

		_, err := scrape.FetchWithRetryDelays(ctx, "https://acme.com", fetch, nil, []time.Duration{10 * time.Second})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("waits out the configured delays between attempts", func(t *testing.T) {
		t.Parallel()

		fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
			return nil, timeoutErr(url)
		}

		start := time.Now()
		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, nil, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond})
		elapsed := time.Since(start)

		require.Error(t, err)
		assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond, "both backoff delays should elapse")
	})

	t.Run("logs each retry attempt", func(t *testing.T) {
		t.Parallel()

		fetch := func(_ context.Context, url string) (*brandscan.FetchResult, error) {
			return nil, timeoutErr(url)
		}

		var logged []string
		logger := func(format string, _ ...any) {
			logged = append(logged, format)
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.com", fetch, logger, []time.Duration{0, 0})

		require.Error(t, err)
		assert.Len(t, logged, 2, "two retries, one log line each")
	})
}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{1 * time.Second, 2 * time.Second}, scrape.DefaultRetryDelays())
}
