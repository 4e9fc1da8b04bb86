package bing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/bing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompetitorService_FindCompetitors(t *testing.T) {
	t.Parallel()

	t.Run("returns empty result without an API key", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		svc := bing.NewCompetitorService("", bing.WithEndpoint(srv.URL))

		got, err := svc.FindCompetitors(context.Background(), "https://acme.com", 5)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, calls.Load(), "search API should not be called without a key")
	})

	t.Run("sends the scoped query with the subscription key", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "secret-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
			assert.Equal(t, "similar brands to acme.com site:shopify.com OR site:myshopify.com", r.URL.Query().Get("q"))
			assert.Equal(t, "5", r.URL.Query().Get("count"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"webPages": {
					"value": [
						{"url": "https://rival-one.myshopify.com", "name": "Rival One"},
						{"url": "https://rival-two.com", "name": "Rival Two"}
					]
				}
			}`))
		}))
		defer srv.Close()

		svc := bing.NewCompetitorService("secret-key", bing.WithEndpoint(srv.URL))

		got, err := svc.FindCompetitors(context.Background(), "https://www.acme.com/shop", 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://rival-one.myshopify.com", "https://rival-two.com"}, got)
	})

	t.Run("caps results at the limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"webPages": {
					"value": [
						{"url": "https://a.com"},
						{"url": ""},
						{"url": "https://b.com"},
						{"url": "https://c.com"},
						{"url": "https://d.com"}
					]
				}
			}`))
		}))
		defer srv.Close()

		svc := bing.NewCompetitorService("secret-key", bing.WithEndpoint(srv.URL))

		got, err := svc.FindCompetitors(context.Background(), "acme.com", 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"https://a.com", "https://b.com", "https://c.com"}, got)
	})

	t.Run("returns EUNAVAILABLE on a search API failure", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		svc := bing.NewCompetitorService("secret-key", bing.WithEndpoint(srv.URL))

		_, err := svc.FindCompetitors(context.Background(), "https://acme.com", 5)
		require.Error(t, err)
		assert.Equal(t, brandscan.EUNAVAILABLE, brandscan.ErrorCode(err))
	})

	t.Run("returns EINVALID for a bad website URL", func(t *testing.T) {
		t.Parallel()

		svc := bing.NewCompetitorService("secret-key")

		_, err := svc.FindCompetitors(context.Background(), "://bad", 5)
		require.Error(t, err)
		assert.Equal(t, brandscan.EINVALID, brandscan.ErrorCode(err))
	})
}
