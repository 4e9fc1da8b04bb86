package brandscan_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/brandscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	t.Run("defaults missing scheme to https", func(t *testing.T) {
		t.Parallel()

		got, err := brandscan.NormalizeBaseURL("acme.com")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.com", got)
	})

	t.Run("keeps explicit http scheme", func(t *testing.T) {
		t.Parallel()

		got, err := brandscan.NormalizeBaseURL("http://acme.com")

		require.NoError(t, err)
		assert.Equal(t, "http://acme.com", got)
	})

	t.Run("strips path, query, and fragment", func(t *testing.T) {
		t.Parallel()

		got, err := brandscan.NormalizeBaseURL("https://acme.com/pages/about?ref=x#top")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.com", got)
	})

	t.Run("lowercases the host", func(t *testing.T) {
		t.Parallel()

		got, err := brandscan.NormalizeBaseURL("HTTPS://Acme.COM")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.com", got)
	})

	t.Run("preserves the port", func(t *testing.T) {
		t.Parallel()

		got, err := brandscan.NormalizeBaseURL("http://localhost:8080/shop")

		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", got)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := brandscan.NormalizeBaseURL("  acme.com  ")

		require.NoError(t, err)
		assert.Equal(t, "https://acme.com", got)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := brandscan.NormalizeBaseURL("   ")

		assert.Equal(t, brandscan.EINVALID, brandscan.ErrorCode(err))
	})

	t.Run("rejects non-http schemes", func(t *testing.T) {
		t.Parallel()

		_, err := brandscan.NormalizeBaseURL("ftp://acme.com")

		assert.Equal(t, brandscan.EINVALID, brandscan.ErrorCode(err))
	})

	t.Run("rejects URLs without a host", func(t *testing.T) {
		t.Parallel()

		_, err := brandscan.NormalizeBaseURL("https:///nohost")

		assert.Equal(t, brandscan.EINVALID, brandscan.ErrorCode(err))
	})
}

func TestNormalizeQuestion(t *testing.T) {
	t.Parallel()

	t.Run("lowercases and collapses whitespace", func(t *testing.T) {
		t.Parallel()

		got := brandscan.NormalizeQuestion("  What  is\tyour\nReturn Policy? ")

		assert.Equal(t, "what is your return policy?", got)
	})

	t.Run("empty input stays empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, brandscan.NormalizeQuestion("   "))
	})
}

func TestBrandContext_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires base URL", func(t *testing.T) {
		t.Parallel()

		bcx := &brandscan.BrandContext{}

		err := bcx.Validate()

		assert.Equal(t, brandscan.EINVALID, brandscan.ErrorCode(err))
	})

	t.Run("accepts populated context", func(t *testing.T) {
		t.Parallel()

		bcx := brandscan.NewBrandContext("https://acme.com")

		assert.NoError(t, bcx.Validate())
	})
}

func TestBrandContext_JSONShape(t *testing.T) {
	t.Parallel()

	t.Run("empty context serializes with empty collections, not nulls", func(t *testing.T) {
		t.Parallel()

		bcx := brandscan.NewBrandContext("https://acme.com")

		data, err := json.Marshal(bcx)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"brand_name": null,
			"base_url": "https://acme.com",
			"products": [],
			"hero_products": [],
			"policies": [],
			"faqs": [],
			"social_handles": {},
			"contact_emails": [],
			"contact_phones": [],
			"about_text": null,
			"important_links": {}
		}`, string(data))
	})

	t.Run("serialization is deterministic", func(t *testing.T) {
		t.Parallel()

		name := "Acme"
		bcx := brandscan.NewBrandContext("https://acme.com")
		bcx.BrandName = &name
		bcx.SocialHandles[brandscan.SocialTwitter] = "acme"
		bcx.SocialHandles[brandscan.SocialInstagram] = "acme_store"
		bcx.ImportantLinks[brandscan.LinkAbout] = "https://acme.com/pages/about"
		bcx.ImportantLinks[brandscan.LinkContactUs] = "https://acme.com/contact"

		first, err := json.Marshal(bcx)
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			again, err := json.Marshal(bcx)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(again))
		}
	})
}
