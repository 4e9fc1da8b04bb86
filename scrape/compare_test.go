package scrape_test

import (
	"testing"

	"github.com/fwojciec/brandscan"
	"github.com/fwojciec/brandscan/mock"
	"github.com/fwojciec/brandscan/scrape"
	"github.com/stretchr/testify/assert"
)

func TestContentDiffers(t *testing.T) {
	t.Parallel()

	t.Run("returns true when rendered content is more than 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				// Return different lengths based on input
				if html == "http-html" {
					return &brandscan.ExtractResult{
						ContentHTML: "short content",
					}, nil
				}
				return &brandscan.ExtractResult{
					ContentHTML: "much longer content from the browser which is significantly bigger",
				}, nil
			},
		}

		result := scrape.ContentDiffers("http-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when rendered content is >50% longer")
	})

	t.Run("returns false when content lengths are similar", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				if html == "http-html" {
					return &brandscan.ExtractResult{
						ContentHTML: "some content here",
					}, nil
				}
				return &brandscan.ExtractResult{
					ContentHTML: "similar size text",
				}, nil
			},
		}

		result := scrape.ContentDiffers("http-html", "rendered-html", extractor)

		assert.False(t, result, "should return false when content is similar length")
	})

	t.Run("returns false when rendered content is only 50% longer", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				if html == "http-html" {
					return &brandscan.ExtractResult{
						ContentHTML: "0123456789", // 10 chars
					}, nil
				}
				return &brandscan.ExtractResult{
					ContentHTML: "012345678901234", // 15 chars (exactly 50% longer)
				}, nil
			},
		}

		result := scrape.ContentDiffers("http-html", "rendered-html", extractor)

		assert.False(t, result, "should return false at the 50% boundary")
	})

	t.Run("returns true when HTTP extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				if html == "http-html" {
					return nil, brandscan.Errorf(brandscan.EINTERNAL, "extraction failed")
				}
				return &brandscan.ExtractResult{
					ContentHTML: "rendered content",
				}, nil
			},
		}

		result := scrape.ContentDiffers("http-html", "rendered-html", extractor)

		assert.True(t, result, "should assume rendering is needed when HTTP extraction fails")
	})

	t.Run("returns true when rendered extraction fails", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				if html == "http-html" {
					return &brandscan.ExtractResult{
						ContentHTML: "http content",
					}, nil
				}
				return nil, brandscan.Errorf(brandscan.EINTERNAL, "extraction failed")
			},
		}

		result := scrape.ContentDiffers("http-html", "rendered-html", extractor)

		assert.True(t, result, "should assume rendering is needed when rendered extraction fails")
	})

	t.Run("returns true when HTTP content is empty", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.TextExtractor{
			ExtractFn: func(html string) (*brandscan.ExtractResult, error) {
				if html == "http-html" {
					return &brandscan.ExtractResult{
						ContentHTML: "",
					}, nil
				}
				return &brandscan.ExtractResult{
					ContentHTML: "rendered has content",
				}, nil
			},
		}

		result := scrape.ContentDiffers("http-html", "rendered-html", extractor)

		assert.True(t, result, "should return true when only the rendered fetch has content")
	})
}
