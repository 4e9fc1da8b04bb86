package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phoneRE = regexp.MustCompile(`(?:\+\d{1,3}[\s-]?)?(?:\(?\d{2,4}\)?[\s-]?)?\d{3,4}[\s-]?\d{4}`)
)

// Ensure ContactScanner implements brandscan.ContactScanner.
var _ brandscan.ContactScanner = (*ContactScanner)(nil)

// ContactScanner finds emails and phone numbers in a page's visible
// text and social profile links in its anchors.
type ContactScanner struct{}

// NewContactScanner creates a new ContactScanner.
func NewContactScanner() *ContactScanner {
	return &ContactScanner{}
}

// ScanContacts returns the contact signals found in html, in encounter
// order and not deduplicated; the caller merges results across pages.
// Emails and phones are matched against visible text only, so script
// bodies and markup attributes do not contribute.
func (s *ContactScanner) ScanContacts(html string) (*brandscan.ContactSet, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	set := &brandscan.ContactSet{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if platform, ok := brandscan.MatchSocialPlatform(href); ok {
			set.Socials = append(set.Socials, brandscan.SocialLink{
				Platform: platform,
				URL:      strings.TrimSpace(href),
			})
		}
	})

	doc.Find("script, style, noscript, template").Remove()
	text := doc.Text()

	set.Emails = emailRE.FindAllString(text, -1)
	for _, phone := range phoneRE.FindAllString(text, -1) {
		if p := strings.TrimSpace(phone); p != "" {
			set.Phones = append(set.Phones, p)
		}
	}

	return set, nil
}
