package brandscan

import "strings"

// Link is an anchor lifted from a fetched page: its absolute URL and
// visible text.
type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// LinkCategory labels an important storefront link. The five policy
// kinds double as link categories, so a privacy policy discovered only
// as a footer link still lands in ImportantLinks under "privacy".
type LinkCategory string

const (
	LinkContactUs     LinkCategory = "contact_us"
	LinkAbout         LinkCategory = "about"
	LinkBlogs         LinkCategory = "blogs"
	LinkOrderTracking LinkCategory = "order_tracking"
	LinkFAQ           LinkCategory = "faq"
)

// PolicyLinkCategory returns the link category corresponding to a policy
// kind.
func PolicyLinkCategory(kind PolicyKind) LinkCategory {
	return LinkCategory(kind)
}

// LinkCategories returns every link category in classification order:
// the five policy kinds first, then the common storefront links. The
// order is fixed so repeated runs classify identically.
func LinkCategories() []LinkCategory {
	cats := make([]LinkCategory, 0, 10)
	for _, kind := range PolicyKinds() {
		cats = append(cats, PolicyLinkCategory(kind))
	}
	return append(cats,
		LinkContactUs,
		LinkAbout,
		LinkBlogs,
		LinkOrderTracking,
		LinkFAQ,
	)
}

// linkSlugs lists the well-known URL path fragments for each common link
// category. A link whose href contains any fragment matches the
// category.
var linkSlugs = map[LinkCategory][]string{
	LinkContactUs: {
		"/pages/contact",
		"/contact",
		"/pages/contact-us",
		"/contact-us",
	},
	LinkAbout: {
		"/pages/about",
		"/pages/about-us",
		"/about",
		"/about-us",
	},
	LinkBlogs: {
		"/blogs",
		"/blogs/news",
	},
	LinkOrderTracking: {
		"/pages/track-order",
		"/pages/order-tracking",
		"/apps/track",
		"/a/track",
	},
	LinkFAQ: {
		"/pages/faq",
		"/pages/faqs",
		"/faq",
		"/faqs",
		"/pages/help",
		"/pages/support",
	},
}

// LinkSlugs returns the well-known path fragments for cat, in probe
// order. Policy categories resolve through CanonicalPolicyPaths instead
// and return nil here.
func LinkSlugs(cat LinkCategory) []string {
	return linkSlugs[cat]
}

// linkKeywords maps common link categories to anchor-text substrings
// used when the href alone does not identify the category.
var linkKeywords = map[LinkCategory][]string{
	LinkContactUs:     {"contact"},
	LinkAbout:         {"about"},
	LinkBlogs:         {"blog"},
	LinkOrderTracking: {"track"},
	LinkFAQ:           {"faq", "help", "support"},
}

// ClassifyLink returns every category the link matches, in
// LinkCategories order. A link matches a category when its href
// contains one of the category's well-known path fragments or its
// visible text contains one of the category's keywords.
func ClassifyLink(link Link) []LinkCategory {
	href := strings.ToLower(link.URL)
	text := strings.ToLower(link.Text)

	var matched []LinkCategory
	for _, cat := range LinkCategories() {
		slugs := linkSlugs[cat]
		keywords := linkKeywords[cat]
		if kind := PolicyKind(cat); len(slugs) == 0 && len(keywords) == 0 {
			slugs = canonicalPolicyPaths[kind]
			keywords = policyKeywords[kind]
		}
		if matchAny(href, slugs) || matchAny(text, keywords) {
			matched = append(matched, cat)
		}
	}
	return matched
}

func matchAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
