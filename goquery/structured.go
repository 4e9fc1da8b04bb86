package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/brandscan"
)

// Ensure StructuredParser implements brandscan.StructuredParser.
var _ brandscan.StructuredParser = (*StructuredParser)(nil)

// StructuredParser locates JSON-LD blocks in a page and lifts out the
// schema.org records the pipeline understands: Product, ItemList,
// FAQPage, and Organization. Everything else is ignored.
type StructuredParser struct{}

// NewStructuredParser creates a new StructuredParser.
func NewStructuredParser() *StructuredParser {
	return &StructuredParser{}
}

// Parse returns the typed records found in html. A malformed JSON-LD
// block never aborts extraction of the remaining blocks on the page.
func (p *StructuredParser) Parse(html string) (*brandscan.StructuredData, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, brandscan.Errorf(brandscan.EINVALID, "failed to parse HTML: %v", err)
	}

	data := &brandscan.StructuredData{}
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return
		}
		for _, rec := range flattenRecords(payload) {
			collectRecord(data, rec)
		}
	})

	return data, nil
}

// flattenRecords normalizes a decoded JSON-LD payload into a flat list
// of record objects. Top-level arrays and @graph containers are both
// unwrapped one level.
func flattenRecords(payload any) []map[string]any {
	var items []any
	switch v := payload.(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil
	}

	var records []map[string]any
	for _, item := range items {
		rec, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if graph, ok := rec["@graph"].([]any); ok {
			for _, g := range graph {
				if grec, ok := g.(map[string]any); ok {
					records = append(records, grec)
				}
			}
			continue
		}
		records = append(records, rec)
	}
	return records
}

// collectRecord sorts one record into data by its @type.
func collectRecord(data *brandscan.StructuredData, rec map[string]any) {
	switch {
	case hasType(rec, "Product"):
		if p, ok := productFromRecord(rec); ok {
			data.Products = append(data.Products, p)
		}
	case hasType(rec, "ItemList"):
		for _, el := range stringOrList(rec["itemListElement"]) {
			item, ok := el.(map[string]any)
			if !ok {
				continue
			}
			// ListItem wrappers carry the product under "item".
			if inner, ok := item["item"].(map[string]any); ok {
				item = inner
			}
			if p, ok := productFromRecord(item); ok {
				data.Products = append(data.Products, p)
			}
		}
	case hasType(rec, "FAQPage"):
		for _, el := range stringOrList(rec["mainEntity"]) {
			entity, ok := el.(map[string]any)
			if !ok {
				continue
			}
			if faq, ok := faqFromEntity(entity); ok {
				data.FAQs = append(data.FAQs, faq)
			}
		}
	case hasType(rec, "Organization"):
		org := brandscan.StructuredOrganization{Name: stringField(rec, "name")}
		for _, s := range stringOrList(rec["sameAs"]) {
			if u, ok := s.(string); ok && strings.TrimSpace(u) != "" {
				org.SameAs = append(org.SameAs, strings.TrimSpace(u))
			}
		}
		if org.Name != "" || len(org.SameAs) > 0 {
			data.Organizations = append(data.Organizations, org)
		}
	}
}

func productFromRecord(rec map[string]any) (brandscan.StructuredProduct, bool) {
	name := stringField(rec, "name")
	if name == "" {
		return brandscan.StructuredProduct{}, false
	}
	return brandscan.StructuredProduct{Name: name, URL: stringField(rec, "url")}, true
}

func faqFromEntity(entity map[string]any) (brandscan.FAQ, bool) {
	q := stringField(entity, "name")
	if q == "" {
		q = stringField(entity, "question")
	}
	if q == "" {
		return brandscan.FAQ{}, false
	}

	var a string
	if accepted, ok := entity["acceptedAnswer"].(map[string]any); ok {
		a = stringField(accepted, "text")
	}
	return brandscan.FAQ{Question: q, Answer: a}, true
}

// hasType reports whether the record's @type matches want. JSON-LD
// allows @type to be a string or a list of strings.
func hasType(rec map[string]any, want string) bool {
	switch t := rec["@type"].(type) {
	case string:
		return t == want
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

// stringOrList normalizes a field that may hold a single value or a
// list of values.
func stringOrList(v any) []any {
	switch val := v.(type) {
	case []any:
		return val
	case nil:
		return nil
	default:
		return []any{val}
	}
}

func stringField(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return strings.TrimSpace(s)
}
