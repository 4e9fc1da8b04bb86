package brandscan

// StructuredProduct is a Product-typed JSON-LD record lifted from a
// page. URL may be relative; the assembler resolves it against the base
// URL.
type StructuredProduct struct {
	Name string
	URL  string
}

// StructuredOrganization is an Organization-typed JSON-LD record.
// SameAs lists the organization's profile URLs, typically social links.
type StructuredOrganization struct {
	Name   string
	SameAs []string
}

// StructuredData aggregates the typed JSON-LD records found on one
// page. Unknown schema types and malformed blocks are skipped, so any
// field may be empty.
type StructuredData struct {
	Products      []StructuredProduct
	FAQs          []FAQ
	Organizations []StructuredOrganization
}

// Empty reports whether no known records were found.
func (d *StructuredData) Empty() bool {
	return len(d.Products) == 0 && len(d.FAQs) == 0 && len(d.Organizations) == 0
}

// StructuredParser locates JSON-LD blocks in a page and returns the
// typed records it recognizes. A page with no structured data yields an
// empty StructuredData, not an error; errors are reserved for markup
// that cannot be parsed at all.
type StructuredParser interface {
	Parse(html string) (*StructuredData, error)
}
