// Package brandscan extracts a normalized Brand Context record from a
// public storefront: product catalog, hero products, policies, FAQs,
// social handles, contacts, about text, and categorized links. Pages are
// fetched resiliently, structured data (JSON-LD) is preferred where
// present, and DOM heuristics fill the gaps; partial results are merged
// under fixed precedence and deduplication rules.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, trafilatura/).
package brandscan
