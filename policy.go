package brandscan

// MaxPolicyContentLen caps extracted policy text.
const MaxPolicyContentLen = 8000

// PolicyKind identifies one of the standard storefront policy documents.
type PolicyKind string

const (
	PolicyPrivacy  PolicyKind = "privacy"
	PolicyRefund   PolicyKind = "refund"
	PolicyReturns  PolicyKind = "returns"
	PolicyShipping PolicyKind = "shipping"
	PolicyTerms    PolicyKind = "terms"
)

// PolicyKinds returns all policy kinds in resolution order. Resolvers
// and serializers iterate in this order so output is deterministic.
func PolicyKinds() []PolicyKind {
	return []PolicyKind{
		PolicyPrivacy,
		PolicyRefund,
		PolicyReturns,
		PolicyShipping,
		PolicyTerms,
	}
}

// Policy is an extracted policy document. Content holds plain text
// truncated to MaxPolicyContentLen.
type Policy struct {
	Kind    PolicyKind `json:"kind"`
	URL     string     `json:"url"`
	Content string     `json:"content"`
}

// canonicalPolicyPaths lists the well-known paths a policy of each kind
// is served from, in probe order. The first path that returns a 2xx
// wins.
var canonicalPolicyPaths = map[PolicyKind][]string{
	PolicyPrivacy: {
		"/policies/privacy-policy",
		"/pages/privacy-policy",
		"/pages/privacy",
		"/privacy-policy",
	},
	PolicyRefund: {
		"/policies/refund-policy",
		"/pages/refund-policy",
		"/refund-policy",
	},
	PolicyReturns: {
		"/policies/return-policy",
		"/pages/return-policy",
		"/returns",
	},
	PolicyShipping: {
		"/policies/shipping-policy",
		"/pages/shipping-policy",
		"/shipping-policy",
	},
	PolicyTerms: {
		"/policies/terms-of-service",
		"/pages/terms-of-service",
		"/terms-of-service",
	},
}

// CanonicalPolicyPaths returns the well-known paths for kind, in probe
// order. Returns nil for an unknown kind.
func CanonicalPolicyPaths(kind PolicyKind) []string {
	return canonicalPolicyPaths[kind]
}

// policyKeywords maps each policy kind to the substrings used when
// falling back to classifying homepage links by href or anchor text.
var policyKeywords = map[PolicyKind][]string{
	PolicyPrivacy:  {"privacy"},
	PolicyRefund:   {"refund"},
	PolicyReturns:  {"return"},
	PolicyShipping: {"shipping"},
	PolicyTerms:    {"terms"},
}

// PolicyKeywords returns the fallback classification keywords for kind.
func PolicyKeywords(kind PolicyKind) []string {
	return policyKeywords[kind]
}
