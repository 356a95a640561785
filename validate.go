package snsd

import (
	"regexp"
	"strings"
)

// Domain grammar: an optional internationalized-name prefix, then a label
// of lowercase alphanumerics and hyphens (up to 61 characters, or 30 in
// the prefixed form), then the fixed suffix.
var (
	domainRegex = regexp.MustCompile(`^(xn--)?([a-z0-9-]{1,61}|[a-z0-9-]{1,30})\.stellar$`)
	labelRegex  = regexp.MustCompile(`^(xn--)?([a-z0-9-]{1,61}|[a-z0-9-]{1,30})$`)
)

// IsValidDomain reports whether domain matches the naming grammar. With
// allowSubdomain, one extra leading label is accepted; the leading label
// and the parent domain must then validate independently. Any other
// dot-count is rejected.
func IsValidDomain(domain string, allowSubdomain bool) bool {
	if domain == "" {
		return false
	}

	if allowSubdomain {
		labels := strings.Split(domain, ".")
		if len(labels) < 2 || len(labels) > 3 {
			return false
		}
		if len(labels) == 3 {
			return IsValidLabel(labels[0]) && domainRegex.MatchString(strings.Join(labels[1:], "."))
		}
	}

	return domainRegex.MatchString(domain)
}

// IsValidLabel reports whether label is acceptable as a bare subdomain
// label.
func IsValidLabel(label string) bool {
	return label != "" && labelRegex.MatchString(label)
}
