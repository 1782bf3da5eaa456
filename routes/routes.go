package routes

import "strings"

// Rule describes one allow-list entry. URL is a literal path, a "/*" suffix
// wildcard or a path with ":param" segments. Method is an HTTP verb or "*".
type Rule struct {
	URL    string `yaml:"url" mapstructure:"url" json:"url"`
	Method string `yaml:"method" mapstructure:"method" json:"method"`
}

// Methods is the set of verbs a "*" rule method expands to. It covers the
// standard verbs plus the WebDAV and extension verbs hosts commonly route.
var Methods = []string{
	"ACL", "BIND", "CHECKOUT", "CONNECT", "COPY", "DELETE", "GET", "HEAD",
	"LINK", "LOCK", "M-SEARCH", "MERGE", "MKACTIVITY", "MKCALENDAR", "MKCOL",
	"MOVE", "NOTIFY", "OPTIONS", "PATCH", "POST", "PROPFIND", "PROPPATCH",
	"PURGE", "PUT", "REBIND", "REPORT", "SEARCH", "SOURCE", "SUBSCRIBE",
	"TRACE", "UNBIND", "UNLINK", "UNLOCK", "UNSUBSCRIBE", "ALL",
}

// Wildcard is the rule method that expands to every entry of Methods.
const Wildcard = "*"

// IsAllowed reports whether the given path and method match any rule.
// The path is normalized first: the query string is stripped and a single
// trailing slash is removed unless the path is exactly "/". Repeated calls
// with identical inputs always return the same result.
func IsAllowed(path, method string, rules []Rule) bool {
	current := normalize(path)

	for _, rule := range expand(rules) {
		// Suffix wildcard: a "/*" rule matches every path under its prefix,
		// independent of the request method.
		if strings.HasSuffix(rule.URL, "/*") {
			if strings.HasPrefix(current, strings.TrimSuffix(rule.URL, "/*")) {
				return true
			}
		}

		// Exact path and method.
		if current == rule.URL && method == rule.Method {
			return true
		}

		// Parameter segments: equal segment counts, matching method, and
		// every non-parameter segment equal.
		if strings.Contains(rule.URL, "/:") {
			if matchSegments(current, rule.URL) && method == rule.Method {
				return true
			}
		}
	}

	return false
}

// expand replaces every rule with a wildcard method by one rule per verb.
func expand(rules []Rule) []Rule {
	out := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		if rule.URL == "" || rule.Method == "" {
			continue
		}
		if rule.Method == Wildcard {
			for _, m := range Methods {
				out = append(out, Rule{URL: rule.URL, Method: m})
			}
			continue
		}
		out = append(out, rule)
	}
	return out
}

// normalize strips the query string and a single trailing slash.
func normalize(path string) string {
	if i := strings.Index(path, "?"); i != -1 {
		path = path[:i]
	}
	if path != "/" && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

func matchSegments(path, pattern string) bool {
	pathParts := strings.Split(path, "/")
	patternParts := strings.Split(pattern, "/")
	if len(pathParts) != len(patternParts) {
		return false
	}
	for i, part := range patternParts {
		if strings.HasPrefix(part, ":") {
			continue
		}
		if pathParts[i] != part {
			return false
		}
	}
	return true
}
