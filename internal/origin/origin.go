// Package origin normalizes browser Origin headers and checks them against
// an allow-list.
package origin

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// Wildcard allows every origin when present in the allow-list.
const Wildcard = "*"

// Normalize validates an Origin value and returns it as scheme://host[:port],
// lower-cased and with the scheme's default port removed.
// Only http and https origins without path, query, fragment or userinfo are accepted.
func Normalize(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return "", false
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || u.Opaque != "" {
		return "", false
	}
	if u.User != nil || u.RawQuery != "" || u.Fragment != "" || u.ForceQuery {
		return "", false
	}
	if u.Path != "" && u.Path != "/" {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", false
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return "", false
	}

	port := u.Port()
	if port == "" && strings.HasSuffix(u.Host, ":") {
		return "", false
	}
	if port != "" {
		n, err := strconv.ParseUint(port, 10, 16)
		if err != nil || n == 0 {
			return "", false
		}
		if (scheme == "http" && n == 80) || (scheme == "https" && n == 443) {
			port = ""
		} else {
			port = strconv.FormatUint(n, 10)
		}
	}

	host := hostname
	if port != "" {
		host = net.JoinHostPort(hostname, port)
	} else if strings.Contains(hostname, ":") {
		host = "[" + hostname + "]"
	}
	return scheme + "://" + host, true
}

// AllowList is an immutable set of normalized origins.
// The zero value allows nothing.
type AllowList struct {
	origins map[string]struct{}
	any     bool
}

// NewAllowList normalizes every entry. Any invalid entry is an error.
func NewAllowList(entries []string) (AllowList, error) {
	list := AllowList{origins: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if entry == Wildcard {
			list.any = true
			continue
		}
		normalized, ok := Normalize(entry)
		if !ok {
			return AllowList{}, fmt.Errorf("invalid allowed origin %q", entry)
		}
		list.origins[normalized] = struct{}{}
	}
	return list, nil
}

// Allows reports whether the raw Origin header value is permitted.
// It returns the normalized origin for use in CORS response headers.
func (l AllowList) Allows(raw string) (string, bool) {
	normalized, ok := Normalize(raw)
	if !ok {
		return "", false
	}
	if l.any {
		return normalized, true
	}
	_, ok = l.origins[normalized]
	return normalized, ok
}

// Len returns the number of explicit entries, not counting the wildcard.
func (l AllowList) Len() int {
	return len(l.origins)
}

// Empty reports whether no origin at all is allowed.
func (l AllowList) Empty() bool {
	return !l.any && len(l.origins) == 0
}
