// Package norm implements URL validation and canonicalization.
//
// Every URL the crawler deduplicates on passes through Resolve, which
// maps any representation of a resource to a single canonical string:
// lowercase scheme and host, no default port, no fragment, no userinfo,
// resolved dot segments, and trailing slashes stripped from the path
// (the root keeps its slash). The canonical string is the frontier's
// deduplication key, so two URLs a human would consider the same
// resource must come out identical, and canonicalizing a canonical URL
// is always a no-op. Query strings are preserved and participate in
// equality: URLs differing only by query may select different content.
//
// Internally URLs are handled as structured net/url values rather than
// strings, which removes a whole class of double-parsing bugs. Only the
// canonical string leaves this package.
package norm

import (
	"net/url"
	"strings"

	"github.com/fwojciec/spinneret"
)

// nonNavigable lists scheme prefixes that never lead to a fetchable
// document. Matching is case-insensitive.
var nonNavigable = []string{"javascript:", "mailto:", "tel:", "data:"}

// Validate reports whether raw link text is worth resolving. It rejects
// fragment-only references, non-navigable schemes, and empty or
// whitespace-only text. Anything else is provisionally valid; Resolve
// makes the final call.
func Validate(linkText string) bool {
	text := strings.TrimSpace(linkText)
	if text == "" {
		return false
	}
	if strings.HasPrefix(text, "#") {
		return false
	}
	lower := strings.ToLower(text)
	for _, scheme := range nonNavigable {
		if strings.HasPrefix(lower, scheme) {
			return false
		}
	}
	return true
}

// Resolve turns raw link text into a canonical absolute URL. Link text
// that already carries a scheme is treated as absolute; everything else
// (protocol-relative, absolute-path, and relative references) is
// resolved against baseURL per RFC 3986, with dot segments removed and
// never escaping past the root. Rejections are EINVALID errors.
func Resolve(linkText, baseURL string) (string, error) {
	if !Validate(linkText) {
		return "", spinneret.Errorf(spinneret.EINVALID, "non-navigable link %q", linkText)
	}

	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", spinneret.Errorf(spinneret.EINVALID, "invalid base URL %q", baseURL)
	}

	ref, err := url.Parse(strings.TrimSpace(linkText))
	if err != nil {
		return "", spinneret.Errorf(spinneret.EINVALID, "unparsable link %q", linkText)
	}

	resolved := base.ResolveReference(ref)
	if resolved.Scheme == "" || resolved.Host == "" {
		return "", spinneret.Errorf(spinneret.EINVALID, "resolution of %q yielded no authority", linkText)
	}

	return canonicalize(resolved), nil
}

// ResolveSeed canonicalizes a crawl seed. Seeds are often typed by hand,
// so a missing scheme defaults to http.
func ResolveSeed(seed string) (string, error) {
	s := strings.TrimSpace(seed)
	if s == "" {
		return "", spinneret.Errorf(spinneret.EINVALID, "empty seed URL")
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	return Resolve(s, s)
}

// Host returns the host component of a canonical URL, without the port.
// Canonical URLs always parse; a failure here means a non-canonical
// value leaked into the system, which is reported as EINTERNAL so it
// fails loudly instead of silently miscanonicalizing.
func Host(canonicalURL string) (string, error) {
	u, err := url.Parse(canonicalURL)
	if err != nil || u.Host == "" {
		return "", spinneret.Errorf(spinneret.EINTERNAL, "malformed canonical URL %q", canonicalURL)
	}
	return u.Hostname(), nil
}

// defaultPorts maps schemes to the port their URLs omit in canonical
// form.
var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// canonicalize reduces a resolved absolute URL to its canonical string.
// The path's case is preserved: servers may be case-sensitive on paths,
// unlike on schemes and hosts.
func canonicalize(u *url.URL) string {
	u.User = nil
	u.Fragment = ""
	u.RawFragment = ""
	u.Scheme = strings.ToLower(u.Scheme)

	host := strings.ToLower(u.Host)
	if port, ok := defaultPorts[u.Scheme]; ok {
		host = strings.TrimSuffix(host, ":"+port)
	}
	u.Host = host

	if u.Path == "" {
		u.Path = "/"
	}
	// Trailing slashes are stripped until the path is stable, so the
	// output is a fixed point of canonicalization; the root keeps its
	// single slash.
	for len(u.Path) > 1 && strings.HasSuffix(u.Path, "/") {
		u.Path = u.Path[:len(u.Path)-1]
	}
	u.RawPath = ""

	return u.String()
}
