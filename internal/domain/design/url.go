package design

import (
	"errors"
	"net/url"
	"strings"
)

var ErrNotAbsolute = errors.New("url is not absolute http(s)")

// passthroughSchemes are never resolved against the page.
var passthroughSchemes = []string{"data:", "javascript:", "mailto:", "tel:"}

// BaseDomain returns scheme://host of raw.
func BaseDomain(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrNotAbsolute
	}
	return u.Scheme + "://" + u.Host, nil
}

// Resolve makes ref absolute against base. Refs with a passthrough scheme
// are returned verbatim with ok=false. Unparseable refs return "", false.
func Resolve(base, ref string) (resolved string, ok bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}
	lower := strings.ToLower(ref)
	for _, scheme := range passthroughSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ref, false
		}
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return "", false
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	return baseURL.ResolveReference(refURL).String(), true
}

// IsAbsolute reports whether raw is an absolute http(s) URL.
func IsAbsolute(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
