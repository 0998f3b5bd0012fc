package entity

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"

	"factcheck-web/internal/utils/text"
)

const (
	maxURLLength = 2048

	// MaxClaimRunes bounds a claim submitted for verification.
	MaxClaimRunes = 2000
	// MaxNewsTextRunes bounds an article submitted for review.
	MaxNewsTextRunes = 50000
)

// Resolver looks up the addresses of a host. *net.Resolver satisfies it.
type Resolver interface {
	LookupNetIP(ctx context.Context, network, host string) ([]netip.Addr, error)
}

// ValidateClaim checks a trimmed claim. Emptiness is the caller's concern
// because it maps to its own user-facing message.
func ValidateClaim(claim string) error {
	if n := text.CountRunes(claim); n > MaxClaimRunes {
		return &ValidationError{
			Field:   "query",
			Message: fmt.Sprintf("must not exceed %d characters, got %d", MaxClaimRunes, n),
		}
	}
	return nil
}

// ValidateNewsText checks an article body submitted for review.
func ValidateNewsText(body string) error {
	if n := text.CountRunes(body); n > MaxNewsTextRunes {
		return &ValidationError{
			Field:   "news_text",
			Message: fmt.Sprintf("must not exceed %d characters, got %d", MaxNewsTextRunes, n),
		}
	}
	return nil
}

// ValidateURL checks that rawURL is an absolute http(s) URL whose host does
// not resolve to a private, loopback or link-local address.
// A nil resolver uses net.DefaultResolver. Lookup failures are not errors
// here; the fetcher re-checks at dial time.
func ValidateURL(ctx context.Context, rawURL string, resolver Resolver) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is malformed"}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	host := parsedURL.Hostname()
	if host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	if strings.EqualFold(host, "localhost") {
		return &ValidationError{Field: "url", Message: "url cannot point to private network"}
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		if IsPrivateAddr(addr) {
			return &ValidationError{Field: "url", Message: "url cannot point to private network"}
		}
		return nil
	}

	if resolver == nil {
		resolver = net.DefaultResolver
	}
	addrs, err := resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		if IsPrivateAddr(addr) {
			return &ValidationError{Field: "url", Message: "url cannot point to private network"}
		}
	}
	return nil
}

// IsPrivateAddr reports whether addr is loopback, private (RFC 1918 / RFC 4193),
// link-local, or unspecified.
func IsPrivateAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	return addr.IsLoopback() ||
		addr.IsPrivate() ||
		addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() ||
		addr.IsUnspecified()
}
