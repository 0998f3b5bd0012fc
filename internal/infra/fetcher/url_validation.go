package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"syscall"

	"factcheck-web/internal/domain/entity"
)

// validateURL checks scheme and host and, when denyPrivate is set, resolves
// the host and rejects private addresses.
func validateURL(ctx context.Context, urlStr string, denyPrivate bool) error {
	u, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}

	hostname := u.Hostname()
	if hostname == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}

	if !denyPrivate {
		return nil
	}

	if addr, err := netip.ParseAddr(hostname); err == nil {
		if entity.IsPrivateAddr(addr) {
			return fmt.Errorf("%w: %s", ErrPrivateIP, addr)
		}
		return nil
	}

	addrs, err := net.DefaultResolver.LookupNetIP(ctx, "ip", hostname)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, hostname, err)
	}
	for _, addr := range addrs {
		if entity.IsPrivateAddr(addr) {
			return fmt.Errorf("%w: hostname '%s' resolves to private IP %s", ErrPrivateIP, hostname, addr)
		}
	}
	return nil
}

// denyPrivateControl is a net.Dialer Control hook. It re-checks the address
// actually dialled so a DNS answer that changes after validateURL is still
// caught.
func denyPrivateControl(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if entity.IsPrivateAddr(addr) {
		return fmt.Errorf("%w: dial to %s blocked", ErrPrivateIP, addr)
	}
	return nil
}
