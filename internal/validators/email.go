package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// EmailDomainChecker confirms that an address's domain can receive mail.
// A disabled checker accepts everything.
type EmailDomainChecker struct {
	enabled  bool
	timeout  time.Duration
	lookupMX func(ctx context.Context, host string) ([]*net.MX, error)
	lookupIP func(ctx context.Context, host string) ([]net.IPAddr, error)
}

func NewEmailDomainChecker(enabled bool) *EmailDomainChecker {
	r := net.DefaultResolver
	return &EmailDomainChecker{
		enabled:  enabled,
		timeout:  3 * time.Second,
		lookupMX: r.LookupMX,
		lookupIP: r.LookupIPAddr,
	}
}

// Valid accepts the address when its domain has an MX record or, failing
// that, any A/AAAA record.
func (c *EmailDomainChecker) Valid(ctx context.Context, email string) bool {
	if !c.enabled {
		return true
	}

	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if mx, err := c.lookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := c.lookupIP(ctx, domain); err == nil && len(ips) > 0 {
		return true
	}
	return false
}
