package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubChecker(mx []*net.MX, ips []net.IPAddr) *EmailDomainChecker {
	c := NewEmailDomainChecker(true)
	c.lookupMX = func(context.Context, string) ([]*net.MX, error) {
		if mx == nil {
			return nil, errors.New("no mx")
		}
		return mx, nil
	}
	c.lookupIP = func(context.Context, string) ([]net.IPAddr, error) {
		if ips == nil {
			return nil, errors.New("no host")
		}
		return ips, nil
	}
	return c
}

func TestEmailDomainChecker(t *testing.T) {
	ctx := context.Background()

	assert.True(t, NewEmailDomainChecker(false).Valid(ctx, "anything"))

	withMX := stubChecker([]*net.MX{{Host: "mx.example.com."}}, nil)
	assert.True(t, withMX.Valid(ctx, "a@example.com"))
	assert.False(t, withMX.Valid(ctx, "no-at-sign"))
	assert.False(t, withMX.Valid(ctx, "trailing@"))

	withA := stubChecker(nil, []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}})
	assert.True(t, withA.Valid(ctx, "a@example.org"))

	assert.False(t, stubChecker(nil, nil).Valid(ctx, "a@nowhere.invalid"))
}
