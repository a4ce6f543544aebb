package validators

import (
	"context"
	"net"
	"strings"
	"time"
)

// dnsLookupTimeout bounds registration latency when a resolver is slow.
const dnsLookupTimeout = 3 * time.Second

// IsEmailDomainValid checks that the address domain resolves at all, which
// filters the bulk of typo'd registrations without a verification mail.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsAny(domain, " \t") {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), dnsLookupTimeout)
	defer cancel()

	if mx, err := net.DefaultResolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.DefaultResolver.LookupIPAddr(ctx, domain)
	return err == nil && len(ips) > 0
}
