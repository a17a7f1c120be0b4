package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address has a domain part that
// resolves, either through MX records or a plain A/AAAA lookup. It is
// a liveness check on the domain, not a full RFC validation; gin's
// binding handles the address shape.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsAny(domain, " @") {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
