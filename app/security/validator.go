package security

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/topicwire/topicwire/app/cfg"
)

// Validation failures are policy rejections: retrying cannot change the outcome.
var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrSchemeNotAllowed = errors.New("URL scheme not allowed")
	ErrCredentialsInURL = errors.New("URL carries embedded credentials")
	ErrLocalhostTarget  = errors.New("localhost target not allowed")
	ErrDomainNotAllowed = errors.New("domain not in allowlist")
	ErrHostUnresolvable = errors.New("host could not be resolved")
	ErrBlockedAddress   = errors.New("target address is in a blocked range")
)

// Purpose distinguishes article fetches from feed fetches. Ceilings and
// content-type allowlists differ per purpose.
type Purpose string

const (
	PurposeArticle Purpose = "article"
	PurposeFeed    Purpose = "feed"
)

// Resolver is the DNS lookup dependency of the validator. *net.Resolver
// satisfies it; tests inject fixed answers.
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

// Validator decides whether an outbound URL is safe to fetch. It is reusable
// across calls without locks; all state is read-only configuration.
type Validator struct {
	allowedSchemes  []string
	allowedDomains  []string
	blockPrivateIPs bool
	resolver        Resolver
}

func NewValidator(c *cfg.Cfg) *Validator {
	return NewValidatorWithResolver(c, net.DefaultResolver)
}

func NewValidatorWithResolver(c *cfg.Cfg, r Resolver) *Validator {
	return &Validator{
		allowedSchemes:  c.AllowedSchemes,
		allowedDomains:  c.AllowedDomains,
		blockPrivateIPs: c.BlockPrivateIPs,
		resolver:        r,
	}
}

// Validate runs the full outbound URL check and returns the URL unchanged on
// success. Every redirect hop must pass through here independently before any
// byte of that hop is requested.
//
// DNS is re-resolved on every call rather than cached from the first hop. This
// narrows DNS-rebinding exposure but does not close the gap between resolution
// and connect time; see DESIGN.md.
func (v *Validator) Validate(ctx context.Context, rawURL string, purpose Purpose) (string, error) {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	scheme := strings.ToLower(u.Scheme)
	if !contains(v.allowedSchemes, scheme) {
		return "", fmt.Errorf("%w: %s", ErrSchemeNotAllowed, scheme)
	}

	if u.User != nil {
		return "", ErrCredentialsInURL
	}

	host := strings.ToLower(strings.TrimSpace(u.Hostname()))
	if host == "" {
		return "", fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}
	if host == "localhost" || host == "localhost." {
		return "", ErrLocalhostTarget
	}

	if len(v.allowedDomains) > 0 && !DomainAllowed(host, v.allowedDomains) {
		return "", fmt.Errorf("%w: %s", ErrDomainNotAllowed, host)
	}

	if v.blockPrivateIPs {
		ips, err := v.resolveHost(ctx, host)
		if err != nil || len(ips) == 0 {
			return "", fmt.Errorf("%w: %s", ErrHostUnresolvable, host)
		}
		for _, ip := range ips {
			if name := BlockedRange(ip); name != "" {
				return "", fmt.Errorf("%w: %s resolves to %s (%s)", ErrBlockedAddress, host, ip, name)
			}
		}
	}

	// Scheme, host, path, query and fragment are preserved verbatim.
	return u.String(), nil
}

// resolveHost returns the addresses the host resolves to across all address
// families. Literal IP hosts skip DNS and are checked as-is.
func (v *Validator) resolveHost(ctx context.Context, host string) ([]net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		return []net.IP{ip}, nil
	}

	addrs, err := v.resolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}

	ips := make([]net.IP, 0, len(addrs))
	for _, addr := range addrs {
		ips = append(ips, addr.IP)
	}
	return ips, nil
}

// DomainAllowed reports whether host equals an allowlisted domain or is one of
// its subdomains. A leading "*." label in an allowlist entry is treated as the
// bare domain.
func DomainAllowed(host string, allowlist []string) bool {
	h := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(host)), ".")
	if h == "" {
		return false
	}
	for _, entry := range allowlist {
		domain := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(entry)), ".")
		domain = strings.TrimPrefix(domain, "*.")
		if domain == "" {
			continue
		}
		if h == domain || strings.HasSuffix(h, "."+domain) {
			return true
		}
	}
	return false
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
