package security

import "net"

// rangeRule is one entry in the blocked-address list. New ranges are added to
// the table below; the membership check itself never changes.
type rangeRule struct {
	name string
	cidr string
	net  *net.IPNet
}

var blockedRanges = mustRules([]rangeRule{
	{name: "ipv4-unspecified", cidr: "0.0.0.0/8"},
	{name: "ipv4-private-10", cidr: "10.0.0.0/8"},
	{name: "ipv4-shared-cgnat", cidr: "100.64.0.0/10"},
	{name: "ipv4-loopback", cidr: "127.0.0.0/8"},
	{name: "ipv4-link-local", cidr: "169.254.0.0/16"},
	{name: "ipv4-private-172", cidr: "172.16.0.0/12"},
	{name: "ipv4-ietf-protocol", cidr: "192.0.0.0/24"},
	{name: "ipv4-test-net-1", cidr: "192.0.2.0/24"},
	{name: "ipv4-private-192", cidr: "192.168.0.0/16"},
	{name: "ipv4-benchmarking", cidr: "198.18.0.0/15"},
	{name: "ipv4-test-net-2", cidr: "198.51.100.0/24"},
	{name: "ipv4-test-net-3", cidr: "203.0.113.0/24"},
	{name: "ipv4-multicast", cidr: "224.0.0.0/4"},
	{name: "ipv4-reserved", cidr: "240.0.0.0/4"},
	{name: "ipv6-unspecified", cidr: "::/128"},
	{name: "ipv6-loopback", cidr: "::1/128"},
	{name: "ipv6-link-local", cidr: "fe80::/10"},
	{name: "ipv6-unique-local", cidr: "fc00::/7"},
	{name: "ipv6-multicast", cidr: "ff00::/8"},
})

func mustRules(rules []rangeRule) []rangeRule {
	for i := range rules {
		_, network, err := net.ParseCIDR(rules[i].cidr)
		if err != nil {
			panic("invalid blocked range " + rules[i].cidr + ": " + err.Error())
		}
		rules[i].net = network
	}
	return rules
}

// BlockedRange returns the name of the blocked range containing ip, or "" if
// the address is not blocked. IPv4-mapped IPv6 addresses are unwrapped to their
// IPv4 form first, so ::ffff:127.0.0.1 is treated as 127.0.0.1.
func BlockedRange(ip net.IP) string {
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}
	for _, rule := range blockedRanges {
		if rule.net.Contains(ip) {
			return rule.name
		}
	}
	return ""
}
