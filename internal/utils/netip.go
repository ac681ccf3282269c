package utils

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP returns the caller's address without port.
//
// With trustProxy the forwarding headers win, in this order:
// CF-Connecting-IP, the left-most X-Forwarded-For entry, X-Real-IP.
// Only enable it when the server is reachable through the proxy alone.
func ClientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		xff, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
		for _, v := range []string{
			r.Header.Get("CF-Connecting-IP"),
			xff,
			r.Header.Get("X-Real-IP"),
		} {
			if ip := stripPort(v); ip != "" {
				return ip
			}
		}
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(s string) string {
	s = strings.TrimSpace(s)
	if h, _, err := net.SplitHostPort(s); err == nil {
		return h
	}
	return s
}

// AddrSet is a list of allowed networks. Single addresses are kept as
// full-length prefixes.
type AddrSet []netip.Prefix

// ParseAddrSet reads addresses and CIDRs. Blank and invalid entries are
// ignored; config validation rejects them earlier.
func ParseAddrSet(list []string) AddrSet {
	var set AddrSet
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if p, err := netip.ParsePrefix(s); err == nil {
			set = append(set, p.Masked())
			continue
		}
		if a, err := netip.ParseAddr(s); err == nil {
			a = a.Unmap()
			set = append(set, netip.PrefixFrom(a, a.BitLen()))
		}
	}
	return set
}

// Contains reports whether ip falls in one of the networks.
func (s AddrSet) Contains(ip string) bool {
	a, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	a = a.Unmap()
	for _, p := range s {
		if p.Contains(a) {
			return true
		}
	}
	return false
}
