package utils

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "10.0.0.1:1234", nil, false, "10.0.0.1"},
		{"untrusted headers", "10.0.0.1:1234", map[string]string{"X-Forwarded-For": "1.2.3.4"}, false, "10.0.0.1"},
		{"cloudflare first", "10.0.0.1:1234", map[string]string{"CF-Connecting-IP": "5.6.7.8", "X-Forwarded-For": "1.2.3.4"}, true, "5.6.7.8"},
		{"left-most forwarded", "10.0.0.1:1234", map[string]string{"X-Forwarded-For": " 1.2.3.4 , 9.9.9.9"}, true, "1.2.3.4"},
		{"real ip", "10.0.0.1:1234", map[string]string{"X-Real-IP": "4.4.4.4"}, true, "4.4.4.4"},
		{"trusted but no headers", "10.0.0.1:1234", nil, true, "10.0.0.1"},
		{"ipv6 remote", "[::1]:8080", nil, false, "::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddrSet(t *testing.T) {
	set := ParseAddrSet([]string{"127.0.0.1", " 192.168.1.7/16 ", "::1", "garbage", ""})

	if len(set) != 3 {
		t.Fatalf("len(set) = %d, want 3", len(set))
	}
	for ip, want := range map[string]bool{
		"127.0.0.1":        true,
		"::ffff:127.0.0.1": true,
		"192.168.4.2":      true,
		"::1":              true,
		"10.0.0.1":         false,
		"not-an-ip":        false,
	} {
		if got := set.Contains(ip); got != want {
			t.Errorf("Contains(%q) = %v, want %v", ip, got, want)
		}
	}

	if len(ParseAddrSet(nil)) != 0 {
		t.Error("empty list should give an empty set")
	}
}
