package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProxies(t *testing.T) {
	p, err := ParseProxies(" 10.0.0.0/8, 192.0.2.1 ,,::ffff:172.16.0.1")
	require.NoError(t, err)
	require.Len(t, p, 3)

	assert.True(t, p.Trusts("10.1.2.3"))
	assert.True(t, p.Trusts("192.0.2.1"))
	assert.True(t, p.Trusts("172.16.0.1"))
	assert.False(t, p.Trusts("192.0.2.2"))
	assert.False(t, p.Trusts("not-an-ip"))

	empty, err := ParseProxies("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseProxies("10.0.0.0/99")
	assert.Error(t, err)
	_, err = ParseProxies("proxy.internal")
	assert.Error(t, err)
}

func TestRealIP(t *testing.T) {
	proxies, err := ParseProxies("10.0.0.0/8")
	require.NoError(t, err)

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"untrusted peer keeps its address", "203.0.113.7:5555",
			map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"trusted proxy forwards client", "10.0.0.2:80",
			map[string]string{"X-Forwarded-For": "198.51.100.1"}, "198.51.100.1"},
		{"client-supplied prefix is skipped", "10.0.0.2:80",
			map[string]string{"X-Forwarded-For": "1.2.3.4, 198.51.100.1, 10.0.0.9"}, "198.51.100.1"},
		{"real ip from trusted proxy", "10.0.0.2:80",
			map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"garbage header ignored", "10.0.0.2:80",
			map[string]string{"X-Forwarded-For": "nonsense"}, "10.0.0.2"},
		{"all hops trusted", "10.0.0.2:80",
			map[string]string{"X-Forwarded-For": "10.0.0.5, 10.0.0.6"}, "10.0.0.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := proxies.RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ClientIP(r)
			}))
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRealIP_NoProxiesTrustsNobody(t *testing.T) {
	var got string
	h := Proxies(nil).RealIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = ClientIP(r)
	}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.2:80"
	r.Header.Set("X-Forwarded-For", "198.51.100.1")
	h.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, "10.0.0.2", got)
}
