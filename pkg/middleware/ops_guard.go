package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"

	"github.com/ce1sus/ce1sus-console/pkg/configuration"
	"github.com/ce1sus/ce1sus-console/pkg/routing"
)

type opsGuard struct {
	opts         configuration.OpsGuardOptions
	realIPHeader string
	classifier   *routing.Classifier
	cidrs        []netip.Prefix
}

// OpsGuard hides ops routes from callers that are neither inside one of the
// configured networks nor present the ops token. It is a no-op outside
// production.
func OpsGuard(conf *configuration.Configuration, classifier *routing.Classifier) mux.MiddlewareFunc {
	if classifier == nil {
		classifier = routing.NewClassifier(routing.DefaultRules)
	}
	g := &opsGuard{
		opts:         conf.OpsGuard,
		realIPHeader: conf.RealIPHeader,
		classifier:   classifier,
		cidrs:        parseCIDRs(conf.OpsGuard.CIDRs),
	}
	production := conf.GoAppEnvironment == configuration.Production
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !production || !g.opts.Enabled || g.classifier.ClassifyPath(r.URL.Path) != routing.RouteClassOps {
				next.ServeHTTP(w, r)
				return
			}
			if g.authorized(r) {
				next.ServeHTTP(w, r)
				return
			}
			http.NotFound(w, r)
		})
	}
}

func (g *opsGuard) authorized(r *http.Request) bool {
	if ip, ok := realIP(r, g.realIPHeader); ok {
		if addr, err := netip.ParseAddr(ip); err == nil {
			for _, p := range g.cidrs {
				if p.Contains(addr) {
					return true
				}
			}
		}
	}
	token := strings.TrimSpace(g.opts.Token)
	return token != "" && subtle.ConstantTimeCompare([]byte(tokenFromRequest(r)), []byte(token)) == 1
}

func parseCIDRs(raw string) []netip.Prefix {
	parts := strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ';' || r == ' ' })
	out := make([]netip.Prefix, 0, len(parts))
	for _, part := range parts {
		if p, err := netip.ParsePrefix(strings.TrimSpace(part)); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func tokenFromRequest(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("X-Ops-Token")); t != "" {
		return t
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}

func realIP(r *http.Request, header string) (string, bool) {
	if header != "" {
		if v := strings.TrimSpace(r.Header.Get(header)); v != "" {
			// X-Forwarded-For style: take the first item
			if i := strings.IndexByte(v, ','); i >= 0 {
				v = strings.TrimSpace(v[:i])
			}
			return stripPort(v)
		}
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(s); err == nil {
		return host, true
	}
	return s, true
}
