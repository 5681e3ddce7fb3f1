package middleware

// RoutePolicy records which method+route templates require an
// authenticated caller. Routes are keyed by the template gin matched
// (e.g. "GET /api/assistance-requests/:reference"), so path parameters
// never need re-parsing at request time.
type RoutePolicy struct {
	protected map[string]bool
}

func NewRoutePolicy() *RoutePolicy {
	return &RoutePolicy{protected: make(map[string]bool)}
}

// Protect marks a route template as requiring authentication.
func (p *RoutePolicy) Protect(method, path string) {
	p.protected[method+" "+path] = true
}

// RequiresAuth reports whether the matched route was marked protected.
// Unmatched requests (empty path) are never protected; they 404 instead.
func (p *RoutePolicy) RequiresAuth(method, path string) bool {
	if path == "" {
		return false
	}
	return p.protected[method+" "+path]
}
