package router

import (
	"strings"

	"github.com/Brownie44l1/httpd/internal/request"
	"github.com/Brownie44l1/httpd/internal/response"
)

// Handler maps a parsed request to a response. Anticipated failures are
// reported as 4xx responses; the error return is for unexpected I/O.
type Handler func(req *request.Request) (*response.Response, error)

// Middleware wraps a handler
type Middleware func(Handler) Handler

// Route represents a single route
type Route struct {
	Pattern string
	Handler Handler
}

// Router dispatches on the request path. Routes are tried in the order
// they were added and the first match wins.
type Router struct {
	routes      []*Route
	notFound    Handler
	middlewares []Middleware
}

// New creates a new router
func New() *Router {
	return &Router{
		routes:   make([]*Route, 0),
		notFound: NotFound,
	}
}

// Handle registers a route. A pattern ending in "*" matches every path
// that begins with the text before the "*"; anything else must match the
// path exactly.
func (r *Router) Handle(pattern string, handler Handler) {
	r.routes = append(r.routes, &Route{
		Pattern: pattern,
		Handler: handler,
	})
}

// SetNotFound replaces the fallback handler.
func (r *Router) SetNotFound(handler Handler) {
	r.notFound = handler
}

// Use adds middleware applied to every route, including the fallback.
func (r *Router) Use(mw Middleware) {
	r.middlewares = append(r.middlewares, mw)
}

// Match finds the first route matching path
func (r *Router) Match(path string) (*Route, bool) {
	for _, route := range r.routes {
		if matchPath(route.Pattern, path) {
			return route, true
		}
	}
	return nil, false
}

// ServeRequest routes req through the middleware chain.
func (r *Router) ServeRequest(req *request.Request) (*response.Response, error) {
	handler := r.notFound
	if route, ok := r.Match(req.Path); ok {
		handler = route.Handler
	}

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}
	return handler(req)
}

// NotFound is the default fallback: 404 with an empty body.
func NotFound(*request.Request) (*response.Response, error) {
	return response.NotFound(), nil
}

func matchPath(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(path, prefix)
	}
	return pattern == path
}
