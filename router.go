package weir

import (
	"fmt"
	"sort"
	"strings"
)

// Router owns a route table, a middleware chain, and a not-found endpoint.
// Routes and middleware are registered during application setup; once
// serving begins the structures are treated as immutable and shared
// read-only across concurrent requests, so no locking happens on the
// dispatch path.
//
// Router implements Endpoint: serving a request runs the middleware chain
// front-to-back with the matched endpoint as the terminal continuation.
type Router struct {
	tree       *node
	middleware []Middleware
	notFound   Endpoint
	parent     *Router
}

// Route describes a registered route for introspection.
type Route struct {
	Method  string
	Pattern string
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{tree: &node{}}
}

// Register adds an endpoint for the given method and pattern. Patterns use
// '/literal/:param/*rest' syntax; the wildcard, if present, must be the
// final segment. Re-registering an identical (method, pattern) pair
// replaces the previous endpoint (last write wins).
func (r *Router) Register(method, pattern string, ep Endpoint) {
	mt, ok := methodMap[strings.ToUpper(method)]
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
	}
	r.handle(mt, pattern, ep)
}

// Get registers an endpoint for GET requests.
func (r *Router) Get(pattern string, ep Endpoint) { r.handle(mGET, pattern, ep) }

// Post registers an endpoint for POST requests.
func (r *Router) Post(pattern string, ep Endpoint) { r.handle(mPOST, pattern, ep) }

// Put registers an endpoint for PUT requests.
func (r *Router) Put(pattern string, ep Endpoint) { r.handle(mPUT, pattern, ep) }

// Delete registers an endpoint for DELETE requests.
func (r *Router) Delete(pattern string, ep Endpoint) { r.handle(mDELETE, pattern, ep) }

// Patch registers an endpoint for PATCH requests.
func (r *Router) Patch(pattern string, ep Endpoint) { r.handle(mPATCH, pattern, ep) }

// Head registers an endpoint for HEAD requests.
func (r *Router) Head(pattern string, ep Endpoint) { r.handle(mHEAD, pattern, ep) }

// Options registers an endpoint for OPTIONS requests.
func (r *Router) Options(pattern string, ep Endpoint) { r.handle(mOPTIONS, pattern, ep) }

// Connect registers an endpoint for CONNECT requests.
func (r *Router) Connect(pattern string, ep Endpoint) { r.handle(mCONNECT, pattern, ep) }

// Trace registers an endpoint for TRACE requests.
func (r *Router) Trace(pattern string, ep Endpoint) { r.handle(mTRACE, pattern, ep) }

// Handle registers an endpoint for all HTTP methods.
func (r *Router) Handle(pattern string, ep Endpoint) { r.handle(mALL, pattern, ep) }

// Use appends middleware to the router's chain. Middleware run in
// registration order, each receiving the rest of the pipeline as a Next
// continuation.
func (r *Router) Use(middleware ...Middleware) {
	r.middleware = append(r.middleware, middleware...)
}

// SetNotFound replaces the endpoint selected when no route matches. A
// mounted sub-router without its own not-found endpoint falls back to its
// parent's.
func (r *Router) SetNotFound(ep Endpoint) {
	r.notFound = ep
}

// Mount attaches a sub-router beneath prefix, which must begin and end
// with '/'. The mount is registered as a wildcard tail; when selected, the
// unmatched path suffix becomes the sub-router's route path and parameters
// captured by the prefix are merged ahead of the sub-router's own.
func (r *Router) Mount(prefix string, sub *Router) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, prefix))
	}
	if len(prefix) < 1 || prefix[0] != '/' || prefix[len(prefix)-1] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidMountPrefix, prefix))
	}

	sub.parent = r

	// Stub endpoint; the dispatch path checks the node's subroutes before
	// the stub is ever invoked.
	stub := EndpointFunc(func(*Request) *Response { return nil })

	n := r.handle(mALL|mSTUB, prefix+"*", stub)
	if n != nil {
		n.subroutes = sub
	}
}

// Routes returns all registered routes, excluding mount stubs.
func (r *Router) Routes() []Route {
	return r.tree.routes()
}

// Serve implements Endpoint. It selects an endpoint for the request's
// route path and runs the middleware chain around it. Routing failures are
// resolved internally: an unmatched path selects the not-found endpoint
// and a matched path with an unregistered method selects a canned
// method-not-allowed endpoint, so every request terminates in a response.
func (r *Router) Serve(req *Request) *Response {
	ep := r.dispatch(req)
	return newNext(r.middleware, ep).Run(req)
}

// dispatch resolves the request's route path against the route table and
// returns the terminal endpoint for the chain, merging captured params
// into the request as a side effect.
func (r *Router) dispatch(req *Request) Endpoint {
	method, ok := methodMap[req.Method()]
	if !ok {
		return methodNotAllowedEndpoint(nil)
	}

	path := req.RoutePath()
	rn, eps, h, params := r.tree.findRoute(method, path)

	// HEAD falls back to the GET route for the same path; the boundary
	// layer suppresses the body.
	if h == nil && method == mHEAD {
		if gn, geps, gh, gparams := r.tree.findRoute(mGET, path); gh != nil || (gn != nil && gn.subroutes != nil) {
			rn, eps, h, params = gn, geps, gh, gparams
		}
	}

	// Sub-router delegation takes precedence over method-not-allowed at
	// this level: the sub-router performs its own method resolution.
	if rn != nil && rn.subroutes != nil {
		tail := ""
		if len(params.values) > 0 {
			tail = params.values[len(params.values)-1]
		}
		if keys := mountParamKeys(rn); keys != nil {
			req.mergeParams(keys, params.values)
		}
		req.setRoutePath(normalizeRoutePath(tail))
		return rn.subroutes
	}

	if h == nil {
		if allowed := allowedMethods(eps); len(allowed) > 0 {
			return methodNotAllowedEndpoint(allowed)
		}
		return r.notFoundEndpoint()
	}

	req.mergeParams(params.keys, params.values)
	return h
}

// mountParamKeys returns the stub pattern's parameter keys minus the
// trailing mount wildcard, or nil when the prefix captures nothing.
func mountParamKeys(rn *node) []string {
	stub := rn.endpoints[mSTUB]
	if stub == nil {
		return nil
	}
	keys := rn.endpoints[mALL].paramKeys
	if len(keys) == 0 {
		return nil
	}
	return keys[:len(keys)-1]
}

func normalizeRoutePath(tail string) string {
	if tail == "" {
		return "/"
	}
	if tail[0] != '/' {
		return "/" + tail
	}
	return tail
}

func allowedMethods(eps endpoints) []string {
	var allowed []string
	for mt := range eps {
		if mt == mALL || mt == mSTUB {
			continue
		}
		if eps[mt] != nil && eps[mt].handler != nil {
			allowed = append(allowed, reverseMethodMap[mt])
		}
	}
	sort.Strings(allowed)
	return allowed
}

func methodNotAllowedEndpoint(allowed []string) Endpoint {
	return EndpointFunc(func(*Request) *Response {
		resp := ErrMethodNotAllowed.Response()
		if len(allowed) > 0 {
			resp.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		return resp
	})
}

func (r *Router) notFoundEndpoint() Endpoint {
	for cur := r; cur != nil; cur = cur.parent {
		if cur.notFound != nil {
			return cur.notFound
		}
	}
	return defaultNotFound
}

var defaultNotFound = EndpointFunc(func(*Request) *Response {
	return ErrNotFound.Response()
})

// handle registers an endpoint in the routing tree.
func (r *Router) handle(method methodTyp, pattern string, ep Endpoint) *node {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}
	if ep == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilEndpoint, pattern))
	}
	return r.tree.insertRoute(method, pattern, ep)
}
