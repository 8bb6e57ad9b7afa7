package weir

// Next is the remainder of a middleware chain, including the terminal
// endpoint. It is a single-use continuation: each Run advances one position
// through the chain, handing the following middleware a Next covering what
// is left. The chain itself is immutable after router setup and shared
// read-only across concurrent requests.
type Next struct {
	endpoint Endpoint
	rest     []Middleware
}

func newNext(middleware []Middleware, endpoint Endpoint) Next {
	return Next{endpoint: endpoint, rest: middleware}
}

// Run executes the remaining middleware chain and finally the endpoint.
func (n Next) Run(req *Request) *Response {
	if len(n.rest) == 0 {
		return n.endpoint.Serve(req)
	}
	current := n.rest[0]
	return current.Handle(req, Next{endpoint: n.endpoint, rest: n.rest[1:]})
}
