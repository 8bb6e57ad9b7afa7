package weir

// Radix tree implementation based on the original work by
// Armon Dadgar in https://github.com/armon/go-radix/blob/master/radix.go
// (MIT licensed). Heavily modified for use as a HTTP routing tree.

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

type methodTyp uint

const (
	mSTUB methodTyp = 1 << iota
	mCONNECT
	mDELETE
	mGET
	mHEAD
	mOPTIONS
	mPATCH
	mPOST
	mPUT
	mTRACE
)

var mALL = mCONNECT | mDELETE | mGET | mHEAD |
	mOPTIONS | mPATCH | mPOST | mPUT | mTRACE

var methodMap = map[string]methodTyp{
	http.MethodConnect: mCONNECT,
	http.MethodDelete:  mDELETE,
	http.MethodGet:     mGET,
	http.MethodHead:    mHEAD,
	http.MethodOptions: mOPTIONS,
	http.MethodPatch:   mPATCH,
	http.MethodPost:    mPOST,
	http.MethodPut:     mPUT,
	http.MethodTrace:   mTRACE,
}

var reverseMethodMap = map[methodTyp]string{
	mCONNECT: http.MethodConnect,
	mDELETE:  http.MethodDelete,
	mGET:     http.MethodGet,
	mHEAD:    http.MethodHead,
	mOPTIONS: http.MethodOptions,
	mPATCH:   http.MethodPatch,
	mPOST:    http.MethodPost,
	mPUT:     http.MethodPut,
	mTRACE:   http.MethodTrace,
}

// routeParams collects captured parameter values during tree traversal.
// Keys are recorded from the matched endpoint's pattern once a leaf is hit.
type routeParams struct {
	keys   []string
	values []string
}

type nodeTyp uint8

const (
	ntStatic   nodeTyp = iota // /home
	ntParam                   // /:user
	ntCatchAll                // /api/*rest
)

type node struct {
	// mounted sub-router on the leaf node
	subroutes *Router

	// endpoints on the leaf node, by method
	endpoints endpoints

	// prefix is the common prefix we ignore
	prefix string

	// child nodes stored in-order for iteration, grouped by node type
	children [ntCatchAll + 1]nodes

	// first byte of the child prefix
	tail byte

	// node type: static, param, catchAll
	typ nodeTyp

	// first byte of the prefix
	label byte
}

// endpoints maps method constants to the handlers registered for a route.
type endpoints map[methodTyp]*endpoint

type endpoint struct {
	// registered handler
	handler Endpoint

	// routing pattern for handler nodes
	pattern string

	// parameter keys recorded on handler nodes
	paramKeys []string
}

func (s endpoints) value(method methodTyp) *endpoint {
	mh, ok := s[method]
	if !ok {
		mh = &endpoint{}
		s[method] = mh
	}
	return mh
}

func (n *node) insertRoute(method methodTyp, pattern string, handler Endpoint) *node {
	var parent *node
	search := pattern

	for {
		// Handle key exhaustion
		if len(search) == 0 {
			n.setEndpoint(method, handler, pattern)
			return n
		}

		// Determine whether the next segment is dynamic to pick the
		// matching child group.
		var label = search[0]
		var segTail byte
		var segEndIdx int
		var segTyp nodeTyp
		if label == ':' || label == '*' {
			segTyp, _, segTail, _, segEndIdx = nextSegment(search)
		}

		// Look for the edge to attach to
		parent = n
		n = n.getEdge(segTyp, label, segTail)

		// No edge, create one
		if n == nil {
			child := &node{label: label, tail: segTail, prefix: search}
			hn := parent.addChild(child, search)
			hn.setEndpoint(method, handler, pattern)
			return hn
		}

		if n.typ > ntStatic {
			// Param or wildcard node already on the tree from a previous
			// registration; consume the segment and keep going.
			search = search[segEndIdx:]
			continue
		}

		// Static nodes fall below here.
		// Determine longest prefix of the search key on match.
		commonPrefix := longestPrefix(search, n.prefix)
		if commonPrefix == len(n.prefix) {
			search = search[commonPrefix:]
			continue
		}

		// Split the node
		child := &node{
			typ:    ntStatic,
			prefix: search[:commonPrefix],
		}
		parent.replaceChild(search[0], segTail, child)

		// Restore the existing node
		n.label = n.prefix[commonPrefix]
		n.prefix = n.prefix[commonPrefix:]
		child.addChild(n, n.prefix)

		// If the new key is a subset, set the handler on this node and finish.
		search = search[commonPrefix:]
		if len(search) == 0 {
			child.setEndpoint(method, handler, pattern)
			return child
		}

		// Create a new edge for the node
		subchild := &node{
			typ:    ntStatic,
			label:  search[0],
			prefix: search,
		}
		hn := child.addChild(subchild, search)
		hn.setEndpoint(method, handler, pattern)
		return hn
	}
}

// addChild appends the new `child` node to the tree using the `prefix` as the trie key.
func (n *node) addChild(child *node, prefix string) *node {
	search := prefix

	// handler leaf node added to the tree is the child.
	// this may be overridden later down the flow
	hn := child

	// Parse next segment
	segTyp, _, segTail, segStartIdx, segEndIdx := nextSegment(search)

	switch segTyp {
	case ntStatic:
		// Search prefix is all static; nothing to split.

	default:
		// Search prefix contains a param or wildcard

		if segStartIdx == 0 {
			// Route starts with a dynamic segment
			child.typ = segTyp

			if segTyp == ntCatchAll {
				segStartIdx = -1
			} else {
				segStartIdx = segEndIdx
			}
			if segStartIdx < 0 {
				segStartIdx = len(search)
			}
			child.tail = segTail

			if segStartIdx != len(search) {
				// add static edge for the remaining part, split the end.
				// its not possible to have adjacent param nodes, so its
				// certainly going to be a static node next.
				search = search[segStartIdx:]

				nn := &node{
					typ:    ntStatic,
					label:  search[0],
					prefix: search,
				}
				hn = child.addChild(nn, search)
			}

		} else if segStartIdx > 0 {
			// Route has some dynamic segment after a static prefix
			child.typ = ntStatic
			child.prefix = search[:segStartIdx]

			// add the param edge node
			search = search[segStartIdx:]

			nn := &node{
				typ:   segTyp,
				label: search[0],
				tail:  segTail,
			}
			hn = child.addChild(nn, search)
		}
	}

	n.children[child.typ] = append(n.children[child.typ], child)
	n.children[child.typ].sort()
	return hn
}

func (n *node) replaceChild(label, tail byte, child *node) {
	for i := range n.children[child.typ] {
		if n.children[child.typ][i].label == label && n.children[child.typ][i].tail == tail {
			n.children[child.typ][i] = child
			n.children[child.typ][i].label = label
			n.children[child.typ][i].tail = tail
			return
		}
	}
	panic("weir: replacing missing child")
}

func (n *node) getEdge(ntyp nodeTyp, label, tail byte) *node {
	nds := n.children[ntyp]
	for i := range nds {
		if nds[i].label == label && nds[i].tail == tail {
			return nds[i]
		}
	}
	return nil
}

func (n *node) setEndpoint(method methodTyp, handler Endpoint, pattern string) {
	if n.endpoints == nil {
		n.endpoints = make(endpoints)
	}

	paramKeys := patParamKeys(pattern)

	if method&mSTUB == mSTUB {
		n.endpoints.value(mSTUB).handler = handler
	}
	if method&mALL == mALL {
		h := n.endpoints.value(mALL)
		h.handler = handler
		h.pattern = pattern
		h.paramKeys = paramKeys
		for _, m := range methodMap {
			h := n.endpoints.value(m)
			h.handler = handler
			h.pattern = pattern
			h.paramKeys = paramKeys
		}
	} else {
		h := n.endpoints.value(method)
		h.handler = handler
		h.pattern = pattern
		h.paramKeys = paramKeys
	}
}

func (n *node) findRoute(method methodTyp, path string) (*node, endpoints, Endpoint, routeParams) {
	rctx := &routeParams{}

	rn := n.findRouteRecursive(method, path, rctx)
	if rn == nil {
		return nil, nil, nil, *rctx
	}

	if rn.endpoints[method] != nil && rn.endpoints[method].handler != nil {
		return rn, rn.endpoints, rn.endpoints[method].handler, *rctx
	}

	return rn, rn.endpoints, nil, *rctx
}

// Recursive edge traversal by checking all nodeTyp groups along the way.
// Static children are tried first, then params, then the wildcard.
func (n *node) findRouteRecursive(method methodTyp, path string, rctx *routeParams) *node {
	nn := n
	search := path

	for t, nds := range nn.children {
		ntyp := nodeTyp(t)
		if len(nds) == 0 {
			continue
		}

		var xn *node
		xsearch := search

		var label byte
		if search != "" {
			label = search[0]
		}

		switch ntyp {
		case ntStatic:
			xn = nds.findEdge(label)
			if xn == nil || !strings.HasPrefix(xsearch, xn.prefix) {
				continue
			}
			xsearch = xsearch[len(xn.prefix):]

		case ntParam:
			// a param segment never matches an empty value
			if xsearch == "" {
				continue
			}

			for idx := range nds {
				xn = nds[idx]

				// label for param nodes is the tail delimiter byte
				p := strings.IndexByte(xsearch, xn.tail)
				if p < 0 {
					if xn.tail == '/' {
						p = len(xsearch)
					} else {
						continue
					}
				} else if p == 0 {
					// an empty capture is never a match
					continue
				}

				if strings.IndexByte(xsearch[:p], '/') != -1 {
					// avoid a match across path segments
					continue
				}

				prevlen := len(rctx.values)
				rctx.values = append(rctx.values, xsearch[:p])
				xsearch = xsearch[p:]

				if len(xsearch) == 0 {
					if xn.isLeaf() {
						h := xn.endpoints[method]
						if h != nil && h.handler != nil {
							rctx.keys = append(rctx.keys, h.paramKeys...)
							return xn
						}

						// route found, but no endpoint for this method;
						// keep the node so the caller can distinguish
						// method-not-allowed from not-found
						return xn
					}
				}

				// recursively find the next node on this branch
				fin := xn.findRouteRecursive(method, xsearch, rctx)
				if fin != nil {
					return fin
				}

				// not found on this branch, reset vars
				rctx.values = rctx.values[:prevlen]
				xsearch = search
			}

			rctx.values = append(rctx.values, "")

		default:
			// catch-all node consumes the remaining path
			rctx.values = append(rctx.values, search)
			xn = nds[0]
			xsearch = ""
		}

		if xn == nil {
			continue
		}

		// did we find it yet?
		if len(xsearch) == 0 {
			if xn.isLeaf() {
				h := xn.endpoints[method]
				if h != nil && h.handler != nil {
					rctx.keys = append(rctx.keys, h.paramKeys...)
					return xn
				}

				return xn
			}
		}

		// recursively find the next node..
		fin := xn.findRouteRecursive(method, xsearch, rctx)
		if fin != nil {
			return fin
		}

		// Did not find final handler, let's remove the param here if it was set
		if xn.typ > ntStatic {
			if len(rctx.values) > 0 {
				rctx.values = rctx.values[:len(rctx.values)-1]
			}
		}
	}

	return nil
}

func (n *node) isLeaf() bool {
	return n.endpoints != nil
}

func (n *node) routes() []Route {
	rts := []Route{}

	n.walk(func(eps endpoints, subroutes *Router) bool {
		if eps[mSTUB] != nil && eps[mSTUB].handler != nil && subroutes == nil {
			return false
		}

		// Group endpoints by unique patterns
		pats := make(map[string]endpoints)

		for mt, h := range eps {
			if h.pattern == "" {
				continue
			}
			p, ok := pats[h.pattern]
			if !ok {
				p = endpoints{}
				pats[h.pattern] = p
			}
			p[mt] = h
		}

		for p, mh := range pats {
			for mt := range mh {
				if mt == mALL || mt == mSTUB {
					continue
				}
				m := reverseMethodMap[mt]
				if m == "" {
					continue
				}
				rts = append(rts, Route{Method: m, Pattern: p})
			}
		}

		return false
	})

	return rts
}

func (n *node) walk(fn func(eps endpoints, subroutes *Router) bool) bool {
	// Visit the leaf values if any
	if (n.endpoints != nil || n.subroutes != nil) && fn(n.endpoints, n.subroutes) {
		return true
	}

	// Recurse on the children
	for _, ns := range n.children {
		for _, cn := range ns {
			if cn.walk(fn) {
				return true
			}
		}
	}
	return false
}

// nextSegment returns the first dynamic segment of a pattern: node type,
// parameter key, tail delimiter byte, starting index and ending index.
// Patterns use ':name' for single-segment params and '*name' for a wildcard
// tail; the wildcard must be the final segment.
func nextSegment(pattern string) (nodeTyp, string, byte, int, int) {
	ps := strings.IndexByte(pattern, ':')
	ws := strings.IndexByte(pattern, '*')

	if ps < 0 && ws < 0 {
		return ntStatic, "", 0, 0, len(pattern) // we return the entire thing
	}

	if ps >= 0 && (ws < 0 || ps < ws) {
		// Param segment is next; it runs to the following separator.
		pe := strings.IndexByte(pattern[ps:], '/')
		if pe < 0 {
			pe = len(pattern)
		} else {
			pe += ps
		}

		key := pattern[ps+1 : pe]
		if key == "" {
			panic(fmt.Errorf("%w: '%s'", ErrMissingParamName, pattern))
		}
		if strings.ContainsRune(key, '*') {
			panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern))
		}

		return ntParam, key, '/', ps, pe
	}

	// Wildcard tail as finale
	key := pattern[ws+1:]
	if strings.ContainsRune(key, '/') {
		panic(fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern))
	}
	if key == "" {
		key = "*"
	}
	return ntCatchAll, key, 0, ws, len(pattern)
}

func patParamKeys(pattern string) []string {
	pat := pattern
	paramKeys := []string{}
	for {
		ptyp, paramKey, _, _, e := nextSegment(pat)
		if ptyp == ntStatic {
			return paramKeys
		}
		for i := range paramKeys {
			if paramKeys[i] == paramKey {
				panic(fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, paramKey))
			}
		}
		paramKeys = append(paramKeys, paramKey)
		pat = pat[e:]
	}
}

// longestPrefix finds the length of the shared prefix of two strings.
func longestPrefix(k1, k2 string) int {
	max := len(k1)
	if l := len(k2); l < max {
		max = l
	}
	var i int
	for i = 0; i < max; i++ {
		if k1[i] != k2[i] {
			break
		}
	}
	return i
}

type nodes []*node

// sort the list of nodes by label
func (ns nodes) sort()              { sort.Sort(ns) }
func (ns nodes) Len() int           { return len(ns) }
func (ns nodes) Swap(i, j int)      { ns[i], ns[j] = ns[j], ns[i] }
func (ns nodes) Less(i, j int) bool { return ns[i].label < ns[j].label }

func (ns nodes) findEdge(label byte) *node {
	num := len(ns)
	idx := 0
	i, j := 0, num-1
	for i <= j {
		idx = i + (j-i)/2
		if label > ns[idx].label {
			i = idx + 1
		} else if label < ns[idx].label {
			j = idx - 1
		} else {
			i = num // breaks cond
		}
	}
	if ns[idx].label != label {
		return nil
	}
	return ns[idx]
}
