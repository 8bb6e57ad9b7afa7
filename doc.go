// Package weir is an embeddable HTTP dispatch framework. It routes parsed
// requests to application handlers, assembles typed handler arguments from
// the request, threads the call through an ordered middleware chain, and
// produces a uniform Response value that the surrounding server writes out.
//
// The core pieces are:
//
//   - Router: a radix-tree route table with static segments, named
//     parameters (:name) and wildcard tails (*name), plus sub-router
//     mounting, a configurable not-found endpoint, and a middleware chain.
//   - Endpoint: the minimal type-erased "request in, response out" unit the
//     router invokes. Handlers of arbitrary arity are adapted into endpoints
//     with H0..H4 and the Extractor protocol.
//   - Extractors: Path, Query, JSON, Form, Body, RemoteAddr and State build
//     typed handler arguments from the request and fail with structured
//     rejections that render as responses.
//   - Middleware: continuation-style cross-cutting behaviors; each receives
//     the request and a Next value representing the rest of the pipeline.
//
// The package does not parse HTTP wire bytes, terminate TLS, or pool
// connections; it consumes a parsed request head plus a consumable body from
// an HTTP engine (net/http via App.ServeHTTP, or any caller of Router.Serve)
// and returns a Response value. Graceful shutdown is owned by the accept
// loop, see the httpserver subpackage.
package weir
