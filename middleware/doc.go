// Package middleware provides ready-made middleware for weir applications:
// request ID assignment, structured access logging, and default response
// headers.
//
// Each middleware follows the same configuration pattern: a zero-config
// constructor with sensible defaults and a WithConfig variant for
// customization:
//
//	app := weir.New()
//	app.Use(
//		middleware.RequestID(),
//		middleware.AccessLog(logger),
//	)
package middleware
