// Package httpserver runs a weir application (or any http.Handler) behind
// an http.Server with environment-driven configuration and graceful
// shutdown.
//
// Basic usage:
//
//	cfg, err := httpserver.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	srv, err := httpserver.NewFromConfig(cfg, httpserver.WithLogger(logger))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	if err := srv.Start(ctx, app); err != nil && !errors.Is(err, context.Canceled) {
//		log.Fatal(err)
//	}
package httpserver
