// Package httpserver runs an http.Handler with graceful shutdown tied to a
// context, plus a JSON health check handler.
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		// handle
//	}
//
// Settings come from Config, which is loaded with the config package.
package httpserver
