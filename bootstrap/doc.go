// Package bootstrap wires the Enterprise Search plugin service: it loads
// configuration, registers the three applications and their catalogue
// entries with the host shell, and runs the HTTP server.
//
// Usage:
//
//	app, err := bootstrap.NewApp(ctx, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := app.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Wait for shutdown signal
//	app.WaitForShutdown()
//	app.Shutdown()
package bootstrap
