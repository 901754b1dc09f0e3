// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/middleware"

	"goa.design/clue/debug"
)

// handleHTTPServer configures and starts a HTTP server on the given address.
// It shuts down the server when the context is canceled.
func handleHTTPServer(ctx context.Context, host string, svc *querySvc, authService port.Authenticator, wg *sync.WaitGroup, errc chan error, dbg bool) {

	// Build the service HTTP request multiplexer and mount debug and profiler
	// endpoints in debug mode.
	mux := http.NewServeMux()
	if dbg {
		// Mount pprof handlers for memory profiling under /debug/pprof.
		debug.MountPprofHandlers(mux)
		// Mount /debug endpoint to enable or disable debug logs at runtime.
		debug.MountDebugLogEnabler(mux)
	}

	// Query routes require an authenticated principal; probe routes do not.
	authed := middleware.PrincipalMiddleware(authService)
	mux.Handle("GET /query/orgs/hierarchy", authed(http.HandlerFunc(svc.handleOrgHierarchy)))
	mux.Handle("GET /query/orgs/accounts/{accountID}/membership", authed(http.HandlerFunc(svc.handleAccountMembership)))
	mux.HandleFunc("GET /livez", svc.handleLivez)
	mux.HandleFunc("GET /readyz", svc.handleReadyz)

	var handler http.Handler = mux

	// Add RequestID middleware first
	handler = middleware.RequestIDMiddleware()(handler)

	if dbg {
		// Log query and response bodies if debug logs are enabled.
		handler = debug.HTTP()(handler)
	}

	srv := &http.Server{Addr: host, Handler: handler, ReadHeaderTimeout: time.Second * 60}

	(*wg).Add(1)
	go func() {
		defer (*wg).Done()

		// Start HTTP server in a separate goroutine.
		go func() {
			slog.InfoContext(ctx, "HTTP server listening", "host", host)
			errc <- srv.ListenAndServe()
		}()

		<-ctx.Done()
		slog.InfoContext(ctx, "shutting down HTTP server", "host", host)

		// Shutdown gracefully with a 30s timeout.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to shutdown HTTP server", "error", err)
		}
	}()
}
