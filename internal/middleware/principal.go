// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/log"
)

// PrincipalMiddleware authenticates the bearer token on query routes and
// stores the parsed principal in the request context, tagging all request
// logs with it.
func PrincipalMiddleware(authService port.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				http.Error(w, `{"message":"missing bearer token"}`, http.StatusUnauthorized)
				return
			}

			principal, err := authService.ParsePrincipal(ctx, token, slog.Default())
			if err != nil {
				slog.ErrorContext(ctx, "failed to parse principal", "error", err)
				http.Error(w, `{"message":"invalid bearer token"}`, http.StatusUnauthorized)
				return
			}

			ctx = log.AppendCtx(ctx, slog.String(constants.PrincipalAttribute, principal))
			ctx = context.WithValue(ctx, constants.PrincipalContextID, principal)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
