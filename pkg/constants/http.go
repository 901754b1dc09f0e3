// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

type requestIDHeaderType string

// RequestIDHeader is the header name for the request ID
const RequestIDHeader requestIDHeaderType = "X-REQUEST-ID"

type principalContextIDType string

const (
	// PrincipalContextID is the context key under which the authenticated
	// principal is stored.
	PrincipalContextID principalContextIDType = "principal"
	// PrincipalAttribute is the slog attribute name for the principal.
	PrincipalAttribute = "principal"
)
