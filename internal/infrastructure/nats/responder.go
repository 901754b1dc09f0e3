// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-aws-org-service/internal/service"
	"github.com/linuxfoundation/lfx-v2-aws-org-service/pkg/constants"
)

// QueryResponder answers hierarchy queries over NATS request/reply, the way
// peer services in the platform consume them. Both subjects are
// queue-subscribed so replicas share the load.
type QueryResponder struct {
	conn       *nats.Conn
	membership service.AccountMembershipChecker
	hierarchy  service.HierarchyAssembler
}

// Start subscribes to the query subjects. Replies are always sent, carrying
// either the result or an error message.
func (r *QueryResponder) Start(ctx context.Context) error {
	if _, err := r.conn.QueueSubscribe(constants.AccountMembershipSubject, constants.QueryQueue, func(msg *nats.Msg) {
		r.respond(ctx, msg, r.membershipReply(ctx, msg.Data))
	}); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", constants.AccountMembershipSubject, err)
	}

	if _, err := r.conn.QueueSubscribe(constants.OrgHierarchySubject, constants.QueryQueue, func(msg *nats.Msg) {
		r.respond(ctx, msg, r.hierarchyReply(ctx, msg.Data))
	}); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", constants.OrgHierarchySubject, err)
	}

	slog.InfoContext(ctx, "NATS query responder started",
		"subjects", []string{constants.AccountMembershipSubject, constants.OrgHierarchySubject},
		"queue", constants.QueryQueue,
	)

	return nil
}

// membershipReply executes an account membership query and serializes the reply.
func (r *QueryResponder) membershipReply(ctx context.Context, data []byte) []byte {
	var request AccountMembershipRequest
	if err := json.Unmarshal(data, &request); err != nil {
		slog.ErrorContext(ctx, "invalid account membership request", "error", err)
		return mustMarshal(AccountMembershipResponse{Error: "invalid request payload"})
	}

	found, err := r.membership.AccountInHaystack(ctx, request.AccountID, request.Haystack, request.RequireDirectDescendant)
	if err != nil {
		slog.ErrorContext(ctx, "account membership query failed",
			"account_id", request.AccountID,
			"error", err,
		)
		return mustMarshal(AccountMembershipResponse{AccountID: request.AccountID, Error: err.Error()})
	}

	return mustMarshal(AccountMembershipResponse{AccountID: request.AccountID, Found: found})
}

// hierarchyReply executes an OU hierarchy query and serializes the reply.
func (r *QueryResponder) hierarchyReply(ctx context.Context, data []byte) []byte {
	var request OrgHierarchyRequest
	if err := json.Unmarshal(data, &request); err != nil {
		slog.ErrorContext(ctx, "invalid hierarchy request", "error", err)
		return mustMarshal(OrgHierarchyResponse{Error: "invalid request payload"})
	}

	hierarchy, err := r.hierarchy.OrgHierarchy(ctx, request.ParentID, request.DirectDescendantsOnly)
	if err != nil {
		slog.ErrorContext(ctx, "hierarchy query failed",
			"parent_id", request.ParentID,
			"error", err,
		)
		return mustMarshal(OrgHierarchyResponse{Error: err.Error()})
	}

	return mustMarshal(OrgHierarchyResponse{Hierarchy: hierarchy})
}

func (r *QueryResponder) respond(ctx context.Context, msg *nats.Msg, reply []byte) {
	if err := msg.Respond(reply); err != nil {
		slog.ErrorContext(ctx, "failed to send NATS reply",
			"subject", msg.Subject,
			"error", err,
		)
	}
}

// mustMarshal serializes a reply value. The reply types only hold
// marshal-safe fields, so a failure here is a programming error.
func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte(`{"error":"failed to serialize response"}`)
	}
	return data
}

// Close drains the connection so in-flight queries finish before shutdown.
func (r *QueryResponder) Close() error {
	if r.conn != nil && !r.conn.IsClosed() {
		return r.conn.Drain()
	}
	return nil
}

// NewQueryResponder connects to NATS and creates a responder for the two
// hierarchy query subjects.
func NewQueryResponder(ctx context.Context, config Config, membership service.AccountMembershipChecker, hierarchy service.HierarchyAssembler) (*QueryResponder, error) {
	slog.InfoContext(ctx, "creating NATS query responder",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	// Configure NATS connection options
	opts := []nats.Option{
		nats.Name(constants.QueryQueue),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed")
		}),
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to NATS", "error", err)
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &QueryResponder{
		conn:       conn,
		membership: membership,
		hierarchy:  hierarchy,
	}, nil
}
