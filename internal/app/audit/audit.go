// Package audit records privileged admin operations: who called them, with
// what payload, how long they took and how they ended.
//
// Callers wrap each audited operation explicitly:
//
//	err := audit.Do(ctx, auditor, req, func(ctx context.Context) error {
//		return svc.ChangeUserRole(ctx, id, req)
//	})
package audit

import (
	"context"
	"encoding/json"
	"time"

	"todo_expert/internal/common/reqctx"
	"todo_expert/internal/platform/logging"

	"github.com/google/uuid"
)

const (
	TimeLayout   = "2006-01-02 15:04:05"
	NotAvailable = "Not Available"
	Null         = "null"

	MsgRequest  = "ADMIN_API_REQUEST"
	MsgResponse = "ADMIN_API_RESPONSE"
	MsgError    = "ADMIN_API_ERROR"
)

type Auditor struct {
	logger  logging.Logger
	now     func() time.Time
	marshal func(v any) ([]byte, error)
	traceID func() string
}

func NewAuditor(logger logging.Logger) *Auditor {
	return &Auditor{
		logger:  logger,
		now:     time.Now,
		marshal: json.Marshal,
		traceID: uuid.NewString,
	}
}

// Around runs op and logs one request line before it and exactly one
// response or error line after it. op's error is returned untouched.
// Without request attributes in ctx nothing is audited.
func Around[T any](ctx context.Context, a *Auditor, payload any, op func(ctx context.Context) (T, error)) (T, error) {
	attrs, ok := reqctx.FromContext(ctx)
	if !ok {
		a.logger.Debug(ctx, "admin audit skipped, no request attributes")
		return op(ctx)
	}

	log := a.logger.With("traceId", a.traceID(), "userId", attrs.UserID, "uri", attrs.URI)
	log.Info(ctx, MsgRequest,
		"time", a.now().Format(TimeLayout),
		"requestBody", a.requestBody(payload),
	)

	start := a.now()
	result, err := op(ctx)
	elapsed := a.now().Sub(start).Milliseconds()

	if err != nil {
		log.Error(ctx, MsgError,
			"executionTimeMs", elapsed,
			"errorMessage", err.Error(),
		)
		return result, err
	}

	log.Info(ctx, MsgResponse,
		"executionTimeMs", elapsed,
		"responseBody", a.responseBody(result),
	)
	return result, nil
}

// Do is Around for operations without a result; the response is logged as null.
func Do(ctx context.Context, a *Auditor, payload any, op func(ctx context.Context) error) error {
	_, err := Around(ctx, a, payload, func(ctx context.Context) (any, error) {
		return nil, op(ctx)
	})
	return err
}

func (a *Auditor) requestBody(payload any) string {
	if payload == nil {
		return NotAvailable
	}
	b, err := a.marshal(payload)
	if err != nil {
		return NotAvailable
	}
	return string(b)
}

func (a *Auditor) responseBody(result any) string {
	if result == nil {
		return Null
	}
	b, err := a.marshal(result)
	if err != nil {
		return NotAvailable
	}
	return string(b)
}
