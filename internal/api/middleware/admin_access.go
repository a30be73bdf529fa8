package middleware

import (
	"net/http"
	"strings"
	"time"

	"todo_expert/internal/app/audit"
	"todo_expert/internal/common/reqctx"
	"todo_expert/internal/platform/logging"
)

const MsgAdminAccess = "ADMIN_ACCESS"

// AdminAccessLogger records who reaches paths under prefix. It only
// observes: authorization is AdminOnly's job, and every request is passed on.
type AdminAccessLogger struct {
	logger logging.Logger
	prefix string
	now    func() time.Time
}

func NewAdminAccessLogger(logger logging.Logger, prefix string) *AdminAccessLogger {
	return &AdminAccessLogger{logger: logger, prefix: prefix, now: time.Now}
}

func (l *AdminAccessLogger) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uri := r.URL.Path
		if strings.HasPrefix(uri, l.prefix) {
			attrs, _ := reqctx.FromContext(r.Context())
			l.logger.Info(r.Context(), MsgAdminAccess,
				"userId", attrs.UserID,
				"email", attrs.Email,
				"uri", uri,
				"time", l.now().Format(audit.TimeLayout),
			)
		}
		next.ServeHTTP(w, r)
	})
}
