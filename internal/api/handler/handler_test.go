package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todo_expert/internal/app/audit"
	"todo_expert/internal/app/service"
	"todo_expert/internal/common"
	"todo_expert/internal/common/reqctx"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/platform/logging"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asCaller stands in for the JWT middleware.
func asCaller(a model.AuthUser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := reqctx.WithAttributes(r.Context(), reqctx.Attributes{
				UserID: a.ID, Email: a.Email, Role: a.Role, URI: r.URL.Path,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

var (
	jane  = model.AuthUser{ID: 5, Email: "jane@todo.io", Role: model.RoleUser}
	admin = model.AuthUser{ID: 1, Email: "root@todo.io", Role: model.RoleAdmin}
)

func send(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var body common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

type stubAuth struct {
	signup  service.SignupRequest
	signin  service.SigninRequest
	respErr error
}

func (s *stubAuth) Signup(_ context.Context, req service.SignupRequest) (*service.SignupResponse, error) {
	s.signup = req
	if s.respErr != nil {
		return nil, s.respErr
	}
	return &service.SignupResponse{BearerToken: "Bearer abc"}, nil
}

func (s *stubAuth) Signin(_ context.Context, req service.SigninRequest) (*service.SigninResponse, error) {
	s.signin = req
	if s.respErr != nil {
		return nil, s.respErr
	}
	return &service.SigninResponse{BearerToken: "Bearer abc"}, nil
}

func authRouter(s *stubAuth) http.Handler {
	r := chi.NewRouter()
	r.Route("/auth", NewAuthHandler(s).RegisterRoutes)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	s := &stubAuth{}
	rec := send(authRouter(s), http.MethodPost, "/auth/signup",
		`{"email":"jane@todo.io","password":"Secret123","userRole":"USER"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"bearerToken":"Bearer abc"}`, rec.Body.String())
	assert.Equal(t, "jane@todo.io", s.signup.Email)
}

func TestAuthHandler_SignupValidation(t *testing.T) {
	s := &stubAuth{}
	rec := send(authRouter(s), http.MethodPost, "/auth/signup", `{"email":"not-an-email","password":""}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := errorBody(t, rec)
	assert.Contains(t, body.Message, "'email' must be a valid email")
	assert.Contains(t, body.Message, "'userRole' is required")
	assert.Empty(t, s.signup.Email, "service not called")
}

func TestAuthHandler_SigninErrors(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{common.NotFoundError("user not registered"), http.StatusNotFound},
		{common.AuthenticationError("wrong password"), http.StatusUnauthorized},
	}
	for _, tc := range tests {
		rec := send(authRouter(&stubAuth{respErr: tc.err}), http.MethodPost, "/auth/signin",
			`{"email":"jane@todo.io","password":"x"}`)
		assert.Equal(t, tc.code, rec.Code)
		assert.Contains(t, errorBody(t, rec).Message, strings.Split(tc.err.Error(), ":")[0])
	}
}

func TestAuthHandler_MalformedJSON(t *testing.T) {
	rec := send(authRouter(&stubAuth{}), http.MethodPost, "/auth/signin", `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubUsers struct {
	changedID int64
	req       service.UserChangePasswordRequest
}

func (s *stubUsers) GetUser(_ context.Context, id int64) (*service.UserResponse, error) {
	if id != 5 {
		return nil, common.NotFoundError("user not found")
	}
	return &service.UserResponse{ID: 5, Email: "jane@todo.io"}, nil
}

func (s *stubUsers) ChangePassword(_ context.Context, id int64, req service.UserChangePasswordRequest) error {
	s.changedID = id
	s.req = req
	return nil
}

func userRouter(s *stubUsers) http.Handler {
	r := chi.NewRouter()
	r.Use(asCaller(jane))
	r.Route("/users", NewUserHandler(s).RegisterRoutes)
	return r
}

func TestUserHandler_GetUser(t *testing.T) {
	h := userRouter(&stubUsers{})

	rec := send(h, http.MethodGet, "/users/5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":5,"email":"jane@todo.io"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, send(h, http.MethodGet, "/users/6", "").Code)
	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodGet, "/users/abc", "").Code)
}

func TestUserHandler_ChangePasswordTargetsCaller(t *testing.T) {
	s := &stubUsers{}
	rec := send(userRouter(s), http.MethodPut, "/users", `{"oldPassword":"Secret123","newPassword":"Better1234"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, jane.ID, s.changedID)
	assert.Equal(t, "Better1234", s.req.NewPassword)
}

func TestUserHandler_ChangePasswordStrength(t *testing.T) {
	for _, weak := range []string{"short1A", "alllowercase1", "NODIGITSHERE"} {
		s := &stubUsers{}
		rec := send(userRouter(s), http.MethodPut, "/users",
			`{"oldPassword":"Secret123","newPassword":"`+weak+`"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, weak)
		assert.Zero(t, s.changedID, weak)
	}
}

type stubTodos struct {
	caller model.AuthUser
	page   int
	size   int
}

func (s *stubTodos) SaveTodo(_ context.Context, caller model.AuthUser, req service.TodoSaveRequest) (*service.TodoSaveResponse, error) {
	s.caller = caller
	return &service.TodoSaveResponse{ID: 1, Title: req.Title, Contents: req.Contents, Weather: "Sunny",
		User: service.UserResponse{ID: caller.ID, Email: caller.Email}}, nil
}

func (s *stubTodos) GetTodos(_ context.Context, page, size int) (common.Page[service.TodoResponse], error) {
	s.page, s.size = page, size
	if page < 1 || size < 1 {
		return common.Page[service.TodoResponse]{}, common.ValidationError("page and size must be positive")
	}
	return common.NewPage([]service.TodoResponse{{ID: 1, Title: "T"}}, common.PageRequest{Page: page - 1, Size: size}, 1), nil
}

func (s *stubTodos) GetTodo(_ context.Context, id int64) (*service.TodoResponse, error) {
	return nil, common.NotFoundError("todo not found")
}

func todoRouter(s *stubTodos) http.Handler {
	r := chi.NewRouter()
	r.Use(asCaller(jane))
	r.Route("/todos", NewTodoHandler(s).RegisterRoutes)
	return r
}

func TestTodoHandler_Save(t *testing.T) {
	s := &stubTodos{}
	rec := send(todoRouter(s), http.MethodPost, "/todos", `{"title":"T","contents":"C"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, jane, s.caller)
	assert.JSONEq(t, `{"id":1,"title":"T","contents":"C","weather":"Sunny","user":{"id":5,"email":"jane@todo.io"}}`, rec.Body.String())

	rec = send(todoRouter(s), http.MethodPost, "/todos", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodoHandler_ListDefaultsAndPaging(t *testing.T) {
	s := &stubTodos{}
	h := todoRouter(s)

	rec := send(h, http.MethodGet, "/todos", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.page)
	assert.Equal(t, 10, s.size)

	rec = send(h, http.MethodGet, "/todos?page=3&size=5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, s.page)
	assert.Equal(t, 5, s.size)

	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodGet, "/todos?page=0", "").Code)
	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodGet, "/todos?size=x", "").Code)
}

func TestTodoHandler_GetMissing(t *testing.T) {
	rec := send(todoRouter(&stubTodos{}), http.MethodGet, "/todos/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, errorBody(t, rec).Message, "todo not found")
}

type stubComments struct {
	todoID int64
}

func (s *stubComments) SaveComment(_ context.Context, caller model.AuthUser, todoID int64, req service.CommentSaveRequest) (*service.CommentSaveResponse, error) {
	s.todoID = todoID
	return &service.CommentSaveResponse{ID: 3, Contents: req.Contents, User: service.UserResponse{ID: caller.ID, Email: caller.Email}}, nil
}

func (s *stubComments) GetComments(_ context.Context, todoID int64) ([]service.CommentResponse, error) {
	s.todoID = todoID
	return []service.CommentResponse{}, nil
}

func TestCommentHandler(t *testing.T) {
	s := &stubComments{}
	r := chi.NewRouter()
	r.Use(asCaller(jane))
	r.Route("/todos", NewCommentHandler(s).RegisterRoutes)

	rec := send(r, http.MethodPost, "/todos/7/comments", `{"contents":"nice"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(7), s.todoID)

	rec = send(r, http.MethodGet, "/todos/8/comments", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, int64(8), s.todoID)
}

type stubAdmin struct {
	roleCalls   int
	deleteCalls int
	err         error
}

func (s *stubAdmin) ChangeUserRole(context.Context, int64, service.UserRoleChangeRequest) error {
	s.roleCalls++
	return s.err
}

func (s *stubAdmin) DeleteComment(context.Context, int64) error {
	s.deleteCalls++
	return s.err
}

func adminRouter(s *stubAdmin) (http.Handler, *test.Hook) {
	l, hook := test.NewNullLogger()
	auditor := audit.NewAuditor(logging.NewLogrusLogger(l))
	r := chi.NewRouter()
	r.Use(asCaller(admin))
	r.Route("/admin", NewAdminHandler(s, s, auditor).RegisterRoutes)
	return r, hook
}

func TestAdminHandler_ChangeUserRoleIsAudited(t *testing.T) {
	s := &stubAdmin{}
	h, hook := adminRouter(s)

	rec := send(h, http.MethodPatch, "/admin/users/3", `{"role":"ADMIN"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, s.roleCalls)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.MsgRequest, entries[0].Message)
	assert.Equal(t, `{"role":"ADMIN"}`, entries[0].Data["requestBody"])
	assert.Equal(t, "/admin/users/3", entries[0].Data["uri"])
	assert.Equal(t, audit.MsgResponse, entries[1].Message)
	assert.Equal(t, audit.Null, entries[1].Data["responseBody"])
}

func TestAdminHandler_DeleteCommentFailureIsAudited(t *testing.T) {
	s := &stubAdmin{err: common.NotFoundError("no such comment")}
	h, hook := adminRouter(s)

	rec := send(h, http.MethodDelete, "/admin/comments/4", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, errorBody(t, rec).Message, "no such comment")
	assert.Equal(t, 1, s.deleteCalls)

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, audit.NotAvailable, entries[0].Data["requestBody"])
	assert.Equal(t, audit.MsgError, entries[1].Message)
}

func TestAdminHandler_BadInputIsNotAudited(t *testing.T) {
	s := &stubAdmin{}
	h, hook := adminRouter(s)

	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodPatch, "/admin/users/3", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, send(h, http.MethodDelete, "/admin/comments/x", "").Code)
	assert.Zero(t, s.roleCalls)
	assert.Zero(t, s.deleteCalls)
	assert.Empty(t, hook.AllEntries())
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, isStrongPassword("Abcdefg1"))
	assert.False(t, isStrongPassword("Abcdef1"))
	assert.False(t, isStrongPassword("abcdefg1"))
	assert.False(t, isStrongPassword("Abcdefgh"))
}
