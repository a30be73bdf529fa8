package service

import (
	"context"
	"errors"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/domain/repository"
	"todo_expert/internal/platform/database"
)

type fakeUserRepo struct {
	byID    map[int64]*model.User
	nextID  int64
	exists  bool
	saveErr error
	findErr error

	existsCalls int
	saved       []*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[int64]*model.User{}, nextID: 100}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (common.Optional[*model.User], error) {
	if r.findErr != nil {
		return common.None[*model.User](), r.findErr
	}
	if u, ok := r.byID[id]; ok {
		cp := *u
		return common.Some(&cp), nil
	}
	return common.None[*model.User](), nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (common.Optional[*model.User], error) {
	if r.findErr != nil {
		return common.None[*model.User](), r.findErr
	}
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return common.Some(&cp), nil
		}
	}
	return common.None[*model.User](), nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, _ string) (bool, error) {
	r.existsCalls++
	return r.exists, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *model.User) (*model.User, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	cp := *u
	if cp.ID == 0 {
		cp.ID = r.nextID
		r.nextID++
	}
	r.byID[cp.ID] = &cp
	r.saved = append(r.saved, &cp)
	return &cp, nil
}

// fakeEncoder "encodes" by prefixing, so matches is a string comparison.
type fakeEncoder struct {
	encodeCalls int
	err         error
}

func (e *fakeEncoder) Encode(raw string) (string, error) {
	e.encodeCalls++
	if e.err != nil {
		return "", e.err
	}
	return "enc:" + raw, nil
}

func (e *fakeEncoder) Matches(raw, encoded string) bool {
	return "enc:"+raw == encoded
}

type issuedToken struct {
	id    int64
	email string
	role  model.UserRole
}

type fakeIssuer struct {
	issued []issuedToken
	err    error
}

func (f *fakeIssuer) CreateToken(id int64, email string, role model.UserRole) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued = append(f.issued, issuedToken{id, email, role})
	return "Bearer token-for-" + email, nil
}

type fakeWeather struct {
	weather string
	err     error
	calls   int
}

func (f *fakeWeather) TodayWeather(context.Context) (string, error) {
	f.calls++
	return f.weather, f.err
}

type fakeTodoRepo struct {
	byID     map[int64]*model.Todo
	page     common.Page[model.Todo]
	pageReqs []common.PageRequest
	saved    []*model.Todo
	saveErr  error
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{byID: map[int64]*model.Todo{}}
}

func (r *fakeTodoRepo) Save(_ context.Context, t *model.Todo) (*model.Todo, error) {
	if r.saveErr != nil {
		return nil, r.saveErr
	}
	cp := *t
	cp.ID = int64(len(r.byID) + 1)
	r.byID[cp.ID] = &cp
	r.saved = append(r.saved, &cp)
	return &cp, nil
}

func (r *fakeTodoRepo) FindAllOrderByModifiedDesc(_ context.Context, req common.PageRequest) (common.Page[model.Todo], error) {
	r.pageReqs = append(r.pageReqs, req)
	return r.page, nil
}

func (r *fakeTodoRepo) FindByIDWithUser(_ context.Context, id int64) (common.Optional[*model.Todo], error) {
	if t, ok := r.byID[id]; ok {
		cp := *t
		return common.Some(&cp), nil
	}
	return common.None[*model.Todo](), nil
}

func (r *fakeTodoRepo) FindByID(ctx context.Context, id int64) (common.Optional[*model.Todo], error) {
	return r.FindByIDWithUser(ctx, id)
}

type fakeCommentRepo struct {
	byID        map[int64]*model.Comment
	deleted     []int64
	saved       []*model.Comment
	listed      []model.Comment
	deleteCalls int
}

func newFakeCommentRepo(comments ...*model.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{byID: map[int64]*model.Comment{}}
	for _, c := range comments {
		r.byID[c.ID] = c
	}
	return r
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id int64) (common.Optional[*model.Comment], error) {
	if c, ok := r.byID[id]; ok {
		return common.Some(c), nil
	}
	return common.None[*model.Comment](), nil
}

func (r *fakeCommentRepo) Save(_ context.Context, c *model.Comment) (*model.Comment, error) {
	cp := *c
	cp.ID = int64(len(r.byID) + 1)
	r.byID[cp.ID] = &cp
	r.saved = append(r.saved, &cp)
	return &cp, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, c *model.Comment) error {
	r.deleteCalls++
	r.deleted = append(r.deleted, c.ID)
	delete(r.byID, c.ID)
	return nil
}

func (r *fakeCommentRepo) FindByTodoIDWithUser(_ context.Context, _ int64) ([]model.Comment, error) {
	return r.listed, nil
}

// fakeTx runs fn directly and records the outcome the real runner would
// commit or roll back.
type fakeTx struct {
	runs      int
	committed int
	rolled    int
}

func (f *fakeTx) run(ctx context.Context, fn func(ctx context.Context, tx database.DBTX) error) error {
	f.runs++
	if err := fn(ctx, nil); err != nil {
		f.rolled++
		return err
	}
	f.committed++
	return nil
}

func factoryFor(repo repository.CommentRepository) CommentRepoFactory {
	return func(database.DBTX) repository.CommentRepository { return repo }
}

var errBoom = errors.New("boom")
