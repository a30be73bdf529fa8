package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/model"
	"todo_expert/internal/platform/database"

	"github.com/Masterminds/squirrel"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (common.Optional[*model.User], error)
	FindByEmail(ctx context.Context, email string) (common.Optional[*model.User], error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Save inserts a user with a zero ID and updates it otherwise.
	Save(ctx context.Context, user *model.User) (*model.User, error)
}

type userRow struct {
	ID         int64     `db:"id"`
	Email      string    `db:"email"`
	Password   string    `db:"password"`
	Role       string    `db:"user_role"`
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

func (r userRow) toModel() *model.User {
	return &model.User{
		ID:        r.ID,
		Email:     r.Email,
		Password:  r.Password,
		Role:      model.UserRole(r.Role),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.ModifiedAt,
	}
}

var userColumns = []string{"id", "email", "password", "user_role", "created_at", "modified_at"}

type pgUserRepository struct {
	db database.DBTX
}

func NewPgUserRepository(db database.DBTX) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (common.Optional[*model.User], error) {
	return r.findOne(ctx, squirrel.Eq{"id": id}, "FindByID")
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (common.Optional[*model.User], error) {
	return r.findOne(ctx, squirrel.Eq{"email": email}, "FindByEmail")
}

func (r *pgUserRepository) findOne(ctx context.Context, where squirrel.Eq, op string) (common.Optional[*model.User], error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return common.None[*model.User](), fmt.Errorf("pgUserRepository.%s: build query: %w", op, err)
	}

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.None[*model.User](), nil
		}
		return common.None[*model.User](), fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	return common.Some(row.toModel()), nil
}

func (r *pgUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query, args, err := psql.Select("1").From("users").Where(squirrel.Eq{"email": email}).
		Prefix("SELECT EXISTS (").Suffix(")").ToSql()
	if err != nil {
		return false, fmt.Errorf("pgUserRepository.ExistsByEmail: build query: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		return false, fmt.Errorf("pgUserRepository.ExistsByEmail: %w", err)
	}
	return exists, nil
}

func (r *pgUserRepository) Save(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == 0 {
		return r.insert(ctx, user)
	}
	return r.update(ctx, user)
}

func (r *pgUserRepository) insert(ctx context.Context, user *model.User) (*model.User, error) {
	query, args, err := psql.Insert("users").
		Columns("email", "password", "user_role").
		Values(user.Email, user.Password, string(user.Role)).
		Suffix(returningInserted).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.Save: build query: %w", err)
	}

	var ins insertedRow
	if err := r.db.GetContext(ctx, &ins, query, args...); err != nil {
		if common.IsUniqueViolation(err) {
			return nil, fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("pgUserRepository.Save: %w", err)
	}

	saved := *user
	saved.ID = ins.ID
	saved.CreatedAt = ins.CreatedAt
	saved.UpdatedAt = ins.ModifiedAt
	return &saved, nil
}

func (r *pgUserRepository) update(ctx context.Context, user *model.User) (*model.User, error) {
	query, args, err := psql.Update("users").
		Set("email", user.Email).
		Set("password", user.Password).
		Set("user_role", string(user.Role)).
		Set("modified_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": user.ID}).
		Suffix("RETURNING modified_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.Save: build query: %w", err)
	}

	var modifiedAt time.Time
	if err := r.db.GetContext(ctx, &modifiedAt, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFoundError("user not found")
		}
		if common.IsUniqueViolation(err) {
			return nil, fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("pgUserRepository.Save: %w", err)
	}

	saved := *user
	saved.UpdatedAt = modifiedAt
	return &saved, nil
}
