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

type CommentRepository interface {
	FindByID(ctx context.Context, id int64) (common.Optional[*model.Comment], error)
	Save(ctx context.Context, comment *model.Comment) (*model.Comment, error)
	Delete(ctx context.Context, comment *model.Comment) error
	// FindByTodoIDWithUser lists a todo's comments oldest first.
	FindByTodoIDWithUser(ctx context.Context, todoID int64) ([]model.Comment, error)
}

type commentRow struct {
	ID         int64          `db:"id"`
	Contents   string         `db:"contents"`
	TodoID     int64          `db:"todo_id"`
	UserID     int64          `db:"user_id"`
	UserEmail  sql.NullString `db:"user_email"`
	CreatedAt  time.Time      `db:"created_at"`
	ModifiedAt time.Time      `db:"modified_at"`
}

func (r commentRow) toModel() model.Comment {
	return model.Comment{
		ID:         r.ID,
		Contents:   r.Contents,
		TodoID:     r.TodoID,
		User:       &model.User{ID: r.UserID, Email: r.UserEmail.String},
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
	}
}

var commentColumns = []string{
	"c.id", "c.contents", "c.todo_id", "c.user_id", "c.created_at", "c.modified_at",
}

type pgCommentRepository struct {
	db database.DBTX
}

// NewPgCommentRepository also serves as the factory handed to services that
// need a repository bound to a transaction.
func NewPgCommentRepository(db database.DBTX) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id int64) (common.Optional[*model.Comment], error) {
	query, args, err := psql.Select(commentColumns...).
		From("comments c").
		Where(squirrel.Eq{"c.id": id}).
		ToSql()
	if err != nil {
		return common.None[*model.Comment](), fmt.Errorf("pgCommentRepository.FindByID: build query: %w", err)
	}

	var row commentRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.None[*model.Comment](), nil
		}
		return common.None[*model.Comment](), fmt.Errorf("pgCommentRepository.FindByID: %w", err)
	}
	c := row.toModel()
	return common.Some(&c), nil
}

func (r *pgCommentRepository) Save(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	if comment.User == nil {
		return nil, common.ValidationError("comment has no author")
	}
	query, args, err := psql.Insert("comments").
		Columns("contents", "todo_id", "user_id").
		Values(comment.Contents, comment.TodoID, comment.User.ID).
		Suffix(returningInserted).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.Save: build query: %w", err)
	}

	var ins insertedRow
	if err := r.db.GetContext(ctx, &ins, query, args...); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.Save: %w", err)
	}

	saved := *comment
	saved.ID = ins.ID
	saved.CreatedAt = ins.CreatedAt
	saved.ModifiedAt = ins.ModifiedAt
	return &saved, nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, comment *model.Comment) error {
	query, args, err := psql.Delete("comments").Where(squirrel.Eq{"id": comment.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: build query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.NotFoundError("no such comment")
	}
	return nil
}

func (r *pgCommentRepository) FindByTodoIDWithUser(ctx context.Context, todoID int64) ([]model.Comment, error) {
	query, args, err := psql.Select(append(append([]string{}, commentColumns...), "u.email AS user_email")...).
		From("comments c").
		Join("users u ON u.id = c.user_id").
		Where(squirrel.Eq{"c.todo_id": todoID}).
		OrderBy("c.created_at ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.FindByTodoIDWithUser: build query: %w", err)
	}

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.FindByTodoIDWithUser: %w", err)
	}

	comments := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		comments = append(comments, row.toModel())
	}
	return comments, nil
}
