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

type TodoRepository interface {
	Save(ctx context.Context, todo *model.Todo) (*model.Todo, error)
	// FindAllOrderByModifiedDesc lists todos newest modification first.
	FindAllOrderByModifiedDesc(ctx context.Context, req common.PageRequest) (common.Page[model.Todo], error)
	FindByIDWithUser(ctx context.Context, id int64) (common.Optional[*model.Todo], error)
	FindByID(ctx context.Context, id int64) (common.Optional[*model.Todo], error)
}

type todoRow struct {
	ID         int64          `db:"id"`
	Title      string         `db:"title"`
	Contents   string         `db:"contents"`
	Weather    string         `db:"weather"`
	UserID     int64          `db:"user_id"`
	UserEmail  sql.NullString `db:"user_email"`
	CreatedAt  time.Time      `db:"created_at"`
	ModifiedAt time.Time      `db:"modified_at"`
}

func (r todoRow) toModel() model.Todo {
	return model.Todo{
		ID:         r.ID,
		Title:      r.Title,
		Contents:   r.Contents,
		Weather:    r.Weather,
		User:       &model.User{ID: r.UserID, Email: r.UserEmail.String},
		CreatedAt:  r.CreatedAt,
		ModifiedAt: r.ModifiedAt,
	}
}

var (
	todoColumns = []string{
		"t.id", "t.title", "t.contents", "t.weather", "t.user_id", "t.created_at", "t.modified_at",
	}
	todoWithUserColumns = append(append([]string{}, todoColumns...), "u.email AS user_email")
)

type pgTodoRepository struct {
	db database.DBTX
}

func NewPgTodoRepository(db database.DBTX) TodoRepository {
	return &pgTodoRepository{db: db}
}

func (r *pgTodoRepository) Save(ctx context.Context, todo *model.Todo) (*model.Todo, error) {
	if todo.User == nil {
		return nil, common.ValidationError("todo has no owner")
	}
	query, args, err := psql.Insert("todos").
		Columns("title", "contents", "weather", "user_id").
		Values(todo.Title, todo.Contents, todo.Weather, todo.User.ID).
		Suffix(returningInserted).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("pgTodoRepository.Save: build query: %w", err)
	}

	var ins insertedRow
	if err := r.db.GetContext(ctx, &ins, query, args...); err != nil {
		return nil, fmt.Errorf("pgTodoRepository.Save: %w", err)
	}

	saved := *todo
	saved.ID = ins.ID
	saved.CreatedAt = ins.CreatedAt
	saved.ModifiedAt = ins.ModifiedAt
	return &saved, nil
}

func (r *pgTodoRepository) FindAllOrderByModifiedDesc(ctx context.Context, req common.PageRequest) (common.Page[model.Todo], error) {
	countQuery, countArgs, err := psql.Select("COUNT(*)").From("todos").ToSql()
	if err != nil {
		return common.Page[model.Todo]{}, fmt.Errorf("pgTodoRepository.FindAll: build count: %w", err)
	}
	var total int64
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return common.Page[model.Todo]{}, fmt.Errorf("pgTodoRepository.FindAll: count: %w", err)
	}

	query, args, err := psql.Select(todoWithUserColumns...).
		From("todos t").
		LeftJoin("users u ON u.id = t.user_id").
		OrderBy("t.modified_at DESC", "t.id DESC").
		Limit(uint64(req.Size)).
		Offset(req.Offset()).
		ToSql()
	if err != nil {
		return common.Page[model.Todo]{}, fmt.Errorf("pgTodoRepository.FindAll: build query: %w", err)
	}

	var rows []todoRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return common.Page[model.Todo]{}, fmt.Errorf("pgTodoRepository.FindAll: %w", err)
	}

	todos := make([]model.Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, row.toModel())
	}
	return common.NewPage(todos, req, total), nil
}

func (r *pgTodoRepository) FindByIDWithUser(ctx context.Context, id int64) (common.Optional[*model.Todo], error) {
	builder := psql.Select(todoWithUserColumns...).
		From("todos t").
		Join("users u ON u.id = t.user_id").
		Where(squirrel.Eq{"t.id": id})
	return r.findOne(ctx, builder, "FindByIDWithUser")
}

func (r *pgTodoRepository) FindByID(ctx context.Context, id int64) (common.Optional[*model.Todo], error) {
	builder := psql.Select(todoColumns...).From("todos t").Where(squirrel.Eq{"t.id": id})
	return r.findOne(ctx, builder, "FindByID")
}

func (r *pgTodoRepository) findOne(ctx context.Context, builder squirrel.SelectBuilder, op string) (common.Optional[*model.Todo], error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return common.None[*model.Todo](), fmt.Errorf("pgTodoRepository.%s: build query: %w", op, err)
	}

	var row todoRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.None[*model.Todo](), nil
		}
		return common.None[*model.Todo](), fmt.Errorf("pgTodoRepository.%s: %w", op, err)
	}
	todo := row.toModel()
	return common.Some(&todo), nil
}
