package service

import (
	"context"
	"fmt"

	"todo_expert/internal/common"
	"todo_expert/internal/domain/repository"
	"todo_expert/internal/platform/database"
)

// CommentRepoFactory binds a comment repository to a connection or transaction.
type CommentRepoFactory func(db database.DBTX) repository.CommentRepository

type CommentAdminService struct {
	withTx   database.TxRunner
	comments CommentRepoFactory
}

func NewCommentAdminService(withTx database.TxRunner, comments CommentRepoFactory) *CommentAdminService {
	return &CommentAdminService{withTx: withTx, comments: comments}
}

// DeleteComment removes any comment regardless of its author. Lookup and
// delete share one transaction.
func (s *CommentAdminService) DeleteComment(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(ctx context.Context, tx database.DBTX) error {
		repo := s.comments(tx)

		found, err := repo.FindByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to find comment: %w", err)
		}
		comment, err := found.OrElse(common.NotFoundError("no such comment"))
		if err != nil {
			return err
		}

		return repo.Delete(ctx, comment)
	})
}
