package service

import (
	"context"

	"gghubblog/internal/models"
	"gghubblog/internal/repository"
)

type CommentService interface {
	GetComments(ctx context.Context, postID int) ([]models.Comment, error)
	AddComment(ctx context.Context, postID, userID int, content string, parentID *int) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID, userID int) error
}

type commentService struct {
	commentRepo repository.CommentRepository
}

func NewCommentService(commentRepo repository.CommentRepository) CommentService {
	return &commentService{commentRepo: commentRepo}
}

func (s *commentService) GetComments(ctx context.Context, postID int) ([]models.Comment, error) {
	return s.commentRepo.GetByPostID(ctx, postID)
}

func (s *commentService) AddComment(ctx context.Context, postID, userID int, content string, parentID *int) (*models.Comment, error) {
	return s.commentRepo.Create(ctx, postID, userID, content, parentID)
}

func (s *commentService) DeleteComment(ctx context.Context, commentID, userID int) error {
	return s.commentRepo.Delete(ctx, commentID, userID)
}
