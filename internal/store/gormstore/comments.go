package gormstore

import (
	"errors"

	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
	"gorm.io/gorm"
)

func (s *Store) CreateComment(comment *models.Comment) error {
	return s.database.Create(comment).Error
}

func (s *Store) ListProposalComments(proposalID string) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := s.database.
		Where("proposal_id = ?", proposalID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (s *Store) FindCommentByID(commentID string) (models.Comment, error) {
	var comment models.Comment
	if err := s.database.Where("id = ?", commentID).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, store.ErrNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *Store) DeleteComment(commentID string) error {
	return s.database.Where("id = ?", commentID).Delete(&models.Comment{}).Error
}
