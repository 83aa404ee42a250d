package redisstore

import (
	"github.com/pverlaine/convene/internal/models"
	"github.com/pverlaine/convene/internal/store"
)

func commentKey(commentID string) string {
	return key("comment", commentID)
}

func commentsIndexKey(proposalID string) string {
	return key("comments", proposalID)
}

func (s *Store) CreateComment(comment *models.Comment) error {
	ctx, cancel := operationContext()
	defer cancel()

	if err := s.setJSON(ctx, commentKey(comment.ID), comment); err != nil {
		return err
	}
	return s.client.RPush(ctx, commentsIndexKey(comment.ProposalID), comment.ID).Err()
}

func (s *Store) ListProposalComments(proposalID string) ([]models.Comment, error) {
	ctx, cancel := operationContext()
	defer cancel()

	commentIDs, err := s.listCommentIDs(ctx, proposalID)
	if err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(commentIDs))
	for _, commentID := range commentIDs {
		var comment models.Comment
		found, err := s.getJSON(ctx, commentKey(commentID), &comment)
		if err != nil {
			return nil, err
		}
		if found {
			comments = append(comments, comment)
		}
	}
	sortComments(comments)
	return comments, nil
}

func (s *Store) FindCommentByID(commentID string) (models.Comment, error) {
	ctx, cancel := operationContext()
	defer cancel()

	var comment models.Comment
	found, err := s.getJSON(ctx, commentKey(commentID), &comment)
	if err != nil {
		return models.Comment{}, err
	}
	if !found {
		return models.Comment{}, store.ErrNotFound
	}
	return comment, nil
}

func (s *Store) DeleteComment(commentID string) error {
	comment, err := s.FindCommentByID(commentID)
	if err != nil {
		return err
	}

	ctx, cancel := operationContext()
	defer cancel()
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, commentKey(commentID))
	pipe.LRem(ctx, commentsIndexKey(comment.ProposalID), 0, commentID)
	_, err = pipe.Exec(ctx)
	return err
}
