package store

import (
	"context"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// SubmissionIntake owns contact-form submissions. Records are append-only:
// content fields never change after Submit, only the read flag does.
type SubmissionIntake struct {
	db *gorm.DB
}

func NewSubmissionIntake(gdb *gorm.DB) *SubmissionIntake {
	return &SubmissionIntake{db: gdb}
}

type NewSubmission struct {
	Name    string `validate:"required,max=200"`
	Email   string `validate:"required,email"`
	Subject string `validate:"required,max=200"`
	Message string `validate:"required"`
}

// SubmissionFilter narrows ListSubmissions. Nil fields mean "no constraint".
type SubmissionFilter struct {
	IsRead       *bool
	CreatedAfter *time.Time
}

// Submit records an anonymous visitor's message, always unread.
func (s *SubmissionIntake) Submit(ctx context.Context, in NewSubmission) (*models.ContactSubmission, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	submission := models.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
		IsRead:  false,
	}
	if err := s.db.WithContext(ctx).Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// MarkRead flags the given submissions as read and reports how many rows
// actually changed.
func (s *SubmissionIntake) MarkRead(ctx context.Context, ids []uint) (int64, error) {
	return s.setRead(ctx, ids, true)
}

// MarkUnread is the inverse bulk action.
func (s *SubmissionIntake) MarkUnread(ctx context.Context, ids []uint) (int64, error) {
	return s.setRead(ctx, ids, false)
}

func (s *SubmissionIntake) setRead(ctx context.Context, ids []uint, read bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Model(&models.ContactSubmission{}).
		Where("id IN ?", ids).
		Update("is_read", read)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// ListSubmissions returns submissions newest-first, optionally filtered by
// read state and creation time.
func (s *SubmissionIntake) ListSubmissions(ctx context.Context, f SubmissionFilter) ([]models.ContactSubmission, error) {
	q := s.db.WithContext(ctx).Model(&models.ContactSubmission{})
	if f.IsRead != nil {
		q = q.Where("is_read = ?", *f.IsRead)
	}
	if f.CreatedAfter != nil {
		q = q.Where("created_at > ?", *f.CreatedAfter)
	}

	var submissions []models.ContactSubmission
	if err := q.Order("created_at DESC, id DESC").Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
