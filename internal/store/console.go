package store

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// EntityDescriptor tells the operator UI how an entity should be listed:
// which columns to show, which fields are searchable, which are filterable,
// and which named bulk actions apply.
type EntityDescriptor struct {
	Name         string   `json:"name"`
	ListDisplay  []string `json:"list_display"`
	SearchFields []string `json:"search_fields"`
	ListFilters  []string `json:"list_filters"`
	BulkActions  []string `json:"bulk_actions"`
}

// BulkAction applies a named operation to a set of records and reports how
// many were updated.
type BulkAction func(ctx context.Context, ids []uint) (int64, error)

// Console is the administrative capability for trusted operators: CRUD-style
// listing plus named bulk actions over registered entities. Every call is
// gated on the acting principal being staff.
type Console struct {
	db       *gorm.DB
	intake   *SubmissionIntake
	entities []EntityDescriptor
	actions  map[string]map[string]BulkAction // entity -> action name -> fn
}

func NewConsole(gdb *gorm.DB, intake *SubmissionIntake) *Console {
	c := &Console{
		db:     gdb,
		intake: intake,
		entities: []EntityDescriptor{
			{
				Name:         "submissions",
				ListDisplay:  []string{"name", "email", "subject", "created_at", "is_read"},
				SearchFields: []string{"name", "email", "subject", "message"},
				ListFilters:  []string{"is_read", "created_at"},
				BulkActions:  []string{"mark_read", "mark_unread"},
			},
			{
				Name:        "users",
				ListDisplay: []string{"username", "is_staff"},
			},
		},
		actions: map[string]map[string]BulkAction{
			"submissions": {
				"mark_read":   intake.MarkRead,
				"mark_unread": intake.MarkUnread,
			},
		},
	}
	return c
}

// Entities lists the registered entity descriptors.
func (c *Console) Entities(ctx context.Context, principalID uint) ([]EntityDescriptor, error) {
	if err := c.requireStaff(ctx, principalID); err != nil {
		return nil, err
	}
	return c.entities, nil
}

// RunBulkAction dispatches a named bulk action over the given record ids.
func (c *Console) RunBulkAction(ctx context.Context, principalID uint, entity, action string, ids []uint) (int64, error) {
	if err := c.requireStaff(ctx, principalID); err != nil {
		return 0, err
	}
	byName, ok := c.actions[entity]
	if !ok {
		return 0, notFoundf("entity %q", entity)
	}
	fn, ok := byName[action]
	if !ok {
		return 0, notFoundf("bulk action %q on %q", action, entity)
	}
	return fn(ctx, ids)
}

// ListSubmissions is the operator view over the intake, with the standard
// filter set.
func (c *Console) ListSubmissions(ctx context.Context, principalID uint, f SubmissionFilter) ([]models.ContactSubmission, error) {
	if err := c.requireStaff(ctx, principalID); err != nil {
		return nil, err
	}
	return c.intake.ListSubmissions(ctx, f)
}

// SearchSubmissions matches the query against every search field of the
// submissions descriptor.
func (c *Console) SearchSubmissions(ctx context.Context, principalID uint, query string, f SubmissionFilter) ([]models.ContactSubmission, error) {
	if err := c.requireStaff(ctx, principalID); err != nil {
		return nil, err
	}
	if query == "" {
		return c.intake.ListSubmissions(ctx, f)
	}

	pattern := "%" + query + "%"
	q := c.db.WithContext(ctx).Model(&models.ContactSubmission{}).
		Where("lower(name) LIKE lower(?) OR lower(email) LIKE lower(?) OR lower(subject) LIKE lower(?) OR lower(message) LIKE lower(?)",
			pattern, pattern, pattern, pattern)
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

// ListUsers is the operator view over accounts, mirroring the users
// descriptor columns.
func (c *Console) ListUsers(ctx context.Context, principalID uint) ([]models.User, error) {
	if err := c.requireStaff(ctx, principalID); err != nil {
		return nil, err
	}
	var users []models.User
	if err := c.db.WithContext(ctx).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Console) requireStaff(ctx context.Context, principalID uint) error {
	var principal models.User
	if err := c.db.WithContext(ctx).First(&principal, principalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return authorizationf("unknown principal %d", principalID)
		}
		return err
	}
	if !principal.IsStaff {
		return authorizationf("operator access requires staff")
	}
	return nil
}
