package store

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCreatesUnread(t *testing.T) {
	gdb := newTestDB(t)
	intake := NewSubmissionIntake(gdb)

	submission, err := intake.Submit(context.Background(), NewSubmission{
		Name:    "Ann",
		Email:   "ann@x.com",
		Subject: "Hi",
		Message: "Hello",
	})
	require.NoError(t, err)

	assert.False(t, submission.IsRead)
	assert.Equal(t, "Ann", submission.Name)
	assert.False(t, submission.CreatedAt.IsZero())
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	gdb := newTestDB(t)
	intake := NewSubmissionIntake(gdb)

	cases := []struct {
		name string
		in   NewSubmission
	}{
		{"empty message", NewSubmission{Name: "Ann", Email: "ann@x.com", Subject: "Hi"}},
		{"empty name", NewSubmission{Email: "ann@x.com", Subject: "Hi", Message: "Hello"}},
		{"malformed email", NewSubmission{Name: "Ann", Email: "nope", Subject: "Hi", Message: "Hello"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := intake.Submit(context.Background(), tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// No record is created on failure
	var count int64
	gdb.Model(&models.ContactSubmission{}).Count(&count)
	assert.Zero(t, count)
}

func TestMarkReadRoundTrip(t *testing.T) {
	gdb := newTestDB(t)
	intake := NewSubmissionIntake(gdb)

	submission, err := intake.Submit(context.Background(), NewSubmission{
		Name: "Ann", Email: "ann@x.com", Subject: "Hi", Message: "Hello",
	})
	require.NoError(t, err)

	updated, err := intake.MarkRead(context.Background(), []uint{submission.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	isRead := true
	read, err := intake.ListSubmissions(context.Background(), SubmissionFilter{IsRead: &isRead})
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, submission.ID, read[0].ID)

	// Content fields stay frozen through the flag change
	assert.Equal(t, "Hello", read[0].Message)
	assert.Equal(t, "Hi", read[0].Subject)

	updated, err = intake.MarkUnread(context.Background(), []uint{submission.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	isRead = false
	unread, err := intake.ListSubmissions(context.Background(), SubmissionFilter{IsRead: &isRead})
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestMarkReadUnknownIDs(t *testing.T) {
	gdb := newTestDB(t)
	intake := NewSubmissionIntake(gdb)

	updated, err := intake.MarkRead(context.Background(), []uint{42, 43})
	require.NoError(t, err)
	assert.Zero(t, updated)

	updated, err = intake.MarkRead(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestListSubmissionsFilterAndOrder(t *testing.T) {
	gdb := newTestDB(t)
	intake := NewSubmissionIntake(gdb)

	older, err := intake.Submit(context.Background(), NewSubmission{
		Name: "Old", Email: "old@x.com", Subject: "s", Message: "m",
	})
	require.NoError(t, err)
	cutoff := time.Now()
	require.NoError(t, gdb.Model(older).Update("created_at", cutoff.Add(-time.Hour)).Error)

	newer, err := intake.Submit(context.Background(), NewSubmission{
		Name: "New", Email: "new@x.com", Subject: "s", Message: "m",
	})
	require.NoError(t, err)
	require.NoError(t, gdb.Model(newer).Update("created_at", cutoff.Add(time.Hour)).Error)

	all, err := intake.ListSubmissions(context.Background(), SubmissionFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "New", all[0].Name) // newest first

	recent, err := intake.ListSubmissions(context.Background(), SubmissionFilter{CreatedAfter: &cutoff})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "New", recent[0].Name)
}
