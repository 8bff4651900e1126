package store

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user, err := identity.CreateUser(context.Background(), NewUser{
		Username: "testuser",
		Email:    "testuser@gmail.com",
		Password: "testpass1234",
	})
	require.NoError(t, err)

	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "testuser@gmail.com", user.Email)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsStaff)
	assert.False(t, user.IsSuperuser)

	// Credential is stored hashed, never verbatim
	assert.NotEqual(t, "testpass1234", user.Password)
	assert.True(t, utils.CheckPasswordHash("testpass1234", user.Password))
}

func TestCreateSuperuser(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user, err := identity.CreateSuperuser(context.Background(), "testsuperuser", "testsuperuser@gmail.com", "testpass1234")
	require.NoError(t, err)

	assert.Equal(t, "testsuperuser", user.Username)
	assert.Equal(t, "testsuperuser@gmail.com", user.Email)
	assert.True(t, user.IsActive)
	assert.True(t, user.IsStaff)
	assert.True(t, user.IsSuperuser)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	mustCreateUser(t, identity, "dupe")

	_, err := identity.CreateUser(context.Background(), NewUser{
		Username: "dupe",
		Email:    "other@example.com",
		Password: "testpass1234",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	mustCreateUser(t, identity, "first")

	_, err := identity.CreateUser(context.Background(), NewUser{
		Username: "second",
		Email:    "first@example.com",
		Password: "testpass1234",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateUserRejectsBadInput(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	cases := []struct {
		name string
		in   NewUser
	}{
		{"missing username", NewUser{Email: "a@b.com", Password: "testpass1234"}},
		{"malformed email", NewUser{Username: "u", Email: "not-an-email", Password: "testpass1234"}},
		{"weak password", NewUser{Username: "u", Email: "a@b.com", Password: "short"}},
		{"bad social link", NewUser{Username: "u", Email: "a@b.com", Password: "testpass1234", GithubLink: "not a url"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := identity.CreateUser(context.Background(), tc.in)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	var count int64
	gdb.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateProfilePartial(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user, err := identity.CreateUser(context.Background(), NewUser{
		Username:  "ann",
		Email:     "ann@example.com",
		Password:  "testpass1234",
		FirstName: "Ann",
		LastName:  "Lee",
		Bio:       "original bio",
	})
	require.NoError(t, err)

	bio := "updated bio"
	age := uint(30)
	updated, err := identity.UpdateProfile(context.Background(), user.ID, ProfilePatch{
		Bio: &bio,
		Age: &age,
	})
	require.NoError(t, err)

	// Supplied fields changed
	assert.Equal(t, "updated bio", updated.Bio)
	require.NotNil(t, updated.Age)
	assert.Equal(t, uint(30), *updated.Age)

	// Omitted fields untouched
	assert.Equal(t, "Ann", updated.FirstName)
	assert.Equal(t, "Lee", updated.LastName)
	assert.Equal(t, "ann@example.com", updated.Email)
	assert.Equal(t, "ann", updated.Username)
}

func TestUpdateProfileEmptyPatchIsNoop(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user := mustCreateUser(t, identity, "noop")

	updated, err := identity.UpdateProfile(context.Background(), user.ID, ProfilePatch{})
	require.NoError(t, err)
	assert.Equal(t, user.Email, updated.Email)
	assert.Equal(t, user.Bio, updated.Bio)
}

func TestUpdateProfileEmailTaken(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	mustCreateUser(t, identity, "holder")
	user := mustCreateUser(t, identity, "claimant")

	taken := "holder@example.com"
	_, err := identity.UpdateProfile(context.Background(), user.ID, ProfilePatch{Email: &taken})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfileNotFound(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	bio := "whatever"
	_, err := identity.UpdateProfile(context.Background(), 999, ProfilePatch{Bio: &bio})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProfile(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user := mustCreateUser(t, identity, "someone")

	got, err := identity.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = identity.GetProfile(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAuthenticate(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user := mustCreateUser(t, identity, "loginuser")

	got, err := identity.Authenticate(context.Background(), "loginuser", "testpass1234")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = identity.Authenticate(context.Background(), "loginuser", "wrongpass123")
	assert.ErrorIs(t, err, ErrAuthorization)

	_, err = identity.Authenticate(context.Background(), "nobody", "testpass1234")
	assert.ErrorIs(t, err, ErrAuthorization)

	// Deactivated accounts cannot log in
	require.NoError(t, gdb.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)
	_, err = identity.Authenticate(context.Background(), "loginuser", "testpass1234")
	assert.ErrorIs(t, err, ErrAuthorization)
}

func TestChangePassword(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)

	user := mustCreateUser(t, identity, "pwuser")

	err := identity.ChangePassword(context.Background(), user.ID, "wrongpass123", "newpass12345")
	assert.ErrorIs(t, err, ErrAuthorization)

	err = identity.ChangePassword(context.Background(), user.ID, "testpass1234", "short")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, identity.ChangePassword(context.Background(), user.ID, "testpass1234", "newpass12345"))

	_, err = identity.Authenticate(context.Background(), "pwuser", "newpass12345")
	assert.NoError(t, err)
}

func TestDeleteUserRestrictPolicy(t *testing.T) {
	gdb := newTestDB(t)
	identity := NewIdentityStore(gdb)
	content := NewContentStore(gdb)

	super, err := identity.CreateSuperuser(context.Background(), "root", "root@example.com", "testpass1234")
	require.NoError(t, err)
	author := mustCreateUser(t, identity, "author")
	idle := mustCreateUser(t, identity, "idle")

	_, err = content.CreateArticle(context.Background(), NewArticle{
		Title:    "Owned",
		Body:     "body",
		AuthorID: author.ID,
	})
	require.NoError(t, err)

	// Non-superuser cannot delete at all
	err = identity.DeleteUser(context.Background(), author.ID, idle.ID)
	assert.ErrorIs(t, err, ErrAuthorization)

	// Authored content blocks deletion
	err = identity.DeleteUser(context.Background(), super.ID, author.ID)
	assert.ErrorIs(t, err, ErrValidation)

	// A user with no content can go
	require.NoError(t, identity.DeleteUser(context.Background(), super.ID, idle.ID))
	_, err = identity.GetProfile(context.Background(), idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = identity.DeleteUser(context.Background(), super.ID, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
