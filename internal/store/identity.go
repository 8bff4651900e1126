package store

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/utils"

	"gorm.io/gorm"
)

// IdentityStore owns user accounts and profile data. Credentials are hashed
// with bcrypt; the strength policy lives in the NewUser validation tags.
type IdentityStore struct {
	db *gorm.DB
}

func NewIdentityStore(gdb *gorm.DB) *IdentityStore {
	return &IdentityStore{db: gdb}
}

// NewUser carries the sign-up form fields. Profile fields are optional.
type NewUser struct {
	Username     string `validate:"required,max=150"`
	Email        string `validate:"required,email"`
	Password     string `validate:"required,min=8"`
	FirstName    string `validate:"max=150"`
	LastName     string `validate:"max=150"`
	Age          *uint
	Bio          string
	ProfileImage string
	XLink        string `validate:"omitempty,url"`
	LinkedinLink string `validate:"omitempty,url"`
	GithubLink   string `validate:"omitempty,url"`
	WebsiteLink  string `validate:"omitempty,url"`
}

// ProfilePatch is a partial update: nil fields are left untouched.
// Staff and superuser flags are deliberately absent, the self-service path
// cannot escalate privileges.
type ProfilePatch struct {
	FirstName    *string `validate:"omitempty,max=150"`
	LastName     *string `validate:"omitempty,max=150"`
	Email        *string `validate:"omitempty,email"`
	Bio          *string
	Age          *uint
	ProfileImage *string
	XLink        *string `validate:"omitempty,url"`
	LinkedinLink *string `validate:"omitempty,url"`
	GithubLink   *string `validate:"omitempty,url"`
	WebsiteLink  *string `validate:"omitempty,url"`
}

func (s *IdentityStore) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	return s.create(ctx, in, false)
}

// CreateSuperuser is the administrative creation path: the account comes out
// active with staff and superuser set.
func (s *IdentityStore) CreateSuperuser(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.create(ctx, NewUser{Username: username, Email: email, Password: password}, true)
}

func (s *IdentityStore) create(ctx context.Context, in NewUser, super bool) (*models.User, error) {
	if err := checkStruct(in); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     in.Username,
		Email:        in.Email,
		Password:     hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		IsStaff:      super,
		IsSuperuser:  super,
		Age:          in.Age,
		Bio:          in.Bio,
		ProfileImage: in.ProfileImage,
		XLink:        in.XLink,
		LinkedinLink: in.LinkedinLink,
		GithubLink:   in.GithubLink,
		WebsiteLink:  in.WebsiteLink,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&models.User{}).Where("username = ?", in.Username).Count(&count)
		if count > 0 {
			return validationf("username %q already taken", in.Username)
		}
		tx.Model(&models.User{}).Where("email = ?", in.Email).Count(&count)
		if count > 0 {
			return validationf("email %q already registered", in.Email)
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *IdentityStore) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("user %d", userID)
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial update to the principal's own profile.
// Only supplied fields are changed.
func (s *IdentityStore) UpdateProfile(ctx context.Context, userID uint, patch ProfilePatch) (*models.User, error) {
	if err := checkStruct(patch); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("user %d", userID)
			}
			return err
		}

		updates := make(map[string]interface{})
		if patch.FirstName != nil {
			updates["first_name"] = *patch.FirstName
		}
		if patch.LastName != nil {
			updates["last_name"] = *patch.LastName
		}
		if patch.Email != nil && *patch.Email != user.Email {
			// Email must stay unique across users
			var count int64
			tx.Model(&models.User{}).Where("email = ? AND id != ?", *patch.Email, user.ID).Count(&count)
			if count > 0 {
				return validationf("email %q already registered", *patch.Email)
			}
			updates["email"] = *patch.Email
		}
		if patch.Bio != nil {
			updates["bio"] = *patch.Bio
		}
		if patch.Age != nil {
			updates["age"] = *patch.Age
		}
		if patch.ProfileImage != nil {
			updates["profile_image"] = *patch.ProfileImage
		}
		if patch.XLink != nil {
			updates["x_link"] = *patch.XLink
		}
		if patch.LinkedinLink != nil {
			updates["linkedin_link"] = *patch.LinkedinLink
		}
		if patch.GithubLink != nil {
			updates["github_link"] = *patch.GithubLink
		}
		if patch.WebsiteLink != nil {
			updates["website_link"] = *patch.WebsiteLink
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks a username/password pair for the presentation layer's
// login form. Session issuance is the caller's concern.
func (s *IdentityStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, authorizationf("invalid username or password")
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, authorizationf("invalid username or password")
	}
	if !user.IsActive {
		return nil, authorizationf("account is deactivated")
	}
	return &user, nil
}

func (s *IdentityStore) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return validationf("password must be at least 8 characters")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("user %d", userID)
		}
		return err
	}
	if !utils.CheckPasswordHash(oldPassword, user.Password) {
		return authorizationf("old password is incorrect")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&user).Update("password", hash).Error
}

// DeleteUser removes an account. Policy is restrict: a user who still has
// authored articles or comments cannot be deleted, keeping every authorship
// reference valid. Only superusers may delete accounts.
func (s *IdentityStore) DeleteUser(ctx context.Context, principalID, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var principal models.User
		if err := tx.First(&principal, principalID).Error; err != nil {
			return authorizationf("unknown principal %d", principalID)
		}
		if !principal.IsSuperuser {
			return authorizationf("only superusers may delete accounts")
		}

		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("user %d", userID)
			}
			return err
		}

		var articles, comments int64
		tx.Model(&models.Article{}).Where("author_id = ?", userID).Count(&articles)
		tx.Model(&models.Comment{}).Where("author_id = ?", userID).Count(&comments)
		if articles > 0 || comments > 0 {
			return validationf("user %d still owns %d article(s) and %d comment(s)", userID, articles, comments)
		}

		return tx.Delete(&user).Error
	})
}
