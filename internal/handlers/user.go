package handlers

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/store"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	identity *store.IdentityStore
	content  *store.ContentStore
}

func NewUserHandler(identity *store.IdentityStore, content *store.ContentStore) *UserHandler {
	return &UserHandler{identity: identity, content: content}
}

// Profile returns a user's public profile together with their articles,
// newest first.
func (h *UserHandler) Profile(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	user, err := h.identity.GetProfile(c.Request.Context(), userID)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	articles, err := h.content.ListArticlesByAuthor(c.Request.Context(), userID)
	if err != nil {
		abortStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"articles": articles,
	})
}

type profilePatchRequest struct {
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
	Email        *string `json:"email"`
	Bio          *string `json:"bio"`
	Age          *uint   `json:"age"`
	ProfileImage *string `json:"profile_image"`
	XLink        *string `json:"x_link"`
	LinkedinLink *string `json:"linkedin_link"`
	GithubLink   *string `json:"github_link"`
	WebsiteLink  *string `json:"website_link"`
}

// UpdateProfile edits the acting principal's own profile. Absent fields are
// left unchanged.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	var req profilePatchRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.identity.UpdateProfile(c.Request.Context(), principalID, store.ProfilePatch{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Bio:          req.Bio,
		Age:          req.Age,
		ProfileImage: req.ProfileImage,
		XLink:        req.XLink,
		LinkedinLink: req.LinkedinLink,
		GithubLink:   req.GithubLink,
		WebsiteLink:  req.WebsiteLink,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)

	var req changePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.identity.ChangePassword(c.Request.Context(), principalID, req.OldPassword, req.NewPassword); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete removes an account (superuser only, restrict policy).
func (h *UserHandler) Delete(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	userID := utils.StringToUint(c.Param("id"))

	if err := h.identity.DeleteUser(c.Request.Context(), principalID, userID); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
