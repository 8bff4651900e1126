package handlers

import (
	"net/http"

	"inkwell/internal/middleware"
	"inkwell/internal/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	identity *store.IdentityStore
}

func NewAuthHandler(identity *store.IdentityStore) *AuthHandler {
	return &AuthHandler{identity: identity}
}

type signupRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Age          *uint  `json:"age"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profile_image"`
	XLink        string `json:"x_link"`
	LinkedinLink string `json:"linkedin_link"`
	GithubLink   string `json:"github_link"`
	WebsiteLink  string `json:"website_link"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.identity.CreateUser(c.Request.Context(), store.NewUser{
		Username:     req.Username,
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Age:          req.Age,
		Bio:          req.Bio,
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
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns the account. Issuing a session or
// token from the result is left to the deployment's auth front end.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.identity.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type createSuperuserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateSuperuser is the administrative account-creation path. The route is
// mounted under the operator group, so a staff principal is already required;
// superuser creation additionally demands a superuser principal.
func (h *AuthHandler) CreateSuperuser(c *gin.Context) {
	principalID, _ := middleware.PrincipalID(c)
	principal, err := h.identity.GetProfile(c.Request.Context(), principalID)
	if err != nil || !principal.IsSuperuser {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "superuser required"})
		return
	}

	var req createSuperuserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.identity.CreateSuperuser(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
