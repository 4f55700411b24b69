package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agrirevive-backend/internal/shared/server/middleware"
	"agrirevive-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.GET("/profile", h.getProfile)
	rg.PUT("/profile", h.putProfile)
}

func identity(c *gin.Context) Identity {
	return Identity{
		UserID: middleware.UserIDFromContext(c),
		Email:  middleware.UserEmailFromContext(c),
		Name:   middleware.UserNameFromContext(c),
	}
}

// me reports who the caller is; guests get their guest id.
func (h *Handler) me(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Private(c, http.StatusOK, gin.H{
			"userId":  middleware.UserIDFromContext(c),
			"isGuest": true,
		})
		return
	}
	profile, err := h.Svc.Get(c.Request.Context(), identity(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.Private(c, http.StatusOK, gin.H{
		"userId":  profile.UserID,
		"email":   profile.Email,
		"name":    profile.Name,
		"isGuest": false,
	})
}

func (h *Handler) getProfile(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to view profile", nil)
		return
	}
	profile, err := h.Svc.Get(c.Request.Context(), identity(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}
	respond.Private(c, http.StatusOK, profile)
}

func (h *Handler) putProfile(c *gin.Context) {
	if middleware.IsGuest(c) {
		respond.Error(c, http.StatusUnauthorized, "login_required", "Login required to edit profile", nil)
		return
	}
	var in Update
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Validation(c, "invalid request body", []respond.FieldIssue{{Field: "body", Issue: err.Error()}})
		return
	}
	profile, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), in)
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		issues := make([]respond.FieldIssue, 0, len(vErr.Fields))
		for _, f := range vErr.Fields {
			issues = append(issues, respond.FieldIssue{Field: f.Field, Issue: f.Message})
		}
		respond.Validation(c, "Please fix the highlighted fields", issues)
	case err != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
	default:
		respond.Private(c, http.StatusOK, profile)
	}
}
