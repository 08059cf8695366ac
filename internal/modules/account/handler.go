package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dancehub/internal/domain"
	"dancehub/internal/pkg/response"
	"dancehub/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/account", h.DeleteAccount)
}

// DeleteAccount operates on the authenticated identity only; there is no
// admin path for deleting someone else's account here.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req DeleteAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	err := h.service.DeleteAccount(c.Request.Context(), userID, domain.Role(req.Role), req.Password, req.SchoolID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIAL", "Password verification failed")
		case errors.Is(err, ErrIdentityOrphaned):
			response.Error(c, http.StatusInternalServerError, "IDENTITY_ORPHANED", "Account data removed but credentials remain; contact support")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Unsupported role")
		default:
			response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Account deletion failed")
		}
		return
	}

	response.Success(c, http.StatusOK, nil)
}
