package membership

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

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
	rg.POST("/members/link", h.Link)
	rg.POST("/members/:id/detach", h.Detach)
	rg.PUT("/members/:id/courses", h.AssignCourses)
	rg.GET("/members/:id/memberships", h.Memberships)
}

func (h *Handler) Link(c *gin.Context) {
	var req LinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	err := h.service.LinkExistingUser(c.Request.Context(), req.Email, req.Tenant, req.CourseIDs)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyMember):
			response.Error(c, http.StatusConflict, "ALREADY_MEMBER", "User already belongs to this tenant")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User or course not found")
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid tenant reference")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Link failed")
		}
		return
	}

	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) Detach(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req DetachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	if err := h.service.DetachFromTenant(c.Request.Context(), userID, req.SchoolID); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Detach failed")
		return
	}

	response.Success(c, http.StatusOK, nil)
}

func (h *Handler) Memberships(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	memberships, err := h.service.Memberships(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Membership lookup failed")
		return
	}

	response.Success(c, http.StatusOK, memberships)
}

func (h *Handler) AssignCourses(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req AssignCoursesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if err := h.service.AssignCourses(c.Request.Context(), userID, req.CourseIDs); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User or course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Course assignment failed")
		return
	}

	response.Success(c, http.StatusOK, nil)
}
