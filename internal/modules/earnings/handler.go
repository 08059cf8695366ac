package earnings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dancehub/internal/pkg/response"
)

type Handler struct {
	service *Service
	cache   *SummaryCache
}

func NewHandler(service *Service, cache *SummaryCache) *Handler {
	return &Handler{service: service, cache: cache}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/earnings/:kind/:id", h.Report)
	rg.GET("/earnings/:kind/:id/summary", h.Summary)
}

func (h *Handler) Report(c *gin.Context) {
	subjectID, kind, ok := h.subject(c)
	if !ok {
		return
	}

	report, err := h.service.ComputeEarnings(c.Request.Context(), subjectID, kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			response.Error(c, http.StatusBadRequest, "INVALID_KIND", "Subject kind must be school or instructor")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Earnings computation failed")
		return
	}

	response.Success(c, http.StatusOK, report)
}

func (h *Handler) Summary(c *gin.Context) {
	subjectID, kind, ok := h.subject(c)
	if !ok {
		return
	}

	summary, err := h.cache.Summary(c.Request.Context(), subjectID, kind)
	if err != nil {
		if errors.Is(err, ErrUnknownKind) {
			response.Error(c, http.StatusBadRequest, "INVALID_KIND", "Subject kind must be school or instructor")
			return
		}
		response.Error(c, http.StatusInternalServerError, "STORE_ERROR", "Earnings computation failed")
		return
	}

	response.Success(c, http.StatusOK, summary)
}

func (h *Handler) subject(c *gin.Context) (int64, Kind, bool) {
	subjectID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid subject ID")
		return 0, "", false
	}

	kind := Kind(c.Param("kind"))
	if kind != KindSchool && kind != KindInstructor {
		response.Error(c, http.StatusBadRequest, "INVALID_KIND", "Subject kind must be school or instructor")
		return 0, "", false
	}

	return subjectID, kind, true
}
