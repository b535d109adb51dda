package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/advocate-directory-api/internal/middleware"
	"github.com/noah-isme/advocate-directory-api/internal/models"
	appErrors "github.com/noah-isme/advocate-directory-api/pkg/errors"
	"github.com/noah-isme/advocate-directory-api/pkg/export"
	"github.com/noah-isme/advocate-directory-api/pkg/response"
)

type advocateService interface {
	Search(ctx context.Context, query models.AdvocateQuery) (*models.AdvocateSearchResult, bool, error)
	Export(ctx context.Context, query models.AdvocateQuery, format string) ([]byte, export.Format, error)
}

// AdvocateHandler exposes the advocate directory over HTTP.
type AdvocateHandler struct {
	service advocateService
}

// NewAdvocateHandler constructs the handler.
func NewAdvocateHandler(service advocateService) *AdvocateHandler {
	return &AdvocateHandler{service: service}
}

// List godoc
// @Summary Search advocates
// @Description Filters, sorts and paginates the advocate directory. Malformed parameters fall back to defaults.
// @Tags Advocates
// @Produce json
// @Param search query string false "Free text matched against name, city, degree, specialties and years"
// @Param query query string false "Alias of search, used when search is empty"
// @Param city query string false "Case-insensitive substring of the city"
// @Param degree query string false "Exact degree (MD, PhD, MSW)"
// @Param specialty query string false "Case-insensitive substring of any specialty"
// @Param minExperience query int false "Minimum years of experience"
// @Param maxExperience query int false "Maximum years of experience"
// @Param sort query string false "Sort field" Enums(id, firstName, lastName, city, degree, yearsOfExperience, phoneNumber, createdAt)
// @Param direction query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Success 200 {object} models.AdvocateSearchResult
// @Header 200 {string} X-Cache "HIT or MISS"
// @Failure 500 {object} response.ErrorBody
// @Router /advocates [get]
func (h *AdvocateHandler) List(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrSourceUnavailable)
		return
	}
	query := ParseAdvocateQuery(c)
	result, cacheHit, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, result)
}

// Export godoc
// @Summary Export advocates
// @Description Downloads every advocate matching the filters, ignoring pagination.
// @Tags Advocates
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "File format" Enums(csv, pdf)
// @Param search query string false "Free text filter"
// @Param city query string false "City filter"
// @Param degree query string false "Degree filter"
// @Param specialty query string false "Specialty filter"
// @Param minExperience query int false "Minimum years of experience"
// @Param maxExperience query int false "Maximum years of experience"
// @Param sort query string false "Sort field"
// @Param direction query string false "Sort direction" Enums(asc, desc)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /advocates/export [get]
func (h *AdvocateHandler) Export(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrSourceUnavailable)
		return
	}
	query := ParseAdvocateQuery(c)
	body, format, err := h.service.Export(c.Request.Context(), query, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, format.Filename("advocates"), format.ContentType(), body)
}
