package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/advocate-directory-api/internal/models"
)

// ParseAdvocateQuery resolves the advocate search parameters of a request.
// Malformed values never fail the request; they fall back to defaults or are dropped.
func ParseAdvocateQuery(c *gin.Context) models.AdvocateQuery {
	search := c.Query("search")
	if search == "" {
		search = c.Query("query")
	}

	minRaw := c.Query("minExperience")
	maxRaw := c.Query("maxExperience")
	sortBy, _ := models.ParseSortField(c.Query("sort"))

	query := models.AdvocateQuery{
		Search:           search,
		City:             c.Query("city"),
		Degree:           c.Query("degree"),
		Specialty:        c.Query("specialty"),
		MinExperience:    optionalInt(minRaw),
		MaxExperience:    optionalInt(maxRaw),
		SortBy:           sortBy,
		Direction:        models.ParseSortDirection(c.Query("direction")),
		Page:             models.DefaultPage,
		Limit:            models.DefaultPageSize,
		MinExperienceRaw: minRaw,
		MaxExperienceRaw: maxRaw,
	}

	if page, ok := parseLeadingInt(c.Query("page")); ok && page >= 1 {
		query.Page = page
	}
	if limit, ok := parseLeadingInt(c.Query("limit")); ok && limit >= 1 {
		query.Limit = limit
	}

	return query
}

func optionalInt(raw string) *int {
	v, ok := parseLeadingInt(raw)
	if !ok {
		return nil
	}
	return &v
}

// parseLeadingInt reads an optionally signed run of digits after leading whitespace and ignores the rest.
// "12abc" yields 12; "abc" and "" yield false.
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\f\v")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.ParseInt(s[:end], 10, 0)
	if err != nil {
		// Only range errors are possible here.
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return int(v), true
}
