package service

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/advocate-directory-api/internal/models"
	appErrors "github.com/noah-isme/advocate-directory-api/pkg/errors"
	"github.com/noah-isme/advocate-directory-api/pkg/export"
)

const (
	advocateCachePrefix = "advocates"
	// AdvocateCachePattern matches every cached advocate payload.
	AdvocateCachePattern = advocateCachePrefix + ":*"
)

// AdvocateSource provides the record collection searched by AdvocateService.
type AdvocateSource interface {
	ListAll(ctx context.Context) ([]models.Advocate, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// AdvocateService runs directory searches against the configured record source.
type AdvocateService struct {
	source  AdvocateSource
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
}

// NewAdvocateService constructs the advocate service. cache and metrics may be nil.
func NewAdvocateService(source AdvocateSource, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AdvocateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdvocateService{
		source:  source,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(map[string]float64{"Specialties": 3, "Phone Number": 1.3}),
	}
}

// Search returns one page of matching advocates. The boolean reports whether the result came from cache.
func (s *AdvocateService) Search(ctx context.Context, query models.AdvocateQuery) (*models.AdvocateSearchResult, bool, error) {
	key := advocateSearchCacheKey(query)
	var cached models.AdvocateSearchResult
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, false, err
	}

	result := SearchAdvocates(records, query)
	s.metrics.ObserveSearch(len(records), result.Total)
	s.cache.Set(ctx, key, result, 0)
	return &result, false, nil
}

// Export renders every advocate matching query, ignoring pagination, in the requested format.
func (s *AdvocateService) Export(ctx context.Context, query models.AdvocateQuery, rawFormat string) ([]byte, export.Format, error) {
	format, err := export.ParseFormat(rawFormat)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, err.Error())
	}

	records, err := s.loadAll(ctx)
	if err != nil {
		return nil, "", err
	}
	matched := FilterAdvocates(records, query)
	SortAdvocates(matched, query.SortBy, query.Direction)
	dataset := advocateDataset(matched)

	var body []byte
	switch format {
	case export.FormatPDF:
		body, err = s.pdf.Render(dataset, "Advocates")
	default:
		body, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export advocates")
	}
	return body, format, nil
}

// Ping checks that the record source is reachable.
func (s *AdvocateService) Ping(ctx context.Context) error {
	if p, ok := s.source.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *AdvocateService) loadAll(ctx context.Context) ([]models.Advocate, error) {
	start := time.Now()
	records, err := s.source.ListAll(ctx)
	s.metrics.ObserveDBQuery("advocates_list", time.Since(start))
	if err != nil {
		s.logger.Error("failed to fetch advocates", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSourceUnavailable.Code, appErrors.ErrSourceUnavailable.Status, appErrors.ErrSourceUnavailable.Message)
	}
	return records, nil
}

// advocateSearchCacheKey derives a stable key from every parameter that shapes the result, including the echoed raw values.
func advocateSearchCacheKey(q models.AdvocateQuery) string {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set("search", q.Search)
	set("city", q.City)
	set("degree", q.Degree)
	set("specialty", q.Specialty)
	set("minExperience", q.MinExperienceRaw)
	set("maxExperience", q.MaxExperienceRaw)
	set("sort", string(q.SortBy))
	set("direction", string(q.Direction))
	set("page", strconv.Itoa(q.Page))
	set("limit", strconv.Itoa(q.Limit))
	return advocateCachePrefix + ":search:" + values.Encode()
}

var advocateExportHeaders = []string{"First Name", "Last Name", "City", "Degree", "Specialties", "Years of Experience", "Phone Number"}

func advocateDataset(advocates []models.Advocate) export.Dataset {
	rows := make([]map[string]string, 0, len(advocates))
	for _, a := range advocates {
		rows = append(rows, map[string]string{
			"First Name":          a.FirstName,
			"Last Name":           a.LastName,
			"City":                a.City,
			"Degree":              string(a.Degree),
			"Specialties":         strings.Join(a.Specialties, "; "),
			"Years of Experience": strconv.Itoa(a.YearsOfExperience),
			"Phone Number":        formatPhoneNumber(a.PhoneNumber),
		})
	}
	return export.Dataset{Headers: advocateExportHeaders, Rows: rows}
}

// formatPhoneNumber renders a 10 digit number as (xxx) xxx-xxxx; other lengths are returned verbatim.
func formatPhoneNumber(n int64) string {
	digits := strconv.FormatInt(n, 10)
	if len(digits) != 10 {
		return digits
	}
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}
