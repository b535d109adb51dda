package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/advocate-directory-api/internal/models"
	appErrors "github.com/noah-isme/advocate-directory-api/pkg/errors"
	"github.com/noah-isme/advocate-directory-api/pkg/export"
)

type stubAdvocateSource struct {
	records []models.Advocate
	err     error
	pingErr error
	calls   int
}

func (s *stubAdvocateSource) ListAll(context.Context) ([]models.Advocate, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.records, nil
}

func (s *stubAdvocateSource) Ping(context.Context) error {
	return s.pingErr
}

func TestAdvocateServiceSearch(t *testing.T) {
	source := &stubAdvocateSource{records: sampleAdvocates()}
	svc := NewAdvocateService(source, nil, NewMetricsService(), zap.NewNop())

	result, cached, err := svc.Search(context.Background(), models.AdvocateQuery{City: "phoenix", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, []string{"Smith", "Brown"}, lastNames(result.Data))
	require.NotNil(t, result.Filters.City)
	assert.Equal(t, "phoenix", *result.Filters.City)
}

func TestAdvocateServiceSearchUsesCache(t *testing.T) {
	source := &stubAdvocateSource{records: sampleAdvocates()}
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, 0, zap.NewNop(), true)
	svc := NewAdvocateService(source, cache, nil, zap.NewNop())
	query := models.AdvocateQuery{Search: "o", Page: 1, Limit: 2}

	first, cached, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := svc.Search(context.Background(), query)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, 1, source.calls)
	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, lastNames(first.Data), lastNames(second.Data))

	_, cached, err = svc.Search(context.Background(), models.AdvocateQuery{Search: "o", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, 2, source.calls)
}

func TestAdvocateServiceSearchSourceFailure(t *testing.T) {
	source := &stubAdvocateSource{err: errors.New("connection reset")}
	svc := NewAdvocateService(source, nil, nil, nil)

	result, _, err := svc.Search(context.Background(), models.AdvocateQuery{})
	require.Error(t, err)
	assert.Nil(t, result)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSourceUnavailable.Code, appErr.Code)
	assert.Equal(t, 500, appErr.Status)
	assert.Equal(t, "Failed to fetch advocates", appErr.Message)
}

func TestAdvocateSearchCacheKeyDistinguishesRawExperience(t *testing.T) {
	a := advocateSearchCacheKey(models.AdvocateQuery{MinExperience: intPtr(5), MinExperienceRaw: "5", Page: 1, Limit: 20})
	b := advocateSearchCacheKey(models.AdvocateQuery{MinExperience: intPtr(5), MinExperienceRaw: "5yrs", Page: 1, Limit: 20})
	c := advocateSearchCacheKey(models.AdvocateQuery{MinExperience: intPtr(5), MinExperienceRaw: "5", Page: 1, Limit: 20})

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
	assert.Contains(t, a, "advocates:search:")
}

func TestAdvocateServiceExportCSV(t *testing.T) {
	source := &stubAdvocateSource{records: sampleAdvocates()}
	svc := NewAdvocateService(source, nil, nil, zap.NewNop())

	body, format, err := svc.Export(context.Background(), models.AdvocateQuery{
		Degree:    "MD",
		SortBy:    models.SortFieldYearsOfExperience,
		Direction: models.SortDescending,
		Page:      1,
		Limit:     1,
	}, "")
	require.NoError(t, err)
	assert.Equal(t, export.FormatCSV, format)

	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, advocateExportHeaders, rows[0])
	assert.Equal(t, []string{"Michael", "Brown", "Phoenixville", "MD", "Pediatrics", "12", "(555) 654-3210"}, rows[1])
	assert.Equal(t, "Bipolar; LGBTQ", rows[2][4])
}

func TestAdvocateServiceExportPDF(t *testing.T) {
	svc := NewAdvocateService(&stubAdvocateSource{records: sampleAdvocates()}, nil, nil, zap.NewNop())

	body, format, err := svc.Export(context.Background(), models.AdvocateQuery{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, export.FormatPDF, format)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAdvocateServiceExportRejectsUnknownFormat(t *testing.T) {
	source := &stubAdvocateSource{records: sampleAdvocates()}
	svc := NewAdvocateService(source, nil, nil, zap.NewNop())

	_, _, err := svc.Export(context.Background(), models.AdvocateQuery{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Contains(t, appErrors.FromError(err).Message, `"xlsx"`)
	assert.Zero(t, source.calls)
}

func TestAdvocateServicePing(t *testing.T) {
	source := &stubAdvocateSource{pingErr: errors.New("down")}
	svc := NewAdvocateService(source, nil, nil, nil)
	assert.Error(t, svc.Ping(context.Background()))

	source.pingErr = nil
	assert.NoError(t, svc.Ping(context.Background()))
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "(555) 123-4567", formatPhoneNumber(5551234567))
	assert.Equal(t, "12345", formatPhoneNumber(12345))
}
