package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/advocate-directory-api/internal/models"
)

func intPtr(v int) *int { return &v }
func int64Ptr(v int64) *int64 { return &v }

func sampleAdvocates() []models.Advocate {
	return []models.Advocate{
		{ID: int64Ptr(1), FirstName: "John", LastName: "Doe", City: "New York", Degree: models.DegreeMD, Specialties: []string{"Bipolar", "LGBTQ"}, YearsOfExperience: 10, PhoneNumber: 5551234567},
		{ID: int64Ptr(2), FirstName: "Jane", LastName: "Smith", City: "Phoenix", Degree: models.DegreePhD, Specialties: []string{"Trauma & PTSD"}, YearsOfExperience: 8, PhoneNumber: 5559876543},
		{ID: int64Ptr(3), FirstName: "Alice", LastName: "Johnson", City: "Tucson", Degree: models.DegreeMSW, Specialties: []string{"Eating disorders", "Chronic pain"}, YearsOfExperience: 5, PhoneNumber: 5554567890},
		{ID: int64Ptr(4), FirstName: "Michael", LastName: "Brown", City: "Phoenixville", Degree: models.DegreeMD, Specialties: []string{"Pediatrics"}, YearsOfExperience: 12, PhoneNumber: 5556543210},
		{ID: int64Ptr(5), FirstName: "Emily", LastName: "Davis", City: "Chicago", Degree: models.DegreePhD, Specialties: []string{"Substance use"}, YearsOfExperience: 3, PhoneNumber: 5553210987},
	}
}

func lastNames(items []models.Advocate) []string {
	names := make([]string, 0, len(items))
	for _, a := range items {
		names = append(names, a.LastName)
	}
	return names
}

func TestSearchAdvocatesDefaults(t *testing.T) {
	result := SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{})

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, []string{"Doe", "Smith", "Johnson", "Brown", "Davis"}, lastNames(result.Data))
	assert.Equal(t, models.SortAscending, result.Filters.Direction)
	assert.Nil(t, result.Filters.Query)
}

func TestSearchAdvocatesFreeText(t *testing.T) {
	cases := []struct {
		name string
		term string
		want []string
	}{
		{name: "first name", term: "jOhN", want: []string{"Doe", "Johnson"}},
		{name: "city", term: "phoe", want: []string{"Smith", "Brown"}},
		{name: "degree", term: "msw", want: []string{"Johnson"}},
		{name: "specialty", term: "ptsd", want: []string{"Smith"}},
		{name: "years", term: "12", want: []string{"Brown"}},
		{name: "years substring", term: "1", want: []string{"Doe", "Brown"}},
		{name: "no match", term: "zzz", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{Search: tc.term})
			assert.Equal(t, tc.want, lastNames(result.Data))
			assert.Equal(t, len(tc.want), result.Total)
		})
	}
}

func TestSearchAdvocatesCityFilter(t *testing.T) {
	records := []models.Advocate{
		{FirstName: "A", LastName: "Phx", City: "Phoenix", Degree: models.DegreeMD},
		{FirstName: "B", LastName: "Tus", City: "Tucson", Degree: models.DegreeMD},
	}
	result := SearchAdvocates(records, models.AdvocateQuery{City: "Pho"})
	assert.Equal(t, []string{"Phx"}, lastNames(result.Data))
}

func TestSearchAdvocatesDegreeIsExact(t *testing.T) {
	result := SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{Degree: "PhD"})
	assert.Equal(t, []string{"Smith", "Davis"}, lastNames(result.Data))

	result = SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{Degree: "phd"})
	assert.Empty(t, result.Data)
	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.TotalPages)
}

func TestSearchAdvocatesSpecialtyFilter(t *testing.T) {
	result := SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{Specialty: "PAIN"})
	assert.Equal(t, []string{"Johnson"}, lastNames(result.Data))
}

func TestSearchAdvocatesExperienceRange(t *testing.T) {
	result := SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{
		MinExperience:    intPtr(5),
		MaxExperience:    intPtr(10),
		MinExperienceRaw: "5",
		MaxExperienceRaw: "10",
	})
	assert.Equal(t, []string{"Doe", "Smith", "Johnson"}, lastNames(result.Data))
	require.NotNil(t, result.Filters.MinExperience)
	assert.Equal(t, "5", *result.Filters.MinExperience)

	unparsed := SearchAdvocates(sampleAdvocates(), models.AdvocateQuery{MinExperienceRaw: "abc"})
	assert.Equal(t, 5, unparsed.Total)
	require.NotNil(t, unparsed.Filters.MinExperience)
	assert.Equal(t, "abc", *unparsed.Filters.MinExperience)
}

func TestSearchAdvocatesFiltersCompose(t *testing.T) {
	base := models.AdvocateQuery{Search: "o", Degree: "MD", MinExperience: intPtr(11)}
	result := SearchAdvocates(sampleAdvocates(), base)
	assert.Equal(t, []string{"Brown"}, lastNames(result.Data))

	// Each predicate alone is a superset of the conjunction.
	for _, q := range []models.AdvocateQuery{{Search: "o"}, {Degree: "MD"}, {MinExperience: intPtr(11)}} {
		alone := SearchAdvocates(sampleAdvocates(), q)
		assert.Subset(t, lastNames(alone.Data), lastNames(result.Data))
	}
}

func TestSortAdvocatesDescendingIsStable(t *testing.T) {
	records := []models.Advocate{
		{LastName: "a", YearsOfExperience: 3},
		{LastName: "b", YearsOfExperience: 9},
		{LastName: "c", YearsOfExperience: 9},
		{LastName: "d", YearsOfExperience: 1},
	}
	result := SearchAdvocates(records, models.AdvocateQuery{
		SortBy:    models.SortFieldYearsOfExperience,
		Direction: models.SortDescending,
		Page:      1,
		Limit:     2,
	})
	assert.Equal(t, []string{"b", "c"}, lastNames(result.Data))
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.TotalPages)

	asc := SearchAdvocates(records, models.AdvocateQuery{SortBy: models.SortFieldYearsOfExperience})
	assert.Equal(t, []string{"d", "a", "b", "c"}, lastNames(asc.Data))
}

func TestSortAdvocatesStringsIgnoreCase(t *testing.T) {
	records := []models.Advocate{
		{LastName: "bravo"},
		{LastName: "Alpha"},
		{LastName: "charlie"},
	}
	SortAdvocates(records, models.SortFieldLastName, models.SortAscending)
	assert.Equal(t, []string{"Alpha", "bravo", "charlie"}, lastNames(records))
}

func TestSortAdvocatesUndefinedLast(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(24 * time.Hour)
	records := []models.Advocate{
		{LastName: "none-1"},
		{LastName: "late", CreatedAt: &late, ID: int64Ptr(2)},
		{LastName: "none-2"},
		{LastName: "early", CreatedAt: &early, ID: int64Ptr(1)},
	}

	asc := append([]models.Advocate(nil), records...)
	SortAdvocates(asc, models.SortFieldCreatedAt, models.SortAscending)
	assert.Equal(t, []string{"early", "late", "none-1", "none-2"}, lastNames(asc))

	desc := append([]models.Advocate(nil), records...)
	SortAdvocates(desc, models.SortFieldCreatedAt, models.SortDescending)
	assert.Equal(t, []string{"late", "early", "none-1", "none-2"}, lastNames(desc))

	byID := append([]models.Advocate(nil), records...)
	SortAdvocates(byID, models.SortFieldID, models.SortDescending)
	assert.Equal(t, []string{"late", "early", "none-1", "none-2"}, lastNames(byID))
}

func TestSortAdvocatesUnknownFieldKeepsOrder(t *testing.T) {
	records := sampleAdvocates()
	SortAdvocates(records, models.SortField("specialties"), models.SortDescending)
	assert.Equal(t, lastNames(sampleAdvocates()), lastNames(records))
}

func TestSearchAdvocatesPagination(t *testing.T) {
	records := make([]models.Advocate, 15)
	for i := range records {
		records[i] = models.Advocate{ID: int64Ptr(int64(i + 1)), LastName: string(rune('a' + i))}
	}

	out := SearchAdvocates(records, models.AdvocateQuery{Page: 99, Limit: 20})
	assert.NotNil(t, out.Data)
	assert.Empty(t, out.Data)
	assert.Equal(t, 15, out.Total)
	assert.Equal(t, 1, out.TotalPages)

	second := SearchAdvocates(records, models.AdvocateQuery{Page: 2, Limit: 4})
	assert.Equal(t, []string{"e", "f", "g", "h"}, lastNames(second.Data))
	assert.Equal(t, 4, second.TotalPages)

	last := SearchAdvocates(records, models.AdvocateQuery{Page: 4, Limit: 4})
	assert.Equal(t, []string{"m", "n", "o"}, lastNames(last.Data))

	for page := 1; page <= 5; page++ {
		res := SearchAdvocates(records, models.AdvocateQuery{Page: page, Limit: 4})
		assert.LessOrEqual(t, len(res.Data), 4)
		assert.Equal(t, 15, res.Total)
	}
}

func TestSearchAdvocatesDoesNotMutateInput(t *testing.T) {
	records := sampleAdvocates()
	_ = SearchAdvocates(records, models.AdvocateQuery{SortBy: models.SortFieldFirstName, Direction: models.SortDescending})
	assert.Equal(t, lastNames(sampleAdvocates()), lastNames(records))
}

func TestSearchAdvocatesIsIdempotent(t *testing.T) {
	records := sampleAdvocates()
	query := models.AdvocateQuery{Search: "e", SortBy: models.SortFieldCity, Direction: models.SortDescending, Page: 1, Limit: 3}
	assert.Equal(t, SearchAdvocates(records, query), SearchAdvocates(records, query))
}

func TestSearchAdvocatesTermKeepsWhitespace(t *testing.T) {
	records := []models.Advocate{
		{FirstName: "A", LastName: "Ny", City: "New York", Degree: models.DegreeMD},
		{FirstName: "B", LastName: "Yv", City: "Yorkville", Degree: models.DegreeMD},
	}

	spaced := SearchAdvocates(records, models.AdvocateQuery{Search: " york"})
	assert.Equal(t, 1, spaced.Total)
	assert.Equal(t, []string{"Ny"}, lastNames(spaced.Data))

	bare := SearchAdvocates(records, models.AdvocateQuery{Search: "york"})
	assert.Equal(t, 2, bare.Total)
}

func TestSearchAdvocatesLargeLimitIsApplied(t *testing.T) {
	records := make([]models.Advocate, 150)
	for i := range records {
		records[i] = models.Advocate{ID: int64Ptr(int64(i + 1)), LastName: "x"}
	}

	result := SearchAdvocates(records, models.AdvocateQuery{Page: 1, Limit: 150})
	assert.Equal(t, 150, result.Limit)
	assert.Len(t, result.Data, 150)
	assert.Equal(t, 1, result.TotalPages)
	assert.Equal(t, 150, result.Filters.Limit)
}

func TestAdvocatePredicatesCommute(t *testing.T) {
	query := models.AdvocateQuery{
		Search:        "o",
		City:          "o",
		Degree:        "MD",
		Specialty:     "a",
		MinExperience: intPtr(1),
		MaxExperience: intPtr(12),
	}
	predicates := advocatePredicates(query)
	require.Len(t, predicates, 6)

	matching := func(order []advocatePredicate) []string {
		names := []string{}
		for _, a := range sampleAdvocates() {
			if matchesAll(a, order) {
				names = append(names, a.LastName)
			}
		}
		return names
	}

	want := lastNames(FilterAdvocates(sampleAdvocates(), query))
	reversed := make([]advocatePredicate, len(predicates))
	for i, p := range predicates {
		reversed[len(predicates)-1-i] = p
	}
	rotated := append(append([]advocatePredicate{}, predicates[3:]...), predicates[:3]...)
	interleaved := []advocatePredicate{predicates[5], predicates[0], predicates[4], predicates[1], predicates[3], predicates[2]}

	for _, order := range [][]advocatePredicate{predicates, reversed, rotated, interleaved} {
		assert.Equal(t, want, matching(order))
	}
	assert.Equal(t, []string{"Doe", "Brown"}, want)
}
