package models

import "strings"

const (
	// DefaultPage is used when the page parameter is missing or unusable.
	DefaultPage = 1
	// DefaultPageSize is used when the limit parameter is missing or unusable.
	DefaultPageSize = 20
)

// SortDirection represents ordering direction for sortable fields.
type SortDirection string

const (
	SortAscending  SortDirection = "asc"
	SortDescending SortDirection = "desc"
)

// ParseSortDirection maps a raw direction to a SortDirection, defaulting to ascending.
func ParseSortDirection(raw string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(raw), string(SortDescending)) {
		return SortDescending
	}
	return SortAscending
}

// SortField enumerates the advocate attributes results can be ordered by.
type SortField string

const (
	SortFieldNone              SortField = ""
	SortFieldID                SortField = "id"
	SortFieldFirstName         SortField = "firstName"
	SortFieldLastName          SortField = "lastName"
	SortFieldCity              SortField = "city"
	SortFieldDegree            SortField = "degree"
	SortFieldYearsOfExperience SortField = "yearsOfExperience"
	SortFieldPhoneNumber       SortField = "phoneNumber"
	SortFieldCreatedAt         SortField = "createdAt"
)

var sortFields = map[string]SortField{
	string(SortFieldID):                SortFieldID,
	string(SortFieldFirstName):         SortFieldFirstName,
	string(SortFieldLastName):          SortFieldLastName,
	string(SortFieldCity):              SortFieldCity,
	string(SortFieldDegree):            SortFieldDegree,
	string(SortFieldYearsOfExperience): SortFieldYearsOfExperience,
	string(SortFieldPhoneNumber):       SortFieldPhoneNumber,
	string(SortFieldCreatedAt):         SortFieldCreatedAt,
}

// ParseSortField resolves an attribute name. Unknown names resolve to SortFieldNone.
func ParseSortField(raw string) (SortField, bool) {
	field, ok := sortFields[strings.TrimSpace(raw)]
	return field, ok
}

// AdvocateQuery is the resolved set of filter, sort and pagination parameters for one search.
type AdvocateQuery struct {
	Search        string
	City          string
	Degree        string
	Specialty     string
	MinExperience *int
	MaxExperience *int
	SortBy        SortField
	Direction     SortDirection
	Page          int
	Limit         int

	// Raw experience bounds as received, echoed back to the caller.
	MinExperienceRaw string
	MaxExperienceRaw string
}

// Filters builds the echo of the resolved query returned with every result.
func (q AdvocateQuery) Filters() AdvocateFilters {
	direction := q.Direction
	if direction == "" {
		direction = SortAscending
	}
	return AdvocateFilters{
		Query:         optional(q.Search),
		City:          optional(q.City),
		Degree:        optional(q.Degree),
		Specialty:     optional(q.Specialty),
		MinExperience: optional(q.MinExperienceRaw),
		MaxExperience: optional(q.MaxExperienceRaw),
		Sort:          optional(string(q.SortBy)),
		Direction:     direction,
		Page:          q.Page,
		Limit:         q.Limit,
	}
}

// AdvocateFilters echoes the resolved query parameters. Absent parameters encode as null.
type AdvocateFilters struct {
	Query         *string       `json:"query"`
	City          *string       `json:"city"`
	Degree        *string       `json:"degree"`
	Specialty     *string       `json:"specialty"`
	MinExperience *string       `json:"minExperience"`
	MaxExperience *string       `json:"maxExperience"`
	Sort          *string       `json:"sort"`
	Direction     SortDirection `json:"direction"`
	Page          int           `json:"page"`
	Limit         int           `json:"limit"`
}

// AdvocateSearchResult is the paginated response for an advocate search.
type AdvocateSearchResult struct {
	Data       []Advocate      `json:"data"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"totalPages"`
	Filters    AdvocateFilters `json:"filters"`
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
