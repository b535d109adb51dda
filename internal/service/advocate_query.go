package service

import (
	"sort"
	"strconv"
	"strings"

	"github.com/noah-isme/advocate-directory-api/internal/models"
)

// SearchAdvocates filters, sorts and paginates records for the given query.
// It never mutates records and always returns a non-nil page.
func SearchAdvocates(records []models.Advocate, query models.AdvocateQuery) models.AdvocateSearchResult {
	query.Page, query.Limit = normalisePaging(query.Page, query.Limit)

	matched := FilterAdvocates(records, query)
	SortAdvocates(matched, query.SortBy, query.Direction)

	total := len(matched)
	return models.AdvocateSearchResult{
		Data:       paginate(matched, query.Page, query.Limit),
		Total:      total,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages(total, query.Limit),
		Filters:    query.Filters(),
	}
}

type advocatePredicate func(models.Advocate) bool

// FilterAdvocates returns a fresh slice of the records satisfying every active filter.
func FilterAdvocates(records []models.Advocate, query models.AdvocateQuery) []models.Advocate {
	predicates := advocatePredicates(query)
	matched := make([]models.Advocate, 0, len(records))
	for _, advocate := range records {
		if matchesAll(advocate, predicates) {
			matched = append(matched, advocate)
		}
	}
	return matched
}

func matchesAll(advocate models.Advocate, predicates []advocatePredicate) bool {
	for _, predicate := range predicates {
		if !predicate(advocate) {
			return false
		}
	}
	return true
}

func advocatePredicates(query models.AdvocateQuery) []advocatePredicate {
	var predicates []advocatePredicate

	if query.Search != "" {
		term := strings.ToLower(query.Search)
		predicates = append(predicates, func(a models.Advocate) bool {
			return containsFold(a.FirstName, term) ||
				containsFold(a.LastName, term) ||
				containsFold(a.City, term) ||
				containsFold(string(a.Degree), term) ||
				anyContainsFold(a.Specialties, term) ||
				strings.Contains(strconv.Itoa(a.YearsOfExperience), term)
		})
	}
	if query.City != "" {
		city := strings.ToLower(query.City)
		predicates = append(predicates, func(a models.Advocate) bool {
			return containsFold(a.City, city)
		})
	}
	if query.Degree != "" {
		degree := query.Degree
		predicates = append(predicates, func(a models.Advocate) bool {
			return string(a.Degree) == degree
		})
	}
	if query.Specialty != "" {
		specialty := strings.ToLower(query.Specialty)
		predicates = append(predicates, func(a models.Advocate) bool {
			return anyContainsFold(a.Specialties, specialty)
		})
	}
	if query.MinExperience != nil {
		minYears := *query.MinExperience
		predicates = append(predicates, func(a models.Advocate) bool {
			return a.YearsOfExperience >= minYears
		})
	}
	if query.MaxExperience != nil {
		maxYears := *query.MaxExperience
		predicates = append(predicates, func(a models.Advocate) bool {
			return a.YearsOfExperience <= maxYears
		})
	}

	return predicates
}

// containsFold reports whether the lowercased value contains an already lowercased term.
func containsFold(value, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(value), lowerTerm)
}

func anyContainsFold(values []string, lowerTerm string) bool {
	for _, value := range values {
		if containsFold(value, lowerTerm) {
			return true
		}
	}
	return false
}

// sortKey is the comparable projection of one advocate attribute.
type sortKey struct {
	defined bool
	numeric bool
	text    string
	number  int64
}

func (k sortKey) compare(other sortKey) int {
	if k.numeric {
		switch {
		case k.number < other.number:
			return -1
		case k.number > other.number:
			return 1
		}
		return 0
	}
	return strings.Compare(k.text, other.text)
}

func textKey(v string) sortKey { return sortKey{defined: true, text: strings.ToLower(v)} }
func numberKey(v int64) sortKey { return sortKey{defined: true, numeric: true, number: v} }
func undefinedKey() sortKey { return sortKey{} }

var sortKeys = map[models.SortField]func(models.Advocate) sortKey{
	models.SortFieldID: func(a models.Advocate) sortKey {
		if a.ID == nil {
			return undefinedKey()
		}
		return numberKey(*a.ID)
	},
	models.SortFieldFirstName: func(a models.Advocate) sortKey { return textKey(a.FirstName) },
	models.SortFieldLastName:  func(a models.Advocate) sortKey { return textKey(a.LastName) },
	models.SortFieldCity:      func(a models.Advocate) sortKey { return textKey(a.City) },
	models.SortFieldDegree:    func(a models.Advocate) sortKey { return textKey(string(a.Degree)) },
	models.SortFieldYearsOfExperience: func(a models.Advocate) sortKey {
		return numberKey(int64(a.YearsOfExperience))
	},
	models.SortFieldPhoneNumber: func(a models.Advocate) sortKey { return numberKey(a.PhoneNumber) },
	models.SortFieldCreatedAt: func(a models.Advocate) sortKey {
		if a.CreatedAt == nil {
			return undefinedKey()
		}
		return numberKey(a.CreatedAt.UnixNano())
	},
}

// SortAdvocates orders items in place by field. Ties keep their input order and
// records without a value for field always come last, whatever the direction.
func SortAdvocates(items []models.Advocate, field models.SortField, direction models.SortDirection) {
	key, ok := sortKeys[field]
	if !ok {
		return
	}
	sign := 1
	if direction == models.SortDescending {
		sign = -1
	}
	sort.SliceStable(items, func(i, j int) bool {
		return compareSortKeys(key(items[i]), key(items[j]), sign) < 0
	})
}

func compareSortKeys(a, b sortKey, sign int) int {
	switch {
	case !a.defined && !b.defined:
		return 0
	case !a.defined:
		return 1
	case !b.defined:
		return -1
	}
	return sign * a.compare(b)
}

func normalisePaging(page, limit int) (int, int) {
	if page < 1 {
		page = models.DefaultPage
	}
	if limit < 1 {
		limit = models.DefaultPageSize
	}
	return page, limit
}

func paginate(items []models.Advocate, page, limit int) []models.Advocate {
	if page-1 > len(items)/limit {
		return []models.Advocate{}
	}
	start := (page - 1) * limit
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	out := make([]models.Advocate, end-start)
	copy(out, items[start:end])
	return out
}

func totalPages(total, limit int) int {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
