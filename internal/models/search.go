package models

import "strconv"

// Region is a geographic scope recognised in a goal. The site maps it to its own code.
type Region string

const (
	RegionMoscow          Region = "moscow"
	RegionSaintPetersburg Region = "saint-petersburg"
	RegionRussia          Region = "russia"
)

// Experience is a seniority band the site filters by.
type Experience string

const (
	ExperienceNone         Experience = "no-experience"
	ExperienceBetween1And3 Experience = "between-1-and-3"
	ExperienceBetween3And6 Experience = "between-3-and-6"
	ExperienceMoreThan6    Experience = "more-than-6"
)

// SearchSpec describes one search execution. It is rebuilt wholesale on
// every interpretation and copied, never mutated, when paging.
type SearchSpec struct {
	Query         string
	Page          int
	Region        *Region
	Experience    *Experience
	Remote        bool
	SalaryFloor   *int
	RequireSalary bool
}

// WithPage returns a copy of s pointing at page p (clamped at zero).
func (s SearchSpec) WithPage(p int) SearchSpec {
	if p < 0 {
		p = 0
	}
	s.Page = p
	return s
}

// Intent is the interpreter's output: a fresh search spec plus the number of
// results the user asked for, if any.
type Intent struct {
	Spec         SearchSpec
	DesiredCount *int
}

// RegionName is the human label used in filter reports.
func RegionName(r *Region) string {
	if r == nil {
		return "не задано"
	}
	switch *r {
	case RegionMoscow:
		return "Москва"
	case RegionSaintPetersburg:
		return "СПб"
	case RegionRussia:
		return "РФ"
	}
	return string(*r)
}

// SalaryLabel renders the salary floor for filter reports.
func SalaryLabel(floor *int) string {
	if floor == nil {
		return "не задано"
	}
	return "от " + strconv.Itoa(*floor)
}
