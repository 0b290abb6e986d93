// Package stats derives the counters shown in the hero section. Nothing here is
// stored or cached; every call recomputes from the records it is given.
package stats

import (
	"time"

	"github.com/srbeng/srb-site/internal/content/domain"
)

const (
	FoundingYear     = 2018
	AnniversaryMonth = time.March
	AnniversaryDay   = 31
)

// Stat is one display counter.
type Stat struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Suffix string `json:"suffix,omitempty"`
}

// Summary carries the display rows plus the raw numbers behind them.
type Summary struct {
	Stats             []Stat                  `json:"stats"`
	YearsOfExperience int                     `json:"years_of_experience"`
	ByCategory        map[domain.Category]int `json:"by_category"`
	TotalProjects     int                     `json:"total_projects"`
}

// YearsOfExperience counts completed years since the founding year, stepping
// on the anniversary date. now is interpreted in its own location.
func YearsOfExperience(now time.Time) int {
	years := now.Year() - FoundingYear
	anniversary := time.Date(now.Year(), AnniversaryMonth, AnniversaryDay, 0, 0, 0, 0, now.Location())
	if now.Before(anniversary) {
		years--
	}
	return years
}

// named lists the categories that get their own counter, in display order.
// Other is counted in ByCategory but not displayed.
var named = []struct {
	category domain.Category
	label    string
}{
	{domain.CategoryResidential, "Residential Projects"},
	{domain.CategoryCommercial, "Commercial Buildings"},
	{domain.CategorySteelPrefab, "Steel/Prefab Structures"},
	{domain.CategoryConsulting, "Consulting Projects"},
}

// Compute returns the statistics for projects as of now.
func Compute(projects []domain.Project, now time.Time) Summary {
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = 0
	}
	for _, p := range projects {
		if p.Category.Valid() {
			counts[p.Category]++
		}
	}

	years := YearsOfExperience(now)
	rows := make([]Stat, 0, len(named)+1)
	rows = append(rows, Stat{Label: "Years of Experience", Value: years, Suffix: "+"})
	for _, n := range named {
		rows = append(rows, Stat{Label: n.label, Value: counts[n.category]})
	}

	return Summary{
		Stats:             rows,
		YearsOfExperience: years,
		ByCategory:        counts,
		TotalProjects:     len(projects),
	}
}
