// Package catalog holds the static reference data shared by the feed and
// event screens: categories, countries and their cities, and the filter
// state built on them.
package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// Categories lists every event category in display order.
var Categories = []string{
	"Technology",
	"Marketing",
	"Networking",
	"Creative",
	"Entertainment",
	"Business",
	"Design",
	"Finance",
	"Healthcare",
	"Education",
	"Startups",
	"Artificial Intelligence",
	"Data Science",
	"Cybersecurity",
	"Blockchain",
}

// Countries lists the selectable countries in display order.
var Countries = []string{
	"United States",
	"United Kingdom",
	"Canada",
	"Germany",
	"France",
	"Australia",
	"Japan",
	"India",
}

var citiesByCountry = map[string][]string{
	"United States":  {"New York", "Los Angeles", "Chicago", "Houston", "Phoenix"},
	"United Kingdom": {"London", "Manchester", "Birmingham", "Liverpool", "Leeds"},
	"Canada":         {"Toronto", "Vancouver", "Montreal", "Calgary", "Ottawa"},
	"Germany":        {"Berlin", "Munich", "Hamburg", "Frankfurt", "Cologne"},
	"France":         {"Paris", "Lyon", "Marseille", "Toulouse", "Nice"},
	"Australia":      {"Sydney", "Melbourne", "Brisbane", "Perth", "Adelaide"},
	"Japan":          {"Tokyo", "Osaka", "Yokohama", "Nagoya", "Sapporo"},
	"India":          {"Mumbai", "Delhi", "Bangalore", "Hyderabad", "Chennai"},
}

// Cities returns the cities of country, or nil for an unknown country.
func Cities(country string) []string {
	cities, ok := citiesByCountry[country]
	if !ok {
		return nil
	}
	return append([]string(nil), cities...)
}

// IsCategory reports whether name is a known category.
func IsCategory(name string) bool {
	return lo.Contains(Categories, name)
}

// IsCountry reports whether name is a known country.
func IsCountry(name string) bool {
	_, ok := citiesByCountry[name]
	return ok
}

// IsCity reports whether city belongs to country.
func IsCity(country, city string) bool {
	return lo.Contains(citiesByCountry[country], city)
}

// SearchCategories returns the categories containing term, ignoring case.
// An empty term matches everything.
func SearchCategories(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	return lo.Filter(Categories, func(c string, _ int) bool {
		return strings.Contains(strings.ToLower(c), term)
	})
}

// Filters is the filter bar state of a list screen. Zero values mean
// "any".
type Filters struct {
	Category string
	Country  string
	City     string
}

// SetCategory selects a category.
func (f *Filters) SetCategory(c string) {
	f.Category = c
}

// SetCountry selects a country and always clears the city.
func (f *Filters) SetCountry(c string) {
	f.Country = c
	f.City = ""
}

// SetCity selects a city. It is ignored while no country is selected.
func (f *Filters) SetCity(c string) {
	if f.Country == "" {
		return
	}
	f.City = c
}

// Clear resets every filter.
func (f *Filters) Clear() {
	*f = Filters{}
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Category != "" || f.Country != "" || f.City != ""
}

// Cities returns the city choices for the selected country.
func (f Filters) Cities() []string {
	return Cities(f.Country)
}

// Match reports whether an item with the given attributes passes the
// filters. Empty attributes only match an unset filter.
func (f Filters) Match(category, country, city string) bool {
	if f.Category != "" && f.Category != category {
		return false
	}
	if f.Country != "" && f.Country != country {
		return false
	}
	if f.City != "" && f.City != city {
		return false
	}
	return true
}
