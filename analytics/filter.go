// Package analytics filters the sales table and derives the dashboard numbers.
package analytics

import "salesdash/models"

// Options returns the distinct filter values present in the table, in the
// order they first appear.
func Options(table []models.SalesRecord) models.FilterOptions {
	opts := models.FilterOptions{
		Cities:        []string{},
		CustomerTypes: []string{},
		Genders:       []string{},
	}
	seenCity := map[string]bool{}
	seenType := map[string]bool{}
	seenGender := map[string]bool{}
	for _, r := range table {
		if !seenCity[r.City] {
			seenCity[r.City] = true
			opts.Cities = append(opts.Cities, r.City)
		}
		if !seenType[r.CustomerType] {
			seenType[r.CustomerType] = true
			opts.CustomerTypes = append(opts.CustomerTypes, r.CustomerType)
		}
		if !seenGender[r.Gender] {
			seenGender[r.Gender] = true
			opts.Genders = append(opts.Genders, r.Gender)
		}
	}
	return opts
}

// SetOf builds a selection set from a list of values.
func SetOf(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func allows(set map[string]bool, v string) bool {
	return set == nil || set[v]
}

// Filter returns the rows whose city, customer type and gender are all in the
// selection. The result is a new slice; table is not modified.
func Filter(table []models.SalesRecord, sel models.Selection) []models.SalesRecord {
	view := make([]models.SalesRecord, 0, len(table))
	for _, r := range table {
		if allows(sel.Cities, r.City) && allows(sel.CustomerTypes, r.CustomerType) && allows(sel.Genders, r.Gender) {
			view = append(view, r)
		}
	}
	return view
}
