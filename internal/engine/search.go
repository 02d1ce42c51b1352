package engine

import "strings"

// Filter narrows the collection to people whose first or last name contains
// the query, case-insensitively. Middle names, notes and addresses are not
// searched. An empty query returns the collection unchanged; matching never
// reorders, every hit keeps its original position.
func Filter(people []Person, query string) []Person {
	if query == "" {
		return people
	}

	q := strings.ToLower(query)
	matched := make([]Person, 0, len(people))
	for _, p := range people {
		first := strings.ToLower(p.FirstName)
		last := strings.ToLower(p.LastName)
		if strings.Contains(first, q) || strings.Contains(last, q) {
			matched = append(matched, p)
		}
	}
	return matched
}
