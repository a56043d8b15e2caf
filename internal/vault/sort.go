package vault

import (
	"slices"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/govault/govault/internal/record"
)

// SortField selects the record field to order by.
type SortField string

const (
	FieldID      SortField = "id"
	FieldName    SortField = "name"
	FieldCreated SortField = "createdAt"
)

// SortOrder selects the ordering direction.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Sort returns the record set ordered by field.
//
// Names compare with a Unicode collator (locale-aware, like the ordering
// users see in directory listings); createdAt compares chronologically; ID
// numerically. An unrecognized field orders by ID. Any order other than
// Descending means ascending; Descending reverses the ascending result.
//
// The stored set is never mutated; the sorted slice is a copy.
func (v *Vault) Sort(field SortField, order SortOrder) ([]record.Record, error) {
	records, err := v.store.ReadAll()
	if err != nil {
		return nil, err
	}

	sorted := make([]record.Record, len(records))
	copy(sorted, records)

	switch field {
	case FieldName:
		c := collate.New(language.Und)
		sort.SliceStable(sorted, func(i, j int) bool {
			return c.CompareString(sorted[i].Name, sorted[j].Name) < 0
		})
	case FieldCreated:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ID < sorted[j].ID
		})
	}

	if order == Descending {
		slices.Reverse(sorted)
	}
	return sorted, nil
}
