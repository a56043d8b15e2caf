// Package record defines the stored record shape, its validation rules,
// and the monotonic ID source used when creating records.
package record

import "time"

// Record is the unit of stored data.
//
// ID and CreatedAt are assigned once at creation and never change.
// Name and Value are the only mutable fields.
type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks that a candidate record has both a name and a value.
// Returns *ValidationError naming the first missing field.
func Validate(name, value string) error {
	if name == "" {
		return &ValidationError{Field: "name"}
	}
	if value == "" {
		return &ValidationError{Field: "value"}
	}
	return nil
}

// MaxID returns the largest ID among records, or 0 if records is empty.
func MaxID(records []Record) int64 {
	var max int64
	for _, r := range records {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}
