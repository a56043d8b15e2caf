package vault

import (
	"strconv"
	"strings"

	"github.com/govault/govault/internal/record"
)

// Search returns records matching the keyword.
//
// The mirror is queried first; a non-empty mirror result is authoritative
// for this call. A mirror that returns nothing - whether it genuinely has no
// matches or failed internally, the two are indistinguishable here - falls
// back to a scan of the file store: case-insensitive substring match on name
// and value, substring match on the decimal form of the ID.
//
// An empty keyword returns no matches; the mirror is not consulted.
func (v *Vault) Search(keyword string) ([]record.Record, error) {
	if keyword == "" {
		return []record.Record{}, nil
	}

	if hits := v.mirror.Search(keyword); len(hits) > 0 {
		return hits, nil
	}

	records, err := v.store.ReadAll()
	if err != nil {
		return nil, err
	}

	kw := strings.ToLower(keyword)
	matches := []record.Record{}
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), kw) ||
			strings.Contains(strings.ToLower(r.Value), kw) ||
			strings.Contains(strconv.FormatInt(r.ID, 10), keyword) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}
