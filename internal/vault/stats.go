package vault

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Stats is the descriptive-statistics report over the record set.
//
// On an empty set only Total and Message are populated. Name lengths count
// characters, not bytes. Ties for longest/shortest keep the record
// encountered first in current store order.
type Stats struct {
	Total            int    `json:"total"`
	Message          string `json:"message,omitempty"`
	LongestName      string `json:"longestName,omitempty"`
	ShortestName     string `json:"shortestName,omitempty"`
	AvgNameLength    string `json:"avgNameLength,omitempty"`
	TotalValueLength int    `json:"totalValueLength,omitempty"`
	EarliestRecord   string `json:"earliestRecord,omitempty"`
	LatestRecord     string `json:"latestRecord,omitempty"`
}

// Statistics computes the report over the current record set.
func (v *Vault) Statistics() (Stats, error) {
	records, err := v.store.ReadAll()
	if err != nil {
		return Stats{}, err
	}

	if len(records) == 0 {
		return Stats{Total: 0, Message: "No records found"}, nil
	}

	longest := records[0].Name
	shortest := records[0].Name
	nameSum := 0
	valueSum := 0
	var earliest, latest time.Time
	for _, r := range records {
		n := utf8.RuneCountInString(r.Name)
		nameSum += n
		valueSum += utf8.RuneCountInString(r.Value)
		if n > utf8.RuneCountInString(longest) {
			longest = r.Name
		}
		if n < utf8.RuneCountInString(shortest) {
			shortest = r.Name
		}
		if r.CreatedAt.IsZero() {
			continue
		}
		if earliest.IsZero() || r.CreatedAt.Before(earliest) {
			earliest = r.CreatedAt
		}
		if latest.IsZero() || r.CreatedAt.After(latest) {
			latest = r.CreatedAt
		}
	}

	stats := Stats{
		Total:            len(records),
		LongestName:      fmt.Sprintf("%s (%d chars)", longest, utf8.RuneCountInString(longest)),
		ShortestName:     fmt.Sprintf("%s (%d chars)", shortest, utf8.RuneCountInString(shortest)),
		AvgNameLength:    fmt.Sprintf("%.2f", float64(nameSum)/float64(len(records))),
		TotalValueLength: valueSum,
	}
	if !earliest.IsZero() {
		stats.EarliestRecord = earliest.UTC().Format("2006-01-02")
		stats.LatestRecord = latest.UTC().Format("2006-01-02")
	}
	return stats, nil
}

// String renders the report as the text block the CLI prints.
func (s Stats) String() string {
	if s.Total == 0 {
		return s.Message
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Records:      %d\n", s.Total)
	fmt.Fprintf(&b, "Longest Name:       %s\n", s.LongestName)
	fmt.Fprintf(&b, "Shortest Name:      %s\n", s.ShortestName)
	fmt.Fprintf(&b, "Avg Name Length:    %s\n", s.AvgNameLength)
	fmt.Fprintf(&b, "Total Value Length: %d", s.TotalValueLength)
	if s.EarliestRecord != "" {
		fmt.Fprintf(&b, "\nEarliest Record:    %s", s.EarliestRecord)
		fmt.Fprintf(&b, "\nLatest Record:      %s", s.LatestRecord)
	}
	return b.String()
}
