package engine

import (
	"sort"

	"explorer/internal/models"

	"golang.org/x/exp/maps"
)

// RankOptions controls truncation and percentages. TopN <= 0 keeps every group.
type RankOptions struct {
	TopN    int
	Percent bool
}

// Rank orders groups by count descending, breaking ties by ascending key.
// Groups past TopN are folded into a single synthetic Others entry.
// In percent mode each share is taken against the total of all groups,
// so kept shares plus the Others share add up to 100.
func Rank(counts map[string]int, opts RankOptions) models.RankedResult {
	entries := make([]models.GroupAggregate, 0, len(counts))
	total := 0
	for _, key := range maps.Keys(counts) {
		n := counts[key]
		if n <= 0 {
			continue
		}
		entries = append(entries, models.GroupAggregate{Key: key, Count: n})
		total += n
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})

	result := models.RankedResult{Total: total, Percent: opts.Percent}
	if opts.Percent {
		for i := range entries {
			entries[i].Share = float64(entries[i].Count) / float64(total) * 100
		}
	}

	if opts.TopN > 0 && len(entries) > opts.TopN {
		others := models.GroupAggregate{Key: models.OthersKey, Synthetic: true}
		for _, e := range entries[opts.TopN:] {
			others.Count += e.Count
		}
		entries = entries[:opts.TopN]

		if opts.Percent {
			kept := 0.0
			for _, e := range entries {
				kept += e.Share
			}
			others.Share = 100 - kept
		}
		result.Others = &others
	}

	result.Entries = entries
	return result
}
