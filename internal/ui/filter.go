package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// FilterConfig bundles tuning parameters for narrowing dropdown options.
type FilterConfig struct {
	MinCoverage float64 // minimal share of the query that must match
	MaxSpread   int     // maximal distance between first and last match index
	MaxResults  int     // upper limit of returned results
}

// narrowOptions returns indices of options matching q: substring matches
// first, fuzzy matches as fallback. An empty query keeps every option.
func narrowOptions(q string, options []string, cfg FilterConfig) []int {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		idx := make([]int, len(options))
		for i := range options {
			idx[i] = i
		}
		return idx
	}
	base := make([]string, len(options))
	for i, o := range options {
		base[i] = strings.ToLower(o)
	}
	if sub := filterBySubstring(q, base, cfg); len(sub) > 0 {
		return sub
	}
	return filterByFuzzy(q, base, cfg)
}

func filterBySubstring(q string, base []string, cfg FilterConfig) []int {
	sub := make([]int, 0, min(cfg.MaxResults, len(base)))
	for i, s := range base {
		if strings.Contains(s, q) {
			sub = append(sub, i)
			if len(sub) >= cfg.MaxResults {
				break
			}
		}
	}
	return sub
}

// filterByFuzzy drops weak matches by coverage and spread, falling back to
// the raw fuzzy ranking when nothing survives.
func filterByFuzzy(q string, base []string, cfg FilterConfig) []int {
	matches := fuzzy.Find(q, base)

	pruned := make([]int, 0, len(matches))
	for _, mt := range matches {
		if matchCoverage(q, mt) < cfg.MinCoverage || matchSpread(mt) > cfg.MaxSpread {
			continue
		}
		pruned = append(pruned, mt.Index)
		if len(pruned) >= cfg.MaxResults {
			break
		}
	}
	if len(pruned) == 0 {
		for i := 0; i < len(matches) && i < cfg.MaxResults; i++ {
			pruned = append(pruned, matches[i].Index)
		}
	}
	return pruned
}

func matchCoverage(q string, m fuzzy.Match) float64 {
	if len(q) == 0 {
		return 1
	}
	return float64(len(m.MatchedIndexes)) / float64(len(q))
}

func matchSpread(m fuzzy.Match) int {
	if len(m.MatchedIndexes) == 0 {
		return 0
	}
	return m.MatchedIndexes[len(m.MatchedIndexes)-1] - m.MatchedIndexes[0]
}
