package museumdata

import (
	"log/slog"

	"museumstats-backend/lib/scrapers/wikidata"
	"museumstats-backend/lib/textutil"

	"github.com/antzucaro/matchr"
)

// CityMatcher picks the population record for a scraped city name out of
// the resolved set. An exact key hit always wins; everything past that is
// heuristic, so the fallback is pluggable.
type CityMatcher interface {
	Match(city string, resolved map[string]*wikidata.Population) *wikidata.Population
}

// SubstringMatcher falls back to case-insensitive containment in either
// direction, so "New York" picks up a record resolved as "New York City".
// It returns the first resolved name that satisfies containment.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(city string, resolved map[string]*wikidata.Population) *wikidata.Population {
	// a key mapped to nil is a failed lookup, which the fallback may
	// still rescue through another resolved name
	if record, ok := resolved[city]; ok && record != nil {
		return record
	}
	for name, record := range resolved {
		if record == nil {
			continue
		}
		if textutil.ContainsEitherWay(city, name) {
			slog.Debug("matched city by containment", "city", city, "resolved", name)
			return record
		}
	}
	return nil
}

const defaultJaroWinklerThreshold = 0.9

// JaroWinklerMatcher falls back to the most similar resolved name at or
// above a similarity threshold.
type JaroWinklerMatcher struct {
	// zero means the default of 0.9
	Threshold float64
}

func (m JaroWinklerMatcher) Match(city string, resolved map[string]*wikidata.Population) *wikidata.Population {
	if record, ok := resolved[city]; ok && record != nil {
		return record
	}

	threshold := m.Threshold
	if threshold == 0 {
		threshold = defaultJaroWinklerThreshold
	}

	var best *wikidata.Population
	bestSimilarity := 0.0
	for name, record := range resolved {
		if record == nil {
			continue
		}
		similarity := matchr.JaroWinkler(city, name, false)
		if similarity >= threshold && similarity > bestSimilarity {
			bestSimilarity = similarity
			best = record
		}
	}
	if best != nil {
		slog.Debug("matched city by similarity", "city", city, "similarity", bestSimilarity)
	}
	return best
}
