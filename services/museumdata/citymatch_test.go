package museumdata

import (
	"testing"

	"museumstats-backend/lib/scrapers/wikidata"

	"github.com/stretchr/testify/require"
)

func TestSubstringMatcher(t *testing.T) {
	newYork := &wikidata.Population{CityName: "New York City", Population: 8_336_817, QID: "Q60"}
	paris := &wikidata.Population{CityName: "Paris", Population: 11_000_000, QID: "Q90"}

	resolved := map[string]*wikidata.Population{
		"Paris":         paris,
		"New York City": newYork,
		"Washington":    nil, // failed lookup
	}

	matcher := SubstringMatcher{}

	require.Equal(t, paris, matcher.Match("Paris", resolved), "exact hit")
	require.Equal(t, newYork, matcher.Match("New York", resolved), "scraped name inside resolved name")
	require.Equal(t, newYork, matcher.Match("New York City Metro", resolved), "resolved name inside scraped name")
	require.Nil(t, matcher.Match("Washington", resolved), "nil record must not satisfy an exact hit")
	require.Nil(t, matcher.Match("Atlantis", resolved))
}

func TestJaroWinklerMatcher(t *testing.T) {
	amsterdam := &wikidata.Population{CityName: "Amsterdam", Population: 921_402, QID: "Q727"}

	resolved := map[string]*wikidata.Population{
		"Amsterdam": amsterdam,
		"Rotterdam": nil,
	}

	matcher := JaroWinklerMatcher{}

	require.Equal(t, amsterdam, matcher.Match("Amsterdam", resolved), "exact hit")
	require.Equal(t, amsterdam, matcher.Match("Amsterdm", resolved), "near miss above threshold")
	require.Nil(t, matcher.Match("Oslo", resolved), "far name stays unmatched")

	strict := JaroWinklerMatcher{Threshold: 0.999}
	require.Nil(t, strict.Match("Amsterdm", resolved), "tight threshold rejects the near miss")
}
