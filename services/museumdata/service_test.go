package museumdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"museumstats-backend/lib/scrapers/wikidata"
	"museumstats-backend/lib/scrapers/wikipedia"
	"museumstats-backend/lib/telemetry"
	"museumstats-backend/services/museumdata/db"

	"github.com/stretchr/testify/require"
)

// museumTableHtml renders a wikitable the way the parse API returns the
// museum list page. Each row is (name, visitors, city, country).
func museumTableHtml(rows [][4]string) string {
	var b strings.Builder
	b.WriteString(`<table class="wikitable"><tbody>`)
	b.WriteString(`<tr><th>Museum</th><th>Visitors</th><th>City</th><th>Country</th></tr>`)
	for _, row := range rows {
		fmt.Fprintf(
			&b,
			`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			row[0], row[1], row[2], row[3],
		)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func newMuseumServer(pageHtml string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"parse": map[string]any{
				"title": r.URL.Query().Get("page"),
				"text":  pageHtml,
			},
		}
		w.Header().Set("content-type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
}

func newFailingMuseumServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
}

type fakeCity struct {
	QID        string
	Label      string
	Population int64
	Year       int
}

// fakeWikidata serves the two sparql query shapes the client issues:
// city search (matched by quoted city name) and population statement
// fetch (matched by entity id).
type fakeWikidata struct {
	server   *httptest.Server
	cities   map[string]fakeCity
	searches atomic.Int64
}

func newFakeWikidata(cities map[string]fakeCity) *fakeWikidata {
	f := &fakeWikidata{cities: cities}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		w.Header().Set("content-type", "application/sparql-results+json")

		if strings.Contains(query, "P1082") {
			for _, city := range f.cities {
				if strings.Contains(query, "wd:"+city.QID+" ") {
					fmt.Fprintf(w, `{"results":{"bindings":[{
						"population":{"value":"%d"},
						"pointInTime":{"value":"%d-01-01T00:00:00Z"},
						"cityName":{"value":"%s"}
					}]}}`, city.Population, city.Year, city.Label)
					return
				}
			}
			fmt.Fprint(w, `{"results":{"bindings":[]}}`)
			return
		}

		f.searches.Add(1)
		for name, city := range f.cities {
			if strings.Contains(query, `"`+name+`"`) {
				fmt.Fprintf(w, `{"results":{"bindings":[{
					"city":{"value":"http://www.wikidata.org/entity/%s"},
					"cityLabel":{"value":"%s"}
				}]}}`, city.QID, city.Label)
				return
			}
		}
		fmt.Fprint(w, `{"results":{"bindings":[]}}`)
	}))
	return f
}

func openTestDB(t testing.TB) *sql.DB {
	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// the pool must not open a second connection, every :memory:
	// connection is its own database
	sqlite.SetMaxOpenConns(1)
	_, err = sqlite.Exec(db.Schema)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return sqlite
}

func newTestService(t testing.TB, museumUrl, wikidataUrl string, opts Options) (Service, *sql.DB) {
	cleanup := telemetry.SetupForTesting(t, "test:services/museumdata")
	t.Cleanup(cleanup)

	sqlite := openTestDB(t)
	wp := wikipedia.NewClient(wikipedia.ClientOptions{BaseUrl: museumUrl})
	wd := wikidata.NewClient(wikidata.ClientOptions{SparqlEndpoint: wikidataUrl})
	if opts.LookupPause == 0 {
		opts.LookupPause = 1 // keep batch pauses out of test runtime
	}
	return NewService(sqlite, wp, wd, opts), sqlite
}

func requireCounts(t *testing.T, qry *db.Queries, cities, museums, stats int64) {
	t.Helper()
	ctx := context.Background()

	gotCities, err := qry.CountCities(ctx)
	require.NoError(t, err)
	require.Equal(t, cities, gotCities, "city rows")

	gotMuseums, err := qry.CountMuseums(ctx)
	require.NoError(t, err)
	require.Equal(t, museums, gotMuseums, "museum rows")

	gotStats, err := qry.CountMuseumStats(ctx)
	require.NoError(t, err)
	require.Equal(t, stats, gotStats, "stat rows")
}
