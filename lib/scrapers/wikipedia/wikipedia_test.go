package wikipedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"museumstats-backend/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const museumTableHtml = `
<div class="mw-parser-output">
<table class="wikitable sortable">
<tbody>
<tr><th>Museum</th><th>Visitors</th><th>City</th><th>Country</th></tr>
<tr>
<td><a href="/wiki/Louvre">Louvre</a></td>
<td>8,700,000 (2024)<sup>[1]</sup></td>
<td><a href="/wiki/Paris">Paris</a></td>
<td><span class="flagicon"></span> <a href="/wiki/France">France</a></td>
</tr>
<tr>
<td><a href="/wiki/Metropolitan_Museum_of_Art">Metropolitan Museum of Art</a></td>
<td>5,727,258 (2024) <sup>[6]</sup></td>
<td><span>New York City</span></td>
<td><a href="/wiki/United_States">United States</a></td>
</tr>
<tr>
<td>Tiny Gallery</td>
<td>12,000</td>
<td>Smallville</td>
<td>Nowhere</td>
</tr>
<tr>
<td>Broken Row</td>
<td>3,000,000</td>
<td>Somewhere</td>
</tr>
</tbody>
</table>
</div>`

func newParseApiServer(t *testing.T, pageHtml string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "parse", r.URL.Query().Get("action"))
		require.NotEmpty(t, r.URL.Query().Get("page"))

		var body parseResponse
		body.Parse.Title = r.URL.Query().Get("page")
		body.Parse.Text = pageHtml
		w.Header().Set("content-type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
}

func TestFetchMostVisitedMuseums(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/wikipedia")
	defer cleanup()

	server := newParseApiServer(t, museumTableHtml)
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	museums, err := client.FetchMostVisitedMuseums(context.Background())
	require.NoError(t, err)

	expected := []Museum{
		{
			Name:     "Louvre",
			City:     "Paris",
			Country:  "France",
			Visitors: 8_700_000,
			Year:     2024,
			Source:   Source,
		},
		{
			Name:     "Metropolitan Museum of Art",
			City:     "New York City",
			Country:  "United States",
			Visitors: 5_727_258,
			Year:     2024,
			Source:   Source,
		},
	}
	if diff := cmp.Diff(expected, museums); diff != "" {
		t.Fatalf("unexpected museums (-want +got):\n%s", diff)
	}
}

func TestFetchMostVisitedMuseumsServerError(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/wikipedia")
	defer cleanup()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	museums, err := client.FetchMostVisitedMuseums(context.Background())
	require.Error(t, err)
	require.Empty(t, museums)
}

func TestFetchMostVisitedMuseumsNoQualifyingRows(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:scrapers/wikipedia")
	defer cleanup()

	server := newParseApiServer(t, `<table class="wikitable"><tr><th>empty</th></tr></table>`)
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL})
	museums, err := client.FetchMostVisitedMuseums(context.Background())
	require.NoError(t, err)
	require.Empty(t, museums)
}

func TestExtractMuseumFromCells(t *testing.T) {
	client := NewClient(ClientOptions{})

	museum, ok := client.extractMuseumFromCells([]string{
		"Louvre", "8,700,000 (2024)", "Paris", "France",
	})
	require.True(t, ok)
	require.Equal(t, "Louvre", museum.Name)
	require.Equal(t, "Paris", museum.City)
	require.Equal(t, "France", museum.Country)
	require.Equal(t, int64(8_700_000), museum.Visitors)
	require.Equal(t, 2024, museum.Year)
	require.Equal(t, Source, museum.Source)
}

func TestExtractMuseumFromCellsRejections(t *testing.T) {
	client := NewClient(ClientOptions{})

	testCases := []struct {
		name  string
		cells []string
	}{
		{"insufficient cells", []string{"Louvre", "8,700,000", "Paris"}},
		{"empty name", []string{"", "8,700,000", "Paris", "France"}},
		{"empty city", []string{"Louvre", "8,700,000", "", "France"}},
		{"empty country", []string{"Louvre", "8,700,000", "Paris", " "}},
		{"below visitor floor", []string{"Louvre", "1,999,999", "Paris", "France"}},
		{"unparseable count", []string{"Louvre", "n/a", "Paris", "France"}},
	}
	for _, test := range testCases {
		_, ok := client.extractMuseumFromCells(test.cells)
		require.False(t, ok, test.name)
	}
}

func TestExtractMuseumFromCellsConfigurableFloor(t *testing.T) {
	client := NewClient(ClientOptions{MinVisitors: 10_000})

	museum, ok := client.extractMuseumFromCells([]string{
		"Tiny Gallery", "12,000", "Smallville", "Nowhere",
	})
	require.True(t, ok)
	require.Equal(t, int64(12_000), museum.Visitors)
}

func TestExtractMuseumFromCellsCleansArtifacts(t *testing.T) {
	client := NewClient(ClientOptions{})

	museum, ok := client.extractMuseumFromCells([]string{
		"<a href='/wiki/Louvre'>Louvre</a>",
		"8,700,000 (2024)[1]",
		"<span>Paris</span>",
		"![](//upload.wikimedia.org/flag.svg) France",
	})
	require.True(t, ok)
	require.Equal(t, "Louvre", museum.Name)
	require.Equal(t, "Paris", museum.City)
	require.Equal(t, "France", museum.Country)
}
