// Package wikidata resolves city population figures through the Wikidata
// SPARQL endpoint. Lookups are two-step: a fuzzy label search for the
// city's entity id, then a fetch of its most recent population statement.
package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"museumstats-backend/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/wikidata")

const DefaultSparqlEndpoint = "https://query.wikidata.org/sparql"

// Source marks records resolved from wikidata for audit.
const Source = "wikidata"

// Q515 is the "city" class; the label filter is containment rather than
// equality so scraped names like "New York" still find "New York City".
const searchCityQuery = `
SELECT ?city ?cityLabel WHERE {
  ?city wdt:P31/wdt:P279* wd:Q515 .
  ?city rdfs:label ?cityLabel .
  FILTER(CONTAINS(LCASE(?cityLabel), LCASE("%s")))
}
LIMIT 5
`

// P1082 is the population property, P585 its point-in-time qualifier.
// Ordering descending by point in time keeps only the newest statement.
const cityPopulationQuery = `
SELECT ?population ?pointInTime ?cityName WHERE {
  wd:%s rdfs:label ?cityName .
  FILTER(LANG(?cityName) = "en")
  wd:%s p:P1082 ?populationStatement .
  ?populationStatement ps:P1082 ?population ;
                       pq:P585 ?pointInTime .
} ORDER BY DESC(?pointInTime)
LIMIT 1
`

// Population is the most recent population statement found for a city.
type Population struct {
	Population int64
	Year       int
	CityName   string
	QID        string
}

type ClientOptions struct {
	SparqlEndpoint string
	Timeout        time.Duration
}

type Client struct {
	http *resty.Client
}

func NewClient(opts ClientOptions) *Client {
	if opts.SparqlEndpoint == "" {
		opts.SparqlEndpoint = DefaultSparqlEndpoint
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.SparqlEndpoint)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", "museumstats-backend/0.1 (attendance statistics collector)")
	telemetry.InstrumentResty(client, "scrapers/wikidata/http")

	return &Client{http: client}
}

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

func (c *Client) query(ctx context.Context, query string) (sparqlResponse, error) {
	var out sparqlResponse

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":  query,
			"format": "json",
		}).
		Get("")
	if err != nil {
		return out, err
	}
	if res.IsError() {
		return out, fmt.Errorf("sparql endpoint returned %s", res.Status())
	}

	err = json.Unmarshal(res.Body(), &out)
	if err != nil {
		return out, err
	}
	return out, nil
}

func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// SearchCityQID looks up a city's entity id by fuzzy name match. An empty
// id with a nil error means no entity was found, which is a valid
// terminal state for a lookup, not a failure.
func (c *Client) SearchCityQID(ctx context.Context, cityName string) (string, error) {
	ctx, span := tracer.Start(ctx, "SearchCityQID")
	defer span.End()
	span.SetAttributes(attribute.String("city", cityName))

	res, err := c.query(ctx, fmt.Sprintf(searchCityQuery, escapeLiteral(cityName)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "city search query failed")
		return "", err
	}

	if len(res.Results.Bindings) == 0 {
		return "", nil
	}

	cityUri := res.Results.Bindings[0]["city"].Value
	segments := strings.Split(cityUri, "/")
	qid := segments[len(segments)-1]
	span.SetAttributes(attribute.String("qid", qid))
	return qid, nil
}

// FetchCityPopulation fetches the most recent population statement for
// an entity. A nil record with a nil error means the entity carries no
// population statement.
func (c *Client) FetchCityPopulation(ctx context.Context, qid string) (*Population, error) {
	ctx, span := tracer.Start(ctx, "FetchCityPopulation")
	defer span.End()
	span.SetAttributes(attribute.String("qid", qid))

	res, err := c.query(ctx, fmt.Sprintf(cityPopulationQuery, qid, qid))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "population query failed")
		return nil, err
	}

	if len(res.Results.Bindings) == 0 {
		return nil, nil
	}
	binding := res.Results.Bindings[0]

	population, err := strconv.ParseFloat(binding["population"].Value, 64)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unparseable population value")
		return nil, err
	}

	year := 0
	if pointInTime := binding["pointInTime"].Value; pointInTime != "" {
		year, _ = strconv.Atoi(strings.SplitN(pointInTime, "-", 2)[0])
	}

	return &Population{
		Population: int64(population),
		Year:       year,
		CityName:   binding["cityName"].Value,
		QID:        qid,
	}, nil
}
