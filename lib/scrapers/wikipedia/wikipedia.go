// Package wikipedia scrapes the "List of most-visited museums" table
// through the MediaWiki parse API.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"museumstats-backend/lib/telemetry"
	"museumstats-backend/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/wikipedia")

const (
	DefaultBaseUrl     = "https://en.wikipedia.org/w/api.php"
	DefaultPageTitle   = "List of most-visited museums"
	DefaultMinVisitors = 2_000_000

	// Source marks records extracted from the museum table for audit.
	Source = "wikipedia_api"
)

// Museum is a candidate record extracted from one table row. It has not
// been validated against the store yet.
type Museum struct {
	Name     string
	City     string
	Country  string
	Visitors int64
	Year     int
	Source   string
}

type ClientOptions struct {
	BaseUrl   string
	PageTitle string
	// rows below this visitor count are rejected. zero means the
	// default floor; a negative value disables the floor entirely.
	MinVisitors int64
	Timeout     time.Duration
}

type Client struct {
	http        *resty.Client
	pageTitle   string
	minVisitors int64
}

func NewClient(opts ClientOptions) *Client {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	if opts.PageTitle == "" {
		opts.PageTitle = DefaultPageTitle
	}
	if opts.MinVisitors == 0 {
		opts.MinVisitors = DefaultMinVisitors
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetTimeout(opts.Timeout)
	client.SetHeader("user-agent", "museumstats-backend/0.1 (attendance statistics collector)")
	telemetry.InstrumentResty(client, "scrapers/wikipedia/http")

	return &Client{
		http:        client,
		pageTitle:   opts.PageTitle,
		minVisitors: opts.MinVisitors,
	}
}

type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Text  string `json:"text"`
	} `json:"parse"`
}

// FetchMostVisitedMuseums retrieves the museum table and extracts one
// candidate record per qualifying row, in document order. A network or
// decode failure returns a non-nil error; a page whose rows all fail
// extraction returns an empty slice and no error.
func (c *Client) FetchMostVisitedMuseums(ctx context.Context) ([]Museum, error) {
	ctx, span := tracer.Start(ctx, "FetchMostVisitedMuseums")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"action":        "parse",
			"page":          c.pageTitle,
			"prop":          "text",
			"format":        "json",
			"formatversion": "2",
		}).
		Get("")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch museum list page")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("museum list fetch returned %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}

	var body parseResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode parse api response")
		return nil, err
	}

	museums, err := c.extractMuseums(body.Parse.Text)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse museum table")
		return nil, err
	}

	span.SetAttributes(attribute.Int("museums", len(museums)))
	return museums, nil
}

func (c *Client) extractMuseums(pageHtml string) ([]Museum, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHtml))
	if err != nil {
		return nil, err
	}

	museums := []Museum{}
	doc.Find("table.wikitable tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cell.Text())
		})
		if len(cells) == 0 {
			// header row
			return
		}

		museum, ok := c.extractMuseumFromCells(cells)
		if !ok {
			return
		}
		museums = append(museums, museum)
	})

	return museums, nil
}

// extractMuseumFromCells turns the ordered cells of one table row (name,
// visitor count, city, country) into a candidate record. Rows with fewer
// than 4 cells, an empty name, city or country after cleaning, or a
// visitor count under the configured floor are rejected outright; there
// are no partial records.
func (c *Client) extractMuseumFromCells(cells []string) (Museum, bool) {
	if len(cells) < 4 {
		return Museum{}, false
	}

	name := textutil.CleanCell(cells[0])
	city := textutil.CleanCell(cells[2])
	country := textutil.CleanCell(cells[3])
	visitors, year := ExtractVisitorCount(textutil.CleanCell(cells[1]))

	if name == "" || city == "" || country == "" {
		return Museum{}, false
	}
	if visitors < c.minVisitors {
		return Museum{}, false
	}

	return Museum{
		Name:     name,
		City:     city,
		Country:  country,
		Visitors: visitors,
		Year:     year,
		Source:   Source,
	}, true
}
