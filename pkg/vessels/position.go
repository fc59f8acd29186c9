package vessels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/gocolly/colly/v2"
)

const DefaultPositionURL = "https://www.vesselfinder.com/vessels/"

// PositionFetcher resolves a vessel's current coordinates from the
// tracking site. The page URL is built from the vessel name, IMO and
// MMSI slugged into the path.
type PositionFetcher struct {
	BaseURL   string
	UserAgent string
}

func NewPositionFetcher() *PositionFetcher {
	return &PositionFetcher{
		BaseURL:   DefaultPositionURL,
		UserAgent: defaultUserAgent,
	}
}

// Position fetches the vessel page and parses both coordinates. Either
// coordinate failing to resolve is an explicit error; no partial
// location is ever returned.
func (f *PositionFetcher) Position(vesselName string, imo string, mmsi string) (*freight.Location, error) {
	var lonText, latText string

	c := colly.NewCollector(colly.UserAgent(f.UserAgent))
	c.IgnoreRobotsTxt = true
	c.OnHTML("div.coordinate.lon", func(e *colly.HTMLElement) {
		if lonText == "" {
			lonText = strings.TrimSpace(e.Text)
		}
	})
	c.OnHTML("div.coordinate.lat", func(e *colly.HTMLElement) {
		if latText == "" {
			latText = strings.TrimSpace(e.Text)
		}
	})

	pageURL := f.BaseURL + vesselSlug(vesselName) + "-IMO-" + imo + "-MMSI-" + mmsi
	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("position page for imo %s: %w", imo, err)
	}

	var coordErrs []error

	longitude, err := parseCoordinate("longitude", lonText)
	if err != nil {
		coordErrs = append(coordErrs, err)
	}
	latitude, err := parseCoordinate("latitude", latText)
	if err != nil {
		coordErrs = append(coordErrs, err)
	}

	if len(coordErrs) > 0 {
		return nil, errors.Join(coordErrs...)
	}

	return freight.NewLocation(longitude, latitude), nil
}

func vesselSlug(vesselName string) string {
	return strings.ReplaceAll(vesselName, " ", "-")
}

// parseCoordinate accepts only values composed of digits, '.' and '-'.
func parseCoordinate(field string, text string) (float64, error) {
	if text == "" {
		return 0, fmt.Errorf("%s not present on page", field)
	}

	stripped := strings.NewReplacer(".", "", "-", "").Replace(text)
	if stripped == "" {
		return 0, fmt.Errorf("%s %q is not numeric", field, text)
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%s %q is not numeric", field, text)
		}
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q is not numeric", field, text)
	}

	return value, nil
}
