// Package vessels resolves vessel identity and position by scraping
// the public registry, lookup and tracking sites the pipeline depends
// on.
package vessels

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"
)

const DefaultRegistryURL = "https://www.marinetraffic.com/en/ais/details/ships/shipid:"
const DefaultLookupURL = "https://www.shiplocation.com/vessels"

// The sites block the default Go user agent.
const defaultUserAgent = "Mozilla/5.0"

// DirectoryFetcher resolves vessel identity in two modes: full details
// from a registry page by numeric ship id, or just the MMSI from the
// lookup site by IMO number.
type DirectoryFetcher struct {
	RegistryURL string
	LookupURL   string
	UserAgent   string
}

func NewDirectoryFetcher() *DirectoryFetcher {
	return &DirectoryFetcher{
		RegistryURL: DefaultRegistryURL,
		LookupURL:   DefaultLookupURL,
		UserAgent:   defaultUserAgent,
	}
}

func (f *DirectoryFetcher) collector() *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(f.UserAgent))
	c.IgnoreRobotsTxt = true

	return c
}

// DetailsByShipID fetches the registry page for a numeric ship id and
// parses the identity fields from its title. A non nil result with a
// non nil error means some fields failed validation and were zeroed;
// the remaining fields are usable.
func (f *DirectoryFetcher) DetailsByShipID(shipID int) (*RegistryDetails, error) {
	var title string

	c := f.collector()
	c.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = e.Text
		}
	})

	if err := c.Visit(f.RegistryURL + strconv.Itoa(shipID)); err != nil {
		return nil, fmt.Errorf("registry page for ship id %d: %w", shipID, err)
	}

	if title == "" {
		return nil, fmt.Errorf("registry page for ship id %d has no title", shipID)
	}

	details, err := ParseRegistryTitle(title)
	if details.Name == "" && err != nil {
		// Structural parse failure, nothing usable.
		return nil, err
	}
	details.ShipID = shipID

	return &details, err
}

// MMSIByIMO resolves the MMSI for an IMO number via the lookup site's
// search results. The first result link's trailing segment after the
// last dash is the MMSI; no match yields an error and no MMSI.
func (f *DirectoryFetcher) MMSIByIMO(imo string) (string, error) {
	params := url.Values{}
	params.Set("page", "1")
	params.Set("vessel", imo)
	params.Set("sort", "none")
	params.Set("direction", "none")
	params.Set("flag", "none")

	var link string

	c := f.collector()
	c.OnHTML("a.vessel-link", func(e *colly.HTMLElement) {
		if link == "" {
			link = e.Attr("href")
		}
	})

	if err := c.Visit(f.LookupURL + "?" + params.Encode()); err != nil {
		return "", fmt.Errorf("vessel lookup for imo %s: %w", imo, err)
	}

	if link == "" {
		return "", fmt.Errorf("no lookup result for imo %s", imo)
	}

	mmsi := link[strings.LastIndex(link, "-")+1:]
	if !isDigits(mmsi, 9) {
		return "", fmt.Errorf("mmsi for imo %s not found", imo)
	}

	return mmsi, nil
}
