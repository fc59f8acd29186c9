package vessels

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func positionServer(t *testing.T, lon string, lat string) *PositionFetcher {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<div class="coordinate lon">%s</div>
			<div class="coordinate lat">%s</div>
		</body></html>`, lon, lat)
	}))
	t.Cleanup(server.Close)

	fetcher := NewPositionFetcher()
	fetcher.BaseURL = server.URL + "/vessels/"

	return fetcher
}

func TestPosition(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `<html><body>
			<div class="coordinate lon">4.27817</div>
			<div class="coordinate lat">51.9775</div>
		</body></html>`)
	}))
	defer server.Close()

	fetcher := NewPositionFetcher()
	fetcher.BaseURL = server.URL + "/vessels/"

	location, err := fetcher.Position("ONE COLUMBA", "9806079", "563102800")
	require.NoError(t, err)

	assert.Equal(t, "/vessels/ONE-COLUMBA-IMO-9806079-MMSI-563102800", gotPath)
	assert.Equal(t, 4.27817, location.Longitude())
	assert.Equal(t, 51.9775, location.Latitude())
}

func TestPositionNegativeCoordinates(t *testing.T) {
	fetcher := positionServer(t, "-73.9249", "40.6943")

	location, err := fetcher.Position("EXAMPLE", "1234567", "123456789")
	require.NoError(t, err)

	assert.Equal(t, -73.9249, location.Longitude())
	assert.Equal(t, 40.6943, location.Latitude())
}

func TestPositionRejectsNonNumericCoordinate(t *testing.T) {
	fetcher := positionServer(t, "4.27817", "N/A")

	location, err := fetcher.Position("EXAMPLE", "1234567", "123456789")
	assert.Error(t, err)
	assert.Nil(t, location)
}

func TestPositionMissingCoordinateElement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="coordinate lon">4.27817</div></body></html>`)
	}))
	defer server.Close()

	fetcher := NewPositionFetcher()
	fetcher.BaseURL = server.URL + "/vessels/"

	location, err := fetcher.Position("EXAMPLE", "1234567", "123456789")
	assert.Error(t, err)
	assert.Nil(t, location)
}

func TestPositionHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewPositionFetcher()
	fetcher.BaseURL = server.URL + "/vessels/"

	location, err := fetcher.Position("EXAMPLE", "1234567", "123456789")
	assert.Error(t, err)
	assert.Nil(t, location)
}
