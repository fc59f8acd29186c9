// Package carrier fetches container and schedule data from the
// carrier's JSON list endpoint. A single URL serves both operations,
// selected by the f_cmd parameter: 121 searches containers by bill
// number, 125 fetches the event schedule for a container.
package carrier

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const DefaultEndpoint = "https://ecomm.one-line.com/ecom/CUP_HOM_3301GS.do"

// ErrNotFound is returned when the response carries no "list" array or
// an empty one, the carrier's not found signal.
var ErrNotFound = errors.New("carrier: no list data in response")

// ContainerDetails are the fields of a container search result the
// pipeline keeps.
type ContainerDetails struct {
	ContainerNo   string
	ContainerType string
	OwnerRef      string
	BillNo        string
}

// RawEvent is one untransformed schedule entry as the carrier returns
// it.
type RawEvent struct {
	No         string
	Event      string
	PlaceName  string
	YardName   string
	EventDate  string
	StatusCode string
	VesselName string
	IMO        string
}

var containerRequiredKeys = []string{"cntrNo", "cntrTpszNm", "copNo", "blNo"}

var scheduleRequiredKeys = []string{
	"no", "statusNm", "placeNm", "yardNm",
	"eventDt", "actTpCd", "vslEngNm", "lloydNo",
}

type Fetcher struct {
	Endpoint string
	Client   *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		Endpoint: DefaultEndpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchContainer searches the carrier by bill number and returns the
// first matching container. Fails closed when the payload lacks the
// list key or any required field.
func (f *Fetcher) FetchContainer(billNo string) (*ContainerDetails, error) {
	params := url.Values{}
	params.Set("_search", "false")
	params.Set("nd", fmt.Sprint(time.Now().UnixMilli()))
	params.Set("rows", "10000")
	params.Set("page", "1")
	params.Set("sidx", "")
	params.Set("sord", "asc")
	params.Set("f_cmd", "121")
	params.Set("search_type", "A")
	params.Set("search_name", billNo)
	params.Set("cust_cd", "")

	list, err := f.fetchList(params)
	if err != nil {
		return nil, err
	}

	details := list[0]
	delete(details, "hashColumns")

	if err := requireKeys(details, containerRequiredKeys); err != nil {
		return nil, err
	}

	return &ContainerDetails{
		ContainerNo:   stringField(details, "cntrNo"),
		ContainerType: stringField(details, "cntrTpszNm"),
		OwnerRef:      stringField(details, "copNo"),
		BillNo:        stringField(details, "blNo"),
	}, nil
}

// FetchSchedule fetches the full event schedule for a container. The
// carrier always returns the complete schedule, never a delta.
func (f *Fetcher) FetchSchedule(containerNo string, ownerRef string) ([]RawEvent, error) {
	params := url.Values{}
	params.Set("_search", "false")
	params.Set("f_cmd", "125")
	params.Set("cntr_no", containerNo)
	params.Set("bkg_no", "")
	params.Set("cop_no", ownerRef)

	list, err := f.fetchList(params)
	if err != nil {
		return nil, err
	}

	delete(list[0], "hashColumns")

	if err := requireKeys(list[0], scheduleRequiredKeys); err != nil {
		return nil, err
	}

	events := make([]RawEvent, 0, len(list))
	for _, entry := range list {
		events = append(events, RawEvent{
			No:         stringField(entry, "no"),
			Event:      stringField(entry, "statusNm"),
			PlaceName:  stringField(entry, "placeNm"),
			YardName:   stringField(entry, "yardNm"),
			EventDate:  stringField(entry, "eventDt"),
			StatusCode: stringField(entry, "actTpCd"),
			VesselName: stringField(entry, "vslEngNm"),
			IMO:        stringField(entry, "lloydNo"),
		})
	}

	return events, nil
}

func (f *Fetcher) fetchList(params url.Values) ([]map[string]any, error) {
	requestURL := f.Endpoint + "?" + params.Encode()

	resp, err := f.Client.Get(requestURL)
	if err != nil {
		return nil, fmt.Errorf("carrier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carrier request: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("carrier response: %w", err)
	}

	var payload struct {
		List []map[string]any `json:"list"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("carrier response: %w", err)
	}

	if len(payload.List) == 0 {
		return nil, ErrNotFound
	}

	return payload.List, nil
}

func requireKeys(entry map[string]any, keys []string) error {
	var missing []string
	for _, key := range keys {
		if _, ok := entry[key]; !ok {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("carrier payload missing fields %v", missing)
	}

	return nil
}

func stringField(entry map[string]any, key string) string {
	switch value := entry[key].(type) {
	case string:
		return value
	case float64:
		// jqGrid endpoints occasionally return numerics for numeric
		// columns.
		return fmt.Sprintf("%.0f", value)
	default:
		return ""
	}
}
