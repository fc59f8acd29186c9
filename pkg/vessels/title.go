package vessels

import (
	"errors"
	"fmt"
	"strings"
)

// The registry page title encodes the vessel identity in a fixed left
// to right order:
//
//	... Ship <name> (<type>) Registered in <flag> - IMO <imo> MMSI <mmsi> Call Sign <callsign>
//
// The name segment may carry a leading honorific prefix (MV, MS, MT,
// SS) which is not part of the vessel name.

// FieldError reports one title field that failed validation and was
// zeroed in the returned details.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// RegistryDetails is the vessel identity parsed from a registry page.
type RegistryDetails struct {
	ShipID   int
	Name     string
	Type     string
	Flag     string
	IMO      string
	MMSI     string
	CallSign string
}

var namePrefixes = []string{"MV ", "MS ", "MT ", "SS "}

// ParseRegistryTitle extracts the vessel identity from a registry page
// title. A missing structural marker is a hard error; a field failing
// validation is zeroed and reported through the joined error, never
// silently.
func ParseRegistryTitle(title string) (RegistryDetails, error) {
	var details RegistryDetails

	_, rest, err := cutMarker(title, "Ship ")
	if err != nil {
		return RegistryDetails{}, err
	}

	namePart, rest, err := cutDelimiter(rest, " (")
	if err != nil {
		return RegistryDetails{}, err
	}
	for _, prefix := range namePrefixes {
		if strings.HasPrefix(namePart, prefix) {
			namePart = strings.TrimPrefix(namePart, prefix)
			break
		}
	}
	details.Name = strings.TrimSpace(namePart)

	details.Type, rest, err = cutDelimiter(rest, ")")
	if err != nil {
		return RegistryDetails{}, err
	}

	_, rest, err = cutMarker(rest, "Registered in ")
	if err != nil {
		return RegistryDetails{}, err
	}
	details.Flag, rest, err = cutDelimiter(rest, "-")
	if err != nil {
		return RegistryDetails{}, err
	}
	details.Flag = strings.TrimSpace(details.Flag)

	var fieldErrs []error

	_, rest, err = cutMarker(rest, "IMO ")
	if err != nil {
		return RegistryDetails{}, err
	}
	imo, rest, err := cutDelimiter(rest, " ")
	if err != nil {
		return RegistryDetails{}, err
	}
	if isDigits(imo, 7) {
		details.IMO = imo
	} else {
		fieldErrs = append(fieldErrs, &FieldError{Field: "imo", Value: imo})
	}

	_, rest, err = cutMarker(rest, "MMSI ")
	if err != nil {
		return RegistryDetails{}, err
	}
	mmsi, rest, err := cutDelimiter(rest, " ")
	if err != nil {
		return RegistryDetails{}, err
	}
	if isDigits(mmsi, 9) {
		details.MMSI = mmsi
	} else {
		fieldErrs = append(fieldErrs, &FieldError{Field: "mmsi", Value: mmsi})
	}

	_, rest, err = cutMarker(rest, "Call Sign ")
	if err != nil {
		return RegistryDetails{}, err
	}
	details.CallSign = strings.TrimSpace(rest)

	return details, errors.Join(fieldErrs...)
}

// cutMarker discards everything up to and including the first
// occurrence of marker.
func cutMarker(s string, marker string) (before string, after string, err error) {
	before, after, found := strings.Cut(s, marker)
	if !found {
		return "", "", fmt.Errorf("title marker %q not found", strings.TrimSpace(marker))
	}

	return before, after, nil
}

// cutDelimiter returns the text before the first occurrence of
// delimiter and the remainder after it.
func cutDelimiter(s string, delimiter string) (segment string, rest string, err error) {
	segment, rest, found := strings.Cut(s, delimiter)
	if !found {
		return "", "", fmt.Errorf("title delimiter %q not found", delimiter)
	}

	return segment, rest, nil
}

func isDigits(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}
