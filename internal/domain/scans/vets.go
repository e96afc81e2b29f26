package scans

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errInvalidLocation = errors.New("lat and lng are required")

// NearbyVetsURL arma la búsqueda de veterinarias de Google Maps centrada en lat,lng.
func NearbyVetsURL(lat, lng string) (string, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || la < -90 || la > 90 {
		return "", errInvalidLocation
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || lo < -180 || lo > 180 {
		return "", errInvalidLocation
	}
	return fmt.Sprintf("https://www.google.com/maps/search/veterinary+clinic/@%s,%s,15z",
		strconv.FormatFloat(la, 'f', -1, 64), strconv.FormatFloat(lo, 'f', -1, 64)), nil
}
