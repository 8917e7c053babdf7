package geocode

import (
	"encoding/json"
	"fmt"
)

// mapGeocodePayload maps the Google Geocoding payload to a Result.
// ZERO_RESULTS (or an empty result list) maps to (nil, nil).
func mapGeocodePayload(raw []byte) (*Result, error) {
	type gComponent struct {
		LongName  string   `json:"long_name"`
		ShortName string   `json:"short_name"`
		Types     []string `json:"types"`
	}
	type gResult struct {
		FormattedAddress  string       `json:"formatted_address"`
		AddressComponents []gComponent `json:"address_components"`
		Geometry          struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	}

	var root struct {
		Status  string    `json:"status"`
		Results []gResult `json:"results"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, err
	}
	if root.Status == "ZERO_RESULTS" || len(root.Results) == 0 {
		return nil, nil
	}
	if root.Status != "OK" {
		return nil, fmt.Errorf("geocoder status %s", root.Status)
	}

	first := root.Results[0]
	out := &Result{
		FormattedAddress: first.FormattedAddress,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
	}
	for _, comp := range first.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "locality":
				out.City = comp.LongName
			case "administrative_area_level_1":
				out.State = comp.LongName
			case "country":
				out.Country = comp.LongName
			case "postal_code":
				out.Zipcode = comp.LongName
			case "sublocality", "sublocality_level_1":
				if out.Locality == "" { out.Locality = comp.LongName }
			case "neighborhood":
				out.Neighborhood = comp.LongName
			}
		}
	}
	return out, nil
}
