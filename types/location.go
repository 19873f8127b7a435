package types

// Location is a resolved place: a ZIP code with its city, state, and
// coordinates. Returned by the geocoding client.
type Location struct {
	City    string  `json:"city"`
	State   string  `json:"state"`
	ZipCode string  `json:"zip_code"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// DisplayName returns a "City, ST" label, falling back to the ZIP code when
// the city is unknown.
func (l Location) DisplayName() string {
	if l.City == "" {
		return l.ZipCode
	}
	if l.State == "" {
		return l.City
	}
	return l.City + ", " + l.State
}
