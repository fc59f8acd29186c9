package freight

// Location is a GeoJSON point, Coordinates holding longitude then
// latitude.
type Location struct {
	Type        string    `json:"-"`
	Coordinates []float64 `json:"coordinates"`
}

func NewLocation(longitude float64, latitude float64) *Location {
	return &Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func (l *Location) Longitude() float64 {
	return l.Coordinates[0]
}

func (l *Location) Latitude() float64 {
	return l.Coordinates[1]
}
