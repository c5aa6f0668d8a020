package types

import "fmt"

type Coords struct {
	Latitude  float64
	Longitude float64
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coords) String() string {
	return fmt.Sprintf("Coords(lat=%g, lon=%g)", c.Latitude, c.Longitude)
}
