package types

// Temperature groups the temperature readings of one observation, in the
// unit system the observation was requested in.
type Temperature struct {
	Current   float64
	FeelsLike float64
	Min       float64
	Max       float64
}
