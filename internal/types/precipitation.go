package types

// Precipitation holds rain or snow volume in mm over the trailing one and
// three hours. Both default to zero when the API omits them.
type Precipitation struct {
	OneHour    float64
	ThreeHours float64
}
