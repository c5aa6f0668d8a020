package types

// Wind describes wind conditions of one observation. Gust is nil when the
// reporting station did not include it.
type Wind struct {
	Speed float64
	Deg   float64
	Gust  *float64
}
