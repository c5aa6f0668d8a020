package openweathermap

// Raw JSON payloads of the three API endpoints. Pointer fields distinguish
// absent values from zero values so that required fields can be enforced
// during translation into domain types.

// coordPayload accepts both coordinate shapes the API uses: the current
// weather endpoint reports {lat, lon}, some geocoding responses spell the
// fields out in full.
type coordPayload struct {
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type geocodeResult struct {
	Name      string   `json:"name"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Country   string   `json:"country"`
}

type conditionPayload struct {
	ID          *int    `json:"id"`
	Main        *string `json:"main"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
}

type mainPayload struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pressure  *int     `json:"pressure"`
	Humidity  *int     `json:"humidity"`
}

type windPayload struct {
	Speed *float64 `json:"speed"`
	Deg   *float64 `json:"deg"`
	Gust  *float64 `json:"gust"`
}

type cloudsPayload struct {
	All *float64 `json:"all"`
}

type volumePayload struct {
	OneHour    float64 `json:"1h"`
	ThreeHours float64 `json:"3h"`
}

type sysPayload struct {
	Sunrise *int64 `json:"sunrise"`
	Sunset  *int64 `json:"sunset"`
}

type currentWeatherPayload struct {
	Coord      *coordPayload      `json:"coord"`
	Weather    []conditionPayload `json:"weather"`
	Main       *mainPayload       `json:"main"`
	Visibility *int               `json:"visibility"`
	Wind       *windPayload       `json:"wind"`
	Clouds     *cloudsPayload     `json:"clouds"`
	Rain       *volumePayload     `json:"rain"`
	Snow       *volumePayload     `json:"snow"`
	Dt         *int64             `json:"dt"`
	Sys        *sysPayload        `json:"sys"`
}

type airQualityPayload struct {
	AQI *int `json:"aqi"`
}

type componentsPayload struct {
	CO   *float64 `json:"co"`
	NO   *float64 `json:"no"`
	NO2  *float64 `json:"no2"`
	O3   *float64 `json:"o3"`
	SO2  *float64 `json:"so2"`
	PM25 *float64 `json:"pm2_5"`
	PM10 *float64 `json:"pm10"`
	NH3  *float64 `json:"nh3"`
}

type pollutionEntryPayload struct {
	Dt         *int64             `json:"dt"`
	Main       *airQualityPayload `json:"main"`
	Components *componentsPayload `json:"components"`
}

type airPollutionPayload struct {
	Coord *coordPayload           `json:"coord"`
	List  []pollutionEntryPayload `json:"list"`
}
