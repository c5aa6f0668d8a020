package openweathermap

import (
	"time"

	"owm-exporter/internal/types"
)

// coordsFrom builds a coordinate from whichever field pair the response
// used. The short spelling wins when both are present.
func coordsFrom(lat, lon, latitude, longitude *float64) (types.Coords, error) {
	if lat == nil {
		lat = latitude
	}
	if lon == nil {
		lon = longitude
	}
	if lat == nil || lon == nil {
		return types.Coords{}, missingField("lat/lon")
	}
	return types.NewCoords(*lat, *lon), nil
}

// newWeatherCondition never fails: optional condition sub-fields fall back
// to sentinel values instead.
func newWeatherCondition(p conditionPayload) types.WeatherCondition {
	cond := types.WeatherCondition{
		ID:          types.ConditionIDNotFound,
		Main:        types.ConditionTextNotFound,
		Description: types.ConditionTextNotFound,
		Icon:        types.ConditionTextNotFound,
	}
	if p.ID != nil {
		cond.ID = *p.ID
	}
	if p.Main != nil {
		cond.Main = *p.Main
	}
	if p.Description != nil {
		cond.Description = *p.Description
	}
	if p.Icon != nil {
		cond.Icon = *p.Icon
	}
	return cond
}

// weatherFromPayload translates a current weather response into the domain
// record, enforcing the required fields and defaulting the optional ones
// (wind gust, rain and snow volumes).
func weatherFromPayload(p *currentWeatherPayload) (*types.WeatherInformation, error) {
	if p.Coord == nil {
		return nil, missingField("coord")
	}
	coord, err := coordsFrom(p.Coord.Lat, p.Coord.Lon, p.Coord.Latitude, p.Coord.Longitude)
	if err != nil {
		return nil, err
	}

	if p.Weather == nil {
		return nil, missingField("weather")
	}
	if p.Main == nil {
		return nil, missingField("main")
	}
	if p.Main.Temp == nil || p.Main.FeelsLike == nil || p.Main.TempMin == nil || p.Main.TempMax == nil ||
		p.Main.Pressure == nil || p.Main.Humidity == nil {
		return nil, missingField("main")
	}
	if p.Visibility == nil {
		return nil, missingField("visibility")
	}
	if p.Wind == nil || p.Wind.Speed == nil || p.Wind.Deg == nil {
		return nil, missingField("wind")
	}
	if p.Clouds == nil || p.Clouds.All == nil {
		return nil, missingField("clouds")
	}
	if p.Dt == nil {
		return nil, missingField("dt")
	}
	if p.Sys == nil || p.Sys.Sunrise == nil || p.Sys.Sunset == nil {
		return nil, missingField("sys")
	}

	info := &types.WeatherInformation{
		Coord:      coord,
		Conditions: make([]types.WeatherCondition, 0, len(p.Weather)),
		Temperature: types.Temperature{
			Current:   *p.Main.Temp,
			FeelsLike: *p.Main.FeelsLike,
			Min:       *p.Main.TempMin,
			Max:       *p.Main.TempMax,
		},
		Pressure:   *p.Main.Pressure,
		Humidity:   *p.Main.Humidity,
		Visibility: *p.Visibility,
		Wind: types.Wind{
			Speed: *p.Wind.Speed,
			Deg:   *p.Wind.Deg,
		},
		Cloudiness: *p.Clouds.All,
		Timestamp:  time.Unix(*p.Dt, 0),
		Sunrise:    time.Unix(*p.Sys.Sunrise, 0),
		Sunset:     time.Unix(*p.Sys.Sunset, 0),
	}

	for _, cond := range p.Weather {
		info.Conditions = append(info.Conditions, newWeatherCondition(cond))
	}

	if p.Wind.Gust != nil {
		gust := *p.Wind.Gust
		info.Wind.Gust = &gust
	}
	if p.Rain != nil {
		info.Rain = types.Precipitation{OneHour: p.Rain.OneHour, ThreeHours: p.Rain.ThreeHours}
	}
	if p.Snow != nil {
		info.Snow = types.Precipitation{OneHour: p.Snow.OneHour, ThreeHours: p.Snow.ThreeHours}
	}

	return info, nil
}

// airPollutionFromPayload translates an air pollution response, parsing the
// first entry of the result list.
func airPollutionFromPayload(p *airPollutionPayload) (*types.AirPollutionInformation, error) {
	if p.Coord == nil {
		return nil, missingField("coord")
	}
	coord, err := coordsFrom(p.Coord.Lat, p.Coord.Lon, p.Coord.Latitude, p.Coord.Longitude)
	if err != nil {
		return nil, err
	}

	if len(p.List) == 0 {
		return nil, missingField("list")
	}
	entry := p.List[0]

	if entry.Dt == nil {
		return nil, missingField("list[0].dt")
	}
	if entry.Main == nil || entry.Main.AQI == nil {
		return nil, missingField("list[0].main.aqi")
	}
	c := entry.Components
	if c == nil || c.CO == nil || c.NO == nil || c.NO2 == nil || c.O3 == nil ||
		c.SO2 == nil || c.PM25 == nil || c.PM10 == nil || c.NH3 == nil {
		return nil, missingField("list[0].components")
	}

	return &types.AirPollutionInformation{
		Coord:     coord,
		Timestamp: time.Unix(*entry.Dt, 0),
		AQI:       *entry.Main.AQI,
		Components: types.PollutantConcentrations{
			CO:   *c.CO,
			NO:   *c.NO,
			NO2:  *c.NO2,
			O3:   *c.O3,
			SO2:  *c.SO2,
			PM25: *c.PM25,
			PM10: *c.PM10,
			NH3:  *c.NH3,
		},
	}, nil
}
