package observatory

// NOAADataResponse is the subset of the NOAA Climate Data Online response the
// conditions ETL consumes.
type NOAADataResponse struct {
	Results []NOAAObservation `json:"results"`
}

// NOAAObservation is a single climate data point.
type NOAAObservation struct {
	Date     string  `json:"date"`
	DataType string  `json:"datatype"`
	Station  string  `json:"station"`
	Value    float64 `json:"value"`
}

// NWSPointResponse is the National Weather Service point lookup. Only the
// forecast URL is consumed.
type NWSPointResponse struct {
	Properties NWSPointProperties `json:"properties"`
}

type NWSPointProperties struct {
	Forecast string `json:"forecast"`
}

// NWSForecastResponse carries the forecast periods for a point.
type NWSForecastResponse struct {
	Properties NWSForecastProperties `json:"properties"`
}

type NWSForecastProperties struct {
	Periods []NWSForecastPeriod `json:"periods"`
}

// NWSForecastPeriod is one forecast window.
type NWSForecastPeriod struct {
	Name            string `json:"name"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Temperature     int    `json:"temperature"`
	TemperatureUnit string `json:"temperatureUnit"`
	WindSpeed       string `json:"windSpeed"`
	WindDirection   string `json:"windDirection"`
	ShortForecast   string `json:"shortForecast"`
}
