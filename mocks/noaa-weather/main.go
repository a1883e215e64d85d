// Command noaa-weather is a local stand-in for the NOAA Climate Data Online
// API and the NWS forecast API, which the conditions ETL queries. One process
// serves both upstreams so local development needs a single extra port. The
// response shapes must stay in lockstep with contracts/observatory.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

type cdoObservation struct {
	Date     string  `json:"date"`
	DataType string  `json:"datatype"`
	Station  string  `json:"station"`
	Value    float64 `json:"value"`
}

type cdoResponse struct {
	Results []cdoObservation `json:"results"`
}

type pointResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastPeriod struct {
	Name            string `json:"name"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Temperature     int    `json:"temperature"`
	TemperatureUnit string `json:"temperatureUnit"`
	WindSpeed       string `json:"windSpeed"`
	WindDirection   string `json:"windDirection"`
	ShortForecast   string `json:"shortForecast"`
}

type forecastResponse struct {
	Properties struct {
		Periods []forecastPeriod `json:"periods"`
	} `json:"properties"`
}

// dailyTemps returns a week of average-temperature observations ending
// today, so the ETL's date-range query always finds data.
func dailyTemps(now time.Time) []cdoObservation {
	temps := []float64{13.2, 12.8, 14.1, 13.6, 12.4, 13.9, 14.3}
	obs := make([]cdoObservation, 0, len(temps))
	for i, v := range temps {
		day := now.AddDate(0, 0, i-len(temps)+1)
		obs = append(obs, cdoObservation{
			Date:     day.Format("2006-01-02") + "T00:00:00",
			DataType: "TAVG",
			Station:  "GHCND:USW00023272",
			Value:    v,
		})
	}
	return obs
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func main() {
	addr := flag.String("addr", ":9082", "listen address")
	flag.Parse()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /cdo-web/api/v2/data", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cdoResponse{Results: dailyTemps(time.Now().UTC())})
	})

	// The points lookup hands back a forecast URL on this same host, the way
	// the real NWS API chains point to gridpoint.
	mux.HandleFunc("GET /points/{coords}", func(w http.ResponseWriter, r *http.Request) {
		var resp pointResponse
		resp.Properties.Forecast = fmt.Sprintf("http://%s/gridpoints/MTR/85,105/forecast", r.Host)
		writeJSON(w, resp)
	})

	mux.HandleFunc("GET /gridpoints/{office}/{grid}/forecast", func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().UTC()
		var resp forecastResponse
		resp.Properties.Periods = []forecastPeriod{
			{
				Name:            "Tonight",
				StartTime:       now.Format(time.RFC3339),
				EndTime:         now.Add(12 * time.Hour).Format(time.RFC3339),
				Temperature:     11,
				TemperatureUnit: "C",
				WindSpeed:       "10 km/h",
				WindDirection:   "W",
				ShortForecast:   "Mostly Clear",
			},
			{
				Name:            "Tomorrow",
				StartTime:       now.Add(12 * time.Hour).Format(time.RFC3339),
				EndTime:         now.Add(24 * time.Hour).Format(time.RFC3339),
				Temperature:     16,
				TemperatureUnit: "C",
				WindSpeed:       "15 km/h",
				WindDirection:   "NW",
				ShortForecast:   "Partly Cloudy",
			},
		}
		writeJSON(w, resp)
	})

	log.Printf("mock NOAA/NWS weather listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}
