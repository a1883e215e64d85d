// Command eht-archive is a local stand-in for the EHT archive API. It serves
// the M87 lensing record at the path the service's archive client requests.
// The response shape must stay in lockstep with contracts/observatory.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
)

type lensingParameters struct {
	EinsteinRadiusArcsec float64 `json:"einstein_radius_arcsec"`
	Shear                float64 `json:"shear"`
	Convergence          float64 `json:"convergence"`
}

type blackHoleRecord struct {
	Name                        string            `json:"name"`
	MassSolar                   float64           `json:"mass_solar"`
	DistanceLightYears          float64           `json:"distance_light_years"`
	RightAscension              string            `json:"right_ascension"`
	Declination                 string            `json:"declination"`
	Frame                       string            `json:"frame"`
	Lensing                     lensingParameters `json:"lensing"`
	AccretionDiskOrientationDeg float64           `json:"accretion_disk_orientation_deg"`
	JetAngleDeg                 float64           `json:"jet_angle_deg"`
}

// m87 matches the service's fallback record, so switching between mock and
// fallback changes the data source label and nothing else.
var m87 = blackHoleRecord{
	Name:               "M87*",
	MassSolar:          6.5e9,
	DistanceLightYears: 53.5e6,
	RightAscension:     "12h30m49.42338s",
	Declination:        "+12d23m28.0439s",
	Frame:              "icrs",
	Lensing: lensingParameters{
		EinsteinRadiusArcsec: 0.1,
		Shear:                0.1,
		Convergence:          0.2,
	},
	AccretionDiskOrientationDeg: 17,
	JetAngleDeg:                 288,
}

func main() {
	addr := flag.String("addr", ":9081", "listen address")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/targets/m87/lensing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(m87); err != nil {
			log.Printf("encode m87 record: %v", err)
		}
	})

	log.Printf("mock EHT archive listening on %s", *addr)
	log.Fatal(http.ListenAndServe(*addr, mux))
}
