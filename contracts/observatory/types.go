// Package observatory defines the wire contract between this service and the
// EHT archive upstream. The mock archive used in local development serves
// exactly these shapes, so drift shows up as a test failure rather than a
// production surprise.
package observatory

// LensingParameters describe the gravitational lens model published by the
// archive for a black hole.
type LensingParameters struct {
	EinsteinRadiusArcsec float64 `json:"einstein_radius_arcsec"`
	Shear                float64 `json:"shear"`
	Convergence          float64 `json:"convergence"`
}

// BlackHoleRecord is the archive's description of an observed black hole.
type BlackHoleRecord struct {
	Name                        string            `json:"name"`
	MassSolar                   float64           `json:"mass_solar"`
	DistanceLightYears          float64           `json:"distance_light_years"`
	RightAscension              string            `json:"right_ascension"`
	Declination                 string            `json:"declination"`
	Frame                       string            `json:"frame"`
	Lensing                     LensingParameters `json:"lensing"`
	AccretionDiskOrientationDeg float64           `json:"accretion_disk_orientation_deg"`
	JetAngleDeg                 float64           `json:"jet_angle_deg"`
}

// ErrorResponse is the archive's error envelope.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
