// Package observatory retrieves the M87 gravitational-lensing record from
// the EHT archive upstream, with caching, throttling, circuit breaking, and
// a canned fallback so the demonstration pipeline stays runnable when the
// archive is unreachable.
package observatory

import (
	"fmt"
	"time"

	contract "github.com/john-holland/heycern-m87hey/contracts/observatory"
	"github.com/john-holland/heycern-m87hey/internal/lensing"
)

// M87Redshift is the cosmological redshift of the M87 lens, the reference
// value applied to spectra unless overridden by configuration.
const M87Redshift = 0.00436

// Source records where an observation came from.
type Source string

const (
	SourceArchive  Source = "archive"
	SourceCache    Source = "cache"
	SourceFallback Source = "fallback"
)

// Observation is the domain view of an archive record: validated lens
// parameters plus the astrometry the report layer displays.
type Observation struct {
	Name                        string                 `json:"name"`
	MassSolar                   float64                `json:"mass_solar"`
	DistanceLightYears          float64                `json:"distance_light_years"`
	RightAscension              string                 `json:"right_ascension"`
	Declination                 string                 `json:"declination"`
	Frame                       string                 `json:"frame"`
	Lens                        lensing.LensParameters `json:"lens"`
	AccretionDiskOrientationDeg float64                `json:"accretion_disk_orientation_deg"`
	JetAngleDeg                 float64                `json:"jet_angle_deg"`
	Redshift                    float64                `json:"redshift"`
	Source                      Source                 `json:"source"`
	FetchedAt                   time.Time              `json:"fetched_at"`
}

// fromContract validates a wire record into an Observation. Lens parameters
// outside the model's domain are rejected here, before they can reach the
// transform.
func fromContract(rec contract.BlackHoleRecord, redshift float64, source Source, fetchedAt time.Time) (Observation, error) {
	lens, err := lensing.NewLensParameters(
		rec.Lensing.EinsteinRadiusArcsec,
		rec.Lensing.Shear,
		rec.Lensing.Convergence,
	)
	if err != nil {
		return Observation{}, fmt.Errorf("archive lensing parameters: %w", err)
	}
	return Observation{
		Name:                        rec.Name,
		MassSolar:                   rec.MassSolar,
		DistanceLightYears:          rec.DistanceLightYears,
		RightAscension:              rec.RightAscension,
		Declination:                 rec.Declination,
		Frame:                       rec.Frame,
		Lens:                        lens,
		AccretionDiskOrientationDeg: rec.AccretionDiskOrientationDeg,
		JetAngleDeg:                 rec.JetAngleDeg,
		Redshift:                    redshift,
		Source:                      source,
		FetchedAt:                   fetchedAt,
	}, nil
}
