package observatory

import contract "github.com/john-holland/heycern-m87hey/contracts/observatory"

// FallbackRecord returns the canned M87 observation used when the archive is
// unreachable. The values match the archive's reference record, so the
// pipeline stays demonstrable offline.
func FallbackRecord() contract.BlackHoleRecord {
	return contract.BlackHoleRecord{
		Name:               "M87*",
		MassSolar:          6.5e9,
		DistanceLightYears: 53.5e6,
		RightAscension:     "12h30m49.42338s",
		Declination:        "+12d23m28.0439s",
		Frame:              "icrs",
		Lensing: contract.LensingParameters{
			EinsteinRadiusArcsec: 0.1,
			Shear:                0.1,
			Convergence:          0.2,
		},
		AccretionDiskOrientationDeg: 17,
		JetAngleDeg:                 288,
	}
}
