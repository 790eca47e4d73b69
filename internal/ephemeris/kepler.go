package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/helio/heliogo/internal/angle"
	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/epoch"
)

// meanElements holds J2000 mean orbital elements for the two-body solution:
// mean longitude at epoch, longitude of perihelion, eccentricity, and the
// daily mean motion. Degrees throughout.
type meanElements struct {
	l0   float64 // mean longitude at J2000
	peri float64 // longitude of perihelion
	ecc  float64
	n    float64 // mean motion, degrees per day
}

// J2000 mean elements, JPL approximate ephemeris tables.
var planetElements = map[catalog.Body]meanElements{
	catalog.Mercury: {l0: 252.25084, peri: 77.45645, ecc: 0.20563, n: 4.09233445},
	catalog.Venus:   {l0: 181.97973, peri: 131.53298, ecc: 0.00677, n: 1.60213034},
	catalog.Earth:   {l0: 100.46435, peri: 102.94719, ecc: 0.01671, n: 0.98560910},
	catalog.Mars:    {l0: 355.45332, peri: 336.04084, ecc: 0.09341, n: 0.52403304},
	catalog.Jupiter: {l0: 34.40438, peri: 14.75385, ecc: 0.04839, n: 0.08308529},
	catalog.Saturn:  {l0: 49.94432, peri: 92.43194, ecc: 0.05415, n: 0.03345963},
	catalog.Uranus:  {l0: 313.23218, peri: 170.96424, ecc: 0.04717, n: 0.01173129},
	catalog.Neptune: {l0: 304.88003, peri: 44.97135, ecc: 0.00859, n: 0.00598103},
}

// MeanElementsModel is a dependency-free fallback Model: a two-body Kepler
// solution on J2000 mean elements. Accuracy is on the order of a degree over
// the supported range, enough for visualization when no VSOP87 data files
// are installed.
type MeanElementsModel struct{}

// NewMeanElementsModel returns the fallback model.
func NewMeanElementsModel() *MeanElementsModel {
	return &MeanElementsModel{}
}

// EclipticLongitude solves Kepler's equation by fixed-point iteration
// (converges in a handful of rounds for planetary eccentricities) and
// returns the true heliocentric longitude in degrees, [0, 360).
func (m *MeanElementsModel) EclipticLongitude(b catalog.Body, t time.Time) (float64, error) {
	el, ok := planetElements[b]
	if !ok {
		return 0, fmt.Errorf("ephemeris: no mean elements for body %s", b)
	}
	d, err := epoch.DaysSince(t)
	if err != nil {
		return 0, err
	}

	// Mean anomaly from mean longitude and perihelion longitude.
	meanLon := el.l0 + el.n*d
	meanAnom := angle.LongitudeToRadians(angle.WrapDegrees(meanLon - el.peri))

	// Kepler: E = M + e*sin(E).
	ecc := el.ecc
	eccAnom := meanAnom
	for i := 0; i < 8; i++ {
		eccAnom = meanAnom + ecc*math.Sin(eccAnom)
	}

	// True anomaly from eccentric anomaly.
	trueAnom := 2 * math.Atan2(
		math.Sqrt(1+ecc)*math.Sin(eccAnom/2),
		math.Sqrt(1-ecc)*math.Cos(eccAnom/2),
	)

	deg := angle.WrapDegrees(trueAnom*180/math.Pi + el.peri)
	return deg, nil
}
