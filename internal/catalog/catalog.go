// Package catalog holds the fixed orbital reference data for the eight
// planets. The catalog is immutable after construction; the engine reads
// parameters but never mutates them.
package catalog

import "strings"

// Body identifies one of the eight planets.
type Body int

const (
	Mercury Body = iota
	Venus
	Earth
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	numBodies
)

var bodyNames = [numBodies]string{
	"Mercury", "Venus", "Earth", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune",
}

// String returns the canonical English planet name.
func (b Body) String() string {
	if !b.Valid() {
		return "Unknown"
	}
	return bodyNames[b]
}

// Valid reports whether b is one of the eight supported planets.
func (b Body) Valid() bool {
	return b >= Mercury && b < numBodies
}

// ParseBody resolves a case-insensitive planet name.
func ParseBody(name string) (Body, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range bodyNames {
		if strings.ToLower(n) == name {
			return Body(i), true
		}
	}
	return -1, false
}

// Bodies returns all eight planets in increasing distance from the Sun.
func Bodies() []Body {
	out := make([]Body, numBodies)
	for i := range out {
		out[i] = Body(i)
	}
	return out
}

// SpinDirection is the sense of a body's axial rotation.
type SpinDirection int

const (
	Prograde SpinDirection = iota
	Retrograde
)

func (d SpinDirection) String() string {
	if d == Retrograde {
		return "retrograde"
	}
	return "prograde"
}

// Sign returns +1 for prograde spin and -1 for retrograde.
func (d SpinDirection) Sign() float64 {
	if d == Retrograde {
		return -1
	}
	return 1
}

// OrbitalParameters holds the per-body reference data used by the position
// engine. DistanceScale is the orbit's semi-major axis in scene units (AU).
// SpinPeriodDays is a magnitude; the rotation sense is carried explicitly in
// SpinDirection rather than as a sign on the period.
type OrbitalParameters struct {
	DistanceScale     float64 // semi-major axis, AU (> 0)
	Eccentricity      float64 // [0, 1)
	InclinationDeg    float64 // orbital plane tilt vs ecliptic, [-180, 180]
	AxialTiltDeg      float64 // spin axis tilt vs orbital plane, [0, 180]
	OrbitalPeriodDays float64 // sidereal orbital period (> 0)
	SpinPeriodDays    float64 // sidereal rotation period magnitude (> 0)
	SpinDirection     SpinDirection
}

// Catalog is an immutable set of orbital parameters keyed by body.
type Catalog struct {
	params [numBodies]OrbitalParameters
}

// Parameters returns the reference data for b.
func (c *Catalog) Parameters(b Body) (OrbitalParameters, bool) {
	if !b.Valid() {
		return OrbitalParameters{}, false
	}
	return c.params[b], true
}

// Default returns the J2000 reference catalog for the eight planets.
// Values: NASA planetary fact sheets / J2000 mean elements.
func Default() *Catalog {
	c := &Catalog{}
	c.params[Mercury] = OrbitalParameters{
		DistanceScale:     0.387,
		Eccentricity:      0.2056,
		InclinationDeg:    7.005,
		AxialTiltDeg:      0.034,
		OrbitalPeriodDays: 87.97,
		SpinPeriodDays:    58.646,
		SpinDirection:     Prograde,
	}
	c.params[Venus] = OrbitalParameters{
		DistanceScale:     0.723,
		Eccentricity:      0.0068,
		InclinationDeg:    3.395,
		AxialTiltDeg:      177.4,
		OrbitalPeriodDays: 224.70,
		SpinPeriodDays:    243.025,
		SpinDirection:     Retrograde,
	}
	c.params[Earth] = OrbitalParameters{
		DistanceScale:     1.000,
		Eccentricity:      0.0167,
		InclinationDeg:    0.0,
		AxialTiltDeg:      23.44,
		OrbitalPeriodDays: 365.25,
		SpinPeriodDays:    0.9973,
		SpinDirection:     Prograde,
	}
	c.params[Mars] = OrbitalParameters{
		DistanceScale:     1.524,
		Eccentricity:      0.0934,
		InclinationDeg:    1.850,
		AxialTiltDeg:      25.19,
		OrbitalPeriodDays: 686.97,
		SpinPeriodDays:    1.026,
		SpinDirection:     Prograde,
	}
	c.params[Jupiter] = OrbitalParameters{
		DistanceScale:     5.204,
		Eccentricity:      0.0490,
		InclinationDeg:    1.303,
		AxialTiltDeg:      3.13,
		OrbitalPeriodDays: 4332.59,
		SpinPeriodDays:    0.4135,
		SpinDirection:     Prograde,
	}
	c.params[Saturn] = OrbitalParameters{
		DistanceScale:     9.582,
		Eccentricity:      0.0565,
		InclinationDeg:    2.489,
		AxialTiltDeg:      26.73,
		OrbitalPeriodDays: 10759.22,
		SpinPeriodDays:    0.4440,
		SpinDirection:     Prograde,
	}
	c.params[Uranus] = OrbitalParameters{
		DistanceScale:     19.201,
		Eccentricity:      0.0463,
		InclinationDeg:    0.773,
		AxialTiltDeg:      97.77,
		OrbitalPeriodDays: 30688.5,
		SpinPeriodDays:    0.7183,
		SpinDirection:     Retrograde,
	}
	c.params[Neptune] = OrbitalParameters{
		DistanceScale:     30.047,
		Eccentricity:      0.0097,
		InclinationDeg:    1.770,
		AxialTiltDeg:      28.32,
		OrbitalPeriodDays: 60182,
		SpinPeriodDays:    0.6713,
		SpinDirection:     Prograde,
	}
	return c
}
