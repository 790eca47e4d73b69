package ephemeris

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/unit"

	"github.com/helio/heliogo/internal/angle"
	"github.com/helio/heliogo/internal/catalog"
)

// Ephemeris library choice: github.com/soniakeys/meeus/v3/planetposition
//
// Selected for: full VSOP87 series for all eight planets, pure Go, stable
// API, and the companion julian package for time conversion. Series data
// files are loaded lazily per planet from a configured directory (the
// VSOP87 distribution), so startup does not pay for planets never queried.

// vsopIndex maps catalog bodies to planetposition's planet constants.
var vsopIndex = map[catalog.Body]int{
	catalog.Mercury: planetposition.Mercury,
	catalog.Venus:   planetposition.Venus,
	catalog.Earth:   planetposition.Earth,
	catalog.Mars:    planetposition.Mars,
	catalog.Jupiter: planetposition.Jupiter,
	catalog.Saturn:  planetposition.Saturn,
	catalog.Uranus:  planetposition.Uranus,
	catalog.Neptune: planetposition.Neptune,
}

// VSOP87Model computes planetary longitudes from the VSOP87 theory.
// Safe for concurrent use; planet series are loaded once on first query.
type VSOP87Model struct {
	dataDir string

	mu      sync.Mutex
	planets map[catalog.Body]*planetposition.V87Planet
}

// NewVSOP87Model creates a model that loads VSOP87B series files from
// dataDir. No files are read until the first query for each planet.
func NewVSOP87Model(dataDir string) *VSOP87Model {
	return &VSOP87Model{
		dataDir: dataDir,
		planets: make(map[catalog.Body]*planetposition.V87Planet),
	}
}

// Probe eagerly loads one planet's series to verify the data directory is
// usable, so callers can fall back to another model at startup instead of
// discovering a bad path on the first frame.
func (m *VSOP87Model) Probe() error {
	_, err := m.planet(catalog.Earth)
	return err
}

func (m *VSOP87Model) planet(b catalog.Body) (*planetposition.V87Planet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if p, ok := m.planets[b]; ok {
		return p, nil
	}
	idx, ok := vsopIndex[b]
	if !ok {
		return nil, fmt.Errorf("vsop87: no series for body %s", b)
	}
	p, err := planetposition.LoadPlanetPath(idx, m.dataDir)
	if err != nil {
		return nil, fmt.Errorf("vsop87: loading %s series: %w", b, err)
	}
	m.planets[b] = p
	return p, nil
}

// EclipticLongitude returns the heliocentric ecliptic longitude of b at t
// in degrees, referred to the J2000 equinox, wrapped into [0, 360).
//
// Output is sanity-checked for NaN/Inf the same way the rest of the engine
// guards external model output: a bad value is reported as an error rather
// than handed to the renderer.
func (m *VSOP87Model) EclipticLongitude(b catalog.Body, t time.Time) (float64, error) {
	p, err := m.planet(b)
	if err != nil {
		return 0, err
	}

	var l unit.Angle
	l, _, _ = p.Position2000(julian.TimeToJD(t.UTC()))
	deg := l.Deg()
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0, fmt.Errorf("vsop87: non-finite longitude for %s at %s", b, t.UTC().Format(time.RFC3339))
	}
	return angle.WrapDegrees(deg), nil
}
