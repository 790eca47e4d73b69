package ephemeris

import (
	"math"
	"testing"
	"time"

	"github.com/helio/heliogo/internal/catalog"
	"github.com/helio/heliogo/internal/epoch"
)

// TestMeanElementsAtJ2000 verifies Earth's heliocentric longitude at the
// J2000 epoch against the published value (~100.4 degrees).
func TestMeanElementsAtJ2000(t *testing.T) {
	m := NewMeanElementsModel()
	deg, err := m.EclipticLongitude(catalog.Earth, epoch.J2000)
	if err != nil {
		t.Fatalf("EclipticLongitude error: %v", err)
	}
	if math.Abs(deg-100.4) > 0.5 {
		t.Errorf("Earth longitude at J2000 = %.3f deg, want ~100.4", deg)
	}
}

// TestMeanElementsRange verifies all bodies yield longitudes in [0, 360)
// across a span of dates.
func TestMeanElementsRange(t *testing.T) {
	m := NewMeanElementsModel()
	dates := []time.Time{
		time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1969, 7, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2300, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, b := range catalog.Bodies() {
		for _, d := range dates {
			deg, err := m.EclipticLongitude(b, d)
			if err != nil {
				t.Fatalf("EclipticLongitude(%s, %v) error: %v", b, d, err)
			}
			if deg < 0 || deg >= 360 || math.IsNaN(deg) {
				t.Errorf("EclipticLongitude(%s, %v) = %v, outside [0, 360)", b, d, deg)
			}
		}
	}
}

// TestMeanElementsEarthMotion verifies Earth advances roughly one degree per
// day and closes its orbit after one sidereal year.
func TestMeanElementsEarthMotion(t *testing.T) {
	m := NewMeanElementsModel()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	d0, _ := m.EclipticLongitude(catalog.Earth, start)
	d1, _ := m.EclipticLongitude(catalog.Earth, start.AddDate(0, 0, 1))

	delta := math.Mod(d1-d0+360, 360)
	if delta < 0.8 || delta > 1.2 {
		t.Errorf("Earth daily motion = %.4f deg, want ~0.9856", delta)
	}

	// After one sidereal year (365.25 days) the longitude returns close to
	// its start: the mean motion closes to within a tenth of a degree.
	dYear, _ := m.EclipticLongitude(catalog.Earth, start.Add(time.Duration(365.25*24)*time.Hour))
	diff := math.Abs(math.Mod(dYear-d0+540, 360) - 180)
	if diff > 0.5 {
		t.Errorf("Earth longitude after one period differs by %.4f deg, want < 0.5", diff)
	}
}

// TestMeanElementsZeroTime verifies the zero time surfaces an error rather
// than a fabricated longitude.
func TestMeanElementsZeroTime(t *testing.T) {
	m := NewMeanElementsModel()
	if _, err := m.EclipticLongitude(catalog.Earth, time.Time{}); err == nil {
		t.Fatal("expected error for zero time, got nil")
	}
}
