package exifmeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// coordinateTolerance is the declared round-trip precision of the
// codec, matching the grouping precision.
const coordinateTolerance = 1e-4

func TestToSexagesimalHemispheres(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		refs    [2]string
		want    string
	}{
		{"positive latitude", 38.8126, LatitudeRefs, "N"},
		{"negative latitude", -33.8688, LatitudeRefs, "S"},
		{"positive longitude", 151.2093, LongitudeRefs, "E"},
		{"negative longitude", -90.8554, LongitudeRefs, "W"},
		{"zero latitude is north", 0, LatitudeRefs, "N"},
		{"zero longitude is east", 0, LongitudeRefs, "E"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			angle := ToSexagesimal(tc.decimal, tc.refs)
			assert.Equal(t, tc.want, angle.Ref)
		})
	}
}

func TestToSexagesimalComponents(t *testing.T) {
	angle := ToSexagesimal(38.8126, LatitudeRefs)

	// 38.8126 = 38 deg 48 min 45.36 sec
	assert.Equal(t, uint32(38), angle.Degrees)
	assert.Equal(t, uint32(48), angle.Minutes)
	assert.Equal(t, uint32(10000), angle.SecondsDen)
	assert.InDelta(t, 45.36, float64(angle.SecondsNum)/float64(angle.SecondsDen), 1e-3)
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		decimal float64
		refs    [2]string
	}{
		{"zero", 0, LatitudeRefs},
		{"latitude north pole", 90, LatitudeRefs},
		{"latitude south pole", -90, LatitudeRefs},
		{"longitude antimeridian east", 180, LongitudeRefs},
		{"longitude antimeridian west", -180, LongitudeRefs},
		{"all components nonzero", 38.8126, LatitudeRefs},
		{"negative all components nonzero", -92.3341, LongitudeRefs},
		{"small fraction", 0.0001, LatitudeRefs},
		{"just below degree boundary", 38.9999, LatitudeRefs},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ToSexagesimal(tc.decimal, tc.refs).ToDecimal()
			assert.InDelta(t, tc.decimal, got, coordinateTolerance)
		})
	}
}

func TestRoundTripSweep(t *testing.T) {
	for decimal := -180.0; decimal <= 180.0; decimal += 0.73 {
		got := ToSexagesimal(decimal, LongitudeRefs).ToDecimal()
		assert.InDelta(t, decimal, got, coordinateTolerance)
	}
}

func TestToDecimalZeroDenominator(t *testing.T) {
	angle := SexagesimalAngle{Degrees: 10, Minutes: 30, SecondsNum: 5, SecondsDen: 0, Ref: "N"}
	assert.InDelta(t, 10.5+5.0/3600, angle.ToDecimal(), coordinateTolerance)
}

func TestRoundCoordinate(t *testing.T) {
	assert.InDelta(t, 38.8126, RoundCoordinate(38.81261), 1e-9)
	assert.InDelta(t, 38.8126, RoundCoordinate(38.81259), 1e-9)
	assert.InDelta(t, -90.8554, RoundCoordinate(-90.85541), 1e-9)
}
