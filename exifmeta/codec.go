// Package exifmeta builds and parses the EXIF payload carried by
// generated photos: synthetic capture timestamps and GPS positions in
// the sexagesimal rational encoding the standard requires.
package exifmeta

import "math"

// secondsDenominator fixes the resolution of the seconds rational.
// 1/10000 of an arc second is roughly 3e-8 degrees, far below the 1e-4
// degree precision the grouping logic works at.
const secondsDenominator = 10000

// LatitudeRefs and LongitudeRefs are the hemisphere pairs for the two
// axes, positive member first.
var (
	LatitudeRefs  = [2]string{"N", "S"}
	LongitudeRefs = [2]string{"E", "W"}
)

// SexagesimalAngle is a coordinate in degrees/minutes/seconds form with
// the seconds kept as a rational, plus the hemisphere reference letter.
type SexagesimalAngle struct {
	Degrees    uint32
	Minutes    uint32
	SecondsNum uint32
	SecondsDen uint32
	Ref        string
}

// ToSexagesimal converts a decimal-degree value into its sexagesimal
// encoding. The hemisphere is refs[1] for negative input and refs[0]
// otherwise, so an exact zero always lands in the positive hemisphere.
// Degrees and minutes are truncated; the seconds remainder is truncated
// to 1/10000 of a second, a loss covered by the round-trip tolerance.
func ToSexagesimal(decimal float64, refs [2]string) SexagesimalAngle {
	ref := refs[0]
	if decimal < 0 {
		ref = refs[1]
	}

	abs := math.Abs(decimal)
	deg := math.Trunc(abs)
	minFloat := (abs - deg) * 60
	min := math.Trunc(minFloat)
	sec := (minFloat - min) * 60

	return SexagesimalAngle{
		Degrees:    uint32(deg),
		Minutes:    uint32(min),
		SecondsNum: uint32(sec * secondsDenominator),
		SecondsDen: secondsDenominator,
		Ref:        ref,
	}
}

// ToDecimal is the inverse of ToSexagesimal. A "S" or "W" reference
// negates the result.
func (a SexagesimalAngle) ToDecimal() float64 {
	den := float64(a.SecondsDen)
	if den == 0 {
		den = 1
	}
	seconds := float64(a.SecondsNum) / den

	decimal := float64(a.Degrees) + float64(a.Minutes)/60 + seconds/3600
	if a.Ref == "S" || a.Ref == "W" {
		decimal = -decimal
	}
	return decimal
}

// RoundCoordinate reduces a decimal coordinate to the 4-decimal
// precision shared by the reader and the provenance grouping key.
func RoundCoordinate(decimal float64) float64 {
	return math.Round(decimal*1e4) / 1e4
}
