package model

import "time"

// ExifTimeLayout is the timestamp layout mandated by the EXIF standard
// for DateTime, DateTimeOriginal and DateTimeDigitized.
const ExifTimeLayout = "2006:01:02 15:04:05"

// GeoCoordinate is a decimal-degree position. Latitude is valid in
// [-90, 90], longitude in [-180, 180].
type GeoCoordinate struct {
	Latitude  float64
	Longitude float64
}

// IsZero reports whether both components are exactly zero.
func (g GeoCoordinate) IsZero() bool {
	return g.Latitude == 0 && g.Longitude == 0
}

// MetadataRecord is the logical payload embedded into an output image.
// Either field may be nil; a record with a nil Location produces no GPS
// block at all when serialized.
type MetadataRecord struct {
	Timestamp *time.Time
	Location  *GeoCoordinate
}

// NamedLocation is a catalog entry: a display name plus its decimal
// coordinates.
type NamedLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Coordinate returns the location's position without the name.
func (l NamedLocation) Coordinate() GeoCoordinate {
	return GeoCoordinate{Latitude: l.Latitude, Longitude: l.Longitude}
}
