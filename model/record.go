package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PhotoRecord is the persisted trace of one generated photo, kept so a
// batch can be reviewed after delivery.
type PhotoRecord struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Size     int64              `bson:"size"`
	Service  string             `bson:"service,omitempty"`
	TakenAt  time.Time          `bson:"taken_at,omitempty"`
	LonLat   *GeoPoint          `bson:"lonlat,omitempty"`
	GroupKey string             `bson:"group_key,omitempty"`
	Batch    string             `bson:"batch,omitempty"`
}

type GeoPoint struct {
	Type        string    `bson:"type,omitempty"`
	Coordinates []float64 `bson:"coordinates,omitempty"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from a decimal coordinate.
func NewGeoPoint(c GeoCoordinate) *GeoPoint {
	return &GeoPoint{
		Type:        "Point",
		Coordinates: []float64{c.Longitude, c.Latitude},
	}
}
