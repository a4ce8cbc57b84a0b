package exifmeta

import (
	"bytes"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"photo-seo/model"
)

// Reader extracts the capture timestamp and GPS position from an
// image's EXIF block, as far as they are present.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Read returns the embedded metadata of an image, or nil when the image
// carries none. A missing or malformed EXIF block degrades to nil
// rather than an error: provenance grouping is best-effort over
// arbitrary uploads, so "unreadable" and "absent" are the same case.
// Partial records are valid; a block without GPS or without a date
// yields a record with the corresponding field nil.
func (r *Reader) Read(imageBytes []byte) (*model.MetadataRecord, error) {
	x, err := exif.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, nil
	}

	return &model.MetadataRecord{
		Timestamp: readTimestamp(x),
		Location:  readLocation(x),
	}, nil
}

func readTimestamp(x *exif.Exif) *time.Time {
	for _, field := range []exif.FieldName{exif.DateTimeOriginal, exif.DateTimeDigitized, exif.DateTime} {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		s, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, err := time.Parse(model.ExifTimeLayout, s)
		if err != nil {
			continue
		}
		return &t
	}
	return nil
}

func readLocation(x *exif.Exif) *model.GeoCoordinate {
	lat, ok := readAngle(x, exif.GPSLatitude, exif.GPSLatitudeRef)
	if !ok {
		return nil
	}
	lng, ok := readAngle(x, exif.GPSLongitude, exif.GPSLongitudeRef)
	if !ok {
		return nil
	}

	// Coordinates are reduced to the precision the grouping key uses.
	return &model.GeoCoordinate{
		Latitude:  RoundCoordinate(lat.ToDecimal()),
		Longitude: RoundCoordinate(lng.ToDecimal()),
	}
}

// readAngle rebuilds the sexagesimal encoding from the raw GPS tag
// rationals. Degrees and minutes are stored with a unit denominator by
// this tool and by cameras generally.
func readAngle(x *exif.Exif, valueField, refField exif.FieldName) (SexagesimalAngle, bool) {
	tag, err := x.Get(valueField)
	if err != nil || tag.Count < 3 {
		return SexagesimalAngle{}, false
	}
	refTag, err := x.Get(refField)
	if err != nil {
		return SexagesimalAngle{}, false
	}
	ref, err := refTag.StringVal()
	if err != nil {
		return SexagesimalAngle{}, false
	}

	var parts [3][2]int64
	for i := range parts {
		num, den, err := tag.Rat2(i)
		if err != nil || den == 0 || num < 0 {
			return SexagesimalAngle{}, false
		}
		parts[i] = [2]int64{num, den}
	}

	return SexagesimalAngle{
		Degrees:    uint32(parts[0][0] / parts[0][1]),
		Minutes:    uint32(parts[1][0] / parts[1][1]),
		SecondsNum: uint32(parts[2][0]),
		SecondsDen: uint32(parts[2][1]),
		Ref:        ref,
	}, true
}
