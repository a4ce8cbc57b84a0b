package assign

import (
	"fmt"
	"strconv"

	"photo-seo/exifmeta"
	"photo-seo/model"
)

// dateKeyLayout is the date portion of the EXIF timestamp format.
const dateKeyLayout = "2006:01:02"

// GroupKey derives the provenance grouping key for an upload from its
// original metadata: capture date plus both coordinates rounded to four
// decimal places. Uploads with equal keys are treated as one shoot and
// receive a single shared assignment.
//
// The empty string means "ungrouped": the record is nil, or it carries
// neither a usable date nor a usable (nonzero) coordinate. Every
// ungrouped file gets an independent assignment.
func GroupKey(rec *model.MetadataRecord) string {
	if rec == nil {
		return ""
	}

	hasDate := rec.Timestamp != nil
	hasLocation := rec.Location != nil && !rec.Location.IsZero()
	if !hasDate && !hasLocation {
		return ""
	}

	datePart := ""
	if hasDate {
		datePart = rec.Timestamp.Format(dateKeyLayout)
	}

	var lat, lng float64
	if rec.Location != nil {
		lat = exifmeta.RoundCoordinate(rec.Location.Latitude)
		lng = exifmeta.RoundCoordinate(rec.Location.Longitude)
	}

	return fmt.Sprintf("%s_%s_%s",
		datePart,
		strconv.FormatFloat(lat, 'f', 4, 64),
		strconv.FormatFloat(lng, 'f', 4, 64))
}
