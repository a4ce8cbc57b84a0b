package exifmeta

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
	exifcommon "github.com/dsoprea/go-exif/v3/common"
	jpegstructure "github.com/dsoprea/go-jpeg-image-structure/v2"

	"photo-seo/model"
)

// ErrEncoding marks input bytes that cannot be decoded or re-encoded as
// a JPEG. The affected image is skipped; the rest of a batch proceeds.
var ErrEncoding = errors.New("image cannot be re-encoded")

const jpegQuality = 95

// Writer serializes a MetadataRecord into a JPEG byte stream. Source
// images in indexed or alpha-carrying color modes are normalized to
// plain RGB first, since the output container mandates an RGB JPEG.
type Writer struct {
	quality int
}

func NewWriter() *Writer {
	return &Writer{quality: jpegQuality}
}

// Write re-encodes image bytes as a JPEG carrying the record's
// timestamp and GPS fields. The GPS block is omitted entirely when the
// record has no location; a record with neither field produces a clean
// JPEG with no EXIF segment.
func (w *Writer) Write(imageBytes []byte, rec model.MetadataRecord) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrEncoding, err)
	}

	// Clone converts any source color mode to NRGBA; JPEG encoding
	// then flattens it to RGB.
	var jpegBuf bytes.Buffer
	if err := imaging.Encode(&jpegBuf, imaging.Clone(img), imaging.JPEG, imaging.JPEGQuality(w.quality)); err != nil {
		return nil, fmt.Errorf("%w: encode: %v", ErrEncoding, err)
	}

	if rec.Timestamp == nil && rec.Location == nil {
		return jpegBuf.Bytes(), nil
	}

	intfc, err := jpegstructure.NewJpegMediaParser().ParseBytes(jpegBuf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: parse segments: %v", ErrEncoding, err)
	}
	sl := intfc.(*jpegstructure.SegmentList)

	rootIb, err := newRootBuilder()
	if err != nil {
		return nil, fmt.Errorf("%w: exif builder: %v", ErrEncoding, err)
	}

	if rec.Timestamp != nil {
		if err := setTimestamps(rootIb, rec.Timestamp.Format(model.ExifTimeLayout)); err != nil {
			return nil, fmt.Errorf("%w: timestamp tags: %v", ErrEncoding, err)
		}
	}
	if rec.Location != nil {
		if err := setGPS(rootIb, *rec.Location); err != nil {
			return nil, fmt.Errorf("%w: gps tags: %v", ErrEncoding, err)
		}
	}

	if err := sl.SetExif(rootIb); err != nil {
		return nil, fmt.Errorf("%w: set exif: %v", ErrEncoding, err)
	}

	out := new(bytes.Buffer)
	if err := sl.Write(out); err != nil {
		return nil, fmt.Errorf("%w: write segments: %v", ErrEncoding, err)
	}
	return out.Bytes(), nil
}

func newRootBuilder() (*exif.IfdBuilder, error) {
	im, err := exifcommon.NewIfdMappingWithStandard()
	if err != nil {
		return nil, err
	}
	ti := exif.NewTagIndex()
	return exif.NewIfdBuilder(im, ti, exifcommon.IfdStandardIfdIdentity, exifcommon.EncodeDefaultByteOrder), nil
}

// setTimestamps stamps the primary and the original/digitized fields
// with the same value, matching what a camera writes at capture time.
func setTimestamps(rootIb *exif.IfdBuilder, ts string) error {
	if err := rootIb.SetStandardWithName("DateTime", ts); err != nil {
		return err
	}

	exifIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/Exif")
	if err != nil {
		return err
	}
	if err := exifIb.SetStandardWithName("DateTimeOriginal", ts); err != nil {
		return err
	}
	return exifIb.SetStandardWithName("DateTimeDigitized", ts)
}

func setGPS(rootIb *exif.IfdBuilder, loc model.GeoCoordinate) error {
	gpsIb, err := exif.GetOrCreateIbFromRootIb(rootIb, "IFD/GPSInfo")
	if err != nil {
		return err
	}

	lat := ToSexagesimal(loc.Latitude, LatitudeRefs)
	lng := ToSexagesimal(loc.Longitude, LongitudeRefs)

	if err := gpsIb.SetStandardWithName("GPSLatitudeRef", lat.Ref); err != nil {
		return err
	}
	if err := gpsIb.SetStandardWithName("GPSLatitude", rationals(lat)); err != nil {
		return err
	}
	if err := gpsIb.SetStandardWithName("GPSLongitudeRef", lng.Ref); err != nil {
		return err
	}
	return gpsIb.SetStandardWithName("GPSLongitude", rationals(lng))
}

func rationals(a SexagesimalAngle) []exifcommon.Rational {
	return []exifcommon.Rational{
		{Numerator: a.Degrees, Denominator: 1},
		{Numerator: a.Minutes, Denominator: 1},
		{Numerator: a.SecondsNum, Denominator: a.SecondsDen},
	}
}
