package assign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-seo/model"
)

// stubReader maps upload bytes to canned metadata records, standing in
// for the EXIF reader.
type stubReader struct {
	records map[string]*model.MetadataRecord
}

func (s stubReader) Read(imageBytes []byte) (*model.MetadataRecord, error) {
	return s.records[string(imageBytes)], nil
}

var testCatalog = []model.NamedLocation{
	{Name: "Wentzville (Default)", Latitude: 38.8126, Longitude: -90.8554},
	{Name: "Columbia, MO", Latitude: 38.9517, Longitude: -92.3341},
}

func testWindow() Window {
	return Window{
		Start:        time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		WeekdaysOnly: true,
	}
}

func TestAssignSharesGroupContext(t *testing.T) {
	shootDate := time.Date(2023, 8, 14, 11, 2, 0, 0, time.UTC)
	shootLoc := model.GeoCoordinate{Latitude: 38.7998, Longitude: -90.6265}
	otherDate := time.Date(2023, 9, 1, 16, 40, 0, 0, time.UTC)

	reader := stubReader{records: map[string]*model.MetadataRecord{
		"burst-1": {Timestamp: &shootDate, Location: &shootLoc},
		"burst-2": {Timestamp: &shootDate, Location: &shootLoc},
		"later":   {Timestamp: &otherDate, Location: &shootLoc},
	}}

	assigner := NewAssigner(NewSeededGenerator(7), reader, testCatalog, testWindow())

	first, err := assigner.Assign("a.jpg", 100, []byte("burst-1"), "house-wash")
	require.NoError(t, err)
	second, err := assigner.Assign("b.jpg", 200, []byte("burst-2"), "house-wash")
	require.NoError(t, err)

	// Same shoot, same synthetic context.
	assert.Equal(t, first.Timestamp, second.Timestamp)
	assert.Equal(t, first.Location, second.Location)

	third, err := assigner.Assign("c.jpg", 300, []byte("later"), "house-wash")
	require.NoError(t, err)
	assert.Len(t, assigner.byGroup, 2)
	assert.NotEqual(t, assigner.GroupOf("a.jpg", 100), assigner.GroupOf("c.jpg", 300))
	_ = third
}

func TestAssignIdempotentPerFile(t *testing.T) {
	assigner := NewAssigner(NewSeededGenerator(8), stubReader{}, testCatalog, testWindow())

	first, err := assigner.Assign("a.jpg", 100, []byte("anything"), "house-wash")
	require.NoError(t, err)
	again, err := assigner.Assign("a.jpg", 100, []byte("anything"), "roof-clean")
	require.NoError(t, err)

	// Re-entry returns the cached assignment, default service included.
	assert.Equal(t, first, again)
}

func TestAssignUngroupedFilesAreIndependent(t *testing.T) {
	assigner := NewAssigner(NewSeededGenerator(9), stubReader{}, testCatalog, testWindow())

	_, err := assigner.Assign("a.jpg", 100, []byte("x"), "house-wash")
	require.NoError(t, err)
	_, err = assigner.Assign("b.jpg", 200, []byte("y"), "house-wash")
	require.NoError(t, err)

	assert.Empty(t, assigner.byGroup)
	assert.Empty(t, assigner.GroupOf("a.jpg", 100))
	assert.Len(t, assigner.byFile, 2)
}

func TestAssignHonorsWindow(t *testing.T) {
	assigner := NewAssigner(NewSeededGenerator(10), stubReader{}, testCatalog, testWindow())

	for i := 0; i < 50; i++ {
		assignment, err := assigner.Assign("f.jpg", int64(i), []byte{byte(i)}, "svc")
		require.NoError(t, err)

		wd := assignment.Timestamp.Weekday()
		assert.True(t, wd >= time.Monday && wd <= time.Friday)
		assert.GreaterOrEqual(t, assignment.Timestamp.Hour(), 8)
		assert.LessOrEqual(t, assignment.Timestamp.Hour(), 18)
	}
}

func TestOverrideService(t *testing.T) {
	shootDate := time.Date(2023, 8, 14, 11, 2, 0, 0, time.UTC)
	shootLoc := model.GeoCoordinate{Latitude: 38.7998, Longitude: -90.6265}
	reader := stubReader{records: map[string]*model.MetadataRecord{
		"burst": {Timestamp: &shootDate, Location: &shootLoc},
	}}

	assigner := NewAssigner(NewSeededGenerator(11), reader, testCatalog, testWindow())

	first, err := assigner.Assign("a.jpg", 100, []byte("burst"), "house-wash")
	require.NoError(t, err)
	second, err := assigner.Assign("b.jpg", 200, []byte("burst"), "house-wash")
	require.NoError(t, err)

	require.True(t, assigner.OverrideService("a.jpg", 100, "gutter-clean"))

	// Only the one file changes; the shared context is untouched.
	updated := assigner.byFile[FileID("a.jpg", 100)]
	assert.Equal(t, "gutter-clean", updated.Service)
	assert.Equal(t, first.Timestamp, updated.Timestamp)
	assert.Equal(t, "house-wash", assigner.byFile[FileID("b.jpg", 200)].Service)
	_ = second

	assert.False(t, assigner.OverrideService("missing.jpg", 1, "x"))
}

func TestAssignEmptyCatalog(t *testing.T) {
	assigner := NewAssigner(NewSeededGenerator(12), stubReader{}, nil, testWindow())

	_, err := assigner.Assign("a.jpg", 100, []byte("x"), "svc")
	assert.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestAssignInvalidWindow(t *testing.T) {
	window := Window{
		Start: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
	}
	assigner := NewAssigner(NewSeededGenerator(13), stubReader{}, testCatalog, window)

	_, err := assigner.Assign("a.jpg", 100, []byte("x"), "svc")
	assert.ErrorIs(t, err, ErrInvalidRange)
}
