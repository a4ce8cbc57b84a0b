package assign

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"photo-seo/model"
)

// ErrEmptyCatalog is returned when an assignment needs a location but
// the catalog has no entries.
var ErrEmptyCatalog = errors.New("location catalog is empty")

// MetadataReader extracts pre-existing metadata from uploaded bytes.
type MetadataReader interface {
	Read(imageBytes []byte) (*model.MetadataRecord, error)
}

// Window is the constraint set for synthetic timestamps.
type Window struct {
	Start        time.Time
	End          time.Time
	WeekdaysOnly bool
}

// groupContext is the shared part of an assignment: the fields every
// file in a provenance group must receive identically.
type groupContext struct {
	timestamp time.Time
	location  model.NamedLocation
}

// Assigner resolves one (timestamp, location) pair per logical group of
// uploads within a single batch session. It keeps two caches: per file
// (name+size identity) for idempotent re-entry, and per provenance
// group so related uploads share one assignment. Both caches live and
// die with the Assigner.
type Assigner struct {
	mu      sync.Mutex
	gen     *Generator
	reader  MetadataReader
	catalog []model.NamedLocation
	window  Window

	byFile    map[string]*model.Assignment
	fileGroup map[string]string
	byGroup   map[string]groupContext
}

func NewAssigner(gen *Generator, reader MetadataReader, catalog []model.NamedLocation, window Window) *Assigner {
	return &Assigner{
		gen:     gen,
		reader:  reader,
		catalog: catalog,
		window:  window,

		byFile:    make(map[string]*model.Assignment),
		fileGroup: make(map[string]string),
		byGroup:   make(map[string]groupContext),
	}
}

// FileID is the per-file cache identity.
func FileID(name string, size int64) string {
	return fmt.Sprintf("%s_%d", name, size)
}

// Assign resolves the synthetic assignment for one file. A file already
// seen in this session returns its cached assignment unchanged. A file
// whose original metadata matches a previously seen group reuses that
// group's (timestamp, location) verbatim; otherwise a fresh pair is
// generated and, if the file is groupable, remembered for the rest of
// the batch. The whole lookup-or-generate step runs under one lock so
// two files of the same group can never diverge.
func (a *Assigner) Assign(name string, size int64, original []byte, serviceDefault string) (model.Assignment, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := FileID(name, size)
	if existing, ok := a.byFile[id]; ok {
		return *existing, nil
	}

	// The reader degrades unreadable metadata to nil, never an error.
	rec, err := a.reader.Read(original)
	if err != nil {
		return model.Assignment{}, err
	}

	key := GroupKey(rec)
	gctx, ok := a.byGroup[key]
	if key == "" || !ok {
		gctx, err = a.fresh()
		if err != nil {
			return model.Assignment{}, err
		}
		if key != "" {
			a.byGroup[key] = gctx
		}
	}

	assignment := &model.Assignment{
		Timestamp: gctx.timestamp,
		Location:  gctx.location,
		Service:   serviceDefault,
	}
	a.byFile[id] = assignment
	a.fileGroup[id] = key
	return *assignment, nil
}

// GroupOf reports the provenance key an assigned file was grouped
// under; empty for ungrouped or unseen files.
func (a *Assigner) GroupOf(name string, size int64) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fileGroup[FileID(name, size)]
}

// OverrideService replaces the service label of one already-assigned
// file. The timestamp, location and group cache are untouched, so the
// rest of the group keeps its shared context.
func (a *Assigner) OverrideService(name string, size int64, service string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	assignment, ok := a.byFile[FileID(name, size)]
	if !ok {
		return false
	}
	assignment.Service = service
	return true
}

func (a *Assigner) fresh() (groupContext, error) {
	if len(a.catalog) == 0 {
		return groupContext{}, ErrEmptyCatalog
	}

	var ts time.Time
	var err error
	if a.window.WeekdaysOnly {
		ts, err = a.gen.UniformWeekdayInRange(a.window.Start, a.window.End)
	} else {
		ts, err = a.gen.UniformInRange(a.window.Start, a.window.End)
	}
	if err != nil {
		return groupContext{}, err
	}

	return groupContext{
		timestamp: ts,
		location:  a.gen.PickLocation(a.catalog),
	}, nil
}
