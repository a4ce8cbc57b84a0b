package process

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"photo-seo/assign"
	"photo-seo/exifmeta"
	"photo-seo/metrics"
	"photo-seo/model"
	"photo-seo/naming"
)

// ErrNoFrames is returned when a video job has no frames to sample.
var ErrNoFrames = errors.New("frame source is empty")

const (
	// DefaultFrameCount matches the ten evenly spaced shots one
	// walkthrough video is turned into.
	DefaultFrameCount = 10
	// DefaultStepMinutes is the drift between sequential shots.
	DefaultStepMinutes = 5
)

// Result is one finished photo together with the assignment behind it,
// so the caller can persist or display the synthetic context.
type Result struct {
	Photo      model.GeneratedPhoto
	Assignment model.Assignment
	GroupKey   string
}

// VideoJob describes one video-to-photos run: a fixed location and
// service, with capture times drifting from Base in StepMinutes steps.
type VideoJob struct {
	Service     string
	Location    model.NamedLocation
	Base        time.Time
	FrameCount  int
	StepMinutes int
}

// UploadedFile is one photo posted in an upload batch.
type UploadedFile struct {
	Name    string
	Data    []byte
	Service string // overrides the batch default when set
}

// UploadBatch is a set of uploaded photos sharing one constraint window.
type UploadBatch struct {
	Service string
	Files   []UploadedFile
}

// Processor drives both pipelines. Per-image encode failures are
// counted, logged and skipped; one bad image never aborts a batch.
type Processor struct {
	writer *exifmeta.Writer
	log    *zap.Logger
	mtr    *metrics.Metrics
}

func NewProcessor(writer *exifmeta.Writer, log *zap.Logger, mtr *metrics.Metrics) *Processor {
	return &Processor{writer: writer, log: log, mtr: mtr}
}

// ProcessVideo samples evenly spaced frames from src and stamps each
// with the job's location and a drifting capture time.
func (p *Processor) ProcessVideo(src FrameSource, job VideoJob) ([]Result, error) {
	start := time.Now()
	p.mtr.BatchesStarted.WithLabelValues("video").Inc()
	defer func() {
		p.mtr.BatchSeconds.WithLabelValues("video").Observe(time.Since(start).Seconds())
	}()

	if job.FrameCount <= 0 {
		job.FrameCount = DefaultFrameCount
	}
	if job.StepMinutes <= 0 {
		job.StepMinutes = DefaultStepMinutes
	}

	positions := FramePositions(src.TotalFrames(), job.FrameCount)
	if len(positions) == 0 {
		return nil, ErrNoFrames
	}

	coord := job.Location.Coordinate()
	results := make([]Result, 0, len(positions))
	for i, pos := range positions {
		raw, err := src.Frame(pos)
		if err != nil {
			p.skip(err, "frame read failed", pos)
			continue
		}

		ts := assign.SequentialDrift(job.Base, i, job.StepMinutes)
		stamped, err := p.writer.Write(raw, model.MetadataRecord{Timestamp: &ts, Location: &coord})
		if err != nil {
			p.skip(err, "frame encode failed", pos)
			continue
		}

		p.mtr.PhotosProcessed.WithLabelValues("success").Inc()
		results = append(results, Result{
			Photo: model.GeneratedPhoto{
				Name: naming.ComposeFrame(job.Service, i, len(positions)),
				Data: stamped,
			},
			Assignment: model.Assignment{Timestamp: ts, Location: job.Location, Service: job.Service},
		})
	}
	return results, nil
}

// ProcessUploads stamps each uploaded photo with its group-aware
// assignment. Files sharing an inferred capture context receive the
// identical (timestamp, location) pair; filenames colliding within the
// batch get a disambiguating counter instead of overwriting each other
// in the ZIP.
func (p *Processor) ProcessUploads(assigner *assign.Assigner, batch UploadBatch) ([]Result, error) {
	start := time.Now()
	p.mtr.BatchesStarted.WithLabelValues("upload").Inc()
	defer func() {
		p.mtr.BatchSeconds.WithLabelValues("upload").Observe(time.Since(start).Seconds())
	}()

	used := make(map[string]int)
	results := make([]Result, 0, len(batch.Files))
	for _, file := range batch.Files {
		service := batch.Service
		if file.Service != "" {
			service = file.Service
		}

		assignment, err := assigner.Assign(file.Name, int64(len(file.Data)), file.Data, service)
		if err != nil {
			// A bad constraint window or an empty catalog fails every
			// file the same way; surface it instead of skipping.
			return nil, fmt.Errorf("assign %q: %w", file.Name, err)
		}

		coord := assignment.Location.Coordinate()
		stamped, err := p.writer.Write(file.Data, model.MetadataRecord{
			Timestamp: &assignment.Timestamp,
			Location:  &coord,
		})
		if err != nil {
			p.skip(err, "upload encode failed", file.Name)
			continue
		}

		base := naming.Compose(assignment.Service, assignment.Location.Name, assignment.Timestamp, 0)
		counter := used[base]
		used[base] = counter + 1

		p.mtr.PhotosProcessed.WithLabelValues("success").Inc()
		results = append(results, Result{
			Photo: model.GeneratedPhoto{
				Name: naming.Compose(assignment.Service, assignment.Location.Name, assignment.Timestamp, counter),
				Data: stamped,
			},
			Assignment: assignment,
			GroupKey:   assigner.GroupOf(file.Name, int64(len(file.Data))),
		})
	}
	return results, nil
}

func (p *Processor) skip(err error, msg string, ref any) {
	p.mtr.PhotosProcessed.WithLabelValues("failure").Inc()
	p.log.Warn(msg, zap.Any("ref", ref), zap.Error(err))
}
