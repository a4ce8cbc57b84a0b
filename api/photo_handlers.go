package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"photo-seo/assign"
	"photo-seo/exifmeta"
	"photo-seo/model"
	"photo-seo/naming"
	"photo-seo/process"
	"photo-seo/storage"
)

const maxUploadBytes = 200 * 1024 * 1024 // 200 MB

// PhotoHandlers wires the processing pipelines to the HTTP surface.
// Db may be nil; record keeping is then disabled.
type PhotoHandlers struct {
	Log          *zap.Logger
	Processor    *process.Processor
	Reader       *exifmeta.Reader
	Catalog      []model.NamedLocation
	Storage      storage.PhotoStorage
	Db           storage.RecordDB
	SecretKey    string
	PasswordHash string
}

func (h *PhotoHandlers) ServeHTTP(mux *http.ServeMux) {
	mux.HandleFunc("/login", RequestLoggerMiddleware(h.Log, h.handleLogin))
	mux.HandleFunc("/locations", RequestLoggerMiddleware(h.Log, h.handleLocations))
	mux.HandleFunc("/photos", RequestLoggerMiddleware(h.Log,
		RecoveryMiddleware(h.Log, h.authMiddleware(h.handleUploadPhotos))))
	mux.HandleFunc("/video", RequestLoggerMiddleware(h.Log,
		RecoveryMiddleware(h.Log, h.authMiddleware(h.handleVideoFrames))))
}

func (h *PhotoHandlers) handleLocations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.Catalog); err != nil {
		h.Log.Error("failed to encode catalog", zap.Error(err))
	}
}

// handleUploadPhotos processes a batch of individually uploaded photos:
// each file gets a group-aware synthetic assignment, an EXIF stamp and
// an SEO filename, and the whole set comes back as a ZIP.
func (h *PhotoHandlers) handleUploadPhotos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.parseUpload(w, r) {
		return
	}

	window, err := parseWindow(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	catalog := h.catalogFor(r)
	service := formValue(r, "service", "house-washing-service")

	fileHeaders := r.MultipartForm.File["file"]
	if len(fileHeaders) == 0 {
		http.Error(w, "No file found in the request", http.StatusBadRequest)
		return
	}

	batch := process.UploadBatch{Service: service}
	for _, fileHeader := range fileHeaders {
		data, err := readMultipartFile(fileHeader)
		if err != nil {
			http.Error(w, "Error reading file: "+err.Error(), http.StatusInternalServerError)
			return
		}
		batch.Files = append(batch.Files, process.UploadedFile{Name: fileHeader.Filename, Data: data})
	}

	assigner := assign.NewAssigner(assign.NewGenerator(), h.Reader, catalog, window)
	results, err := h.Processor.ProcessUploads(assigner, batch)
	if err != nil {
		if errors.Is(err, assign.ErrInvalidRange) || errors.Is(err, assign.ErrEmptyCatalog) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Log.Error("upload batch failed", zap.Error(err))
		http.Error(w, "Processing failed", http.StatusInternalServerError)
		return
	}

	h.deliver(w, r, results, service)
}

// handleVideoFrames processes pre-extracted video frames: evenly spaced
// samples get a fixed location and capture times drifting from the
// supplied base moment.
func (h *PhotoHandlers) handleVideoFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !h.parseUpload(w, r) {
		return
	}

	base, err := parseBase(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	location, err := h.resolveLocation(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	frameHeaders := r.MultipartForm.File["frames"]
	if len(frameHeaders) == 0 {
		http.Error(w, "No frames found in the request", http.StatusBadRequest)
		return
	}

	frames := make(process.ByteFrames, 0, len(frameHeaders))
	for _, frameHeader := range frameHeaders {
		data, err := readMultipartFile(frameHeader)
		if err != nil {
			http.Error(w, "Error reading frame: "+err.Error(), http.StatusInternalServerError)
			return
		}
		frames = append(frames, data)
	}

	service := formValue(r, "service", "house-washing-service")
	job := process.VideoJob{
		Service:     service,
		Location:    location,
		Base:        base,
		FrameCount:  intFormValue(r, "count", process.DefaultFrameCount),
		StepMinutes: intFormValue(r, "step_minutes", process.DefaultStepMinutes),
	}

	results, err := h.Processor.ProcessVideo(frames, job)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.deliver(w, r, results, service)
}

// deliver packages the results as a ZIP response and mirrors them into
// the configured storage and record store, best effort.
func (h *PhotoHandlers) deliver(w http.ResponseWriter, r *http.Request, results []process.Result, service string) {
	if len(results) == 0 {
		http.Error(w, "No photos could be generated", http.StatusUnprocessableEntity)
		return
	}

	photos := make([]model.GeneratedPhoto, len(results))
	for i, res := range results {
		photos[i] = res.Photo
	}

	zipBytes, err := process.Package(photos)
	if err != nil {
		h.Log.Error("failed to package photos", zap.Error(err))
		http.Error(w, "Packaging failed", http.StatusInternalServerError)
		return
	}

	batchID := time.Now().Format("20060102-150405")
	for _, res := range results {
		if _, err := h.Storage.SavePhoto(res.Photo); err != nil {
			h.Log.Warn("failed to mirror photo", zap.String("name", res.Photo.Name), zap.Error(err))
		}
		h.saveRecord(r, res, batchID)
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s-photos.zip", naming.Slug(service)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(zipBytes); err != nil {
		h.Log.Error("failed to write zip response", zap.Error(err))
	}
}

func (h *PhotoHandlers) saveRecord(r *http.Request, res process.Result, batchID string) {
	if h.Db == nil {
		return
	}
	record := model.PhotoRecord{
		Name:     res.Photo.Name,
		Size:     int64(len(res.Photo.Data)),
		Service:  res.Assignment.Service,
		TakenAt:  res.Assignment.Timestamp,
		LonLat:   model.NewGeoPoint(res.Assignment.Location.Coordinate()),
		GroupKey: res.GroupKey,
		Batch:    batchID,
	}
	if err := h.Db.SaveRecord(r.Context(), record); err != nil {
		h.Log.Warn("failed to save photo record", zap.String("name", record.Name), zap.Error(err))
	}
}

// parseUpload enforces the size limit and parses the multipart form.
func (h *PhotoHandlers) parseUpload(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > maxUploadBytes {
		h.Log.Warn("upload exceeds size limit", zap.Int64("content_length", r.ContentLength))
		http.Error(w, "File size exceeds limit", http.StatusRequestEntityTooLarge)
		return false
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return false
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		http.Error(w, "No files uploaded", http.StatusBadRequest)
		return false
	}
	return true
}

// catalogFor narrows the location catalog to a manually entered point
// when the request carries one.
func (h *PhotoHandlers) catalogFor(r *http.Request) []model.NamedLocation {
	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.FormValue("lng"), 64)
	if latErr != nil || lngErr != nil {
		return h.Catalog
	}
	name := formValue(r, "location", "Custom")
	return []model.NamedLocation{{Name: name, Latitude: lat, Longitude: lng}}
}

// resolveLocation returns the catalog entry named by the request, or a
// manually entered coordinate pair.
func (h *PhotoHandlers) resolveLocation(r *http.Request) (model.NamedLocation, error) {
	if name := r.FormValue("location"); name != "" {
		for _, loc := range h.Catalog {
			if loc.Name == name {
				return loc, nil
			}
		}
	}

	lat, latErr := strconv.ParseFloat(r.FormValue("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.FormValue("lng"), 64)
	if latErr != nil || lngErr != nil {
		return model.NamedLocation{}, errors.New("unknown location: provide a catalog name or lat/lng")
	}
	return model.NamedLocation{Name: formValue(r, "location", "Custom"), Latitude: lat, Longitude: lng}, nil
}

func parseWindow(r *http.Request) (assign.Window, error) {
	start, err := time.Parse(time.DateOnly, r.FormValue("start_date"))
	if err != nil {
		return assign.Window{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err := time.Parse(time.DateOnly, r.FormValue("end_date"))
	if err != nil {
		return assign.Window{}, fmt.Errorf("invalid end_date: %w", err)
	}
	weekdays, _ := strconv.ParseBool(r.FormValue("weekdays_only"))
	return assign.Window{Start: start, End: end, WeekdaysOnly: weekdays}, nil
}

// parseBase combines the date and start-time form fields into the base
// capture moment the frame drift starts from.
func parseBase(r *http.Request) (time.Time, error) {
	day, err := time.Parse(time.DateOnly, r.FormValue("date"))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %w", err)
	}
	clock, err := time.Parse("15:04", formValue(r, "time", "09:00"))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time: %w", err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.Local), nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func formValue(r *http.Request, key, fallback string) string {
	if v := r.FormValue(key); v != "" {
		return v
	}
	return fallback
}

func intFormValue(r *http.Request, key string, fallback int) int {
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
