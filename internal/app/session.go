// Package app provides the analysis session, its events, and the application theme.
package app

import (
	"errors"
	"fmt"
	goimage "image"
	"log"
	"sync"

	"microalgae-counter/internal/analysis"
	"microalgae-counter/internal/annotate"
	"microalgae-counter/internal/detect"
	"microalgae-counter/internal/export"
	"microalgae-counter/internal/image"
	"microalgae-counter/internal/settings"
)

// Errors surfaced to the user. ErrUnreadable comes from image loading.
var (
	ErrNoImage    = errors.New("no image loaded")
	ErrNoResults  = export.ErrNoResults
	ErrUnreadable = image.ErrUnreadable
)

// EventType identifies different session events.
type EventType int

const (
	EventImageLoaded       EventType = iota // data: *image.Raster
	EventDetectionComplete                  // data: Outcome
	EventResultsExported                    // data: *export.Paths
	EventParamsChanged                      // data: settings.DetectionParams
	EventSettingsSaved                      // data: string (settings path)
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Outcome is the result of one detection run.
type Outcome struct {
	Detections []detect.Detection
	Summary    analysis.Summary
	Annotated  goimage.Image
}

// NoneDetected reports whether the run completed without finding anything.
func (o Outcome) NoneDetected() bool {
	return len(o.Detections) == 0
}

// Session holds the image under analysis, the current parameters, and the last results.
// It is owned by the presentation layer and replaces any global UI state.
type Session struct {
	mu sync.RWMutex

	image      *image.Raster
	detections []detect.Detection
	summary    analysis.Summary
	annotated  goimage.Image
	completed  bool // a detection run finished for the current image

	params settings.DetectionParams

	store    *settings.Store
	pipeline *detect.Pipeline
	exporter *export.Exporter

	listeners map[EventType][]EventListener
}

// NewSession creates a session with parameters loaded from store.
func NewSession(store *settings.Store, exporter *export.Exporter) *Session {
	s := &Session{
		store:     store,
		pipeline:  detect.DefaultPipeline(),
		exporter:  exporter,
		params:    settings.DefaultParams(),
		listeners: make(map[EventType][]EventListener),
	}
	if store != nil {
		s.params = store.Load()
	}
	return s
}

// SetPipeline replaces the detection pipeline (e.g. to change numbering order).
func (s *Session) SetPipeline(p *detect.Pipeline) {
	s.mu.Lock()
	s.pipeline = p
	s.mu.Unlock()
}

// On registers an event listener for the specified event type.
func (s *Session) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *Session) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Params returns the current detection parameters.
func (s *Session) Params() settings.DetectionParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// SetParams stores p, clamped to the slider range. Existing results are kept until the next run.
func (s *Session) SetParams(p settings.DetectionParams) {
	p = p.Clamp()
	s.mu.Lock()
	changed := p != s.params
	s.params = p
	s.mu.Unlock()

	if changed {
		s.Emit(EventParamsChanged, p)
	}
}

// SaveSettings persists the current parameters.
func (s *Session) SaveSettings() error {
	if s.store == nil {
		return fmt.Errorf("no settings store configured")
	}
	params := s.Params()
	if err := s.store.Save(params); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("Settings saved to %s", s.store.Path())
	s.Emit(EventSettingsSaved, s.store.Path())
	return nil
}

// Image returns the loaded image, or nil.
func (s *Session) Image() *image.Raster {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.image
}

// Results returns the last detection outcome and whether one exists for the current image.
func (s *Session) Results() (Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Outcome{
		Detections: s.detections,
		Summary:    s.summary,
		Annotated:  s.annotated,
	}, s.completed
}

// LoadImage replaces the current image. On failure the session is left unchanged.
// On success previous detections and statistics are discarded.
func (s *Session) LoadImage(path string) error {
	raster, err := image.Load(path)
	if err != nil {
		log.Printf("Failed to load image %s: %v", path, err)
		return err
	}

	s.mu.Lock()
	s.image = raster
	s.detections = nil
	s.summary = analysis.Zero()
	s.annotated = nil
	s.completed = false
	s.mu.Unlock()

	log.Printf("Loaded %s image %s (%dx%d)", raster.Format, raster.Name(), raster.Width(), raster.Height())
	s.Emit(EventImageLoaded, raster)
	return nil
}

// Detect runs detection on the current image with the current parameters. The previous
// results are replaced, never merged. Finding nothing is reported through
// Outcome.NoneDetected, not as an error.
func (s *Session) Detect() (Outcome, error) {
	s.mu.RLock()
	raster := s.image
	params := s.params
	pipeline := s.pipeline
	s.mu.RUnlock()

	if raster == nil {
		return Outcome{}, ErrNoImage
	}

	dets, err := pipeline.Run(raster.Image, params)
	if err != nil {
		return Outcome{}, err
	}

	annotated, err := annotate.Annotate(raster.Image, dets)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Detections: dets,
		Summary:    analysis.Summarize(dets, raster.Width(), raster.Height()),
		Annotated:  annotated,
	}

	s.mu.Lock()
	s.detections = out.Detections
	s.summary = out.Summary
	s.annotated = out.Annotated
	s.completed = true
	s.mu.Unlock()

	log.Printf("Detection on %s: %d cells, mean radius %s px", raster.Name(), out.Summary.Count, out.Summary.FormatRadius())
	s.Emit(EventDetectionComplete, out)
	return out, nil
}

// Export writes the last results to the exporter's directory.
func (s *Session) Export() (*export.Paths, error) {
	s.mu.RLock()
	hasImage := s.image != nil
	res := export.Result{
		Annotated:  s.annotated,
		Detections: s.detections,
		Summary:    s.summary,
		Completed:  s.completed,
	}
	exporter := s.exporter
	s.mu.RUnlock()

	if !hasImage {
		return nil, ErrNoImage
	}
	if exporter == nil {
		return nil, fmt.Errorf("no exporter configured")
	}

	paths, err := exporter.Export(res)
	if err != nil {
		return nil, err
	}

	log.Printf("Results exported to %s", paths.Dir)
	s.Emit(EventResultsExported, paths)
	return paths, nil
}
