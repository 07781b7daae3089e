// Package app provides application state, events, and the analysis pipeline
// orchestration.
package app

import (
	"sync"

	"xray-insight/internal/xray"
)

// State holds the application state: the loaded radiograph, the latest
// analysis result, and event listeners.
type State struct {
	mu sync.RWMutex

	// Loaded radiograph (nil until an image is opened)
	Radiograph *xray.Radiograph

	// Result of the most recent analysis (nil until one completes)
	Result *AnalysisResult

	// True while an analysis is running; only one runs at a time
	Analyzing bool

	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventImageLoaded EventType = iota
	EventAnalysisStarted
	EventAnalysisComplete
	EventAnalysisFailed
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetRadiograph replaces the loaded radiograph, discarding the previous one
// and any stale analysis result.
func (s *State) SetRadiograph(r *xray.Radiograph) {
	s.mu.Lock()
	if s.Radiograph != nil {
		s.Radiograph.Close()
	}
	if s.Result != nil {
		s.Result.Close()
	}
	s.Radiograph = r
	s.Result = nil
	s.mu.Unlock()

	s.Emit(EventImageLoaded, r)
}

// SetResult stores a completed analysis result, discarding the previous one.
func (s *State) SetResult(res *AnalysisResult) {
	s.mu.Lock()
	if s.Result != nil {
		s.Result.Close()
	}
	s.Result = res
	s.Analyzing = false
	s.mu.Unlock()

	s.Emit(EventAnalysisComplete, res)
}

// BeginAnalysis marks an analysis as running. Returns false if one is
// already in flight or no radiograph is loaded.
func (s *State) BeginAnalysis() bool {
	s.mu.Lock()
	if s.Analyzing || s.Radiograph == nil {
		s.mu.Unlock()
		return false
	}
	s.Analyzing = true
	s.mu.Unlock()

	s.Emit(EventAnalysisStarted, nil)
	return true
}

// FailAnalysis clears the running flag after a failed run.
func (s *State) FailAnalysis(err error) {
	s.mu.Lock()
	s.Analyzing = false
	s.mu.Unlock()

	s.Emit(EventAnalysisFailed, err)
}
