package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"canvas-tasks/internal/canvas"
	"canvas-tasks/internal/config"
	"canvas-tasks/internal/domain"
	"canvas-tasks/internal/errors"
	"canvas-tasks/internal/logging"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// aggregatorServiceImpl implements the Aggregator interface
type aggregatorServiceImpl struct {
	client     canvas.Client
	reference  *time.Location
	baseURL    string
	pastDays   int
	futureDays int

	// refreshMu serializes whole refresh cycles; snapshot replacement is
	// not safe under concurrent writers.
	refreshMu sync.Mutex
	// currentMu guards the published snapshot only.
	currentMu sync.RWMutex
	current   *RefreshResult
}

// NewAggregator creates a new Aggregator instance
func NewAggregator(client canvas.Client, cfg *config.Config) (Aggregator, error) {
	reference, err := cfg.ReferenceLocation()
	if err != nil {
		return nil, err
	}

	return &aggregatorServiceImpl{
		client:     client,
		reference:  reference,
		baseURL:    strings.TrimRight(cfg.Canvas.BaseURL, "/"),
		pastDays:   cfg.Window.PastDays,
		futureDays: cfg.Window.FutureDays,
	}, nil
}

// Refresh fetches courses, planner notes, calendar events and per-course
// assignments, normalizes them and publishes a fresh snapshot.
func (a *aggregatorServiceImpl) Refresh(ctx context.Context) (*RefreshResult, error) {
	a.refreshMu.Lock()
	defer a.refreshMu.Unlock()

	// Identity validation and the course fetch are preconditions: if either
	// fails the whole refresh fails and the previous snapshot stays up.
	if _, err := a.client.ValidateToken(ctx); err != nil {
		return nil, errors.NewAggregationError("identity validation failed", err)
	}

	courses, err := a.client.ListActiveCourses(ctx)
	if err != nil {
		return nil, errors.NewAggregationError("course fetch failed", err)
	}

	// One reference "now" per refresh so every comparison in this cycle is
	// consistent.
	nowRef := domain.LocalTimeOf(timeNow(), a.reference)
	windowStart := timeNow().AddDate(0, 0, -a.pastDays)
	windowEnd := timeNow().AddDate(0, 0, a.futureDays)

	var fetchErrors []error

	notes, err := a.client.ListPlannerNotes(ctx, windowStart, windowEnd)
	if err != nil {
		logging.Warnf("refresh: skipping planner notes: %v", err)
		fetchErrors = append(fetchErrors, err)
	}

	events, err := a.client.ListCalendarEvents(ctx, windowStart, windowEnd)
	if err != nil {
		logging.Warnf("refresh: skipping calendar events: %v", err)
		fetchErrors = append(fetchErrors, err)
	}

	normalizer := domain.NewNormalizer(a.reference, a.baseURL, courses)

	var tasks []domain.Task
	for _, note := range notes {
		if task, ok := normalizer.FromPlannerNote(note); ok {
			tasks = append(tasks, task)
		}
	}
	for _, event := range events {
		if task, ok := normalizer.FromCalendarEvent(event); ok {
			tasks = append(tasks, task)
		}
	}
	for _, course := range courses {
		assignments, err := a.client.ListAssignments(ctx, course.ID)
		if err != nil {
			// One course failing must not abort the whole refresh.
			logging.Warnf("refresh: skipping assignments for course %d: %v", course.ID, err)
			fetchErrors = append(fetchErrors, err)
			continue
		}
		for _, assignment := range assignments {
			if task, ok := normalizer.FromAssignment(assignment); ok {
				tasks = append(tasks, task)
			}
		}
	}

	tasks = a.filterWindow(tasks, nowRef)

	// Stable sort: ties keep fetch order.
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].DueDate.Compare(tasks[j].DueDate) < 0
	})

	result := &RefreshResult{
		Tasks:   tasks,
		Index:   domain.NewSelectionIndex(tasks),
		Now:     nowRef,
		Courses: courses,
		Partial: len(fetchErrors) > 0,
		Errors:  fetchErrors,
	}

	a.currentMu.Lock()
	a.current = result
	a.currentMu.Unlock()

	logging.Infof("refresh: %d tasks loaded from %d courses", len(tasks), len(courses))
	return result, nil
}

// filterWindow keeps tasks due between the reference "now" and the future
// edge of the window. Past tasks never show.
func (a *aggregatorServiceImpl) filterWindow(tasks []domain.Task, nowRef domain.LocalTime) []domain.Task {
	futureEdge := nowRef.AddDays(a.futureDays)

	kept := tasks[:0]
	for _, task := range tasks {
		if task.DueDate.Before(nowRef) || task.DueDate.After(futureEdge) {
			continue
		}
		kept = append(kept, task)
	}
	return kept
}

// Current returns the most recently published snapshot
func (a *aggregatorServiceImpl) Current() *RefreshResult {
	a.currentMu.RLock()
	defer a.currentMu.RUnlock()
	return a.current
}
