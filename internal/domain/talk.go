package domain

import (
	"context"
	"errors"
	"time"

	"talkschedule/internal/schedule"
)

// DateLayout is the calendar day format used for Talk.Date and path parameters.
const DateLayout = "2006-01-02"

// Sentinel errors for talk operations.
var (
	// ErrValidation is returned when a required talk field is missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrSlotUnavailable is returned when the requested start time is already booked
	// or no roster slot is free on the requested day.
	ErrSlotUnavailable = errors.New("slot unavailable")
	// ErrNotFound is returned when a talk does not exist.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps failures of the underlying store.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidID is returned for ids that cannot belong to any talk.
	ErrInvalidID = errors.New("invalid id")
)

// Talk represents a scheduled conference talk.
// swagger:model Talk
type Talk struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Title       string    `json:"title"`
	Speakers    []string  `json:"speakers"`
	Description string    `json:"description"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTalk returns a new Talk occupying the one hour window starting at startTime.
// Date is derived from startTime in its own location. ID is set by the repository on create.
func NewTalk(title, description string, speakers, categories []string, startTime, createdAt time.Time) *Talk {
	return &Talk{
		Date:        startTime.Format(DateLayout),
		StartTime:   startTime,
		EndTime:     startTime.Add(schedule.TalkDuration),
		Title:       title,
		Speakers:    speakers,
		Description: description,
		Categories:  categories,
		CreatedAt:   createdAt,
	}
}

// TalkInput is a booking request. Date is required; an empty Slot means the first
// free roster slot of that day.
type TalkInput struct {
	Date        string
	Slot        string
	Title       string
	Speakers    []string
	Description string
	Categories  []string
}

// SlotWindow is a free roster slot resolved onto a day.
// swagger:model SlotWindow
type SlotWindow struct {
	Slot      string    `json:"slot"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// AgendaEntry is a talk or a break in a laid out day.
type AgendaEntry = schedule.Entry[*Talk]

// TalkRepository defines storage for talks and the derived category cache.
type TalkRepository interface {
	// List returns all talks ordered by date and start time.
	List(ctx context.Context) ([]*Talk, error)
	// ListByDate returns the talks of one day (YYYY-MM-DD) ordered by start time.
	ListByDate(ctx context.Context, date string) ([]*Talk, error)
	// Create persists the talk and any categories it introduces atomically and sets talk.ID.
	// Returns ErrSlotUnavailable if another talk on the same day starts at the same time.
	Create(ctx context.Context, talk *Talk) error
	// Delete removes the talk and prunes categories no other talk uses. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
	// ListCategories returns the distinct categories of all talks, sorted.
	ListCategories(ctx context.Context) ([]string, error)
	// RebuildCategories re-derives the category cache from all talks.
	RebuildCategories(ctx context.Context) error
}

// TalkService defines the business logic for browsing and booking talks.
type TalkService interface {
	ListTalks(ctx context.Context) ([]*Talk, error)
	ListTalksForDay(ctx context.Context, date string) ([]*Talk, error)
	ListCategories(ctx context.Context) ([]string, error)
	AvailableSlots(ctx context.Context, date string) ([]SlotWindow, error)
	Agenda(ctx context.Context, date string) ([]AgendaEntry, error)
	CreateTalk(ctx context.Context, in TalkInput) (*Talk, error)
	DeleteTalk(ctx context.Context, id string) error
	// Seed fills an empty store with a generated week of talks ending today.
	// It returns the number of talks created.
	Seed(ctx context.Context) (int, error)
}

// BookingNotifier is told about every successful booking.
type BookingNotifier interface {
	TalkBooked(ctx context.Context, talk *Talk) error
}
