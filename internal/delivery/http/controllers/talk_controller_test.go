package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkschedule/internal/delivery/http/helpers"
	"talkschedule/internal/domain"
	"talkschedule/internal/schedule"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeTalkService implements domain.TalkService for handler tests.
type fakeTalkService struct {
	talks       []*domain.Talk
	categories  []string
	slots       []domain.SlotWindow
	agenda      []domain.AgendaEntry
	err         error
	lastInput   domain.TalkInput
	lastDate    string
	lastDelete  string
	listedAll   bool
	listedByDay bool
}

func (f *fakeTalkService) ListTalks(ctx context.Context) ([]*domain.Talk, error) {
	f.listedAll = true
	return f.talks, f.err
}

func (f *fakeTalkService) ListTalksForDay(ctx context.Context, date string) ([]*domain.Talk, error) {
	f.listedByDay = true
	f.lastDate = date
	return f.talks, f.err
}

func (f *fakeTalkService) ListCategories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

func (f *fakeTalkService) AvailableSlots(ctx context.Context, date string) ([]domain.SlotWindow, error) {
	f.lastDate = date
	return f.slots, f.err
}

func (f *fakeTalkService) Agenda(ctx context.Context, date string) ([]domain.AgendaEntry, error) {
	f.lastDate = date
	return f.agenda, f.err
}

func (f *fakeTalkService) CreateTalk(ctx context.Context, in domain.TalkInput) (*domain.Talk, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	day, _ := time.Parse(domain.DateLayout, in.Date)
	talk := domain.NewTalk(in.Title, in.Description, in.Speakers, in.Categories, schedule.DefaultRoster[0].On(day), time.Now())
	talk.ID = "6f1c2d2e-8a7b-4c55-9e0f-1a2b3c4d5e6f"
	return talk, nil
}

func (f *fakeTalkService) DeleteTalk(ctx context.Context, id string) error {
	f.lastDelete = id
	return f.err
}

func (f *fakeTalkService) Seed(ctx context.Context) (int, error) { return 0, f.err }

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if data != nil && envelope.Data != nil {
		dataBytes, _ := json.Marshal(envelope.Data)
		require.NoError(t, json.Unmarshal(dataBytes, data))
	}
	return envelope
}

func TestTalkController_CreateTalk(t *testing.T) {
	validBody := `{"title":"Deep Dive into Serverless","speakers":["Aisha Khan"],"categories":["Cloud"],"date":"2025-03-02","slot":"12:20"}`

	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantCode       string
		wantBodySubstr string
		checkCall      func(t *testing.T, fake *fakeTalkService)
	}{
		{
			name:       "success",
			body:       validBody,
			wantStatus: http.StatusCreated,
			checkCall: func(t *testing.T, fake *fakeTalkService) {
				assert.Equal(t, "2025-03-02", fake.lastInput.Date)
				assert.Equal(t, "12:20", fake.lastInput.Slot)
				assert.Equal(t, []string{"Aisha Khan"}, fake.lastInput.Speakers)
				assert.Equal(t, []string{"Cloud"}, fake.lastInput.Categories)
			},
		},
		{
			name:           "missing fields",
			body:           `{"title":""}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "title is required; speakers must not be empty; categories must not be empty; date is required",
		},
		{
			name:           "unknown field",
			body:           `{"title":"x","speakers":["a"],"categories":["b"],"date":"2025-03-02","room":"A"}`,
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:           "service validation",
			body:           validBody,
			fakeErr:        fmt.Errorf("%w: date must not be in the past", domain.ErrValidation),
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeBadRequest,
			wantBodySubstr: "past",
		},
		{
			name:           "slot taken",
			body:           validBody,
			fakeErr:        fmt.Errorf("%w: 12:20 on 2025-03-02 is already booked", domain.ErrSlotUnavailable),
			wantStatus:     http.StatusBadRequest,
			wantCode:       helpers.ErrCodeSlotUnavailable,
			wantBodySubstr: "already booked",
		},
		{
			name:       "store failure",
			body:       validBody,
			fakeErr:    fmt.Errorf("create talk: %w: %w", domain.ErrPersistence, errors.New("disk full")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTalkService{err: tt.fakeErr}
			ctrl := NewTalkController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "http://test/api/talks", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateTalk(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var talk domain.Talk
			envelope := decode(t, rr, &talk)
			if tt.wantStatus == http.StatusCreated {
				require.Nil(t, envelope.Error)
				assert.NotEmpty(t, talk.ID)
				assert.Equal(t, "2025-03-02", talk.Date)
				tt.checkCall(t, fake)
				return
			}
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			if tt.wantBodySubstr != "" {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestTalkController_DeleteTalk(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", id: "6f1c2d2e-8a7b-4c55-9e0f-1a2b3c4d5e6f", wantStatus: http.StatusNoContent},
		{name: "missing id", id: "", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "invalid id", id: "42", fakeErr: fmt.Errorf("%w: \"42\"", domain.ErrInvalidID), wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "not found", id: "6f1c2d2e-8a7b-4c55-9e0f-1a2b3c4d5e6f", fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{name: "store failure", id: "6f1c2d2e-8a7b-4c55-9e0f-1a2b3c4d5e6f", fakeErr: domain.ErrPersistence, wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTalkService{err: tt.fakeErr}
			ctrl := NewTalkController(testLogger, fake)
			req := httptest.NewRequest(http.MethodDelete, "http://test/api/talks/"+tt.id, nil)
			if tt.id != "" {
				req.SetPathValue("id", tt.id)
			}
			rr := httptest.NewRecorder()

			ctrl.DeleteTalk(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rr.Body.String())
				assert.Equal(t, tt.id, fake.lastDelete)
				return
			}
			envelope := decode(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestTalkController_ListTalks(t *testing.T) {
	day := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	talk := domain.NewTalk("Building Resilient Microservices", "", []string{"Johnathan Chen"}, []string{"Backend"}, schedule.DefaultRoster[1].On(day), day)

	t.Run("all talks", func(t *testing.T) {
		fake := &fakeTalkService{talks: []*domain.Talk{talk}}
		rr := httptest.NewRecorder()
		NewTalkController(testLogger, fake).ListTalks(rr, httptest.NewRequest(http.MethodGet, "http://test/api/talks", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var got []*domain.Talk
		decode(t, rr, &got)
		require.Len(t, got, 1)
		assert.Equal(t, talk.Title, got[0].Title)
		assert.True(t, fake.listedAll)
		assert.False(t, fake.listedByDay)
	})

	t.Run("one day", func(t *testing.T) {
		fake := &fakeTalkService{talks: []*domain.Talk{}}
		rr := httptest.NewRecorder()
		NewTalkController(testLogger, fake).ListTalks(rr, httptest.NewRequest(http.MethodGet, "http://test/api/talks?date=2025-03-02", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, fake.listedByDay)
		assert.Equal(t, "2025-03-02", fake.lastDate)
		assert.JSONEq(t, `{"data":[],"error":null}`, rr.Body.String())
	})

	t.Run("bad date", func(t *testing.T) {
		fake := &fakeTalkService{err: fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)}
		rr := httptest.NewRecorder()
		NewTalkController(testLogger, fake).ListTalks(rr, httptest.NewRequest(http.MethodGet, "http://test/api/talks?date=soon", nil))
		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestTalkController_ListCategories(t *testing.T) {
	fake := &fakeTalkService{categories: []string{"AI", "Cloud", "ML"}}
	rr := httptest.NewRecorder()
	NewTalkController(testLogger, fake).ListCategories(rr, httptest.NewRequest(http.MethodGet, "http://test/api/categories", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":["AI","Cloud","ML"],"error":null}`, rr.Body.String())

	fake.err = domain.ErrPersistence
	rr = httptest.NewRecorder()
	NewTalkController(testLogger, fake).ListCategories(rr, httptest.NewRequest(http.MethodGet, "http://test/api/categories", nil))
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestTalkController_ListSlots(t *testing.T) {
	day := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	start, end := schedule.DefaultRoster[2].Window(day)
	fake := &fakeTalkService{slots: []domain.SlotWindow{{Slot: "12:20", StartTime: start, EndTime: end}}}
	rr := httptest.NewRecorder()
	NewTalkController(testLogger, fake).ListSlots(rr, httptest.NewRequest(http.MethodGet, "http://test/api/slots?date=2025-03-02", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2025-03-02", fake.lastDate)
	var got []domain.SlotWindow
	decode(t, rr, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "12:20", got[0].Slot)
	assert.True(t, got[0].StartTime.Equal(start))
	assert.True(t, got[0].EndTime.Equal(end))

	t.Run("defaults to empty date", func(t *testing.T) {
		fake := &fakeTalkService{slots: []domain.SlotWindow{}}
		rr := httptest.NewRecorder()
		NewTalkController(testLogger, fake).ListSlots(rr, httptest.NewRequest(http.MethodGet, "http://test/api/slots", nil))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "", fake.lastDate)
	})
}

func TestTalkController_Agenda(t *testing.T) {
	day := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	var talks []*domain.Talk
	for i := 0; i < 4; i++ {
		talks = append(talks, domain.NewTalk(fmt.Sprintf("talk %d", i), "", []string{"s"}, []string{"c"}, schedule.DefaultRoster[i].On(day), day))
	}
	fake := &fakeTalkService{agenda: schedule.LayoutDay(schedule.DefaultRoster[0].On(day), talks)}
	rr := httptest.NewRecorder()
	NewTalkController(testLogger, fake).Agenda(rr, httptest.NewRequest(http.MethodGet, "http://test/api/agenda?date=2025-03-02", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var items []AgendaItem
	decode(t, rr, &items)
	require.Len(t, items, 7)

	want := []struct{ kind, start, end string }{
		{"talk", "10:00", "11:00"},
		{"transition", "11:00", "11:10"},
		{"talk", "11:10", "12:10"},
		{"transition", "12:10", "12:20"},
		{"talk", "12:20", "13:20"},
		{"lunch", "13:20", "14:20"},
		{"talk", "14:20", "15:20"},
	}
	for i, w := range want {
		assert.Equal(t, w.kind, items[i].Kind, "item %d", i)
		assert.Equal(t, w.start, items[i].StartTime, "item %d", i)
		assert.Equal(t, w.end, items[i].EndTime, "item %d", i)
		if w.kind == "talk" {
			require.NotNil(t, items[i].Talk)
		} else {
			assert.Nil(t, items[i].Talk)
		}
	}
	assert.Equal(t, "talk 3", items[6].Talk.Title)
}
