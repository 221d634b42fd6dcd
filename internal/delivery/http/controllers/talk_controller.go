package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"talkschedule/internal/delivery/http/helpers"
	"talkschedule/internal/domain"
	"talkschedule/internal/schedule"
)

// CreateTalkRequest is the request body for POST /api/talks.
// swagger:model CreateTalkRequest
type CreateTalkRequest struct {
	Title       string   `json:"title"`
	Speakers    []string `json:"speakers"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	// Date is the day to book, YYYY-MM-DD.
	Date string `json:"date"`
	// Slot is an optional roster start time (HH:MM). Empty books the first free slot.
	Slot string `json:"slot,omitempty"`
}

// Validate implements helpers.Validator. Only checks shape; the service owns the booking rules.
func (c CreateTalkRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if len(c.Speakers) == 0 {
		errs = append(errs, "speakers must not be empty")
	}
	if len(c.Categories) == 0 {
		errs = append(errs, "categories must not be empty")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	}
	return errs
}

// TalkSuccessResponse is the success response envelope for POST /api/talks (201).
type TalkSuccessResponse struct {
	Data  *domain.Talk      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListTalksSuccessResponse is the success response envelope for GET /api/talks (200).
type ListTalksSuccessResponse struct {
	Data  []*domain.Talk    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListCategoriesSuccessResponse is the success response envelope for GET /api/categories (200).
type ListCategoriesSuccessResponse struct {
	Data  []string          `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListSlotsSuccessResponse is the success response envelope for GET /api/slots (200).
type ListSlotsSuccessResponse struct {
	Data  []domain.SlotWindow `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// AgendaItem is one row of a laid out day: a talk, a lunch break or a transition.
// swagger:model AgendaItem
type AgendaItem struct {
	Kind      string       `json:"kind"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Talk      *domain.Talk `json:"talk,omitempty"`
}

// AgendaSuccessResponse is the success response envelope for GET /api/agenda (200).
type AgendaSuccessResponse struct {
	Data  []AgendaItem      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type TalkController struct {
	Logger  *slog.Logger
	Service domain.TalkService
}

func NewTalkController(logger *slog.Logger, svc domain.TalkService) *TalkController {
	return &TalkController{
		Logger:  logger,
		Service: svc,
	}
}

// ListTalks godoc
// @Summary List talks
// @Description Returns every talk ordered by date and start time. With date, only the talks of that day.
// @Tags talks
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} controllers.ListTalksSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/talks [get]
func (c *TalkController) ListTalks(w http.ResponseWriter, r *http.Request) {
	var (
		talks []*domain.Talk
		err   error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		talks, err = c.Service.ListTalksForDay(r.Context(), date)
	} else {
		talks, err = c.Service.ListTalks(r.Context())
	}
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, talks)
}

// CreateTalk godoc
// @Summary Book a talk
// @Description Books a talk into a free roster slot on the given day. Without slot, the first free slot is used. Categories are added to the category list.
// @Tags talks
// @Accept json
// @Produce json
// @Param talk body CreateTalkRequest true "Talk to book"
// @Success 201 {object} controllers.TalkSuccessResponse "data contains the booked talk"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, or slot_unavailable when the slot is taken or the day is full"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/talks [post]
func (c *TalkController) CreateTalk(w http.ResponseWriter, r *http.Request) {
	var req CreateTalkRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	talk, err := c.Service.CreateTalk(r.Context(), domain.TalkInput{
		Date:        req.Date,
		Slot:        req.Slot,
		Title:       req.Title,
		Speakers:    req.Speakers,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, talk)
}

// DeleteTalk godoc
// @Summary Delete a talk
// @Description Deletes the talk and frees its slot. Categories used by no other talk are dropped.
// @Tags talks
// @Param id path string true "Talk ID (UUID)"
// @Success 204
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/talks/{id} [delete]
func (c *TalkController) DeleteTalk(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Service.DeleteTalk(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteNoContent(w)
}

// ListCategories godoc
// @Summary List categories
// @Description Returns the distinct categories of all talks, sorted.
// @Tags talks
// @Produce json
// @Success 200 {object} controllers.ListCategoriesSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/categories [get]
func (c *TalkController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.Service.ListCategories(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, categories)
}

// ListSlots godoc
// @Summary List free slots
// @Description Returns the roster slots of the day no talk starts at, in roster order. Defaults to tomorrow.
// @Tags slots
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), default tomorrow"
// @Success 200 {object} controllers.ListSlotsSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/slots [get]
func (c *TalkController) ListSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Service.AvailableSlots(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// Agenda godoc
// @Summary Day agenda
// @Description Lays out the talks of the day from the first roster slot with a lunch break after the third talk and transitions between the others. Defaults to tomorrow.
// @Tags slots
// @Produce json
// @Param date query string false "Day (YYYY-MM-DD), default tomorrow"
// @Success 200 {object} controllers.AgendaSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/agenda [get]
func (c *TalkController) Agenda(w http.ResponseWriter, r *http.Request) {
	entries, err := c.Service.Agenda(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	items := make([]AgendaItem, len(entries))
	for i, e := range entries {
		items[i] = AgendaItem{
			Kind:      string(e.Kind),
			StartTime: schedule.SlotOf(e.StartTime).String(),
			EndTime:   schedule.SlotOf(e.EndTime).String(),
		}
		if e.Kind == schedule.KindTalk {
			items[i].Talk = e.Item
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}
