package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"talkschedule/internal/domain"
	"talkschedule/internal/schedule"
)

type talkService struct {
	repo           domain.TalkRepository
	roster         schedule.Roster
	loc            *time.Location
	notifier       domain.BookingNotifier
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
}

// NewTalkService returns a TalkService booking talks into roster slots. Days are
// interpreted in loc. notifier may be nil.
func NewTalkService(repo domain.TalkRepository,
	roster schedule.Roster,
	loc *time.Location,
	notifier domain.BookingNotifier,
	logger *slog.Logger,
	timeout time.Duration,
) domain.TalkService {
	if loc == nil {
		loc = time.UTC
	}
	return &talkService{
		repo:           repo,
		roster:         roster,
		loc:            loc,
		notifier:       notifier,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func persistence(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrPersistence, err)
}

func invalid(problems ...string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(problems, "; "))
}

// today returns midnight of the current day in the service location.
func (s *talkService) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// parseDay resolves a YYYY-MM-DD date to midnight in the service location.
// An empty date means tomorrow.
func (s *talkService) parseDay(date string) (time.Time, error) {
	if date == "" {
		return s.today().AddDate(0, 0, 1), nil
	}
	day, err := time.ParseInLocation(domain.DateLayout, date, s.loc)
	if err != nil {
		return time.Time{}, invalid(fmt.Sprintf("date %q must be YYYY-MM-DD", date))
	}
	return day, nil
}

func (s *talkService) ListTalks(ctx context.Context) ([]*domain.Talk, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	talks, err := s.repo.List(ctx)
	if err != nil {
		return nil, persistence("list talks", err)
	}
	if talks == nil {
		talks = []*domain.Talk{}
	}
	return talks, nil
}

func (s *talkService) ListTalksForDay(ctx context.Context, date string) ([]*domain.Talk, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	return s.talksOn(ctx, day)
}

func (s *talkService) talksOn(ctx context.Context, day time.Time) ([]*domain.Talk, error) {
	talks, err := s.repo.ListByDate(ctx, day.Format(domain.DateLayout))
	if err != nil {
		return nil, persistence("list talks for day", err)
	}
	if talks == nil {
		talks = []*domain.Talk{}
	}
	return talks, nil
}

func (s *talkService) ListCategories(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, persistence("list categories", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *talkService) freeSlots(ctx context.Context, day time.Time) ([]schedule.Slot, error) {
	talks, err := s.talksOn(ctx, day)
	if err != nil {
		return nil, err
	}
	booked := make([]time.Time, len(talks))
	for i, t := range talks {
		booked[i] = t.StartTime
	}
	return schedule.AvailableSlots(s.roster, day, booked), nil
}

func (s *talkService) AvailableSlots(ctx context.Context, date string) ([]domain.SlotWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	free, err := s.freeSlots(ctx, day)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SlotWindow, len(free))
	for i, slot := range free {
		start, end := slot.Window(day)
		out[i] = domain.SlotWindow{Slot: slot.String(), StartTime: start, EndTime: end}
	}
	return out, nil
}

// Agenda lists the day's talks at their booked times in the service location, with lunch
// and transition breaks between talks in adjacent roster slots.
func (s *talkService) Agenda(ctx context.Context, date string) ([]domain.AgendaEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	day, err := s.parseDay(date)
	if err != nil {
		return nil, err
	}
	talks, err := s.talksOn(ctx, day)
	if err != nil {
		return nil, err
	}
	return schedule.LayoutBooked(s.roster, talks, func(t *domain.Talk) (time.Time, time.Time) {
		return t.StartTime.In(s.loc), t.EndTime.In(s.loc)
	}), nil
}

func (s *talkService) CreateTalk(ctx context.Context, in domain.TalkInput) (*domain.Talk, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	title := strings.TrimSpace(in.Title)
	speakers := normalize(in.Speakers)
	categories := normalize(in.Categories)

	var problems []string
	if title == "" {
		problems = append(problems, "title is required")
	}
	if len(speakers) == 0 {
		problems = append(problems, "at least one speaker is required")
	}
	if len(categories) == 0 {
		problems = append(problems, "at least one category is required")
	}
	var day time.Time
	if strings.TrimSpace(in.Date) == "" {
		problems = append(problems, "date is required")
	} else if d, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(in.Date), s.loc); err != nil {
		problems = append(problems, fmt.Sprintf("date %q must be YYYY-MM-DD", in.Date))
	} else if d.Before(s.today()) {
		problems = append(problems, "date must not be in the past")
	} else {
		day = d
	}
	var requested *schedule.Slot
	if in.Slot != "" {
		slot, err := schedule.ParseSlot(in.Slot)
		switch {
		case err != nil:
			problems = append(problems, err.Error())
		case !s.roster.Contains(slot):
			problems = append(problems, fmt.Sprintf("slot %s is not on the roster (%s)", slot, s.roster))
		default:
			requested = &slot
		}
	}
	if len(problems) > 0 {
		return nil, invalid(problems...)
	}

	free, err := s.freeSlots(ctx, day)
	if err != nil {
		return nil, err
	}
	if len(free) == 0 {
		return nil, fmt.Errorf("%w: no free slot on %s", domain.ErrSlotUnavailable, day.Format(domain.DateLayout))
	}
	slot := free[0]
	if requested != nil {
		if !containsSlot(free, *requested) {
			return nil, fmt.Errorf("%w: %s on %s is already booked", domain.ErrSlotUnavailable, requested, day.Format(domain.DateLayout))
		}
		slot = *requested
	}

	talk := domain.NewTalk(title, strings.TrimSpace(in.Description), speakers, categories, slot.On(day), s.now())
	if err := s.repo.Create(ctx, talk); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			return nil, fmt.Errorf("%w: %s on %s was booked concurrently", domain.ErrSlotUnavailable, slot, talk.Date)
		}
		return nil, persistence("create talk", err)
	}

	if s.notifier != nil {
		if err := s.notifier.TalkBooked(ctx, talk); err != nil {
			s.logger.WarnContext(ctx, "booking notification failed", "talk_id", talk.ID, "err", err)
		}
	}
	s.logger.InfoContext(ctx, "talk booked", "talk_id", talk.ID, "date", talk.Date, "slot", slot.String())
	return talk, nil
}

func (s *talkService) DeleteTalk(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return persistence("delete talk", err)
	}
	return nil
}

// normalize trims every value, drops empties and removes duplicates, keeping first occurrences in order.
func normalize(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func containsSlot(slots []schedule.Slot, slot schedule.Slot) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
