package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"talkschedule/internal/domain"
)

type bookingNotifier struct {
	mailer    domain.Mailer
	renderer  domain.EmailTemplateRenderer
	organizer string
	loc       *time.Location
	logger    *slog.Logger
}

// NewBookingNotifier returns a BookingNotifier that emails organizer using the "talk_booked" template.
// With an empty organizer address it does nothing.
func NewBookingNotifier(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, organizer string, loc *time.Location, logger *slog.Logger) domain.BookingNotifier {
	if loc == nil {
		loc = time.UTC
	}
	return &bookingNotifier{mailer: mailer, renderer: renderer, organizer: organizer, loc: loc, logger: logger}
}

// TalkBooked sends the organizer a summary of the newly booked talk.
func (n *bookingNotifier) TalkBooked(ctx context.Context, talk *domain.Talk) error {
	if talk == nil {
		return fmt.Errorf("booked talk is nil")
	}
	if n.organizer == "" {
		return nil
	}
	data := &domain.TalkBookedEmailData{
		Title:       talk.Title,
		Date:        talk.Date,
		StartTime:   talk.StartTime.In(n.loc).Format("15:04"),
		EndTime:     talk.EndTime.In(n.loc).Format("15:04"),
		Speakers:    strings.Join(talk.Speakers, ", "),
		Categories:  strings.Join(talk.Categories, ", "),
		Description: talk.Description,
	}
	subject, htmlBody, textBody, err := n.renderer.Render("talk_booked", data)
	if err != nil {
		return fmt.Errorf("failed to render talk_booked template: %w", err)
	}
	if err := n.mailer.Send(ctx, n.organizer, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send booking notification: %w", err)
	}
	n.logger.InfoContext(ctx, "booking notification sent", "talk_id", talk.ID, "to", n.organizer)
	return nil
}

// AsyncNotifier delivers booking notifications in the background. Each delivery runs under
// its own timeout, detached from the caller's cancellation, and failures are only logged.
type AsyncNotifier struct {
	next    domain.BookingNotifier
	timeout time.Duration
	logger  *slog.Logger
	wg      sync.WaitGroup
}

func NewAsyncNotifier(next domain.BookingNotifier, timeout time.Duration, logger *slog.Logger) *AsyncNotifier {
	return &AsyncNotifier{next: next, timeout: timeout, logger: logger}
}

// TalkBooked schedules the notification and returns immediately.
func (n *AsyncNotifier) TalkBooked(ctx context.Context, talk *domain.Talk) error {
	if talk == nil {
		return fmt.Errorf("booked talk is nil")
	}
	booked := *talk
	ctx = context.WithoutCancel(ctx)
	n.wg.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, n.timeout)
		defer cancel()
		if err := n.next.TalkBooked(ctx, &booked); err != nil {
			n.logger.WarnContext(ctx, "booking notification failed", "talk_id", booked.ID, "err", err)
		}
	})
	return nil
}

// Wait blocks until every scheduled notification has finished or ctx is done.
func (n *AsyncNotifier) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
