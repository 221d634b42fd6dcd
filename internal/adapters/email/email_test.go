package email

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"testing/fstest"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkschedule/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

func TestTemplateRenderer_TalkBooked(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	subject, html, text, err := r.Render("talk_booked", &domain.TalkBookedEmailData{
		Title:       "Securing <the> Cloud",
		Date:        "2025-03-02",
		StartTime:   "12:20",
		EndTime:     "13:20",
		Speakers:    "Aisha Khan, Ben Carter",
		Categories:  "Security, Cloud",
		Description: "Threats",
	})
	require.NoError(t, err)
	assert.Equal(t, "New talk booked: Securing <the> Cloud (2025-03-02 12:20)", subject)
	assert.Contains(t, html, "Securing &lt;the&gt; Cloud")
	assert.Contains(t, html, "Aisha Khan, Ben Carter")
	assert.Contains(t, text, "2025-03-02, 12:20 - 13:20")
	assert.Contains(t, text, "Threats")
}

func TestTemplateRenderer_Errors(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, _, _, err = r.Render("welcome", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "welcome_subject.txt not found")

	_, err = newTemplateRenderer(fstest.MapFS{
		"tpl/broken.txt": {Data: []byte("{{.Title")},
	}, "tpl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse broken.txt")
}

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	fake := &fakeSES{}
	m := &sesMailer{client: fake, fromAddress: "talks@example.com", fromName: "Talk Schedule", logger: testLogger}

	require.NoError(t, m.Send(context.Background(), "organizer@example.com", "Subject", "<p>hi</p>", ""))
	require.NotNil(t, fake.input)
	assert.Equal(t, "Talk Schedule <talks@example.com>", aws.ToString(fake.input.Source))
	assert.Equal(t, []string{"organizer@example.com"}, fake.input.Destination.ToAddresses)
	assert.Equal(t, "Subject", aws.ToString(fake.input.Message.Subject.Data))
	require.NotNil(t, fake.input.Message.Body.Html)
	assert.Nil(t, fake.input.Message.Body.Text, "empty text body is omitted")

	fake.err = errors.New("throttled")
	err := m.Send(context.Background(), "organizer@example.com", "Subject", "", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewMailer(t *testing.T) {
	tests := []struct {
		name    string
		config  MailerConfig
		wantSES bool
		wantErr string
	}{
		{name: "noop", config: MailerConfig{Provider: "noop"}},
		{name: "empty provider", config: MailerConfig{}},
		{name: "unknown provider", config: MailerConfig{Provider: "smtp"}},
		{name: "ses", config: MailerConfig{Provider: "ses", FromAddress: "talks@example.com", SES: SESConfig{Region: "eu-west-1"}}, wantSES: true},
		{name: "ses without from", config: MailerConfig{Provider: "ses", SES: SESConfig{Region: "eu-west-1"}}, wantErr: "from address"},
		{name: "ses without region", config: MailerConfig{Provider: "ses", FromAddress: "talks@example.com"}, wantErr: "region"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMailer(tt.config, testLogger)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			_, isSES := m.(*sesMailer)
			assert.Equal(t, tt.wantSES, isSES)
			if !isSES {
				assert.NoError(t, m.Send(context.Background(), "a@example.com", "s", "h", "t"))
			}
		})
	}
}
