package services

import (
	"context"
	"fmt"
	"time"

	"talkschedule/internal/domain"
	"talkschedule/internal/schedule"
)

const (
	seedDays        = 7
	seedTalksPerDay = 6
)

var seedTitles = []string{
	"The Quantum Leap in Machine Learning", "Building Resilient Microservices", "Modern Frontend: Beyond Frameworks",
	"The Art of Data Storytelling", "Securing the Cloud-Native World", "Ethical AI: Navigating the Grey Areas",
	"The Future of Edge Computing", "Advanced CSS Grid Techniques", "Web Assembly: The Next Frontier",
	"Deep Dive into Serverless", "Optimizing Database Performance", "Introduction to Federated Learning",
}

var seedSpeakers = [][]string{
	{"Dr. Evelyn Reed"}, {"Johnathan Chen", "Maria Garcia"}, {"Samantha Wu"}, {"David Lee"},
	{"Aisha Khan", "Ben Carter"}, {"Dr. Kenji Tanaka"}, {"Lena Petrova"}, {"Marco Rossi"},
}

var seedCategories = [][]string{
	{"AI", "ML"}, {"Backend", "Architecture"}, {"Frontend", "Web"}, {"Data", "Analytics"},
	{"Security", "Cloud"}, {"AI", "Ethics"}, {"Cloud", "IoT"}, {"CSS", "Frontend"},
}

var seedDescriptions = []string{
	"A deep dive into the patterns and practices for creating robust, fault-tolerant systems.",
	"Explore how new technologies are set to revolutionize the field for the next decade.",
	"A thought-provoking session on our responsibilities as developers in a changing world.",
	"Learn how to turn raw data into compelling narratives that drive decision-making.",
	"An overview of the current landscape and how to defend against emerging threats.",
	"Discover the latest native browser APIs that can replace heavy JavaScript frameworks.",
}

// seedDay returns the talks of one generated day in presentation order, without times.
func seedDay() []*domain.Talk {
	talks := make([]*domain.Talk, seedTalksPerDay)
	for i := range talks {
		talks[i] = &domain.Talk{
			Title:       seedTitles[(i*2)%len(seedTitles)],
			Speakers:    append([]string(nil), seedSpeakers[i%len(seedSpeakers)]...),
			Categories:  append([]string(nil), seedCategories[i%len(seedCategories)]...),
			Description: seedDescriptions[i%len(seedDescriptions)],
		}
	}
	return talks
}

// GenerateSchedule returns a week of talks ending on today, most recent day first.
// Every day is laid out from the first slot with lunch and transition breaks.
func GenerateSchedule(today time.Time, first schedule.Slot, createdAt time.Time) []*domain.Talk {
	out := make([]*domain.Talk, 0, seedDays*seedTalksPerDay)
	for offset := 0; offset < seedDays; offset++ {
		day := today.AddDate(0, 0, -offset)
		for _, e := range schedule.Talks(schedule.LayoutDay(first.On(day), seedDay())) {
			t := e.Item
			t.StartTime, t.EndTime = e.StartTime, e.EndTime
			t.Date = e.StartTime.Format(domain.DateLayout)
			t.CreatedAt = createdAt
			out = append(out, t)
		}
	}
	return out
}

func (s *talkService) Seed(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.repo.List(ctx)
	if err != nil {
		return 0, persistence("seed", err)
	}
	if len(existing) > 0 {
		s.logger.InfoContext(ctx, "store not empty, skipping seed", "talks", len(existing))
		return 0, nil
	}

	talks := GenerateSchedule(s.today(), s.roster[0], s.now())
	for i, t := range talks {
		if err := s.repo.Create(ctx, t); err != nil {
			return i, persistence(fmt.Sprintf("seed talk %q on %s", t.Title, t.Date), err)
		}
	}
	s.logger.InfoContext(ctx, "seeded schedule", "talks", len(talks), "days", seedDays)
	return len(talks), nil
}
