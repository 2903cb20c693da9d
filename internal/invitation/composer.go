// Package invitation turns the latest news report into the self-contained
// invitation page.
package invitation

import (
	"context"
	"strings"
	"time"

	"github.com/nikolay-ai/hackevent/internal/config"
	"github.com/nikolay-ai/hackevent/internal/dateutil"
	"github.com/nikolay-ai/hackevent/internal/view"
)

// Composer splices a rendered news fragment into the page template.
type Composer struct {
	Event config.Event
}

// NewComposer returns a Composer for the given event settings.
func NewComposer(ev config.Event) *Composer {
	return &Composer{Event: ev}
}

// EventDate is the displayed date: DaysAhead days after now.
func (c *Composer) EventDate(now time.Time) string {
	date := now.AddDate(0, 0, c.Event.DaysAhead)
	s, err := dateutil.Format(date, c.Event.DateFormat)
	if err != nil {
		s, _ = dateutil.Format(date, dateutil.LongFormat)
	}
	return s
}

// Compose returns the full HTML document with fragment as the news section.
func (c *Composer) Compose(fragment string, now time.Time) string {
	var sb strings.Builder
	// Writes to a strings.Builder cannot fail.
	_ = view.Invitation(view.InvitationData{
		Title:     c.Event.Title,
		Headline:  c.Event.Headline,
		Tagline:   c.Event.Tagline,
		EventDate: c.EventDate(now),
		Location:  c.Event.Location,
		Theme:     c.Event.Theme,
		LogoPath:  c.Event.LogoPath,
		VideoPath: c.Event.VideoPath,
		About:     c.Event.About,
		News:      fragment,
	}).Render(context.Background(), &sb)
	return sb.String()
}

// Compose renders fragment with the default event settings.
func Compose(fragment string, now time.Time) string {
	return NewComposer(config.DefaultEvent()).Compose(fragment, now)
}
