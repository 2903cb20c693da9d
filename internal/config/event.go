package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/nikolay-ai/hackevent/internal/dateutil"
	"github.com/nikolay-ai/hackevent/internal/markdown"
)

// MaxEventFileSize limits the event YAML file.
const MaxEventFileSize = 1 << 20

// Event holds the invitation page settings.
type Event struct {
	Title       string `yaml:"title"`
	Headline    string `yaml:"headline"`
	Tagline     string `yaml:"tagline"`
	Location    string `yaml:"location"`
	Theme       string `yaml:"theme"`
	About       string `yaml:"about"`
	LogoPath    string `yaml:"logo"`
	VideoPath   string `yaml:"video"`
	DaysAhead   int    `yaml:"days_ahead"`
	DateFormat  string `yaml:"date_format"`
	BannerTitle string `yaml:"banner_title"`
}

// DefaultEvent returns the settings used when no event file exists.
func DefaultEvent() Event {
	return Event{
		Title:       "Nikolay.ai Hack Event Invitation",
		Headline:    "You're Invited to Nikolay.ai Hack Event!",
		Tagline:     "Join us for an exciting weekend of innovation and AI development",
		Location:    "Virtual & In-Person Options Available",
		Theme:       "Building the Future with AI",
		About:       "Nikolay.ai is dedicated to fostering innovation in AI and bringing together the brightest minds to solve real-world challenges.",
		LogoPath:    "assets/logo.png",
		VideoPath:   "assets/nikolayTalk.mp4",
		DaysAhead:   7,
		DateFormat:  dateutil.LongFormat,
		BannerTitle: markdown.DefaultBannerTitle,
	}
}

// LoadEvent reads event settings from a YAML file layered over the
// defaults. A missing file yields the defaults. Unknown keys are rejected.
func LoadEvent(path string) (Event, error) {
	ev := DefaultEvent()
	if path == "" {
		return ev, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ev, nil
		}
		return Event{}, fmt.Errorf("read event config: %w", err)
	}
	if len(data) > MaxEventFileSize {
		return Event{}, fmt.Errorf("%w: event config exceeds %d bytes", ErrInvalidConfig, MaxEventFileSize)
	}
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, &ev, yaml.Strict()); err != nil {
			return Event{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Validate checks the event settings.
func (e Event) Validate() error {
	if e.DaysAhead < 0 {
		return fmt.Errorf("%w: days_ahead must not be negative", ErrInvalidConfig)
	}
	if _, err := dateutil.Layout(e.DateFormat); err != nil {
		return fmt.Errorf("%w: date_format: %v", ErrInvalidConfig, err)
	}
	return nil
}
