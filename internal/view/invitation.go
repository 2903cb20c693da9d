// Package view holds the templ components that make up the invitation page
// and its live registration form.
package view

import (
	"context"
	_ "embed"
	"io"

	"github.com/a-h/templ"
)

//go:embed invitation.css
var pageCSS string

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// InvitationData is everything the invitation page displays.
type InvitationData struct {
	Title     string
	Headline  string
	Tagline   string
	EventDate string
	Location  string
	Theme     string
	LogoPath  string
	VideoPath string
	About     string
	// News is a trusted HTML fragment rendered from the latest report.
	News string
}

// Invitation renders the full invitation document.
func Invitation(d InvitationData) templ.Component {
	return layout(d.Title,
		eventHeader(d),
		newsSection(d.News),
		registrationSection(),
		eventFooter(d.About, d.VideoPath),
	)
}

// Message kinds understood by RegistrationMessage.
const (
	MessageSuccess = "success"
	MessageError   = "error"
	MessageInfo    = "info"
)

// RegistrationMessage renders the form feedback element. An empty kind
// renders the hidden placeholder.
func RegistrationMessage(kind, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		if kind == "" {
			h.raw("<div id=\"registrationMessage\" class=\"message\"></div>\n")
			return h.err
		}
		h.raw("<div id=\"registrationMessage\" class=\"message ")
		h.text(kind)
		h.raw("\" style=\"display: block\">")
		h.text(text)
		h.raw("</div>\n")
		return h.err
	})
}
