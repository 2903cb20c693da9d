package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter stops writing after the first error so components can emit
// markup without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

// layout wraps children in the document shell with the page stylesheet.
func layout(title string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		h.raw("<meta charset=\"UTF-8\">\n")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
		h.raw("<title>")
		h.text(title)
		h.raw("</title>\n<style>\n")
		h.raw(pageCSS)
		h.raw("</style>\n")
		h.raw("<script type=\"module\" src=\"" + datastarScript + "\"></script>\n")
		h.raw("</head>\n<body>\n<div class=\"container\">\n")
		for _, c := range children {
			h.render(ctx, c)
		}
		h.raw("</div>\n</body>\n</html>\n")
		return h.err
	})
}

func eventHeader(d InvitationData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<header>\n")
		if d.LogoPath != "" {
			h.raw("<img src=\"")
			h.text(d.LogoPath)
			h.raw("\" alt=\"Logo\" class=\"logo\">\n")
		}
		h.raw("<h1>")
		h.text(d.Headline)
		h.raw("</h1>\n<p>")
		h.text(d.Tagline)
		h.raw("</p>\n")
		h.render(ctx, eventDetails(d.EventDate, d.Location, d.Theme))
		h.raw("<a href=\"#register\" class=\"cta-button\">Register Now</a>\n</header>\n")
		return h.err
	})
}

func eventDetails(date, location, theme string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div class=\"event-details\">\n<h3>Event Details</h3>\n")
		for _, row := range [][2]string{{"Date", date}, {"Location", location}, {"Theme", theme}} {
			h.raw("<p><strong>" + row[0] + ":</strong> ")
			h.text(row[1])
			h.raw("</p>\n")
		}
		h.raw("</div>\n")
		return h.err
	})
}

// newsSection splices the rendered report in unescaped.
func newsSection(news string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<main>\n<section class=\"news-section\">\n<h2>Latest AI News &amp; Insights</h2>\n")
		h.raw("<p>Stay updated with the latest developments in AI that will inspire your hackathon projects:</p>\n")
		h.render(ctx, templ.Raw(news))
		h.raw("\n</section>\n")
		return h.err
	})
}

func registrationSection() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<section class=\"registration-section\" id=\"register\">\n<h2>Register for the Event</h2>\n")
		h.raw("<div class=\"registration-form\">\n")
		h.render(ctx, registrationForm())
		h.render(ctx, RegistrationMessage("", ""))
		h.raw("</div>\n</section>\n</main>\n")
		return h.err
	})
}

// registrationForm binds the inputs to datastar signals and posts them to
// /register on submit.
func registrationForm() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<form id=\"registrationForm\" data-signals=\"{email: '', name: '', organization: ''}\" data-on:submit__prevent=\"@post('/register')\">\n")
		h.render(ctx, formField("email", "email", "Email Address *", true))
		h.render(ctx, formField("name", "text", "Full Name", false))
		h.render(ctx, formField("organization", "text", "Organization", false))
		h.raw("<button type=\"submit\" class=\"cta-button\">Register</button>\n</form>\n")
		return h.err
	})
}

func formField(name, inputType, label string, required bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<div class=\"form-group\">\n<label for=\"" + name + "\">")
		h.text(label)
		h.raw("</label>\n<input type=\"" + inputType + "\" id=\"" + name + "\" name=\"" + name + "\" data-bind:" + name)
		if required {
			h.raw(" required")
		}
		h.raw(">\n</div>\n")
		return h.err
	})
}

func eventFooter(about, videoPath string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<footer>\n<h2>About</h2>\n<p>")
		h.text(about)
		h.raw("</p>\n")
		if videoPath != "" {
			h.raw("<div class=\"video-container\">\n<video autoplay loop muted playsinline>\n<source src=\"")
			h.text(videoPath)
			h.raw("\" type=\"video/mp4\">\nYour browser does not support the video tag.\n</video>\n</div>\n")
		}
		h.raw("<p>Ready to join the hack event? Register today and be part of the AI revolution!</p>\n")
		h.raw("<a href=\"#register\" class=\"cta-button\">Register for the Event</a>\n</footer>\n")
		return h.err
	})
}
