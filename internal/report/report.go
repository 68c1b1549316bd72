package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vimeo-albums/internal/model"
)

const absent = "-"

// Summary is one album as shown to the user.
type Summary struct {
	Album       model.Album
	Changed     bool
	PicturePath string
}

// Printer renders album summaries to a writer.
type Printer struct {
	w      io.Writer
	box    lipgloss.Style
	title  lipgloss.Style
	label  lipgloss.Style
	badge  lipgloss.Style
	dimmed lipgloss.Style
}

// NewPrinter creates a Printer whose colour profile follows w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		box:    r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		label:  r.NewStyle().Width(12).Foreground(lipgloss.Color("245")),
		badge:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		dimmed: r.NewStyle().Faint(true),
	}
}

// Print writes one boxed summary followed by a newline.
func (p *Printer) Print(s Summary) error {
	_, err := fmt.Fprintln(p.w, p.Render(s))
	return err
}

// Render returns the boxed summary of s.
func (p *Printer) Render(s Summary) string {
	a := s.Album

	heading := p.title.Render(model.Or(a.Name, "(untitled album)"))
	if s.Changed {
		heading += " " + p.badge.Render("updated")
	}

	rows := []string{heading}
	add := func(label, value string) {
		rows = append(rows, p.label.Render(label)+value)
	}

	add("URI", model.Or(a.URI, absent))
	add("Description", oneLine(model.Or(a.ChannelDescription, absent)))
	add("Duration", formatDuration(a))
	add("Created", formatTime(a.CreatedTime))
	add("Modified", formatTime(a.ModifiedTime))
	add("Privacy", formatPrivacy(a.Privacy))
	add("Owner", formatOwner(a.User))
	add("Following", yesNo(a.IsFollowing()))
	add("Connections", formatConnections(a.Connections))
	if s.PicturePath != "" {
		add("Picture", s.PicturePath)
	}
	if a.Link != nil {
		rows = append(rows, p.dimmed.Render(*a.Link))
	}

	return p.box.Render(strings.Join(rows, "\n"))
}

func formatDuration(a model.Album) string {
	d, ok := a.DurationValue()
	if !ok {
		return absent
	}
	return d.String()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return absent
	}
	return t.UTC().Format("2006-01-02 15:04 MST")
}

func formatPrivacy(p *model.Privacy) string {
	if p == nil || p.View == nil {
		return absent
	}
	return *p.View
}

func formatOwner(u *model.User) string {
	if u == nil {
		return absent
	}
	name := model.Or(u.Name, "")
	uri := model.Or(u.URI, "")
	switch {
	case name != "" && uri != "":
		return fmt.Sprintf("%s (%s)", name, uri)
	case name != "":
		return name
	case uri != "":
		return uri
	}
	return absent
}

func formatConnections(c model.Named[model.Connection]) string {
	names := c.Names()
	if len(names) == 0 {
		return absent
	}

	parts := make([]string, 0, len(names))
	for _, name := range names {
		conn, _ := c.Lookup(name)
		if conn.Total != nil {
			parts = append(parts, fmt.Sprintf("%s (%d)", name, *conn.Total))
		} else {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, ", ")
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	const maxLen = 72
	if r := []rune(s); len(r) > maxLen {
		return string(r[:maxLen-1]) + "…"
	}
	return s
}
