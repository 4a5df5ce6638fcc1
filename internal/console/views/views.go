// Package views renders console state as plain text tables.
package views

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"sarb.backend/internal/console/notify"
	"sarb.backend/internal/console/session"
	"sarb.backend/internal/console/store"
	"sarb.backend/internal/domain/entities"
)

const (
	RetryHint    = "Run the command again to retry."
	previewWidth = 60
	timeLayout   = "2006-01-02 15:04"
)

// Paginate returns the zero based page of items and the page count. Pages
// past the end are clamped to the last page.
func Paginate[T any](items []T, page, rows int) ([]T, int) {
	if rows <= 0 {
		return items, 1
	}
	pages := (len(items) + rows - 1) / rows
	if pages == 0 {
		return []T{}, 1
	}
	if page < 0 {
		page = 0
	}
	if page >= pages {
		page = pages - 1
	}
	start := page * rows
	end := start + rows
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pages
}

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// status writes the loading and error lines. It reports whether there is
// anything else worth rendering.
func status[T any](w io.Writer, st store.State[T], empty string) bool {
	if st.Loading {
		fmt.Fprintln(w, "Loading...")
	}
	if st.Error != "" {
		fmt.Fprintf(w, "Error: %s\n%s\n", st.Error, RetryHint)
	}
	if len(st.Items) == 0 {
		if st.Error == "" {
			fmt.Fprintln(w, empty)
		}
		return false
	}
	return true
}

func Team(w io.Writer, st store.State[entities.TeamMember]) error {
	if !status(w, st, "No team members yet.") {
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tORDER\tNAME\tPOSITION\tIMAGE")
	for _, m := range st.Items {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\n", m.ID, m.Order, m.Name, m.Position, dash(m.Image))
	}
	return tw.Flush()
}

func Services(w io.Writer, st store.State[entities.Service]) error {
	if !status(w, st, "No services yet.") {
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tORDER\tNAME\tSLUG\tICON\tFEATURES")
	for _, s := range st.Items {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%d\n", s.ID, s.Order, s.Name, s.Slug, entities.ResolveIcon(string(s.Icon)), len(s.Features))
	}
	return tw.Flush()
}

func CaseStudies(w io.Writer, st store.State[entities.CaseStudy]) error {
	if !status(w, st, "No case studies yet.") {
		return nil
	}
	tw := table(w)
	fmt.Fprintln(tw, "ID\tORDER\tTITLE\tCLIENT\tINDUSTRY\tTECHNOLOGIES")
	for _, c := range st.Items {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%s\t%s\n", c.ID, c.Order, c.Title, c.ClientName, c.ClientIndustry, dash(strings.Join(c.Technologies, ", ")))
	}
	return tw.Flush()
}

// Messages renders one page of the inbox, newest first as the server sends it.
func Messages(w io.Writer, st store.State[entities.ContactMessage], page, rows int) error {
	if !status(w, st, "No messages yet.") {
		return nil
	}
	items, pages := Paginate(st.Items, page, rows)
	tw := table(w)
	fmt.Fprintln(tw, "ID\t\tRECEIVED\tFROM\tMESSAGE")
	for _, m := range items {
		mark := " "
		if !m.IsRead {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", m.ID, mark, m.CreatedAt.Local().Format(timeLayout), sender(m), preview(m.Message, previewWidth))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if pages > 1 {
		fmt.Fprintf(w, "Page %d of %d (%d messages)\n", clamp(page, pages)+1, pages, len(st.Items))
	}
	return nil
}

// Message renders one message in full.
func Message(w io.Writer, m entities.ContactMessage) error {
	tw := table(w)
	fmt.Fprintf(tw, "From:\t%s\n", sender(m))
	fmt.Fprintf(tw, "Received:\t%s\n", m.CreatedAt.Local().Format(timeLayout))
	read := "no"
	if m.IsRead {
		read = "yes"
		if m.ReadAt.Valid {
			read += " (" + m.ReadAt.Time.Local().Format(timeLayout) + ")"
		}
	}
	fmt.Fprintf(tw, "Read:\t%s\n", read)
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%s\n", m.Message)
	return err
}

func Notifications(w io.Writer, items []notify.Notification, unread int) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No notifications.")
		return err
	}
	fmt.Fprintf(w, "%d unread\n", unread)
	tw := table(w)
	for _, n := range items {
		mark := " "
		if !n.Read {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", mark, n.Timestamp.Local().Format(time.Kitchen), strings.ToUpper(string(n.Type)), n.Title, n.Message)
	}
	return tw.Flush()
}

// Dashboard renders the overview counts. errMsg is shown when some counts
// could not be loaded.
func Dashboard(w io.Writer, user *session.User, o store.Overview, errMsg string) error {
	if user != nil && user.Username != "" {
		fmt.Fprintf(w, "Signed in as %s\n\n", user.Username)
	}
	tw := table(w)
	fmt.Fprintf(tw, "Team members\t%d\n", o.TeamMembers)
	fmt.Fprintf(tw, "Services\t%d\n", o.Services)
	fmt.Fprintf(tw, "Case studies\t%d\n", o.CaseStudies)
	fmt.Fprintf(tw, "Messages\t%d (%d unread)\n", o.Messages, o.UnreadMessages)
	if err := tw.Flush(); err != nil {
		return err
	}
	if errMsg != "" {
		_, err := fmt.Fprintf(w, "\nError: %s\n%s\n", errMsg, RetryHint)
		return err
	}
	return nil
}

func sender(m entities.ContactMessage) string {
	s := fmt.Sprintf("%s <%s>", m.Name, m.Email)
	if m.Company.Valid && m.Company.String != "" {
		s += ", " + m.Company.String
	}
	return s
}

func preview(text string, width int) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= width {
		return text
	}
	return string(r[:width-3]) + "..."
}

func clamp(page, pages int) int {
	if page < 0 {
		return 0
	}
	if page >= pages {
		return pages - 1
	}
	return page
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
