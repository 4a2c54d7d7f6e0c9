package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/battleroyale/stats-dashboard/internal/environment"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the templates rendered inside layout.html.
var pageNames = []string{
	"new_users",
	"tournaments",
	"activity",
	"overview",
	"tournament_points",
	"user_gems",
}

// parsePages builds one template set per page so each can define its own
// "content" block.
func parsePages(funcs template.FuncMap) map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
	return pages
}

func (h *Handler) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"localtime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.In(h.location).Format("2006-01-02 15:04:05")
		},
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"inputTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(h.location).Format(inputTimeLayout)
		},
		"comma":   func(n int64) string { return humanize.Comma(n) },
		"number":  humanize.Ftoa,
		"players": func(names []string) string { return strings.Join(names, ", ") },
		"span": func(from, to time.Time) string {
			if from.IsZero() || to.IsZero() || !to.After(from) {
				return "open range"
			}
			return durafmt.Parse(to.Sub(from).Round(time.Minute)).LimitFirstN(2).String()
		},
	}
}

// pageData is what every page template receives.
type pageData struct {
	Title   string
	Path    string
	Return  string
	Env     environment.Environment
	Envs    []environment.Environment
	From    time.Time
	To      time.Time
	Notice  string
	Error   string
	Content interface{}
}

func (h *Handler) newPage(r *http.Request, title string) pageData {
	q := r.URL.Query()
	return pageData{
		Title:  title,
		Path:   r.URL.Path,
		Return: r.URL.RequestURI(),
		Env:    h.selectedEnv(r),
		Envs:   environment.All(),
		Notice: q.Get("notice"),
		Error:  q.Get("error"),
	}
}

// render executes into a buffer first so a template failure still yields a
// clean 500.
func (h *Handler) render(w http.ResponseWriter, status int, page string, data pageData) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.logger.Errorw("Unknown page template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		h.logger.Errorw("Failed to render page", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// renderFailure shows the page with an error banner and no content.
func (h *Handler) renderFailure(w http.ResponseWriter, page string, data pageData, err error, msg string) {
	status := failureStatus(err)
	if status >= 500 {
		h.logger.Errorw(msg, "env", data.Env, "error", err)
	}
	data.Error = fmt.Sprintf("%s: %v", msg, err)
	data.Content = nil
	h.render(w, status, page, data)
}
