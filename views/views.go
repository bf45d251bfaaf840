// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/coopernurse/vote-web/models"
)

// Page names
const (
	PageHome           = "home.html"
	PageBallot         = "ballot.html"
	PageVote           = "vote.html"
	PageVoteSaved      = "vote_saved.html"
	PageResults        = "results.html"
	PageBallotNotFound = "ballot_not_found.html"
	PageError          = "error.html"
)

var pages = []string{
	PageHome,
	PageBallot,
	PageVote,
	PageVoteSaved,
	PageResults,
	PageBallotNotFound,
	PageError,
}

const layout = "layout.html"

//go:embed templates/*.html
var embedded embed.FS

type Renderer struct {
	fsys      fs.FS
	reload    bool
	templates map[string]*template.Template
}

// New parses the embedded templates. When dir is set, templates are read
// from dir instead and re-parsed on every render so edits show up without
// a restart.
func New(dir string) (*Renderer, error) {
	r := &Renderer{}
	if dir != "" {
		r.fsys = os.DirFS(dir)
		r.reload = true
	} else {
		sub, err := fs.Sub(embedded, "templates")
		if err != nil {
			return nil, err
		}
		r.fsys = sub
	}

	templates, err := parse(r.fsys)
	if err != nil {
		return nil, err
	}
	r.templates = templates
	return r, nil
}

func parse(fsys fs.FS) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(fsys, layout, page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return templates, nil
}

// Render executes a page into a buffer first so a template error never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	templates := r.templates
	if r.reload {
		var err error
		templates, err = parse(r.fsys)
		if err != nil {
			return err
		}
	}

	t, ok := templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layout, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "page", page, "error", err)
	}
	return nil
}

var funcs = template.FuncMap{
	"ago": func(t time.Time) string {
		if t.IsZero() {
			return "never"
		}
		return humanize.Time(t)
	},
	"comma": func(n int) string {
		return humanize.Comma(int64(n))
	},
	"score": func(f float64) string {
		return humanize.FtoaWithDigits(f, 3)
	},
	"rank": func(i int) string {
		return humanize.Ordinal(i + 1)
	},
	"joinLines": func(lines []string) string {
		return strings.Join(lines, "\n")
	},
	"ratings": func(maxRating int) []int {
		scale := make([]int, 0, maxRating+1)
		for i := maxRating; i >= 0; i-- {
			scale = append(scale, i)
		}
		return scale
	},
	"questionKey": func(id string) string {
		return models.QuestionKeyPrefix + id
	},
	"rangeKey": func(questionID, option string) string {
		return models.RangeKeyPrefix + questionID + "_" + option
	},
}
