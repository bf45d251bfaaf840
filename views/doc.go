// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package views renders the HTML pages.

Templates live in views/templates and are embedded in the binary. Every page
is parsed together with layout.html and fills its "content" block:

	r, err := views.New("")
	err = r.Render(w, http.StatusOK, views.PageResults, views.ResultsData{...})

Passing a directory to New reads templates from disk and re-parses them on
each render, which is handy during development. Production mode always uses
the embedded copies.

# Template functions

	ago          humanized time since a timestamp ("3 minutes ago")
	comma        integer with thousands separators
	score        float with at most three decimals
	rank         zero-based index as an ordinal ("1st")
	joinLines    options joined by newlines for the editor textarea
	ratings      rating scale from max down to 0
	questionKey  form field for a free-text answer
	rangeKey     form field for one option's rating

Render writes nothing when a template fails, so callers can still send an
error page.
*/
package views
