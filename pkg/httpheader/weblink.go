// SPDX-License-Identifier: MPL-2.0

package httpheader

import (
	"regexp"
	"strings"
)

// webLinkURL locates the bracketed URL tokens that delimit individual links.
var webLinkURL = regexp.MustCompile(`<([^>]*)>`)

type (
	// WebLink is a single link from an HTTP Link header (RFC 5988): a URL
	// plus its parameters. Params is never nil.
	WebLink struct {
		URL    string
		Params map[string]string
	}

	// WebLinkHeader is the ordered sequence of links from one Link header
	// value, in order of appearance.
	WebLinkHeader []WebLink
)

// ParseWebLinkHeader parses a raw Link header value. Each link's parameters
// span from the end of its <url> token to the start of the next token.
// Malformed input degrades to fewer (or zero) links; parsing never fails.
func ParseWebLinkHeader(header string) WebLinkHeader {
	tokens := webLinkURL.FindAllStringSubmatchIndex(header, -1)
	links := make(WebLinkHeader, 0, len(tokens))
	for i, token := range tokens {
		regionEnd := len(header)
		if i+1 < len(tokens) {
			regionEnd = tokens[i+1][0]
		}
		links = append(links, WebLink{
			URL:    header[token[2]:token[3]],
			Params: parseLinkParams(header[token[1]:regionEnd]),
		})
	}
	return links
}

// parseLinkParams parses the `; key=value` parameters trailing one URL token.
// Values may be double-quoted to protect interior semicolons. A duplicate key
// overwrites the earlier occurrence.
func parseLinkParams(region string) map[string]string {
	params := make(map[string]string)
	for _, param := range splitOutsideQuotes(strings.Trim(region, " \t,"), ';') {
		if strings.TrimSpace(param) == "" {
			continue
		}
		key, value, _ := strings.Cut(param, "=")
		params[trimQuotes(key)] = trimQuotes(value)
	}
	return params
}

// splitOutsideQuotes splits s on sep, ignoring separators inside
// double-quoted sections.
func splitOutsideQuotes(s string, sep byte) []string {
	var parts []string
	start := 0
	quoted := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '"':
			quoted = !quoted
		case s[i] == sep && !quoted:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// trimQuotes strips surrounding whitespace and double quotes from a
// parameter key or value.
func trimQuotes(s string) string {
	return strings.Trim(s, "\" \t")
}

// Rel returns the last link in header order whose rel parameter equals name.
// The boolean reports whether any link matched.
func (h WebLinkHeader) Rel(name string) (WebLink, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].Params["rel"] == name {
			return h[i], true
		}
	}
	return WebLink{}, false
}
