// SPDX-License-Identifier: MPL-2.0

// Package httpheader parses the HTTP response headers the GitHub API client
// interprets: Content-Type (RFC 1521 section 4) and Link (RFC 5988).
//
// Both parsers are total: malformed input degrades to a usable zero shape
// (text/plain for Content-Type, an empty link sequence for Link) instead of
// returning an error.
//
// # Usage
//
//	ct := httpheader.ParseContentType(resp.Header.Get("Content-Type"))
//	if ct.IsJSON() {
//	    charset := ct.Charset(httpheader.DefaultCharset)
//	    // decode the body using charset
//	}
//
//	links := httpheader.ParseWebLinkHeader(resp.Header.Get("Link"))
//	if next, ok := links.Rel("next"); ok {
//	    // next.URL is the following page
//	}
package httpheader
