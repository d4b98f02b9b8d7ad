// SPDX-License-Identifier: MPL-2.0

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/jwilges/monocat/pkg/httpheader"
)

const (
	// defaultBaseURL is the GitHub REST API endpoint used when neither the
	// WithBaseURL option nor the GITHUB_API environment variable is set.
	defaultBaseURL = "https://api.github.com"

	// bodyEncoding is the charset assumed for request and response bodies
	// when the server does not declare one.
	bodyEncoding = "utf-8"

	// acceptContentType pins responses to version 3 of the REST API.
	acceptContentType = "application/vnd.github.v3+json"

	// requestContentType is sent with every mutating request body.
	requestContentType = "application/vnd.github.v3+json; charset=UTF-8"
)

type (
	// APIError is a non-2xx API response: the numeric status code, the
	// reason phrase, and the decoded response body for diagnostics.
	APIError struct {
		StatusCode int
		Status     string
		Body       string
	}

	// payload is a decoded HTTP response: the body text (already converted
	// to UTF-8 per the response charset), the parsed Content-Type, and any
	// pagination links from the Link header. Links are surfaced for callers
	// but never followed automatically.
	payload struct {
		status      int
		text        string
		contentType httpheader.ContentType
		links       httpheader.WebLinkHeader
	}
)

// Error formats the failure with its status code, reason, and body context.
func (e *APIError) Error() string {
	return fmt.Sprintf("github: HTTP %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// IsNotFound reports whether err is an APIError with status 404. Lookup
// operations use it to distinguish an absent release from a real failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// decode unmarshals the payload body into v. The response must have declared
// a JSON content type.
func (p *payload) decode(v any) error {
	if !p.contentType.IsJSON() {
		return fmt.Errorf("expected a JSON response, got %s", p.contentType)
	}
	if err := json.Unmarshal([]byte(p.text), v); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// do dispatches one HTTP request and interprets the response. Relative paths
// are resolved against the client's base URL; absolute URLs are used
// verbatim. Headers are merged base < method-specific < caller, with later
// entries winning on collision. Responses with status >= 400 return an
// *APIError carrying the decoded body.
func (c *Client) do(ctx context.Context, method, pathOrURL string, headers map[string]string, body []byte) (*payload, error) {
	methodHeaders := map[string]string{}
	switch method {
	case http.MethodPatch, http.MethodPost, http.MethodPut:
		methodHeaders["Content-Type"] = requestContentType
	}
	merged := mergeHeaders(c.baseHeaders, methodHeaders, headers)

	reqURL := c.resolveURL(pathOrURL)

	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for key, value := range merged {
		req.Header.Set(key, value)
	}

	c.logger.Debug("api request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }() // read-only response body

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	contentType := httpheader.ParseContentType(resp.Header.Get("Content-Type"))
	text, err := decodeCharset(raw, contentType.Charset(bodyEncoding))
	if err != nil {
		return nil, err
	}

	links := httpheader.ParseWebLinkHeader(resp.Header.Get("Link"))

	c.logger.Debug("api response",
		"status", resp.Status, "content_type", contentType.String(), "body", text)
	if len(links) > 0 {
		c.logger.Debug("pagination links available", "rels", linkRels(links))
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     reasonPhrase(resp),
			Body:       text,
		}
	}

	return &payload{
		status:      resp.StatusCode,
		text:        text,
		contentType: contentType,
		links:       links,
	}, nil
}

// resolveURL returns pathOrURL verbatim when it carries both a scheme and a
// host, and prefixes the client's base URL otherwise.
func (c *Client) resolveURL(pathOrURL string) string {
	parsed, err := url.Parse(pathOrURL)
	if err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return pathOrURL
	}
	return c.baseURL + pathOrURL
}

// mergeHeaders overlays each header map left to right; later maps override
// earlier ones on key collision.
func mergeHeaders(layers ...map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, layer := range layers {
		for key, value := range layer {
			merged[key] = value
		}
	}
	return merged
}

// decodeCharset converts a response body to a UTF-8 string according to the
// declared charset. UTF-8 and US-ASCII bodies pass through; other charsets
// are looked up in the IANA registry.
func decodeCharset(data []byte, charset string) (string, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "us-ascii", "ascii":
		return string(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return "", fmt.Errorf("looking up charset %q: %w", charset, err)
	}
	if enc == nil {
		return "", fmt.Errorf("unsupported response charset %q", charset)
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decoding %s response body: %w", charset, err)
	}
	return string(decoded), nil
}

// reasonPhrase extracts the reason phrase from a response status line,
// falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if phrase == "" {
		return http.StatusText(resp.StatusCode)
	}
	return phrase
}

// linkRels lists the rel parameter of each pagination link, in header order.
func linkRels(links httpheader.WebLinkHeader) []string {
	rels := make([]string, 0, len(links))
	for _, link := range links {
		rels = append(rels, link.Params["rel"])
	}
	return rels
}
