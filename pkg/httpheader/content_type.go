// SPDX-License-Identifier: MPL-2.0

package httpheader

import (
	"regexp"
	"strings"
)

// DefaultCharset is the character set assumed when a Content-Type header
// carries no usable charset parameter.
const DefaultCharset = "UTF-8"

// contentTypeFormat captures `type "/" subtype [";" attribute "=" value]`.
// Type and subtype exclude whitespace; the subtype additionally excludes ";".
// At most one parameter is captured and its value runs to the end of the
// header, so multi-parameter headers fold into a single attribute pair.
var contentTypeFormat = regexp.MustCompile(`^(?P<type>[^/\s]+)/(?P<subtype>[^;\s]+)(?:\s*;\s*(?P<attribute>[^=]+)=(?P<value>.+))?$`)

// ContentType is a parsed Content-Type header (RFC 1521 section 4).
// Attribute and Value are empty when the header carried no parameter;
// the parser produces them either both set or both empty.
type ContentType struct {
	Type      string
	Subtype   string
	Attribute string
	Value     string
}

// ParseContentType parses a raw Content-Type header value. An absent or
// malformed header yields text/plain; parsing never fails.
func ParseContentType(header string) ContentType {
	m := contentTypeFormat.FindStringSubmatch(header)
	if m == nil {
		return ContentType{Type: "text", Subtype: "plain"}
	}
	return ContentType{Type: m[1], Subtype: m[2], Attribute: m[3], Value: m[4]}
}

// String renders the MIME type, appending "; attribute=value" when a
// parameter is present. A half-empty parameter renders only its non-empty
// operand, never a dangling "=".
func (c ContentType) String() string {
	mimeType := c.Type + "/" + c.Subtype
	if c.Attribute == "" && c.Value == "" {
		return mimeType
	}
	operands := make([]string, 0, 2)
	for _, operand := range []string{c.Attribute, c.Value} {
		if operand != "" {
			operands = append(operands, operand)
		}
	}
	return mimeType + "; " + strings.Join(operands, "=")
}

// Charset returns the charset parameter value verbatim when present, and
// the upper-cased fallback otherwise. The attribute name is matched
// case-insensitively.
func (c ContentType) Charset(fallback string) string {
	if strings.EqualFold(c.Attribute, "charset") && c.Value != "" {
		return c.Value
	}
	return strings.ToUpper(fallback)
}

// IsJSON reports whether the media type is exactly application/json,
// ignoring case and any parameter.
func (c ContentType) IsJSON() bool {
	return strings.ToLower(c.Type+"/"+c.Subtype) == "application/json"
}
