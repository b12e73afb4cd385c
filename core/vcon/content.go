package vcon

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/davidahmann/vconkit/core/jcs"
)

// contentViolations checks the body/url/encoding/content_hash cluster every
// content-bearing entity shares. neitherOK admits entities that may carry
// no content at all (transfer markers; incomplete dialogs are screened
// before this runs).
func contentViolations(path string, body any, hasBody bool, encoding Encoding, rawURL string, hashes HashList, neitherOK bool) []error {
	var violations []error

	hasURL := rawURL != ""
	switch {
	case hasBody && hasURL:
		violations = append(violations, &ExclusivityError{Path: path, Both: true})
	case !hasBody && !hasURL && !neitherOK:
		violations = append(violations, &ExclusivityError{Path: path})
	}

	switch {
	case hasBody && encoding == "":
		violations = append(violations, &FieldError{Path: path + ".encoding", Constraint: "encoding is required when body is set"})
	case !hasBody && encoding != "":
		violations = append(violations, &FieldError{Path: path + ".encoding", Constraint: "encoding requires a body"})
	case encoding != "" && !encoding.Known():
		violations = append(violations, &FieldError{Path: path + ".encoding", Constraint: fmt.Sprintf("unknown encoding %q", encoding)})
	case hasBody:
		if err := checkBodyEncoding(body, encoding); err != nil {
			violations = append(violations, &FieldError{Path: path + ".body", Constraint: err.Error()})
		}
	}

	if hasURL {
		if parsed, err := url.Parse(rawURL); err != nil || !parsed.IsAbs() {
			violations = append(violations, &FieldError{Path: path + ".url", Constraint: "must be an absolute URL"})
		}
	}

	if len(hashes) > 0 && hasBody {
		violations = append(violations, &FieldError{Path: path + ".content_hash", Constraint: "applies only to url-referenced content"})
	}
	for i, hash := range hashes {
		if _, _, err := jcs.ParseContentHash(hash); err != nil {
			violations = append(violations, &FieldError{Path: fmt.Sprintf("%s.content_hash[%d]", path, i), Constraint: err.Error()})
		}
	}

	return violations
}

func checkBodyEncoding(body any, encoding Encoding) error {
	switch encoding {
	case EncodingBase64URL:
		text, ok := body.(string)
		if !ok {
			return fmt.Errorf("base64url body must be a string")
		}
		if _, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(text, "=")); err != nil {
			return fmt.Errorf("body is not valid base64url")
		}
	case EncodingJSON:
		switch body.(type) {
		case string, map[string]any, []any:
			// JSON text or an already-decoded structure
		default:
			return fmt.Errorf("json body must be an object, array, or text")
		}
	case EncodingNone:
		if _, ok := body.(string); !ok {
			return fmt.Errorf("body with encoding \"none\" must be plain text")
		}
	}
	return nil
}
