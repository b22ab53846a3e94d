package upstream

import (
	"mime"

	"github.com/csvcheck/csvcheck/internal/domain"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html/charset"
)

// textPath locates the text blob inside the service's JSON array envelope.
const textPath = "0.output.message.content.0.text"

// ExtractText pulls the response text out of the JSON envelope.
// A body that is not JSON yields domain.ErrMalformedJSON; valid JSON without a
// non-empty string at textPath yields domain.ErrInvalidResponseFormat.
func ExtractText(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", domain.ErrMalformedJSON
	}

	root := gjson.ParseBytes(body)
	if !root.IsArray() || len(root.Array()) == 0 {
		return "", domain.ErrInvalidResponseFormat
	}

	text := root.Get(textPath)
	if text.Type != gjson.String || text.Str == "" {
		return "", domain.ErrInvalidResponseFormat
	}
	return text.Str, nil
}

// decodeBody converts body to UTF-8 when the Content-Type declares another charset.
// Without a declared charset the body is assumed to be UTF-8 JSON.
func decodeBody(body []byte, contentType string) ([]byte, error) {
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return body, nil
	}
	label, ok := params["charset"]
	if !ok {
		return body, nil
	}
	enc, name := charset.Lookup(label)
	if enc == nil || name == "utf-8" {
		return body, nil
	}
	return enc.NewDecoder().Bytes(body)
}
