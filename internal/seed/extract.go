package seed

import (
	"bytes"
	"regexp"

	"github.com/tidwall/gjson"

	"github.com/heartmarshall/tripplanner-backend/internal/domain"
)

var (
	fenceLine      = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")
	trailingCommas = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractJSON pulls a JSON object out of free-form model output. It tries
// the text as-is, then strips markdown code fences, cuts from the first '{'
// to the last '}' and drops trailing commas.
func ExtractJSON(text []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(text)
	if isObject(trimmed) {
		return trimmed, nil
	}

	cleaned := fenceLine.ReplaceAll(trimmed, nil)
	start := bytes.IndexByte(cleaned, '{')
	end := bytes.LastIndexByte(cleaned, '}')
	if start < 0 || end <= start {
		return nil, domain.NewSeedError("", "no JSON object found in response")
	}
	cleaned = cleaned[start : end+1]
	if isObject(cleaned) {
		return cleaned, nil
	}

	cleaned = trailingCommas.ReplaceAll(cleaned, []byte("$1"))
	if isObject(cleaned) {
		return cleaned, nil
	}
	return nil, domain.NewSeedError("", "response is not valid JSON")
}

func isObject(b []byte) bool {
	return gjson.ValidBytes(b) && gjson.ParseBytes(b).IsObject()
}
