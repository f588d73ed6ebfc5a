package gqlrequest

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"
)

// DecodeParams extracts body parameters from a POST request and rewinds the
// body so downstream handlers can read it again. JSON bodies decode into a
// string-keyed map; application/graphql bodies map to a bare "query"
// parameter. Non-POST requests and empty bodies yield nil params with no
// error.
func DecodeParams(r *http.Request) (map[string]any, error) {
	if r == nil || r.Method != http.MethodPost || r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	contentType := r.Header.Get("Content-Type")
	mediaType, _, parseErr := mime.ParseMediaType(contentType)
	if parseErr != nil || mediaType == "" {
		mediaType = strings.TrimSpace(contentType)
	}

	if mediaType == "application/graphql" {
		return map[string]any{"query": string(body)}, nil
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var params map[string]any
	if err := json.Unmarshal(trimmed, &params); err != nil {
		return nil, err
	}
	return params, nil
}
