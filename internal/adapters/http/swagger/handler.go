// Package swagger serves the OpenAPI description of the HTTP API.
package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"gopkg.in/yaml.v3"
)

// Error constants.
var (
	ErrServe = errors.New("swagger serve failed")
)

// Register attaches the OpenAPI routes to mux.
// Routes:
//
//	GET /openapi.yaml -> embedded OpenAPI document
//	GET /openapi.json -> the same document as JSON
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	doc, docErr := toJSON(OpenAPI)

	mux.HandleFunc("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(OpenAPI)
	})

	mux.HandleFunc("/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		if docErr != nil {
			http.Error(w, docErr.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(doc)
	})
}

func toJSON(raw []byte) ([]byte, error) {
	var v map[string]interface{}
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServe, err)
	}
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrServe, err)
	}
	return out, nil
}
