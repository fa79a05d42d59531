// Package docs serves the OpenAPI document for the storefront state API.
package docs

import (
	_ "embed"
	"net/http"
)

//go:embed doc.json
var doc []byte

// Handler serves the raw OpenAPI document at its own path so the Swagger
// UI can load it
func Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(doc)
	})
}
