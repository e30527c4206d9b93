package swagger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering the swagger handler", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.String(), convey.ShouldContainSubstring, "/v1/score")
			})

			convey.Convey("And it should serve the same document as JSON", func() {
				req := httptest.NewRequest("GET", "/openapi.json", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)

				var doc struct {
					OpenAPI string                     `json:"openapi"`
					Paths   map[string]json.RawMessage `json:"paths"`
				}
				convey.So(json.Unmarshal(w.Body.Bytes(), &doc), convey.ShouldBeNil)
				convey.So(doc.OpenAPI, convey.ShouldEqual, "3.0.3")
				convey.So(doc.Paths, convey.ShouldContainKey, "/v1/inputs")
				convey.So(doc.Paths, convey.ShouldContainKey, "/metrics")
			})
		})
	})
}

func TestSwaggerErrors(t *testing.T) {
	convey.Convey("Given an invalid document", t, func() {
		_, err := toJSON([]byte("openapi: [unterminated"))

		convey.Convey("Then conversion fails with ErrServe", func() {
			convey.So(errors.Is(err, ErrServe), convey.ShouldBeTrue)
		})
	})
}

func TestSwaggerHandlerWithNilMux(t *testing.T) {
	convey.Convey("Given a nil mux", t, func() {
		ctx := context.Background()

		convey.Convey("When registering the swagger handler", func() {
			convey.Convey("Then it should panic", func() {
				convey.So(func() {
					Register(ctx, nil)
				}, convey.ShouldPanic)
			})
		})
	})
}
