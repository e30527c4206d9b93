package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/phomva/internal/adapters/http/api"
	"github.com/okian/phomva/internal/adapters/payload"
	service "github.com/okian/phomva/internal/app"
	"github.com/okian/phomva/internal/domain/event"
	"github.com/okian/phomva/internal/mva/estimator"
	. "github.com/smartystreets/goconvey/convey"
)

// mockService implements api.Dependencies.
type mockService struct {
	ready    bool
	err      error
	value    *float64
	inputs   []event.Input
	received *payload.Batch
}

func (m *mockService) ScoreBatch(_ context.Context, b *payload.Batch) (*service.Result, error) {
	m.received = b
	if m.err != nil {
		return nil, m.err
	}
	res := &service.Result{EventID: b.EventID}
	for i, p := range b.Photons {
		v := float64(i) / 10
		if m.value != nil {
			v = *m.value
		}
		res.Scores = append(res.Scores, service.Score{Key: string(p.Key()), Category: "EB1", Value: v})
	}
	return res, nil
}

func (m *mockService) RequiredInputs() ([]event.Input, error) {
	if !m.ready {
		return nil, service.ErrNotStarted
	}
	return m.inputs, nil
}

func (m *mockService) Ready() bool { return m.ready }

func (m *mockService) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": m.ready}
}

const body = `{"event_id": "evt-1", "photons": [{"key": "a"}, {"key": "b"}]}`

func newMux(deps api.Dependencies) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps).Register(context.Background(), mux)
	return mux
}

func do(mux *http.ServeMux, method, path, reqBody string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(reqBody))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestScoreEndpoint(t *testing.T) {
	Convey("Given an API server backed by a ready service", t, func() {
		deps := &mockService{ready: true}
		mux := newMux(deps)

		Convey("When a valid batch is posted", func() {
			rec := do(mux, http.MethodPost, "/v1/score", body)

			Convey("Then the scores are returned with a generated request id", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var resp struct {
					RequestID string          `json:"request_id"`
					EventID   string          `json:"event_id"`
					Scores    []service.Score `json:"scores"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.RequestID, ShouldNotBeEmpty)
				So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, resp.RequestID)
				So(resp.EventID, ShouldEqual, "evt-1")
				So(len(resp.Scores), ShouldEqual, 2)
				So(resp.Scores[1].Key, ShouldEqual, "b")
				So(len(deps.received.Photons), ShouldEqual, 2)
			})
		})

		Convey("When the caller supplies a request id", func() {
			rec := do(mux, http.MethodPost, "/v1/score", body, api.RequestIDHeader, "req-42")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Header().Get(api.RequestIDHeader), ShouldEqual, "req-42")
			So(rec.Body.String(), ShouldContainSubstring, `"request_id":"req-42"`)
		})

		Convey("When the body is not a valid batch", func() {
			for _, bad := range []string{`{`, `{"photons": []}`, `{"nope": true}`} {
				rec := do(mux, http.MethodPost, "/v1/score", bad)
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, `"code":"bad_request"`)
			}
		})

		Convey("When the method is not POST", func() {
			rec := do(mux, http.MethodGet, "/v1/score", "")
			So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("When scoring fails", func() {
			cases := []struct {
				err    error
				status int
				code   string
			}{
				{fmt.Errorf("photon %q: %w", "a", estimator.ErrDataUnavailable), http.StatusUnprocessableEntity, "data_unavailable"},
				{estimator.ErrTypeMismatch, http.StatusBadRequest, "type_mismatch"},
				{service.ErrNotStarted, http.StatusServiceUnavailable, "not_ready"},
				{fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
			}
			for _, tc := range cases {
				deps.err = tc.err
				rec := do(mux, http.MethodPost, "/v1/score", body)
				So(rec.Code, ShouldEqual, tc.status)
				So(rec.Body.String(), ShouldContainSubstring, fmt.Sprintf(`"code":"%s"`, tc.code))
				So(rec.Body.String(), ShouldContainSubstring, fmt.Sprintf(`"message":%q`, tc.err.Error()))
			}
		})

		Convey("When a score cannot be encoded", func() {
			nan := math.NaN()
			deps.value = &nan
			rec := do(mux, http.MethodPost, "/v1/score", body)

			Convey("Then a complete error body is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)
				var resp map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp["code"], ShouldEqual, "encode_failed")
				So(resp["message"], ShouldNotBeEmpty)
			})
		})
	})
}

func TestInputsEndpoint(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockService{
			ready:  true,
			inputs: []event.Input{{Label: "chIso", Kind: event.KindValueMap}, {Label: "rho", Kind: event.KindScalar}},
		}
		mux := newMux(deps)

		Convey("When the inputs are requested", func() {
			rec := do(mux, http.MethodGet, "/v1/inputs", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			var resp struct {
				Inputs []event.Input `json:"inputs"`
			}
			So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
			So(resp.Inputs, ShouldResemble, deps.inputs)
		})

		Convey("When the service is not started", func() {
			deps.ready = false
			rec := do(mux, http.MethodGet, "/v1/inputs", "")
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestHealthAndMetrics(t *testing.T) {
	Convey("Given an API server", t, func() {
		deps := &mockService{}
		mux := newMux(deps)

		Convey("When the models are not loaded yet", func() {
			rec := do(mux, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusServiceUnavailable)
		})

		Convey("When the service is ready", func() {
			deps.ready = true
			rec := do(mux, http.MethodGet, "/healthz", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
		})

		Convey("When stats are requested", func() {
			rec := do(mux, http.MethodGet, "/stats", "")
			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, `"started":false`)
		})

		Convey("When metrics are scraped after a request", func() {
			_ = do(mux, http.MethodGet, "/healthz", "")
			rec := do(mux, http.MethodGet, "/metrics", "")

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "http_requests_total")
		})
	})
}
