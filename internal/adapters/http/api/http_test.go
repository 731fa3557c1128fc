package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vinay2231/Edututor-AI/internal/adapters/http/api"
	"github.com/vinay2231/Edututor-AI/internal/adapters/repository"
	"github.com/vinay2231/Edututor-AI/internal/app"
	"github.com/vinay2231/Edututor-AI/internal/domain/mastery"
	"github.com/vinay2231/Edututor-AI/internal/domain/model"
)

func newMux(store api.StudentStore) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(store, app.NewEngine()).Register(mux)
	return mux
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func seededStore() *repository.ShardedStore {
	ctx := context.Background()
	store := repository.NewShardedStore()
	So(store.SaveVector(ctx, "stu-1", model.PerformanceVector{model.Math: 80}), ShouldBeNil)
	So(store.SaveVector(ctx, "stu-2", model.PerformanceVector{model.History: 55}), ShouldBeNil)
	return store
}

func TestHealth(t *testing.T) {
	Convey("Given a server backed by a store with two students", t, func() {
		mux := newMux(seededStore())

		Convey("When GET /healthz is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it reports ok with the student count", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")

				var body api.HealthResponse
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Status, ShouldEqual, "ok")
				So(body.Students, ShouldEqual, 2)
			})
		})

		Convey("When POST /healthz is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

			Convey("Then it is rejected", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(rec.Header().Get("Allow"), ShouldEqual, "GET, HEAD")
			})
		})
	})

	Convey("Given a server without a store", t, func() {
		mux := newMux(nil)

		Convey("When GET /healthz is requested", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it still reports ok", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"students":0`)
			})
		})

		Convey("Then the student views are not routed", func() {
			So(get(mux, "/overview").Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestOverview(t *testing.T) {
	Convey("Given a server backed by a store with two students", t, func() {
		mux := newMux(seededStore())

		Convey("When GET /overview is requested", func() {
			rec := get(mux, "/overview")

			Convey("Then the class is summarised from the stored vectors", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body mastery.ClassOverview
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Students, ShouldEqual, 2)
				So(body.ClassAverage, ShouldEqual, 67.5)
				So(body.AtRisk, ShouldResemble, []string{"stu-2"})
			})
		})

		Convey("When the overview is posted to", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/overview", nil))

			Convey("Then the route stays read-only", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestStudentReport(t *testing.T) {
	Convey("Given a server backed by a store with two students", t, func() {
		mux := newMux(seededStore())

		Convey("When a weak student's report is requested with a style", func() {
			rec := get(mux, "/students/stu-2/report?style=Kinesthetic&completed=2")

			Convey("Then the report is planned from the stored vector", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body app.Report
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.Evaluation.Weak, ShouldResemble, []model.Subject{model.History})
				So(body.Recommendations, ShouldHaveLength, 1)
				So(body.Recommendations[0].Kind, ShouldEqual, model.KindRemediation)
				So(body.StyleProfile.Style, ShouldEqual, model.StyleKinesthetic)
			})
		})

		Convey("When a strong student's report uses the default style", func() {
			rec := get(mux, "/students/stu-1/report")

			Convey("Then enrichment is recommended for a Visual learner", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body app.Report
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body.StyleProfile.Style, ShouldEqual, model.StyleVisual)
				So(body.Recommendations[0].ModuleTitle, ShouldEqual, "Math Enrichment Challenge")
			})
		})

		Convey("When the request cannot be served", func() {
			cases := map[string]int{
				"/students/nobody/report":              http.StatusNotFound,
				"/students/stu-1/report?style=Osmosis": http.StatusBadRequest,
				"/students/stu-1/report?completed=-1":  http.StatusBadRequest,
				"/students/stu-1/report?completed=x":   http.StatusBadRequest,
				"/students/stu-1":                      http.StatusNotFound,
				"/students/stu-1/grades/report":        http.StatusNotFound,
			}

			Convey("Then each gets the matching status", func() {
				for target, status := range cases {
					So(get(mux, target).Code, ShouldEqual, status)
				}
			})
		})
	})
}

func TestMetrics(t *testing.T) {
	Convey("Given a server", t, func() {
		mux := newMux(nil)

		Convey("When /healthz is hit and then /metrics is scraped", func() {
			mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the exposition includes the request counter", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				body := rec.Body.String()
				So(strings.Contains(body, "edututor_engine_http_requests_total"), ShouldBeTrue)
				So(body, ShouldContainSubstring, `endpoint="healthz"`)
			})
		})
	})
}
