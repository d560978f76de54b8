package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	api "github.com/vigia-edu/vigia/internal/adapters/http/api"
	app "github.com/vigia-edu/vigia/internal/app"
	"github.com/vigia-edu/vigia/internal/domain/model"
	"github.com/vigia-edu/vigia/internal/domain/types"
)

func fpt(v float64) *float64 { return &v }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	svc := app.New()
	if err := svc.AddStudent(ctx, model.Student{ID: "EST-001", Name: "Andrés"}); err != nil {
		t.Fatalf("seed student: %v", err)
	}
	if err := svc.ReplaceAcademicRecords(ctx, []model.AcademicRecord{
		{StudentID: "EST-001", Subject: "Matemáticas", Final: fpt(85), Attendance: fpt(0.95)},
	}); err != nil {
		t.Fatalf("seed records: %v", err)
	}
	if _, err := svc.EvaluateAll(ctx); err != nil {
		t.Fatalf("seed evaluation: %v", err)
	}

	mux := http.NewServeMux()
	api.NewServer(svc).Register(ctx, mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStudentEndpoints(t *testing.T) {
	srv := newTestServer(t)

	Convey("Given the students API", t, func() {
		Convey("When posting a valid student", func() {
			body := `{"id":"EST-002","name":"Beatriz","age":14}`
			resp, err := http.Post(srv.URL+"/students", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()

			Convey("Then it is created and fetchable", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusCreated)

				got, err := http.Get(srv.URL + "/students/EST-002")
				So(err, ShouldBeNil)
				defer got.Body.Close()
				So(got.StatusCode, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When posting a student without an id", func() {
			resp, err := http.Post(srv.URL+"/students", "application/json", strings.NewReader(`{"name":"x"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When fetching an unknown student", func() {
			resp, err := http.Get(srv.URL + "/students/EST-404")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When listing students", func() {
			resp, err := http.Get(srv.URL + "/students")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var students []model.Student
			So(json.NewDecoder(resp.Body).Decode(&students), ShouldBeNil)
			So(len(students), ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}

func TestScoringEndpoints(t *testing.T) {
	srv := newTestServer(t)

	Convey("Given the scoring API", t, func() {
		Convey("When fetching risk for a known student", func() {
			resp, err := http.Get(srv.URL + "/risk/EST-001")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var a types.RiskAssessment
			So(json.NewDecoder(resp.Body).Decode(&a), ShouldBeNil)

			Convey("Then the assessment carries the computed fields", func() {
				So(a.StudentID, ShouldEqual, "EST-001")
				So(a.Risk, ShouldBeGreaterThanOrEqualTo, 0)
				So(a.Risk, ShouldBeLessThanOrEqualTo, 1)
				So(a.GradeAverage, ShouldAlmostEqual, 85, 1e-9)
			})
		})

		Convey("When fetching risk for an unknown student", func() {
			resp, err := http.Get(srv.URL + "/risk/EST-404")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusNotFound)
		})

		Convey("When fetching the ranking", func() {
			resp, err := http.Get(srv.URL + "/ranking?limit=5")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var entries []types.RankingEntry
			So(json.NewDecoder(resp.Body).Decode(&entries), ShouldBeNil)
			So(len(entries), ShouldBeGreaterThanOrEqualTo, 1)
			So(entries[0].Rank, ShouldEqual, 1)
		})

		Convey("When the ranking limit is malformed", func() {
			resp, err := http.Get(srv.URL + "/ranking?limit=zero")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When requesting an area recommendation", func() {
			resp, err := http.Get(srv.URL + "/area/EST-001")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var rec types.AreaRecommendation
			So(json.NewDecoder(resp.Body).Decode(&rec), ShouldBeNil)
			So(rec.AreaID, ShouldBeBetweenOrEqual, 1, 30)
			So(rec.AreaName, ShouldNotBeEmpty)
		})

		Convey("When listing the area catalog", func() {
			resp, err := http.Get(srv.URL + "/areas")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var items []struct {
				ID   int    `json:"id"`
				Name string `json:"name"`
			}
			So(json.NewDecoder(resp.Body).Decode(&items), ShouldBeNil)
			So(len(items), ShouldEqual, 30)
		})

		Convey("When triggering a batch evaluation", func() {
			resp, err := http.Post(srv.URL+"/evaluate", "application/json", nil)
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When fetching the cohort stats", func() {
			resp, err := http.Get(srv.URL + "/stats")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)

			var stats types.Stats
			So(json.NewDecoder(resp.Body).Decode(&stats), ShouldBeNil)
			So(stats.Students, ShouldBeGreaterThanOrEqualTo, 1)
		})
	})
}

func TestIntakeEndpoints(t *testing.T) {
	srv := newTestServer(t)

	Convey("Given the intake API", t, func() {
		Convey("When posting an observation", func() {
			body := `{"student_id":"EST-001","author":"Prof. Díaz","text":"Muy participativo en clase"}`
			resp, err := http.Post(srv.URL+"/observations", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)

			Convey("Then it appears in the student's log", func() {
				got, err := http.Get(srv.URL + "/observations/EST-001")
				So(err, ShouldBeNil)
				defer got.Body.Close()

				var observations []model.Observation
				So(json.NewDecoder(got.Body).Decode(&observations), ShouldBeNil)
				So(len(observations), ShouldEqual, 1)
				So(observations[0].Author, ShouldEqual, "Prof. Díaz")
			})
		})

		Convey("When posting an observation without text", func() {
			resp, err := http.Post(srv.URL+"/observations", "application/json",
				strings.NewReader(`{"student_id":"EST-001"}`))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When posting a survey", func() {
			body := `{"student_id":"EST-001","selections":{"vive_ambos":true},"motivation":4}`
			resp, err := http.Post(srv.URL+"/surveys", "application/json", strings.NewReader(body))
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusCreated)
		})

		Convey("When fetching the profile", func() {
			resp, err := http.Get(srv.URL + "/profile/EST-001")
			So(err, ShouldBeNil)
			defer resp.Body.Close()
			So(resp.StatusCode, ShouldEqual, http.StatusOK)
			So(resp.Header.Get("Content-Type"), ShouldStartWith, "text/plain")
		})
	})
}
