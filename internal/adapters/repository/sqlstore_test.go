package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/vigia-edu/vigia/internal/adapters/repository"
	"github.com/vigia-edu/vigia/internal/domain/model"
)

func fpt(v float64) *float64 { return &v }

func openTestSQL(t *testing.T) *repository.SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "vigia_test.db")
	store, err := repository.OpenSQL(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStoreRoundTrip(t *testing.T) {
	Convey("Given a fresh SQLite store", t, func() {
		ctx := context.Background()
		store := openTestSQL(t)

		Convey("When upserting and reading a student", func() {
			st := model.Student{ID: "EST-001", Name: "Andrés", Age: 15, Grade: "3° Secundaria", Section: "A"}
			So(store.UpsertStudent(ctx, st), ShouldBeNil)

			got, err := store.GetStudent(ctx, "EST-001")
			So(err, ShouldBeNil)

			Convey("Then the row survives intact", func() {
				So(got, ShouldResemble, st)
			})

			Convey("And a second upsert replaces it", func() {
				st.Name = "Andrés M."
				So(store.UpsertStudent(ctx, st), ShouldBeNil)
				got, err := store.GetStudent(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(got.Name, ShouldEqual, "Andrés M.")
			})
		})

		Convey("When storing academic records", func() {
			So(store.UpsertStudent(ctx, model.Student{ID: "EST-001", Name: "Andrés"}), ShouldBeNil)
			records := []model.AcademicRecord{
				{StudentID: "EST-001", Subject: "Matemáticas", Periods: []float64{80, 90}, Final: fpt(85), Attendance: fpt(0.95)},
				{StudentID: "EST-001", Subject: "Lenguaje", Periods: []float64{70}},
			}
			So(store.ReplaceAcademicRecords(ctx, records), ShouldBeNil)

			Convey("Then periods and the nullable columns round-trip", func() {
				got, err := store.ListAcademicRecords(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 2)
				So(got[0].Periods, ShouldResemble, []float64{80, 90})
				So(*got[0].Final, ShouldAlmostEqual, 85.0, 1e-9)
				So(*got[0].Attendance, ShouldAlmostEqual, 0.95, 1e-9)
				So(got[1].Final, ShouldBeNil)
				So(got[1].Attendance, ShouldBeNil)
			})

			Convey("And a replace swaps the dataset atomically", func() {
				So(store.ReplaceAcademicRecords(ctx, nil), ShouldBeNil)
				got, err := store.ListAllAcademicRecords(ctx)
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 0)
			})
		})

		Convey("When appending observations and surveys", func() {
			So(store.UpsertStudent(ctx, model.Student{ID: "EST-001", Name: "Andrés"}), ShouldBeNil)

			o, err := store.AppendObservation(ctx, model.Observation{StudentID: "EST-001", Text: "Participativo"})
			So(err, ShouldBeNil)
			So(o.ID, ShouldNotBeEmpty)

			sub, err := store.AppendSurvey(ctx, model.SurveySubmission{
				StudentID:  "EST-001",
				Selections: map[string]bool{"vive_ambos": true},
				Motivation: 4,
			})
			So(err, ShouldBeNil)

			Convey("Then both read back in append order", func() {
				observations, err := store.ListObservations(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(observations), ShouldEqual, 1)
				So(observations[0].Text, ShouldEqual, "Participativo")

				surveys, err := store.ListSurveys(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(surveys), ShouldEqual, 1)
				So(surveys[0].ID, ShouldEqual, sub.ID)
				So(surveys[0].Selections["vive_ambos"], ShouldBeTrue)
				So(surveys[0].Motivation, ShouldEqual, 4)
			})

			Convey("And deleting the student cascades", func() {
				So(store.DeleteStudent(ctx, "EST-001"), ShouldBeNil)
				observations, err := store.ListObservations(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(observations), ShouldEqual, 0)
				_, err = store.GetStudent(ctx, "EST-001")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When referencing an unknown student", func() {
			_, err := store.AppendObservation(ctx, model.Observation{StudentID: "EST-404", Text: "x"})
			So(errors.Is(err, repository.ErrNoStudent), ShouldBeTrue)
		})
	})
}
