package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	repository "github.com/vigia-edu/vigia/internal/adapters/repository"
	"github.com/vigia-edu/vigia/internal/domain/model"
)

func TestMemStoreStudents(t *testing.T) {
	Convey("Given an empty in-memory store", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()

		Convey("When upserting students", func() {
			So(store.UpsertStudent(ctx, model.Student{ID: "EST-002", Name: "Beatriz"}), ShouldBeNil)
			So(store.UpsertStudent(ctx, model.Student{ID: "EST-001", Name: "Andrés"}), ShouldBeNil)

			Convey("Then they list back ordered by id", func() {
				students, err := store.ListStudents(ctx)
				So(err, ShouldBeNil)
				So(len(students), ShouldEqual, 2)
				So(students[0].ID, ShouldEqual, "EST-001")
				So(students[1].ID, ShouldEqual, "EST-002")
			})

			Convey("And an upsert with the same id replaces the row", func() {
				So(store.UpsertStudent(ctx, model.Student{ID: "EST-001", Name: "Andrés M."}), ShouldBeNil)
				st, err := store.GetStudent(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(st.Name, ShouldEqual, "Andrés M.")
			})
		})

		Convey("When upserting with an empty id", func() {
			err := store.UpsertStudent(ctx, model.Student{Name: "anon"})

			Convey("Then it fails with ErrEmptyID", func() {
				So(errors.Is(err, repository.ErrEmptyID), ShouldBeTrue)
			})
		})

		Convey("When fetching an unknown student", func() {
			_, err := store.GetStudent(ctx, "EST-404")

			Convey("Then it fails with ErrNotFound", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestMemStoreDependentRows(t *testing.T) {
	Convey("Given a store with one student", t, func() {
		ctx := context.Background()
		store := repository.NewMemStore()
		So(store.UpsertStudent(ctx, model.Student{ID: "EST-001", Name: "Andrés"}), ShouldBeNil)

		Convey("When appending observations", func() {
			first, err := store.AppendObservation(ctx, model.Observation{
				StudentID: "EST-001", Text: "Participativo", Date: time.Now(),
			})
			So(err, ShouldBeNil)

			Convey("Then a generated id comes back", func() {
				So(first.ID, ShouldNotBeEmpty)
			})

			Convey("And append order is preserved", func() {
				_, err := store.AppendObservation(ctx, model.Observation{StudentID: "EST-001", Text: "Atento"})
				So(err, ShouldBeNil)
				observations, err := store.ListObservations(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(observations), ShouldEqual, 2)
				So(observations[0].Text, ShouldEqual, "Participativo")
				So(observations[1].Text, ShouldEqual, "Atento")
			})
		})

		Convey("When observing an unknown student", func() {
			_, err := store.AppendObservation(ctx, model.Observation{StudentID: "EST-404", Text: "x"})

			Convey("Then it fails with ErrNoStudent", func() {
				So(errors.Is(err, repository.ErrNoStudent), ShouldBeTrue)
			})
		})

		Convey("When appending surveys", func() {
			sub, err := store.AppendSurvey(ctx, model.SurveySubmission{
				StudentID:  "EST-001",
				Selections: map[string]bool{"vive_ambos": true},
			})
			So(err, ShouldBeNil)
			So(sub.ID, ShouldNotBeEmpty)

			Convey("Then a resubmission is a new row, never an update", func() {
				_, err := store.AppendSurvey(ctx, model.SurveySubmission{StudentID: "EST-001"})
				So(err, ShouldBeNil)
				surveys, err := store.ListSurveys(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(surveys), ShouldEqual, 2)
			})
		})

		Convey("When replacing academic records", func() {
			records := []model.AcademicRecord{
				{StudentID: "EST-001", Subject: "Matemáticas", Attendance: fpt(0.9)},
			}
			So(store.ReplaceAcademicRecords(ctx, records), ShouldBeNil)

			Convey("Then a second replace swaps the whole dataset", func() {
				So(store.ReplaceAcademicRecords(ctx, nil), ShouldBeNil)
				all, err := store.ListAllAcademicRecords(ctx)
				So(err, ShouldBeNil)
				So(len(all), ShouldEqual, 0)
			})
		})

		Convey("When deleting the student", func() {
			_, err := store.AppendObservation(ctx, model.Observation{StudentID: "EST-001", Text: "x"})
			So(err, ShouldBeNil)
			So(store.DeleteStudent(ctx, "EST-001"), ShouldBeNil)

			Convey("Then the dependent rows go with it", func() {
				observations, err := store.ListObservations(ctx, "EST-001")
				So(err, ShouldBeNil)
				So(len(observations), ShouldEqual, 0)
			})

			Convey("And deleting again fails with ErrNotFound", func() {
				So(errors.Is(store.DeleteStudent(ctx, "EST-001"), repository.ErrNotFound), ShouldBeTrue)
			})
		})
	})
}
