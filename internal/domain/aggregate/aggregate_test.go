package aggregate_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	aggregate "github.com/vigia-edu/vigia/internal/domain/aggregate"
	"github.com/vigia-edu/vigia/internal/domain/model"
)

func fpt(v float64) *float64 { return &v }

func TestBuild(t *testing.T) {
	Convey("Given students with full, partial and missing data", t, func() {
		agg := aggregate.New()

		students := []model.Student{
			{ID: "EST-002", Name: "Beatriz"},
			{ID: "EST-001", Name: "Andrés"},
			{ID: "EST-003", Name: "Carla"},
		}
		records := []model.AcademicRecord{
			{StudentID: "EST-001", Subject: "Matemáticas", Final: fpt(90), Attendance: fpt(0.95)},
			{StudentID: "EST-001", Subject: "Lenguaje", Final: fpt(80), Attendance: fpt(0.85)},
			// Final not yet closed and attendance never recorded.
			{StudentID: "EST-002", Subject: "Historia", Periods: []float64{60, 70}},
		}
		observations := []model.Observation{
			{StudentID: "EST-001", Text: "Muy participativo en clase"},
			{StudentID: "EST-001", Text: "Conflicto con compañeros y desmotivado"},
		}

		Convey("When building feature rows", func() {
			rows := agg.Build(students, records, observations)

			Convey("Then one row per student comes back in ID order", func() {
				So(len(rows), ShouldEqual, 3)
				So(rows[0].StudentID, ShouldEqual, "EST-001")
				So(rows[1].StudentID, ShouldEqual, "EST-002")
				So(rows[2].StudentID, ShouldEqual, "EST-003")
			})

			Convey("And recorded grades and attendance are averaged", func() {
				So(rows[0].GradeAverage, ShouldAlmostEqual, 85.0, 1e-9)
				So(rows[0].Attendance, ShouldAlmostEqual, 0.90, 1e-9)
				So(rows[0].Partial, ShouldBeFalse)
			})

			Convey("And a missing final grade falls back to the period mean", func() {
				So(rows[1].GradeAverage, ShouldAlmostEqual, 65.0, 1e-9)
			})

			Convey("And unrecorded attendance keeps the default, never zero", func() {
				So(rows[1].Attendance, ShouldAlmostEqual, 1.0, 1e-9)
			})

			Convey("And the attendance mean only covers recorded values", func() {
				row := agg.BuildOne(model.Student{ID: "EST-009"}, []model.AcademicRecord{
					{StudentID: "EST-009", Subject: "Física", Attendance: fpt(0.6)},
					{StudentID: "EST-009", Subject: "Química"},
				}, nil)
				So(row.Attendance, ShouldAlmostEqual, 0.6, 1e-9)
			})

			Convey("And a student with no data gets the documented defaults", func() {
				So(rows[2].GradeAverage, ShouldAlmostEqual, 75.0, 1e-9)
				So(rows[2].Attendance, ShouldAlmostEqual, 1.0, 1e-9)
				So(rows[2].Environment, ShouldAlmostEqual, 0.5, 1e-9)
				So(rows[2].Partial, ShouldBeTrue)
				So(rows[2].NumObservations, ShouldEqual, 0)
			})

			Convey("And mixed observations move the environment off neutral", func() {
				So(rows[0].NumObservations, ShouldEqual, 2)
				So(rows[0].Environment, ShouldNotAlmostEqual, 0.5, 1e-9)
			})

			Convey("And sentiment spread shows up as variance", func() {
				// One positive and one negative observation disagree.
				So(rows[0].EnvironmentVariance, ShouldBeGreaterThan, 0)
				So(rows[1].EnvironmentVariance, ShouldEqual, 0)
			})
		})

		Convey("When building the same input twice", func() {
			first := agg.Build(students, records, observations)
			second := agg.Build(students, records, observations)

			Convey("Then the output is field-identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}

func TestBuildOne(t *testing.T) {
	Convey("Given a single student", t, func() {
		agg := aggregate.New()
		student := model.Student{ID: "EST-010", Name: "Diego"}

		Convey("When observations mention subject interests", func() {
			row := agg.BuildOne(student, nil, []model.Observation{
				{StudentID: "EST-010", Text: "Gran interés por la ciencia y el laboratorio"},
			})

			Convey("Then the science affinity is populated", func() {
				So(row.ScienceAffinity, ShouldBeGreaterThan, 0)
				So(row.QuantAffinity, ShouldEqual, 0)
			})

			Convey("And missing academic data still marks the row partial", func() {
				So(row.Partial, ShouldBeTrue)
			})
		})
	})
}
