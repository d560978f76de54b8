package profile_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/vigia-edu/vigia/internal/domain/model"
	profile "github.com/vigia-edu/vigia/internal/domain/profile"
)

func TestLevel(t *testing.T) {
	Convey("Given the interpretation bands", t, func() {
		Convey("Then positive indicators read alto/medio/bajo", func() {
			So(profile.Level(0.8, true), ShouldEqual, "alto")
			So(profile.Level(0.7, true), ShouldEqual, "alto")
			So(profile.Level(0.5, true), ShouldEqual, "medio")
			So(profile.Level(0.2, true), ShouldEqual, "bajo")
		})

		Convey("And negative indicators read preocupante/medio/critico", func() {
			So(profile.Level(0.9, false), ShouldEqual, "preocupante")
			So(profile.Level(0.5, false), ShouldEqual, "medio")
			So(profile.Level(0.1, false), ShouldEqual, "crítico")
		})
	})
}

func TestRender(t *testing.T) {
	Convey("Given a student with a survey and observations", t, func() {
		student := model.Student{ID: "EST-001", Name: "Andrés Gómez", Age: 15, Grade: "3° Secundaria"}
		sub := &model.SurveySubmission{
			StudentID: "EST-001",
			ClusterScores: map[string]model.Indicator{
				"familia":   {Raw: 0.4, Normalized: 0.8},
				"violencia": {Raw: 0.1, Normalized: 0.2},
			},
			FamilySupport:    4,
			NeighborhoodSafe: 2,
			GeneralHealth:    5,
			SchoolAttendance: 4,
			Motivation:       3,
			Bullying:         true,
		}
		observations := []model.Observation{
			{StudentID: "EST-001", Author: "Prof. Díaz", Text: "Muy participativo"},
		}

		Convey("When rendering", func() {
			text := profile.Render(student, sub, observations)

			Convey("Then every section appears with the student's data", func() {
				So(text, ShouldContainSubstring, "PERFIL ESTUDIANTIL INTEGRAL")
				So(text, ShouldContainSubstring, "Andrés Gómez")
				So(text, ShouldContainSubstring, "ENTORNO FAMILIAR Y SOCIAL")
				So(text, ShouldContainSubstring, "Convivencia familiar: nivel alto.")
				So(text, ShouldContainSubstring, "bullying o acoso")
				So(text, ShouldContainSubstring, "Prof. Díaz")
			})

			Convey("And rendering is deterministic", func() {
				So(profile.Render(student, sub, observations), ShouldEqual, text)
			})
		})

		Convey("When rendering without a survey", func() {
			text := profile.Render(student, nil, nil)

			Convey("Then survey sections are omitted and absence is stated", func() {
				So(text, ShouldNotContainSubstring, "ENTORNO FAMILIAR Y SOCIAL")
				So(text, ShouldContainSubstring, "No se registran observaciones")
			})
		})
	})
}
