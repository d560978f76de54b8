package area_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	area "github.com/vigia-edu/vigia/internal/domain/area"
	"github.com/vigia-edu/vigia/internal/domain/model"
)

func TestCatalog(t *testing.T) {
	Convey("Given the static catalog", t, func() {
		Convey("Then it holds thirty uniquely named areas", func() {
			So(len(area.Catalog), ShouldEqual, 30)
			seen := make(map[int]bool)
			for _, a := range area.Catalog {
				So(seen[a.ID], ShouldBeFalse)
				So(a.Name, ShouldNotBeEmpty)
				seen[a.ID] = true
			}
		})

		Convey("Then family membership is exclusive", func() {
			assigned := make(map[int]string)
			for _, f := range area.Families {
				for _, id := range f.AreaIDs {
					So(assigned[id], ShouldBeEmpty)
					assigned[id] = f.Name
				}
			}
		})

		Convey("Then unknown IDs resolve to empty strings", func() {
			So(area.Name(99), ShouldBeEmpty)
			So(area.FamilyOf(99), ShouldBeEmpty)
		})
	})
}

func TestAssign(t *testing.T) {
	Convey("Given the assignment engine", t, func() {
		e := area.NewEngine()

		neutral := model.FeatureRow{
			StudentID:    "EST-001",
			GradeAverage: 80,
			Attendance:   0.9,
			Environment:  0.5,
		}

		Convey("When the row carries no signals at all", func() {
			got := e.Assign(model.FeatureRow{StudentID: "EST-000"})

			Convey("Then a valid catalog area is still assigned", func() {
				So(area.Name(got.AreaID), ShouldNotBeEmpty)
				So(got.Family, ShouldNotBeEmpty)
			})
		})

		Convey("When no boost applies", func() {
			got := e.Assign(neutral)

			Convey("Then the first family's best area wins deterministically", func() {
				So(got.AreaID, ShouldEqual, 16)
				So(got.Family, ShouldEqual, "deportivo")
				// 0.5*80 + 0.3*90 + 0.2*50.
				So(got.Score, ShouldAlmostEqual, 77.0, 1e-9)
			})
		})

		Convey("When observations describe a team captain", func() {
			row := neutral
			row.Observations = []string{"Es capitán del equipo de fútbol"}
			got := e.Assign(row)

			Convey("Then the sports areas dominate", func() {
				So(got.AreaID, ShouldEqual, 16)
				So(got.Family, ShouldEqual, "deportivo")
				So(got.Score, ShouldAlmostEqual, 77.0*1.5, 1e-9)
			})
		})

		Convey("When the quantitative affinity is strong", func() {
			row := neutral
			row.QuantAffinity = 2
			got := e.Assign(row)

			Convey("Then a quant-boosted area wins, honoring family order", func() {
				So(got.AreaID, ShouldEqual, 20)
				So(got.Family, ShouldEqual, "ingenieria")
				So(got.Score, ShouldAlmostEqual, 77.0*1.4, 1e-9)
			})
		})

		Convey("When the science affinity is strong", func() {
			row := neutral
			row.ScienceAffinity = 1.5
			got := e.Assign(row)

			Convey("Then a science-boosted area wins", func() {
				So(got.AreaID, ShouldEqual, 3)
				So(got.Family, ShouldEqual, "ingenieria")
			})
		})

		Convey("When observations call the student impatient", func() {
			row := neutral
			row.Observations = []string{"Se muestra impaciente en trabajos largos"}
			got := e.Assign(row)

			Convey("Then the patience-tolerant areas rise", func() {
				So(got.AreaID, ShouldEqual, 22)
				So(got.Family, ShouldEqual, "tech")
				So(got.Score, ShouldAlmostEqual, 77.0*1.2, 1e-9)
			})
		})

		Convey("When the same row is assigned twice", func() {
			first := e.Assign(neutral)
			second := e.Assign(neutral)

			Convey("Then the result is identical", func() {
				So(second, ShouldResemble, first)
			})
		})
	})
}
