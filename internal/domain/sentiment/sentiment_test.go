package sentiment_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	sentiment "github.com/vigia-edu/vigia/internal/domain/sentiment"
)

func TestHeuristicEstimate(t *testing.T) {
	Convey("Given the keyword heuristic", t, func() {
		h := sentiment.NewHeuristic()

		Convey("When the text is empty or whitespace", func() {
			Convey("Then the score is exactly neutral", func() {
				So(h.Estimate(""), ShouldEqual, 0.5)
				So(h.Estimate("   \t\n"), ShouldEqual, 0.5)
			})
		})

		Convey("When the text has no known keywords", func() {
			So(h.Estimate("hoy llovio toda la tarde"), ShouldEqual, 0.5)
		})

		Convey("When the text is clearly positive", func() {
			score := h.Estimate(sentiment.Join([]string{
				"Muy participativo en clase",
				"Excelente actitud",
			}))

			Convey("Then the score lands above 0.7", func() {
				// participativo + excelente + actitud.
				So(score, ShouldAlmostEqual, 0.8, 1e-9)
			})
		})

		Convey("When the text is clearly negative", func() {
			score := h.Estimate(sentiment.Join([]string{
				"Problemas de conducta",
				"Conflicto con compañeros",
				"Desmotivado",
			}))

			Convey("Then the score lands below 0.3", func() {
				// problema + conflicto + desmotivado.
				So(score, ShouldAlmostEqual, 0.2, 1e-9)
			})
		})

		Convey("When a keyword appears in plural form", func() {
			Convey("Then the stem counts exactly once", func() {
				// "problemas" matches only the "problema" stem.
				So(h.Estimate("problemas frecuentes"), ShouldAlmostEqual, 0.4, 1e-9)
			})
		})

		Convey("When positive keywords are added to a text", func() {
			base := h.Estimate("conflicto constante")
			richer := h.Estimate("conflicto constante pero muestra esfuerzo y motivacion")

			Convey("Then the score never decreases", func() {
				So(richer, ShouldBeGreaterThan, base)
			})
		})

		Convey("When the imbalance exceeds the scale", func() {
			score := h.Estimate("desinteres falta problema conflicto apatia excusas derrotista")

			Convey("Then the score clamps to the unit interval", func() {
				So(score, ShouldBeGreaterThanOrEqualTo, 0)
				So(score, ShouldBeLessThanOrEqualTo, 1)
			})
		})
	})
}

func TestClassifier(t *testing.T) {
	Convey("Given a small labeled corpus", t, func() {
		samples := []sentiment.Sample{
			{Text: "muy participativo y responsable", Positive: true},
			{Text: "excelente actitud en clase", Positive: true},
			{Text: "esfuerzo constante, gran interes", Positive: true},
			{Text: "desmotivado, muchos problemas", Positive: false},
			{Text: "conflicto con companeros", Positive: false},
			{Text: "apatia y desinteres total", Positive: false},
		}

		Convey("When training the classifier", func() {
			clf, err := sentiment.Train(samples)
			So(err, ShouldBeNil)

			Convey("Then positive text scores higher than negative text", func() {
				pos := clf.Estimate("participativo y con excelente actitud")
				neg := clf.Estimate("desmotivado y con problemas de conflicto")
				So(pos, ShouldBeGreaterThan, neg)
				So(pos, ShouldBeGreaterThan, 0.5)
				So(neg, ShouldBeLessThan, 0.5)
			})

			Convey("And empty text stays exactly neutral", func() {
				So(clf.Estimate(""), ShouldEqual, 0.5)
			})

			Convey("And training is deterministic", func() {
				again, err := sentiment.Train(samples)
				So(err, ShouldBeNil)
				So(again.Estimate("participativo"), ShouldEqual, clf.Estimate("participativo"))
			})
		})

		Convey("When training on an empty corpus", func() {
			_, err := sentiment.Train(nil)

			Convey("Then it fails with ErrEmptyCorpus", func() {
				So(err, ShouldEqual, sentiment.ErrEmptyCorpus)
			})
		})
	})
}
