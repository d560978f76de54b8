// Package profile renders the plain-text integral student profile shown
// by the dashboard. Rendering is a pure function of the stored data; no
// random phrasing, so the same inputs always produce the same text.
package profile

import (
	"fmt"
	"strings"

	"github.com/vigia-edu/vigia/internal/domain/model"
)

// Interpretation bands for [0,1] indicators, mirrored on a 0-10 scale.
const (
	highBand   = 0.7
	mediumBand = 0.4
)

// Level maps a normalized indicator to a qualitative label. Positive
// indicators read alto/medio/bajo; negative ones (where a high value is
// bad) read preocupante/medio/critico.
func Level(normalized float64, positive bool) string {
	switch {
	case normalized >= highBand:
		if positive {
			return "alto"
		}
		return "preocupante"
	case normalized >= mediumBand:
		return "medio"
	default:
		if positive {
			return "bajo"
		}
		return "crítico"
	}
}

// slider converts a 1-5 form slider to a [0,1] value.
func slider(v int) float64 {
	if v < 1 {
		return 0
	}
	if v > 5 {
		return 1
	}
	return float64(v) / 5
}

// Render produces the integral profile for a student from the latest
// survey submission and the recorded observations. A nil submission
// renders the academic sections only.
func Render(student model.Student, sub *model.SurveySubmission, observations []model.Observation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "PERFIL ESTUDIANTIL INTEGRAL\n\n")
	fmt.Fprintf(&b, "Nombre del estudiante: %s\n", student.Name)
	fmt.Fprintf(&b, "Edad: %d\n", student.Age)
	fmt.Fprintf(&b, "Grado / Nivel: %s\n\n", student.Grade)
	b.WriteString("El presente perfil ha sido generado automáticamente a partir del análisis\n" +
		"de indicadores sociales, académicos, familiares y de observaciones\n" +
		"cualitativas realizadas por el personal educativo.\n")

	if sub != nil {
		writeSurveySections(&b, sub)
	}

	b.WriteString("\nOBSERVACIONES REGISTRADAS\n")
	if len(observations) == 0 {
		b.WriteString("\nNo se registran observaciones cualitativas para este estudiante.\n")
	} else {
		for _, o := range observations {
			fmt.Fprintf(&b, "\n- Fecha: %s\n  Autor: %s\n  Observación: %s\n",
				o.Date.Format("2006-01-02"), o.Author, o.Text)
		}
	}

	fmt.Fprintf(&b, "\nCONCLUSIÓN GENERAL\n\n"+
		"La combinación de factores sociales, académicos y observacionales\n"+
		"permite a la institución tomar decisiones informadas orientadas a la\n"+
		"prevención de la deserción escolar y al fortalecimiento del bienestar\n"+
		"integral del estudiante %s.\n", student.Name)

	return b.String()
}

func writeSurveySections(b *strings.Builder, sub *model.SurveySubmission) {
	indicator := func(cluster string) float64 {
		return sub.ClusterScores[cluster].Normalized
	}

	fmt.Fprintf(b, "\nENTORNO FAMILIAR Y SOCIAL\n\n")
	fmt.Fprintf(b, "Convivencia familiar: nivel %s.\n", Level(indicator("familia"), true))
	fmt.Fprintf(b, "Nivel educativo de los padres: %s.\n", Level(indicator("educacion"), true))
	fmt.Fprintf(b, "Apoyo familiar percibido: %s.\n", Level(slider(sub.FamilySupport), true))

	fmt.Fprintf(b, "\nCONDICIONES DE ESTUDIO Y ENTORNO\n\n")
	fmt.Fprintf(b, "Acceso a recursos educativos: %s.\n", Level(indicator("recursos"), true))
	fmt.Fprintf(b, "Seguridad del barrio: %s.\n", Level(slider(sub.NeighborhoodSafe), true))
	fmt.Fprintf(b, "Exposición a violencia: %s.\n", Level(indicator("violencia"), false))

	fmt.Fprintf(b, "\nESTADO DE SALUD\n\n")
	fmt.Fprintf(b, "Estado general de salud: %s.\n", Level(slider(sub.GeneralHealth), true))
	fmt.Fprintf(b, "Acceso a servicios de salud: %s.\n", Level(indicator("salud_acceso"), true))

	fmt.Fprintf(b, "\nDESEMPEÑO ACADÉMICO\n\n")
	fmt.Fprintf(b, "Asistencia escolar: %s.\n", Level(slider(sub.SchoolAttendance), true))
	fmt.Fprintf(b, "Motivación académica: %s.\n", Level(slider(sub.Motivation), true))

	fmt.Fprintf(b, "\nFACTORES DE RIESGO\n\n")
	if sub.Bullying {
		b.WriteString("Se reporta exposición a situaciones de bullying o acoso.\n")
	} else {
		b.WriteString("No se reporta exposición a bullying o acoso.\n")
	}
}
