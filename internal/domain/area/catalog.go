// Package area assigns one academic area out of a fixed catalog to a
// student, combining academic base score, subject affinities and
// behavioral signals from observation text.
package area

// Area is one entry of the static catalog.
type Area struct {
	ID   int
	Name string
}

// Catalog is the fixed set of academic areas, IDs 1..30.
var Catalog = []Area{
	{1, "Desarrollo de Software"},
	{2, "Ingeniería Civil"},
	{3, "Biotecnología"},
	{4, "Ciencias Ambientales"},
	{5, "Medicina"},
	{6, "Enfermería"},
	{7, "Psicología"},
	{8, "Trabajo Social"},
	{9, "Contabilidad"},
	{10, "Economía"},
	{11, "Administración de Empresas"},
	{12, "Artes Plásticas"},
	{13, "Música"},
	{14, "Recreación y Tiempo Libre"},
	{15, "Entrenamiento Deportivo"},
	{16, "Educación Física"},
	{17, "Docencia en Matemáticas"},
	{18, "Docencia en Lenguaje"},
	{19, "Idiomas Extranjeros"},
	{20, "Ingeniería Industrial"},
	{21, "Investigación Científica"},
	{22, "Robótica"},
	{23, "Ciberseguridad"},
	{24, "Diseño Gráfico"},
	{25, "Emprendimiento"},
	{26, "Sociología"},
	{27, "Comunicación Social"},
	{28, "Derecho"},
	{29, "Mercadeo y Ventas"},
	{30, "Análisis de Datos"},
}

// Family groups mutually exclusive areas; at most one area per family can
// win a recommendation.
type Family struct {
	Name    string
	AreaIDs []int
}

// Families is the canonical family list. Iteration order is fixed and is
// the tie-break order of the final selection.
var Families = []Family{
	{"deportivo", []int{16, 15, 14}},
	{"tech", []int{1, 22, 23, 30}},
	{"ingenieria", []int{2, 3, 4, 20}},
	{"salud", []int{5, 6}},
	{"docencia", []int{17, 18}},
	{"creativo", []int{12, 24, 13}},
	{"social", []int{7, 8, 27, 28, 26}},
	{"negocios", []int{9, 10, 11, 25, 29}},
}

// Thematic boost subsets: areas whose score grows with the matching
// subject affinity.
var (
	scienceBoostIDs = []int{3, 4, 5, 21}
	quantBoostIDs   = []int{9, 10, 17, 20}
	socialBoostIDs  = []int{7, 8, 26, 27, 28}
)

// Name returns the human-readable name for an area ID, or "" when the ID
// is not in the catalog.
func Name(id int) string {
	for _, a := range Catalog {
		if a.ID == id {
			return a.Name
		}
	}
	return ""
}

// FamilyOf returns the family name an area belongs to, or "" for areas
// outside every family.
func FamilyOf(id int) string {
	for _, f := range Families {
		for _, aid := range f.AreaIDs {
			if aid == id {
				return f.Name
			}
		}
	}
	return ""
}
