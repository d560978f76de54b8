package textscore

// Modifiers scale or cancel a keyword match based on the word right
// before it: a negation zeroes the match, an intensifier boosts it.
type Modifiers struct {
	Negations    []string
	Intensifiers []string
}

// Lexicon groups the stem sets used to derive subject affinities from
// observation text. Stems are stored in normalized form (lowercase,
// accent-free); multi-word stems match as phrases.
type Lexicon struct {
	Science   []string
	Quant     []string
	Social    []string
	Risk      []string
	Modifiers Modifiers
}

// DefaultLexicon is the built-in Spanish observation vocabulary.
var DefaultLexicon = Lexicon{
	Science: []string{
		"ciencia", "laboratorio", "experimento", "biologia", "quimica",
		"fisica", "investigacion", "naturaleza", "astronomia", "curioso",
	},
	Quant: []string{
		"matematica", "calculo", "algebra", "geometria", "logica",
		"estadistica", "razonamiento", "numeros", "resolver problemas",
	},
	Social: []string{
		"companeros", "grupo", "debate", "historia", "lectura",
		"escritura", "empatia", "colabora", "comunica", "expresa",
	},
	Risk: []string{
		"desmotivado", "no participa", "abandona", "agresivo",
		"no entrega", "se niega", "falta de interes", "conflicto",
	},
	Modifiers: Modifiers{
		Negations:    []string{"no", "nunca", "jamas", "poco"},
		Intensifiers: []string{"muy", "bastante", "siempre"},
	},
}
