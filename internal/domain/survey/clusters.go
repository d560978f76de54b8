package survey

// Clusters is the fixed catalog of weighted option groups collected by the
// contextual form. Weights sum to 1.0 per cluster except where a "none"
// option is deliberately weighted zero (ZeroSafe clusters). Order is fixed
// so derived outputs are deterministic.
var Clusters = []Cluster{
	{
		Name: "familia",
		Options: []OptionWeight{
			{"vive_ambos", 0.40},
			{"vive_padre", 0.15},
			{"vive_madre", 0.15},
			{"vive_otro", 0.20},
			{"vive_ninguno", 0.10},
		},
	},
	{
		Name: "educacion",
		Options: []OptionWeight{
			{"edu_universitario", 0.45},
			{"edu_secundaria", 0.30},
			{"edu_primaria", 0.15},
			{"edu_otro", 0.10},
		},
	},
	{
		Name: "laboral",
		Options: []OptionWeight{
			{"lab_empleado", 0.40},
			{"lab_independiente", 0.35},
			{"lab_otro", 0.15},
			{"lab_desempleado", 0.10},
		},
	},
	{
		Name: "recursos",
		Options: []OptionWeight{
			{"rec_internet", 0.30},
			{"rec_computadora", 0.25},
			{"rec_libros", 0.20},
			{"rec_tutorias", 0.15},
			{"rec_otros", 0.10},
		},
	},
	{
		Name: "violencia",
		Options: []OptionWeight{
			{"vio_robos", 0.30},
			{"vio_drogas", 0.30},
			{"vio_peleas", 0.25},
			{"vio_acoso", 0.15},
		},
	},
	{
		Name: "espacios",
		Options: []OptionWeight{
			{"esp_biblioteca", 0.45},
			{"esp_centro", 0.35},
			{"esp_otro", 0.20},
		},
	},
	{
		Name:     "salud_acceso",
		ZeroSafe: true,
		Options: []OptionWeight{
			{"sal_seguro", 0.40},
			{"sal_hospital", 0.35},
			{"sal_clinica", 0.25},
			{"sal_ninguno", 0.00},
		},
	},
	{
		Name: "condiciones",
		Options: []OptionWeight{
			{"cond_emocional", 0.35},
			{"cond_visual", 0.25},
			{"cond_auditiva", 0.25},
			{"cond_otra", 0.15},
		},
	},
	{
		Name: "actividades",
		Options: []OptionWeight{
			{"act_ciencia", 0.25},
			{"act_voluntariado", 0.25},
			{"act_deportes", 0.20},
			{"act_arte", 0.20},
			{"act_otro", 0.10},
		},
	},
	{
		Name: "dispositivos",
		Options: []OptionWeight{
			{"disp_computadora", 0.45},
			{"disp_tablet", 0.30},
			{"disp_celular", 0.15},
			{"disp_ninguno", 0.10},
		},
	},
	{
		Name: "animo",
		Options: []OptionWeight{
			{"ani_alegre", 0.50},
			{"ani_neutral", 0.25},
			{"ani_otro", 0.15},
			{"ani_ansioso", 0.05},
			{"ani_triste", 0.05},
		},
	},
	{
		Name: "materias",
		Options: []OptionWeight{
			{"mat_matematicas", 0.20},
			{"mat_ciencias", 0.20},
			{"mat_idiomas", 0.15},
			{"mat_historia", 0.15},
			{"mat_arte", 0.15},
			{"mat_deportes", 0.15},
		},
	},
	{
		Name: "areas",
		Options: []OptionWeight{
			{"area_logico", 0.25},
			{"area_cientifico", 0.25},
			{"area_social", 0.20},
			{"area_artistico", 0.15},
			{"area_deportivo", 0.15},
		},
	},
	{
		Name: "metas_corto",
		Options: []OptionWeight{
			{"meta_corto_aprobar", 0.20},
			{"meta_corto_mejorar", 0.20},
			{"meta_corto_habilidades", 0.15},
			{"meta_corto_habitos", 0.15},
			{"meta_corto_participar", 0.12},
			{"meta_corto_reconocimiento", 0.10},
			{"meta_corto_relaciones", 0.08},
		},
	},
	{
		Name: "metas_largo",
		Options: []OptionWeight{
			{"meta_largo_universidad", 0.25},
			{"meta_largo_carrera", 0.20},
			{"meta_largo_competencias", 0.15},
			{"meta_largo_investigacion", 0.15},
			{"meta_largo_becas", 0.10},
			{"meta_largo_impacto", 0.10},
			{"meta_largo_red", 0.05},
		},
	},
	{
		Name: "transporte",
		Options: []OptionWeight{
			{"trans_privado", 0.45},
			{"trans_publico", 0.35},
			{"trans_camina", 0.20},
		},
	},
	{
		Name:     "servicios",
		ZeroSafe: true,
		Options: []OptionWeight{
			{"serv_agua", 0.30},
			{"serv_luz", 0.30},
			{"serv_saneamiento", 0.25},
			{"serv_internet", 0.15},
			{"serv_ninguno", 0.00},
		},
	},
	{
		Name: "cultura",
		Options: []OptionWeight{
			{"cult_biblioteca", 0.30},
			{"cult_museo", 0.25},
			{"cult_parques", 0.20},
			{"cult_cine", 0.15},
			{"cult_otro", 0.10},
		},
	},
}
