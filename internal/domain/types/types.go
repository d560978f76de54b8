// Package types contains the read shapes shared between the service and the HTTP API.
package types

// RiskAssessment is the computed dropout risk for one student.
type RiskAssessment struct {
	StudentID    string  `json:"student_id"`
	Name         string  `json:"name,omitempty"`
	Risk         float64 `json:"risk"`
	Environment  float64 `json:"environment"`
	GradeAverage float64 `json:"grade_average"`
	Attendance   float64 `json:"attendance"`
	HighRisk     bool    `json:"high_risk"`
	AtRiskGrades bool    `json:"at_risk_grades"`
	Partial      bool    `json:"partial,omitempty"`
}

// AreaRecommendation is the assigned academic area for one student.
type AreaRecommendation struct {
	StudentID string  `json:"student_id"`
	AreaID    int     `json:"area_id"`
	AreaName  string  `json:"area_name"`
	Family    string  `json:"family"`
	Score     float64 `json:"score"`
}

// RankingEntry is one row of the descending-risk ranking.
type RankingEntry struct {
	Rank      int     `json:"rank"`
	StudentID string  `json:"student_id"`
	Name      string  `json:"name,omitempty"`
	Risk      float64 `json:"risk"`
	HighRisk  bool    `json:"high_risk"`
}

// Stats summarizes the cohort after a batch evaluation.
type Stats struct {
	Students        int     `json:"students"`
	Evaluated       int     `json:"evaluated"`
	HighRisk        int     `json:"high_risk"`
	MeanRisk        float64 `json:"mean_risk"`
	MeanGradeAvg    float64 `json:"mean_grade_average"`
	MeanAttendance  float64 `json:"mean_attendance"`
	MeanEnvironment float64 `json:"mean_environment"`
}
