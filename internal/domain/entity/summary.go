package entity

// Summary holds descriptive statistics of a numeric series.
// A nil *Summary means the series had no valid values.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	// Std é o desvio padrão amostral; ausente com menos de dois valores.
	Std *float64 `json:"std,omitempty"`
	Min float64  `json:"min"`
	P25 float64  `json:"p25"`
	P50 float64  `json:"p50"`
	P75 float64  `json:"p75"`
	Max float64  `json:"max"`
}
