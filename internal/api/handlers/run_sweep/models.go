package run_sweep

// SweepResponse итог прогона
type SweepResponse struct {
	Processed int `json:"processed"`
}
