// Package optimization provides shared data structures for optimization results.
package optimization

// Summary captures the result of a single break-even search.
type Summary struct {
	Scope      string  `json:"scope"`
	TargetName string  `json:"targetName"`
	Field      string  `json:"field"`
	Original   float64 `json:"original"`
	Value      float64 `json:"value"`
	// Advantage is buyer minus renter net worth at the horizon for Value.
	Advantage       float64  `json:"advantage"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
