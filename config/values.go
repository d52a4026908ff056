package config

import "fmt"

// ValueRange enumerates perturbation values From..To inclusive, by Step.
type ValueRange struct {
	From int `json:"from"`
	To   int `json:"to"`
	Step int `json:"step"`
}

// Validate checks range bounds.
func (r ValueRange) Validate() error {
	if r.Step <= 0 {
		return fmt.Errorf("value range step must be positive, got %d", r.Step)
	}
	if r.To < r.From {
		return fmt.Errorf("value range %d..%d is empty", r.From, r.To)
	}
	return nil
}

// Expand lists the range's values in ascending order.
func (r ValueRange) Expand() []int {
	var values []int
	for v := r.From; v <= r.To; v += r.Step {
		values = append(values, v)
	}
	return values
}

// DefaultValueRanges is the study's fixed enumeration: 1000..33000 in steps
// of 1000, then 36000..58000 in steps of 2000.
func DefaultValueRanges() []ValueRange {
	return []ValueRange{
		{From: 1000, To: 33000, Step: 1000},
		{From: 36000, To: 58000, Step: 2000},
	}
}
