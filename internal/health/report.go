package health

import "time"

// Report is the aggregate of one orchestration run. It is built once and
// never mutated afterwards; readers always receive a complete report.
type Report struct {
	Healthy        []Outcome `json:"healthy_endpoints"`
	Unhealthy      []Outcome `json:"unhealthy_endpoints"`
	HealthyCount   int       `json:"healthy_count"`
	UnhealthyCount int       `json:"unhealthy_count"`
	CheckedAt      time.Time `json:"checked_at"`
}

// NewReport partitions outcomes preserving their order.
func NewReport(outcomes []Outcome) *Report {
	r := &Report{
		Healthy:   make([]Outcome, 0, len(outcomes)),
		Unhealthy: make([]Outcome, 0, len(outcomes)),
		CheckedAt: time.Now().UTC(),
	}
	for _, o := range outcomes {
		if o.Healthy() {
			r.Healthy = append(r.Healthy, o)
		} else {
			r.Unhealthy = append(r.Unhealthy, o)
		}
	}
	r.HealthyCount = len(r.Healthy)
	r.UnhealthyCount = len(r.Unhealthy)
	return r
}
