package connectome

import "github.com/nvandessel/bionet/internal/models"

// Summary counts the rows of a loaded connectome.
type Summary struct {
	Rows        int `json:"rows"`
	Connections int `json:"connections"`
	MotorRows   int `json:"motor_rows"`
	SensoryRows int `json:"sensory_rows"`
	// Synapses is the sum of connection counts over all rows.
	Synapses int `json:"synapses"`
}

// Summarize counts rows by kind.
func Summarize(rows []models.Row) Summary {
	var s Summary
	s.Rows = len(rows)
	for _, r := range rows {
		if r.Motor {
			s.MotorRows++
		} else {
			s.Connections++
		}
		if r.Sensory {
			s.SensoryRows++
		}
		s.Synapses += r.Connections
	}
	return s
}
