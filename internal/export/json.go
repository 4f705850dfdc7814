package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/wheelspin/internal/sim"
)

type ExportData struct {
	Velocity  float64            `json:"velocity"`
	Direction int                `json:"direction"`
	Impulse   float64            `json:"impulse"`
	Metric    float64            `json:"inertia_metric"`
	Start     int                `json:"start"`
	Items     []string           `json:"items"`
	SettledAt int                `json:"settled_at"`
	Steps     int                `json:"steps"`
	Angles    []float64          `json:"angles_deg"`
	Omega     []float64          `json:"angular_velocity"`
	Metrics   map[string]float64 `json:"metrics"`
}

func newExportData(result *sim.Result) ExportData {
	rel := result.Release
	return ExportData{
		Velocity:  rel.Velocity,
		Direction: int(rel.Direction),
		Impulse:   rel.Impulse,
		Metric:    rel.Metric,
		Start:     rel.Window.Start,
		Items:     rel.Window.Items[:],
		SettledAt: result.SettledAt,
		Steps:     result.StepsTaken,
		Angles:    result.Angles(),
		Omega:     result.Velocities(),
		Metrics:   result.Metrics,
	}
}

func WriteJSON(w io.Writer, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(newExportData(result))
}
