package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/san-kum/wheelspin/internal/sim"
)

// FrameRecord is one CSV row of a spin trace.
type FrameRecord struct {
	Tick            int     `csv:"tick"`
	AngleDegrees    float64 `csv:"angle_deg"`
	AngularVelocity float64 `csv:"angular_velocity"`
	AtRest          bool    `csv:"at_rest"`
}

func records(result *sim.Result) []*FrameRecord {
	angles := result.Angles()
	out := make([]*FrameRecord, len(result.Frames))
	for i, f := range result.Frames {
		out[i] = &FrameRecord{
			Tick:            f.Tick,
			AngleDegrees:    angles[i],
			AngularVelocity: f.AngularVelocity,
			AtRest:          f.AtRest,
		}
	}
	return out
}

// WriteCSV writes one row per frame with a header.
func WriteCSV(w io.Writer, result *sim.Result) error {
	if len(result.Frames) == 0 {
		return fmt.Errorf("no frames to export")
	}
	return gocsv.Marshal(records(result), w)
}
