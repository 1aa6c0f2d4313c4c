package predictor

import (
	"time"

	"carprice/pkg/types"
)

// Predictor states reported by Status.
const (
	StateReady       = "ready"
	StateUnavailable = "unavailable"
)

// Status builds the /status response.
func (p *Predictor) Status() types.StatusResponse {
	resp := types.StatusResponse{
		State:          StateUnavailable,
		ModelPath:      p.path,
		UptimeSeconds:  int64(time.Since(p.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if p.art == nil {
		if p.loadErr != nil {
			resp.Error = p.loadErr.Error()
		}
		return resp
	}
	resp.State = StateReady
	resp.ModelID = p.art.ID
	resp.TrainedAt = p.art.TrainedAt.Unix()
	resp.Rows = p.art.Rows
	resp.Columns = append([]string(nil), p.art.Columns()...)
	resp.R2 = p.art.Metrics.R2
	resp.RMSE = p.art.Metrics.RMSE
	return resp
}
