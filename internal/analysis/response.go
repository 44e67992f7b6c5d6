package analysis

import (
	"errors"
	"math"
)

var ErrShortTrace = errors.New("trace needs at least two samples")

// Response summarises a velocity trace settling toward a constant.
type Response struct {
	Initial      float64 `json:"initial"`
	Final        float64 `json:"final"`
	Peak         float64 `json:"peak"`
	TimeConstant float64 `json:"time_constant"` // first crossing of 63.2% of the change
	RiseTime     float64 `json:"rise_time"`     // 10% to 90%
	SettlingTime float64 `json:"settling_time"` // last exit from the 2% band
	Overshoot    float64 `json:"overshoot"`     // fraction of the change past Final
}

const (
	tauFraction  = 1 - 1/math.E
	settleBand   = 0.02
	riseLowFrac  = 0.1
	riseHighFrac = 0.9
)

// StepResponse measures the trace ys sampled at ts. Times that are never
// reached, such as a rise time on a trace that has not changed, are NaN.
func StepResponse(ts, ys []float64) (Response, error) {
	n := len(ts)
	if n < 2 || len(ys) != n {
		return Response{}, ErrShortTrace
	}

	r := Response{
		Initial:      ys[0],
		Final:        ys[n-1],
		TimeConstant: math.NaN(),
		RiseTime:     math.NaN(),
		SettlingTime: math.NaN(),
	}
	delta := r.Final - r.Initial
	r.Peak = ys[0]
	for _, y := range ys {
		if math.Abs(y-r.Initial) > math.Abs(r.Peak-r.Initial) {
			r.Peak = y
		}
	}
	if delta == 0 {
		return r, nil
	}

	r.TimeConstant = crossing(ts, ys, r.Initial+tauFraction*delta, delta > 0)
	lo := crossing(ts, ys, r.Initial+riseLowFrac*delta, delta > 0)
	hi := crossing(ts, ys, r.Initial+riseHighFrac*delta, delta > 0)
	r.RiseTime = hi - lo

	band := settleBand * math.Abs(delta)
	r.SettlingTime = ts[0]
	for i := n - 1; i >= 0; i-- {
		if math.Abs(ys[i]-r.Final) > band {
			r.SettlingTime = ts[min(i+1, n-1)]
			break
		}
	}

	if over := (r.Peak - r.Final) / delta; over > 0 {
		r.Overshoot = over
	}
	return r, nil
}

// crossing returns the interpolated time ys first reaches level.
func crossing(ts, ys []float64, level float64, rising bool) float64 {
	for i := 1; i < len(ys); i++ {
		a, b := ys[i-1], ys[i]
		reached := b >= level
		if !rising {
			reached = b <= level
		}
		if !reached {
			continue
		}
		if b == a {
			return ts[i]
		}
		frac := (level - a) / (b - a)
		return ts[i-1] + frac*(ts[i]-ts[i-1])
	}
	return math.NaN()
}

// Column extracts component k from each row of states, as stored by a run
// in [angle0, v0, angle1, v1, ...] order.
func Column(states [][]float64, k int) []float64 {
	out := make([]float64, 0, len(states))
	for _, s := range states {
		if k < len(s) {
			out = append(out, s[k])
		}
	}
	return out
}

// JointResponses measures the velocity trace of every joint in states.
func JointResponses(times []float64, states [][]float64) ([]Response, error) {
	if len(states) == 0 {
		return nil, ErrShortTrace
	}
	joints := len(states[0]) / 2
	out := make([]Response, joints)
	for j := range joints {
		r, err := StepResponse(times, Column(states, 2*j+1))
		if err != nil {
			return nil, err
		}
		out[j] = r
	}
	return out, nil
}
