package arm

import "github.com/neoaces/arm/internal/dynamo"

// Segment is one drawn link, from its pivot to its tip.
type Segment struct {
	Start dynamo.Vec2 `json:"start"`
	End   dynamo.Vec2 `json:"end"`
}

// Endpoints returns the tip of every link in world coordinates, base first.
func (a *Arm) Endpoints() []dynamo.Vec2 {
	segs := a.worldSegments()
	ends := make([]dynamo.Vec2, len(segs))
	for i, s := range segs {
		ends[i] = s.End
	}
	return ends
}

// Segments returns every link scaled by the world-to-pixel factor.
func (a *Arm) Segments(scale float32) []Segment {
	segs := a.worldSegments()
	for i := range segs {
		segs[i].Start = segs[i].Start.Scale(scale)
		segs[i].End = segs[i].End.Scale(scale)
	}
	return segs
}

func (a *Arm) worldSegments() []Segment {
	segs := make([]Segment, len(a.couples))

	if a.chain == ChainForward {
		pivot := a.couples[0].joint.anchor
		var theta float32
		for i, c := range a.couples {
			theta += c.joint.angle
			tip := pivot.Add(dynamo.Polar(c.link.length, theta))
			segs[i] = Segment{Start: pivot, End: tip}
			pivot = tip
		}
		return segs
	}

	for i, c := range a.couples {
		start := c.joint.anchor
		segs[i] = Segment{Start: start, End: start.Add(dynamo.Polar(c.link.length, c.joint.angle))}
	}
	return segs
}
