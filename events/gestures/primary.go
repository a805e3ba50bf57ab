package gestures

// simulatedMouseDistance is how far, in pixels, a mouse event may be from a
// recent primary touch and still be treated as simulated by the browser.
const simulatedMouseDistance = 25

// simulatedMouseWindow is how long, in milliseconds, a primary touch point is
// remembered after it ended.
const simulatedMouseWindow = 2500

type touchPoint struct {
	x, y float64
	at   float64
}

// PrimaryPointers remembers recent primary touch positions. Touch sources add
// to it and mouse sources consult it to ignore simulated mouse events.
type PrimaryPointers struct {
	points []touchPoint
}

// Add records a primary touch point seen at timestamp at.
func (p *PrimaryPointers) Add(x, y, at float64) {
	p.points = append(p.points, touchPoint{x: x, y: y, at: at})
}

// Len returns the number of remembered points.
func (p *PrimaryPointers) Len() int {
	return len(p.points)
}

// Near reports whether (x, y) is within the simulated mouse distance of a
// point remembered at time now. Expired points are dropped.
func (p *PrimaryPointers) Near(x, y, now float64) bool {
	n := 0
	near := false
	for _, pt := range p.points {
		if now-pt.at > simulatedMouseWindow {
			continue
		}
		p.points[n] = pt
		n++
		if abs(pt.x-x) <= simulatedMouseDistance && abs(pt.y-y) <= simulatedMouseDistance {
			near = true
		}
	}
	p.points = p.points[:n]
	return near
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
