package drag

import (
	"errors"
	"fmt"
)

// ErrInvalidLayout is returned for malformed region trees
var ErrInvalidLayout = errors.New("invalid layout")

// Point is a pointer or touch position in view coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned box
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Contains reports whether p lies inside r (edges inclusive)
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Region is one navigable box of the view. Regions tagged with DropZone
// accept items.
type Region struct {
	ID       string `json:"id"`
	Parent   string `json:"parent,omitempty"`
	Bounds   Rect   `json:"bounds"`
	Z        int    `json:"z"`
	DropZone string `json:"dropZone,omitempty"`
}

// HitTester finds the drop zone under a point
type HitTester interface {
	ZoneAt(p Point) (string, bool)
}

// Layout is a validated region tree reported by the view
type Layout struct {
	regions map[string]Region
	order   []string
}

// NewLayout validates regions and builds a layout
func NewLayout(regions []Region) (*Layout, error) {
	l := &Layout{
		regions: make(map[string]Region, len(regions)),
		order:   make([]string, 0, len(regions)),
	}

	for _, r := range regions {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: region without id", ErrInvalidLayout)
		}
		if _, dup := l.regions[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate region %q", ErrInvalidLayout, r.ID)
		}
		if r.Bounds.W < 0 || r.Bounds.H < 0 {
			return nil, fmt.Errorf("%w: region %q has negative size", ErrInvalidLayout, r.ID)
		}
		l.regions[r.ID] = r
		l.order = append(l.order, r.ID)
	}

	for _, id := range l.order {
		if err := l.checkAncestry(id); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Layout) checkAncestry(id string) error {
	seen := map[string]bool{}
	for cur := l.regions[id]; cur.Parent != ""; {
		if seen[cur.ID] {
			return fmt.Errorf("%w: cycle through %q", ErrInvalidLayout, cur.ID)
		}
		seen[cur.ID] = true

		parent, ok := l.regions[cur.Parent]
		if !ok {
			return fmt.Errorf("%w: region %q has unknown parent %q", ErrInvalidLayout, cur.ID, cur.Parent)
		}
		cur = parent
	}
	return nil
}

// RegionAt returns the topmost region containing p. Higher Z wins; on a
// tie the region registered later is on top.
func (l *Layout) RegionAt(p Point) (Region, bool) {
	var best Region
	found := false

	for _, id := range l.order {
		r := l.regions[id]
		if !r.Bounds.Contains(p) {
			continue
		}
		if !found || r.Z >= best.Z {
			best = r
			found = true
		}
	}
	return best, found
}

// ZoneAt finds the topmost region at p and walks outward to the nearest
// ancestor tagged as a drop zone.
func (l *Layout) ZoneAt(p Point) (string, bool) {
	r, ok := l.RegionAt(p)
	if !ok {
		return "", false
	}

	for {
		if r.DropZone != "" {
			return r.DropZone, true
		}
		if r.Parent == "" {
			return "", false
		}
		r = l.regions[r.Parent]
	}
}

// Zones lists the distinct drop zones in registration order
func (l *Layout) Zones() []string {
	seen := map[string]bool{}
	zones := make([]string, 0)
	for _, id := range l.order {
		z := l.regions[id].DropZone
		if z != "" && !seen[z] {
			seen[z] = true
			zones = append(zones, z)
		}
	}
	return zones
}
