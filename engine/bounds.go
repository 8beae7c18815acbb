package engine

// Bounds is the playfield rectangle used to clamp movement and knockback
// Ground is the bottom edge, ceiling the top edge
type Bounds interface {
	Width() float64
	Height() float64
}

// Arena is a fixed-size Bounds
type Arena struct {
	W, H float64
}

// NewArena creates an arena of the given logical size
func NewArena(width, height float64) *Arena {
	return &Arena{W: width, H: height}
}

func (a *Arena) Width() float64 {
	return a.W
}

func (a *Arena) Height() float64 {
	return a.H
}
