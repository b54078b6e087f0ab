package attr

import "src.attrkit.dev/pkg/elems"

// Color is an RGBA color with components nominally in [0, 1]. Scanning accepts
// up to four numbers; a shorter sequence updates only the leading components.
type Color struct{ R, G, B, A float64 }

// NewColor returns a new Color.
func NewColor(r, g, b, a float64) *Color { return &Color{r, g, b, a} }

func (c *Color) Kind() string { return "color" }

func (c *Color) Elems() elems.Elems {
	return elems.Elems{elems.Num(c.R), elems.Num(c.G), elems.Num(c.B), elems.Num(c.A)}
}

func (c *Color) clone() Value { d := *c; return &d }

func (c *Color) scan(es elems.Elems) {
	scanFloat(es, 0, &c.R)
	scanFloat(es, 1, &c.G)
	scanFloat(es, 2, &c.B)
	scanFloat(es, 3, &c.A)
}

// Point is a 2D point.
type Point struct{ X, Y float64 }

// NewPoint returns a new Point.
func NewPoint(x, y float64) *Point { return &Point{x, y} }

func (p *Point) Kind() string       { return "point" }
func (p *Point) Elems() elems.Elems { return elems.Elems{elems.Num(p.X), elems.Num(p.Y)} }
func (p *Point) clone() Value       { q := *p; return &q }

func (p *Point) scan(es elems.Elems) {
	scanFloat(es, 0, &p.X)
	scanFloat(es, 1, &p.Y)
}

// Size is a width and height with optional constraints. When Ratio is
// positive, the height is derived from the width as W/Ratio after every
// update, so W/H == Ratio always holds. MinW and MinH are floors that always
// hold; if the height floor kicks in, the width is scaled up to match.
type Size struct {
	W, H       float64
	MinW, MinH float64
	Ratio      float64
}

// NewSize returns a new unconstrained Size.
func NewSize(w, h float64) *Size { return NewSizeConstrained(w, h, 0, 0, 0) }

// NewSizeConstrained returns a new Size with the given floors and aspect
// ratio. A ratio of 0 means the dimensions are independent.
func NewSizeConstrained(w, h, minW, minH, ratio float64) *Size {
	s := &Size{W: w, H: h, MinW: minW, MinH: minH, Ratio: ratio}
	s.constrain()
	return s
}

func (s *Size) Kind() string       { return "size" }
func (s *Size) Elems() elems.Elems { return elems.Elems{elems.Num(s.W), elems.Num(s.H)} }
func (s *Size) clone() Value       { t := *s; return &t }

func (s *Size) scan(es elems.Elems) {
	scanFloat(es, 0, &s.W)
	scanFloat(es, 1, &s.H)
	s.constrain()
}

func (s *Size) constrain() {
	s.W = max(s.W, s.MinW)
	if s.Ratio <= 0 {
		s.H = max(s.H, s.MinH)
		return
	}
	s.H = s.W / s.Ratio
	if s.H < s.MinH {
		s.H = s.MinH
		s.W = s.H * s.Ratio
	}
}

// Rect is an axis-aligned rectangle given by its origin and size.
type Rect struct{ X, Y, W, H float64 }

// NewRect returns a new Rect.
func NewRect(x, y, w, h float64) *Rect { return &Rect{x, y, w, h} }

func (r *Rect) Kind() string { return "rect" }

func (r *Rect) Elems() elems.Elems {
	return elems.Elems{elems.Num(r.X), elems.Num(r.Y), elems.Num(r.W), elems.Num(r.H)}
}

func (r *Rect) clone() Value { q := *r; return &q }

func (r *Rect) scan(es elems.Elems) {
	scanFloat(es, 0, &r.X)
	scanFloat(es, 1, &r.Y)
	scanFloat(es, 2, &r.W)
	scanFloat(es, 3, &r.H)
}
