/*
This is free and unencumbered software released into the public domain.

Anyone is free to copy, modify, publish, use, compile, sell, or
distribute this software, either in source code form or as a compiled
binary, for any purpose, commercial or non-commercial, and by any
means.

In jurisdictions that recognize copyright laws, the author or authors
of this software dedicate any and all copyright interest in the
software to the public domain. We make this dedication for the benefit
of the public at large and to the detriment of our heirs and
successors. We intend this dedication to be an overt act of
relinquishment in perpetuity of all present and future rights to this
software under copyright law.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
OTHER DEALINGS IN THE SOFTWARE.

For more information, please refer to <http://unlicense.org/>
*/

package curve

import geom "github.com/twpayne/go-geom"
import "github.com/twpayne/go-geom/xy"
import "math"

/* Endpoints count as equal if X and Y each differ by less than Eps. Z is ignored. */
const Eps = 1e-14

func axEq(a,b float64) bool {
	return math.Abs(a-b) < Eps
}
func PtEq(a,b geom.Coord) bool {
	return axEq(a[0],b[0]) && axEq(a[1],b[1])
}

// A Curve is one open curve: either a single line string or a compound
// of several line strings meeting end-to-start. The compound case keeps
// its members separate so a consumer can splice them individually.
type Curve struct{
	segs []*geom.LineString
}

func New() *Curve { return new(Curve) }
func Simple(ls *geom.LineString) *Curve { return &Curve{[]*geom.LineString{ls}} }
func Compound(segs []*geom.LineString) *Curve { return &Curve{segs} }

func (c *Curve) IsCompound() bool { return len(c.segs)>1 }
func (c *Curve) Empty() bool {
	for _,s := range c.segs {
		if s.NumCoords()>0 { return false }
	}
	return true
}

/* Segments flattens the variant to its member sequence. */
func (c *Curve) Segments() []*geom.LineString { return c.segs }

func (c *Curve) Is3D() bool {
	if len(c.segs)==0 { return false }
	for _,s := range c.segs {
		if s.Layout().ZIndex()<0 { return false }
	}
	return true
}

func (c *Curve) StartPoint() geom.Coord {
	for _,s := range c.segs {
		if s.NumCoords()>0 { return s.Coord(0) }
	}
	return nil
}
func (c *Curve) EndPoint() geom.Coord {
	for i := len(c.segs)-1; i>=0; i-- {
		s := c.segs[i]
		if s.NumCoords()>0 { return s.Coord(s.NumCoords()-1) }
	}
	return nil
}

func (c *Curve) Closed() bool {
	s,e := c.StartPoint(),c.EndPoint()
	if s==nil || e==nil { return false }
	return PtEq(s,e)
}

func reverseLine(ls *geom.LineString) *geom.LineString {
	l := ls.Layout()
	str := l.Stride()
	src := ls.FlatCoords()
	dst := make([]float64,len(src))
	n := len(src)/str
	for i := 0; i<n; i++ {
		copy(dst[i*str:(i+1)*str],src[(n-1-i)*str:(n-i)*str])
	}
	return geom.NewLineStringFlat(l,dst)
}

/* Reversed inverts both the member order and each member's point order. */
func (c *Curve) Reversed() *Curve {
	r := &Curve{segs: make([]*geom.LineString,0,len(c.segs))}
	for i := len(c.segs)-1; i>=0; i-- {
		r.segs = append(r.segs,reverseLine(c.segs[i]))
	}
	return r
}

/* Append splices the other curve's members onto this one. */
func (c *Curve) Append(o *Curve) {
	c.segs = append(c.segs,o.segs...)
}

/* Layout is XYZ if every member carries a Z, XY otherwise. */
func (c *Curve) Layout() geom.Layout {
	if c.Is3D() { return geom.XYZ }
	return geom.XY
}

func coerceFlat(src []float64, ss,ds int) []float64 {
	n := len(src)/ss
	dst := make([]float64,0,n*ds)
	for i := 0; i<n; i++ {
		dst = append(dst,src[i*ss],src[i*ss+1])
		if ds>2 {
			if ss>2 {
				dst = append(dst,src[i*ss+2])
			} else {
				dst = append(dst,0)
			}
		}
	}
	return dst
}

/* ToLayout re-expresses the line in the given layout. Missing Z is 0. */
func ToLayout(ls *geom.LineString, l geom.Layout) *geom.LineString {
	if ls.Layout()==l { return ls }
	return geom.NewLineStringFlat(l,coerceFlat(ls.FlatCoords(),ls.Layout().Stride(),l.Stride()))
}

/* RingToLayout re-expresses the ring in the given layout. Missing Z is 0. */
func RingToLayout(r *geom.LinearRing, l geom.Layout) *geom.LinearRing {
	if r.Layout()==l { return r }
	return geom.NewLinearRingFlat(l,coerceFlat(r.FlatCoords(),r.Layout().Stride(),l.Stride()))
}

/*
Coords joins the member coordinates into one run. The first point of
every member after the first is dropped, as it coincides with the
previous member's end point.
*/
func (c *Curve) Coords() []geom.Coord {
	var out []geom.Coord
	for _,s := range c.segs {
		n := s.NumCoords()
		i := 0
		if len(out)>0 && n>0 { i = 1 }
		for ; i<n; i++ { out = append(out,s.Coord(i)) }
	}
	return out
}

/* Area is the unsigned shoelace area of the joined run. */
func (c *Curve) Area() float64 {
	cs := c.Coords()
	if len(cs)<3 { return 0 }
	a := 0.0
	for i := 1; i<len(cs); i++ {
		a += cs[i-1][0]*cs[i][1] - cs[i][0]*cs[i-1][1]
	}
	/* close the run if it isn't */
	a += cs[len(cs)-1][0]*cs[0][1] - cs[0][0]*cs[len(cs)-1][1]
	return math.Abs(a/2)
}

/* Ring converts a closed chain into a linear ring. */
func (c *Curve) Ring() (*geom.LinearRing,error) {
	l := c.Layout()
	str := l.Stride()
	cs := c.Coords()
	flat := make([]float64,0,(len(cs)+1)*str)
	for _,co := range cs {
		flat = append(flat,co[0],co[1])
		if str>2 {
			if len(co)>2 {
				flat = append(flat,co[2])
			} else {
				flat = append(flat,0)
			}
		}
	}
	if len(cs)>1 && !PtEq(cs[0],cs[len(cs)-1]) {
		return nil,ENonClosedRing
	}
	/* snap the last point onto the first one exactly */
	if len(cs)>1 {
		copy(flat[len(flat)-str:],flat[:str])
	}
	ring := geom.NewLinearRingFlat(l,flat)
	if err := ValidateRing(ring); err!=nil { return nil,err }
	return ring,nil
}

/*
PointInPolygon reports whether the point lies inside the polygon's
shell and outside all of its holes.
*/
func PointInPolygon(pt geom.Coord, poly *geom.Polygon) bool {
	n := poly.NumLinearRings()
	if n==0 { return false }
	if !xy.IsPointInRing(poly.Layout(),pt,poly.LinearRing(0).FlatCoords()) { return false }
	for i := 1; i<n; i++ {
		if xy.IsPointInRing(poly.Layout(),pt,poly.LinearRing(i).FlatCoords()) { return false }
	}
	return true
}
