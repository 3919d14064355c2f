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
import "math"

/* Default arc step size in degrees, tuned for transfer file arcs. */
const ArcStep = 0.96

const collinearEps = 1e-12

/*
StrokeArc approximates the circular arc running from p0 through p1 to
p2 by a polyline sampled every step degrees. Collinear inputs degrade
to the straight polyline p0,p1,p2.
*/
func StrokeArc(p0,p1,p2 geom.Coord, step float64) []geom.Coord {
	x0,y0 := p0[0],p0[1]
	x1,y1 := p1[0],p1[1]
	x2,y2 := p2[0],p2[1]

	det := 2*((x1-x0)*(y2-y1) - (x2-x1)*(y1-y0))
	if math.Abs(det) < collinearEps {
		return []geom.Coord{p0,p1,p2}
	}

	/* circumcenter of the three points */
	s0 := x0*x0+y0*y0
	s1 := x1*x1+y1*y1
	s2 := x2*x2+y2*y2
	cx := ((s1-s0)*(y2-y1) - (s2-s1)*(y1-y0)) / det
	cy := ((x1-x0)*(s2-s1) - (x2-x1)*(s1-s0)) / det
	r := math.Hypot(x0-cx,y0-cy)

	a0 := math.Atan2(y0-cy,x0-cx)
	a1 := math.Atan2(y1-cy,x1-cx)
	a2 := math.Atan2(y2-cy,x2-cx)

	/* sweep from a0 to a2 passing through a1 */
	ccw := mod2pi(a1-a0) < mod2pi(a2-a0)
	sweep := mod2pi(a2-a0)
	if !ccw { sweep = sweep-2*math.Pi }

	if step<=0 { step = ArcStep }
	n := int(math.Ceil(math.Abs(sweep)/(step*math.Pi/180)))
	if n<2 { n = 2 }

	out := make([]geom.Coord,0,n+1)
	out = append(out,p0)
	for i := 1; i<n; i++ {
		a := a0 + sweep*float64(i)/float64(n)
		out = append(out,geom.Coord{cx+r*math.Cos(a),cy+r*math.Sin(a)})
	}
	out = append(out,p2)
	return out
}

func mod2pi(a float64) float64 {
	a = math.Mod(a,2*math.Pi)
	if a<0 { a += 2*math.Pi }
	return a
}
