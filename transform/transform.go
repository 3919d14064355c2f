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

package transform

import "github.com/paulmach/orb"
import "math"

/*
Six-term affine transform:

	X = A[0]*x + A[1]*y + A[2]
	Y = A[3]*x + A[4]*y + A[5]
*/
type Affine [6]float64

func (a Affine) Point(p orb.Point) orb.Point {
	return orb.Point{
		p[0]*a[0] + p[1]*a[1] + a[2],
		p[0]*a[3] + p[1]*a[4] + a[5],
	}
}

const detEps = 0.000000000000001

/* Invert assumes a third row of [0 0 1]. */
func (a Affine) Invert() (Affine,bool) {
	det := a[0]*a[4] - a[1]*a[3]
	if math.Abs(det)<detEps { return Affine{},false }
	inv := 1.0/det

	var o Affine
	o[0] =  a[4]*inv
	o[3] = -a[3]*inv
	o[1] = -a[1]*inv
	o[4] =  a[0]*inv
	o[2] = ( a[1]*a[5] - a[2]*a[4])*inv
	o[5] = (-a[0]*a[5] + a[2]*a[3])*inv
	return o,true
}

/*
TiePoint anchors one raster position to one world position. Together
with a pixel scale it describes the usual north-up mapping where line
numbers grow downwards.
*/
type TiePoint struct{
	Raster orb.Point
	World  orb.Point
}

type Mapping struct{
	Tie    *TiePoint
	Scale  orb.Point /* pixel size; Y positive */
	Matrix *Affine
}

/* ToWorld translates a pixel/line position into world coordinates. */
func (m *Mapping) ToWorld(p orb.Point) (orb.Point,bool) {
	if m.Matrix!=nil { return m.Matrix.Point(p),true }
	if m.Tie==nil || m.Scale[0]==0 { return p,false }
	return orb.Point{
		(p[0]-m.Tie.Raster[0])*m.Scale[0] + m.Tie.World[0],
		(p[1]-m.Tie.Raster[1])*(-m.Scale[1]) + m.Tie.World[1],
	},true
}

/* ToRaster translates world coordinates back into pixel/line. */
func (m *Mapping) ToRaster(p orb.Point) (orb.Point,bool) {
	if m.Matrix!=nil {
		inv,ok := m.Matrix.Invert()
		if !ok { return p,false }
		return inv.Point(p),true
	}
	if m.Tie==nil || m.Scale[0]==0 || m.Scale[1]==0 { return p,false }
	return orb.Point{
		(p[0]-m.Tie.World[0])/m.Scale[0] + m.Tie.Raster[0],
		(p[1]-m.Tie.World[1])/(-m.Scale[1]) + m.Tie.Raster[1],
	},true
}
