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

package geomjoin

import geom "github.com/twpayne/go-geom"
import "github.com/maxymania/itf-superinserter/curve"

/*
Polygonizer is the external line-polygonization service. With
fixCrossings set the service unions the input against one member
first, resolving self-intersections, before polygonizing.
*/
type Polygonizer interface{
	Polygonize(lines []*geom.LineString, fixCrossings bool) (*geom.MultiPolygon,error)
	IsValid(p *geom.Polygon) bool
}

/*
polygonize hands the fragment lines to the service. An empty input
yields an empty set without a call. If the polygon count does not
match the expected feature count, the service is invoked once more
with the crossing fix, and that result is used either way.
*/
func (l *Layer) polygonize(lines []*geom.LineString) *geom.MultiPolygon {
	if len(lines)==0 { return geom.NewMultiPolygon(geom.XY) }
	if l.pz==nil {
		l.diag.Warnf("no polygonizer configured for layer %s",l.name)
		return geom.NewMultiPolygon(geom.XY)
	}
	polys,err := l.pz.Polygonize(lines,false)
	if err!=nil {
		l.diag.Warnf("polygonize failed for layer %s: %v",l.name,err)
		return geom.NewMultiPolygon(geom.XY)
	}
	if polys.NumPolygons()!=len(l.features) {
		l.diag.Debugf("feature count of layer %s: %d",l.name,len(l.features))
		l.diag.Debugf("polygonizing again with crossing line fix")
		fixed,err := l.pz.Polygonize(lines,true)
		if err==nil { polys = fixed }
	}
	return polys
}

/*
polygonizeAreaLayer flattens the boundary table into one line bag,
polygonizes it and hands each candidate polygon to the feature whose
representative point it contains. Features no valid polygon contains
get an explicit empty polygon.
*/
func (l *Layer) polygonizeAreaLayer(gi *GeomFieldInfo) {
	src := gi.GeomLayer
	src.ResetReading()

	var lines []*geom.LineString
	for lf := src.nextRef(); lf!=nil; lf = src.nextRef() {
		for _,c := range lf.Curves {
			lines = append(lines,c.Segments()...)
		}
	}

	l.diag.Debugf("polygonizing layer %s with %d lines",src.Name(),len(lines))
	polys := l.polygonize(lines)
	l.diag.Debugf("resulting polygons: %d",polys.NumPolygons())
	src.ResetReading()

	/* invalid candidates stay in the set but leave the test pool */
	n := polys.NumPolygons()
	usable := make([]bool,n)
	for i := 0; i<n; i++ {
		usable[i] = l.pz==nil || l.pz.IsValid(polys.Polygon(i))
	}

	for _,feat := range l.features {
		ptGeom,ok := feat.Geom(gi.PointIndex).(*geom.Point)
		if !ok || ptGeom==nil { continue }
		pt := ptGeom.Coords()

		matched := false
		for i := 0; i<n; i++ {
			if usable[i] && curve.PointInPolygon(pt,polys.Polygon(i)) {
				feat.SetGeom(gi.Index,polys.Polygon(i))
				matched = true
				break
			}
		}
		if !matched {
			l.diag.Warnf("association between area and point failed for feature %s in layer %s",feat.TID,l.name)
			feat.SetGeom(gi.Index,geom.NewPolygon(geom.XY))
		}
	}
}
