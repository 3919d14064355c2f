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
import "github.com/twpayne/go-geom/encoding/wkt"
import "github.com/maxymania/itf-superinserter/curve"

type ring struct{
	chain *curve.Curve
	area  float64
}

/*
joinSurfaceLayer maps every boundary fragment onto its owning feature
and assembles each feature's fragments into one polygon.
*/
func (l *Layer) joinSurfaceLayer(gi *GeomFieldInfo) {
	src := gi.GeomLayer
	src.ResetReading()

	fs := newFragmentStore()
	for lf := src.nextRef(); lf!=nil; lf = src.nextRef() {
		owner := l.FeatureByTID(lf.RefTID(gi.RefField))
		if owner==nil {
			l.diag.Warnf("couldn't join feature TID %s in layer %s",lf.RefTID(gi.RefField),l.name)
			continue
		}
		for _,c := range lf.Curves {
			fs.Add(owner,c)
		}
	}

	for _,feat := range fs.Features() {
		rings := l.assembleRings(feat,fs.Take(feat))
		poly := l.composePolygon(feat,rings)
		if poly!=nil { feat.SetGeom(gi.Index,poly) }
	}
	fs.Discard()
	src.ResetReading()
}

/*
assembleRings chains the fragments into closed rings. Fragments are
taken greedily: the chain grows by the first remaining fragment whose
start point continues the chain's end point, checking forward
continuation before reverse on every candidate. Chains that cannot be
closed are dropped with a warning.
*/
func (l *Layer) assembleRings(feat *Feature, pool []*curve.Curve) []*ring {
	var rings []*ring
	for len(pool)>0 {
		chain := curve.New()
		first := true
		for {
			added := false
			for i,c := range pool {
				if first {
					first = false
					chain.Append(c)
				} else if curve.PtEq(c.StartPoint(),chain.EndPoint()) {
					chain.Append(c)
				} else if curve.PtEq(c.EndPoint(),chain.EndPoint()) {
					chain.Append(c.Reversed())
				} else {
					continue
				}
				pool = append(pool[:i],pool[i+1:]...)
				added = true
				break
			}
			if !added || len(pool)==0 || chain.Closed() { break }
		}
		if !chain.Closed() {
			l.diag.Warnf("ring %s for feature %s in layer %s was not closed, dropping it",dumpChain(chain),feat.TID,l.name)
		} else {
			rings = append(rings,&ring{chain,chain.Area()})
		}
	}
	return rings
}

/*
composePolygon builds the final polygon. The largest ring becomes the
outer boundary; exact area ties go to the later ring. The remaining
rings become holes in produced order. Rings the container rejects are
skipped with a warning, the polygon is still produced. No rings, no
polygon.
*/
func (l *Layer) composePolygon(feat *Feature, rings []*ring) *geom.Polygon {
	if len(rings)==0 { return nil }

	largest := 0
	max := 0.0
	for i,r := range rings {
		if r.area>=max {
			max = r.area
			largest = i
		}
	}

	/* the outer ring dictates the layout, holes are coerced onto it */
	poly := geom.NewPolygon(rings[largest].chain.Layout())
	l.addRing(poly,feat,rings[largest])
	for i,r := range rings {
		if i==largest { continue }
		l.addRing(poly,feat,r)
	}
	return poly
}

func (l *Layer) addRing(poly *geom.Polygon, feat *Feature, r *ring) {
	lr,err := r.chain.Ring()
	if err==nil { err = poly.Push(curve.RingToLayout(lr,poly.Layout())) }
	if err!=nil {
		l.diag.Warnf("cannot add ring %s to feature %s in layer %s: %v",dumpChain(r.chain),feat.TID,l.name,err)
	}
}

func dumpChain(c *curve.Curve) string {
	ml := geom.NewMultiLineString(geom.XY)
	for _,s := range c.Segments() {
		if s.Layout()!=geom.XY {
			flat := make([]float64,0,s.NumCoords()*2)
			for i := 0; i<s.NumCoords(); i++ {
				co := s.Coord(i)
				flat = append(flat,co[0],co[1])
			}
			s = geom.NewLineStringFlat(geom.XY,flat)
		}
		ml.Push(s)
	}
	out,err := wkt.Marshal(ml)
	if err!=nil { return "?" }
	return out
}
