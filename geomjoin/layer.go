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

import "strconv"

import geom "github.com/twpayne/go-geom"
import "github.com/maxymania/itf-superinserter/curve"
import "github.com/maxymania/itf-superinserter/diag"
import "github.com/maxymania/itf-superinserter/itf"

type GeomKind uint
const (
	KindNone GeomKind = iota
	KindPoint
	KindLine
	KindSurface /* boundary fragments assembled into rings per feature */
	KindArea    /* planar partition, polygonized and matched by point */
)

/*
GeomFieldInfo declares one geometry slot of a layer. Surface and Area
slots name the layer holding the boundary fragments; Area slots
additionally name the slot carrying the representative point.
*/
type GeomFieldInfo struct{
	Name       string
	Kind       GeomKind
	GeomLayer  *Layer
	Index      int
	PointIndex int
	RefField   int /* field of the geometry-table record naming the owner */
}

/*
A Feature is one logical output record. Its geometry slots start out
empty and are finalized exactly once by the join pass. Fragment
curves carried by geometry-table records live in Curves until they
are consumed.
*/
type Feature struct{
	TID    string
	Fields []itf.Field
	Curves []*curve.Curve
	geoms  []geom.T
}

func (f *Feature) Geom(i int) geom.T {
	if i<0 || i>=len(f.geoms) { return nil }
	return f.geoms[i]
}
func (f *Feature) SetGeom(i int, g geom.T) {
	if i<0 { return }
	for len(f.geoms)<=i { f.geoms = append(f.geoms,nil) }
	f.geoms[i] = g
}

/* RefTID reads the reference identity out of the given field. */
func (f *Feature) RefTID(field int) string {
	if field<0 || field>=len(f.Fields) { return "" }
	return f.Fields[field].Value
}

/*
A Layer holds the features of one transfer table. Reading triggers
the geometry join lazily, once.
*/
type Layer struct{
	name      string
	geomInfos []GeomFieldInfo
	features  []*Feature
	byTID     map[string]int

	idx    int
	joined bool

	pz   Polygonizer
	diag diag.Sink
}

func NewLayer(name string) *Layer {
	return &Layer{name: name, byTID: make(map[string]int), diag: diag.Default()}
}

func (l *Layer) Name() string { return l.name }
func (l *Layer) Len() int { return len(l.features) }

func (l *Layer) SetDiag(d diag.Sink) { if d!=nil { l.diag = d } }
func (l *Layer) SetPolygonizer(p Polygonizer) { l.pz = p }

/* AddGeomField declares a geometry slot and returns its index. */
func (l *Layer) AddGeomField(gi GeomFieldInfo) int {
	gi.Index = len(l.geomInfos)
	l.geomInfos = append(l.geomInfos,gi)
	return gi.Index
}
func (l *Layer) GeomFieldIndex(name string) int {
	for i := range l.geomInfos {
		if l.geomInfos[i].Name==name { return i }
	}
	return -1
}

/*
DefaultGeomIndex is the first slot that is not the helper point of an
area slot.
*/
func (l *Layer) DefaultGeomIndex() int {
	helper := make(map[int]bool)
	for i := range l.geomInfos {
		if l.geomInfos[i].Kind==KindArea { helper[l.geomInfos[i].PointIndex] = true }
	}
	for i := range l.geomInfos {
		if !helper[i] { return i }
	}
	return 0
}

func (l *Layer) AddFeature(f *Feature) {
	if _,ok := l.byTID[f.TID]; !ok {
		l.byTID[f.TID] = len(l.features)
	}
	l.features = append(l.features,f)
}

func (l *Layer) ResetReading() { l.idx = 0 }

/* Next returns the next feature, running the join pass first if needed. */
func (l *Layer) Next() *Feature {
	if !l.joined { l.JoinGeomLayers() }
	return l.nextRef()
}
func (l *Layer) nextRef() *Feature {
	if l.idx<len(l.features) {
		f := l.features[l.idx]
		l.idx++
		return f
	}
	return nil
}

func (l *Layer) Feature(i int) *Feature { return l.features[i] }

func (l *Layer) FeatureByTID(tid string) *Feature {
	if i,ok := l.byTID[tid]; ok { return l.features[i] }
	return nil
}
func (l *Layer) FeatureByID(id int64) *Feature {
	return l.FeatureByTID(strconv.FormatInt(id,10))
}

/*
JoinGeomLayers runs the one-shot join pass over all declared Surface
and Area slots. A guard flag keeps later reads from re-entering.
*/
func (l *Layer) JoinGeomLayers() {
	if l.joined { return }
	l.joined = true
	for i := range l.geomInfos {
		gi := &l.geomInfos[i]
		if gi.GeomLayer==nil { continue }
		switch gi.Kind {
		case KindSurface:
			l.diag.Debugf("joining surface layer %s into %s",gi.GeomLayer.Name(),l.name)
			l.joinSurfaceLayer(gi)
		case KindArea:
			l.diag.Debugf("polygonizing area layer %s into %s",gi.GeomLayer.Name(),l.name)
			l.polygonizeAreaLayer(gi)
		}
	}
}
