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

import "math"
import "testing"

import geom "github.com/twpayne/go-geom"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/maxymania/itf-superinserter/curve"
import "github.com/maxymania/itf-superinserter/itf"

func square(x,y,side float64) *geom.Polygon {
	p := geom.NewPolygon(geom.XY)
	p.Push(geom.NewLinearRingFlat(geom.XY,[]float64{
		x,y, x+side,y, x+side,y+side, x,y+side, x,y,
	}))
	return p
}

func multi(ps ...*geom.Polygon) *geom.MultiPolygon {
	mp := geom.NewMultiPolygon(geom.XY)
	for _,p := range ps { mp.Push(p) }
	return mp
}

/*
fakePz hands back canned result sets. Polygons whose shell starts at
invalidX fail the validity check.
*/
type fakePz struct{
	results  []*geom.MultiPolygon
	calls    []bool /* fixCrossings flag per call */
	invalidX float64
}
func newFakePz(results ...*geom.MultiPolygon) *fakePz {
	return &fakePz{results: results, invalidX: math.NaN()}
}
func (f *fakePz) Polygonize(lines []*geom.LineString, fixCrossings bool) (*geom.MultiPolygon,error) {
	i := len(f.calls)
	f.calls = append(f.calls,fixCrossings)
	if i>=len(f.results) { i = len(f.results)-1 }
	return f.results[i],nil
}
func (f *fakePz) IsValid(p *geom.Polygon) bool {
	return p.LinearRing(0).Coord(0)[0]!=f.invalidX
}

/*
areaFixture wires a main layer with a point slot and an area slot
against a boundary layer carrying one fragment bag.
*/
func areaFixture(sink *memSink, pz Polygonizer, pts ...[2]float64) (*Layer,*Layer) {
	src := NewLayer("Boundary")
	src.SetDiag(sink)
	src.AddFeature(&Feature{
		TID: "1",
		Fields: []itf.Field{{Value:"x",Valid:true}},
		Curves: []*curve.Curve{
			curve.Simple(geom.NewLineStringFlat(geom.XY,[]float64{0,0, 1,0, 1,1, 0,1, 0,0})),
		},
	})

	l := NewLayer("Zone")
	l.SetDiag(sink)
	l.SetPolygonizer(pz)
	pidx := l.AddGeomField(GeomFieldInfo{Name: "Geometry__Point", Kind: KindPoint})
	l.AddGeomField(GeomFieldInfo{Name: "Geometry", Kind: KindArea, GeomLayer: src, PointIndex: pidx})

	for i,pt := range pts {
		f := &Feature{TID: string(rune('a'+i))}
		f.SetGeom(pidx,geom.NewPointFlat(geom.XY,[]float64{pt[0],pt[1]}))
		l.AddFeature(f)
	}
	return l,src
}

func TestAreaAssociation(t *testing.T) {
	sink := new(memSink)
	pz := newFakePz(multi(square(0,0,1),square(10,10,1)))
	l,_ := areaFixture(sink,pz,[2]float64{0.5,0.5},[2]float64{10.5,10.5})
	l.JoinGeomLayers()

	require.Equal(t,[]bool{false},pz.calls)

	p0 := l.Feature(0).Geom(1).(*geom.Polygon)
	p1 := l.Feature(1).Geom(1).(*geom.Polygon)
	assert.Equal(t,0.0,p0.LinearRing(0).Coord(0)[0])
	assert.Equal(t,10.0,p1.LinearRing(0).Coord(0)[0])
	assert.Empty(t,sink.warns)
}

func TestAreaUnmatchedPointGetsEmptyPolygon(t *testing.T) {
	sink := new(memSink)
	pz := newFakePz(multi(square(0,0,1)))
	l,_ := areaFixture(sink,pz,[2]float64{50,50})
	l.JoinGeomLayers()

	/* explicitly empty, not unset */
	p,ok := l.Feature(0).Geom(1).(*geom.Polygon)
	require.True(t,ok)
	assert.Equal(t,0,p.NumLinearRings())
	assert.Equal(t,1,sink.warnsContaining("association between area and point failed"))
}

func TestAreaInvalidCandidateExcluded(t *testing.T) {
	sink := new(memSink)
	pz := newFakePz(multi(square(0,0,1)))
	pz.invalidX = 0 /* the only candidate fails validation */
	l,_ := areaFixture(sink,pz,[2]float64{0.5,0.5})
	l.JoinGeomLayers()

	p,ok := l.Feature(0).Geom(1).(*geom.Polygon)
	require.True(t,ok)
	assert.Equal(t,0,p.NumLinearRings())
	assert.Equal(t,1,sink.warnsContaining("association between area and point failed"))
}

func TestAreaRetryOnCountMismatch(t *testing.T) {
	sink := new(memSink)
	/* two features but only one polygon; the retried result is used */
	pz := newFakePz(
		multi(square(0,0,1)),
		multi(square(0,0,1),square(10,10,1)),
	)
	l,_ := areaFixture(sink,pz,[2]float64{0.5,0.5},[2]float64{10.5,10.5})
	l.JoinGeomLayers()

	require.Equal(t,[]bool{false,true},pz.calls)
	p1 := l.Feature(1).Geom(1).(*geom.Polygon)
	assert.Equal(t,10.0,p1.LinearRing(0).Coord(0)[0])
	assert.Empty(t,sink.warns)
}

func TestAreaEmptyInputSkipsService(t *testing.T) {
	sink := new(memSink)
	pz := newFakePz(multi(square(0,0,1)))

	src := NewLayer("Boundary")
	l := NewLayer("Zone")
	l.SetDiag(sink)
	l.SetPolygonizer(pz)
	pidx := l.AddGeomField(GeomFieldInfo{Name: "Geometry__Point", Kind: KindPoint})
	l.AddGeomField(GeomFieldInfo{Name: "Geometry", Kind: KindArea, GeomLayer: src, PointIndex: pidx})
	f := &Feature{TID: "a"}
	f.SetGeom(pidx,geom.NewPointFlat(geom.XY,[]float64{0.5,0.5}))
	l.AddFeature(f)
	l.JoinGeomLayers()

	assert.Empty(t,pz.calls)
	p,ok := f.Geom(1).(*geom.Polygon)
	require.True(t,ok)
	assert.Equal(t,0,p.NumLinearRings())
}

func TestDefaultGeomIndex(t *testing.T) {
	sink := new(memSink)
	l,_ := areaFixture(sink,newFakePz(multi(square(0,0,1))))
	/* the helper point slot is skipped */
	assert.Equal(t,1,l.DefaultGeomIndex())

	plain := NewLayer("Plain")
	plain.AddGeomField(GeomFieldInfo{Name: "Pos", Kind: KindPoint})
	assert.Equal(t,0,plain.DefaultGeomIndex())
}

func TestAreaFeatureWithoutPointSkipped(t *testing.T) {
	sink := new(memSink)
	pz := newFakePz(multi(square(0,0,1)))
	l,_ := areaFixture(sink,pz)
	l.AddFeature(&Feature{TID: "nopoint"})
	l.JoinGeomLayers()

	assert.Nil(t,l.Feature(0).Geom(1))
	assert.Empty(t,sink.warns)
}
