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

import "fmt"
import "strings"
import "testing"

import geom "github.com/twpayne/go-geom"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/maxymania/itf-superinserter/curve"
import "github.com/maxymania/itf-superinserter/itf"

type memSink struct{
	warns  []string
	debugs []string
}
func (s *memSink) Warnf(format string, args ...interface{}) {
	s.warns = append(s.warns,fmt.Sprintf(format,args...))
}
func (s *memSink) Debugf(format string, args ...interface{}) {
	s.debugs = append(s.debugs,fmt.Sprintf(format,args...))
}
func (s *memSink) warnsContaining(sub string) (n int) {
	for _,w := range s.warns {
		if strings.Contains(w,sub) { n++ }
	}
	return
}

func frag(coords ...float64) *curve.Curve {
	return curve.Simple(geom.NewLineStringFlat(geom.XY,coords))
}

/*
surfaceFixture wires a main layer with one surface slot against a
boundary layer holding the given fragments for owner TID "10".
*/
func surfaceFixture(sink *memSink, frags ...*curve.Curve) (*Layer,*Feature) {
	src := NewLayer("Boundary")
	src.SetDiag(sink)
	for _,c := range frags {
		src.AddFeature(&Feature{
			TID: "1",
			Fields: []itf.Field{{Value:"10",Valid:true}},
			Curves: []*curve.Curve{c},
		})
	}

	l := NewLayer("Parcel")
	l.SetDiag(sink)
	l.AddGeomField(GeomFieldInfo{Name: "Geometry", Kind: KindSurface, GeomLayer: src, RefField: 0})
	f := &Feature{TID: "10", Fields: []itf.Field{{Value:"parcel",Valid:true}}}
	l.AddFeature(f)
	return l,f
}

func TestSurfaceJoinSquare(t *testing.T) {
	sink := new(memSink)
	/* unit square edges in scrambled order and orientation */
	l,f := surfaceFixture(sink,
		frag(1,1, 0,1),
		frag(0,0, 1,0),
		frag(0,0, 0,1),
		frag(1,1, 1,0),
	)
	l.JoinGeomLayers()

	poly,ok := f.Geom(0).(*geom.Polygon)
	require.True(t,ok,"surface slot must hold a polygon")
	require.Equal(t,1,poly.NumLinearRings())
	assert.Equal(t,5,poly.LinearRing(0).NumCoords())
	assert.InDelta(t,1.0,poly.Area(),1e-12)
	assert.Empty(t,sink.warns)
}

func TestSurfaceJoinOrderInvariant(t *testing.T) {
	edges := []*curve.Curve{
		frag(1,1, 0,1),
		frag(0,0, 1,0),
		frag(0,0, 0,1),
		frag(1,1, 1,0),
	}
	rev := make([]*curve.Curve,len(edges))
	for i,c := range edges { rev[len(edges)-1-i] = c }

	for _,frags := range [][]*curve.Curve{edges,rev} {
		sink := new(memSink)
		l,f := surfaceFixture(sink,frags...)
		l.JoinGeomLayers()
		poly,ok := f.Geom(0).(*geom.Polygon)
		require.True(t,ok)
		require.Equal(t,1,poly.NumLinearRings())
		assert.InDelta(t,1.0,poly.Area(),1e-12)
	}
}

func TestSurfaceJoinHole(t *testing.T) {
	sink := new(memSink)
	/* the smaller ring comes first; the outer must still win */
	l,f := surfaceFixture(sink,
		frag(1,1, 2,1, 2,2, 1,2, 1,1),
		frag(0,0, 4,0, 4,4, 0,4, 0,0),
	)
	l.JoinGeomLayers()

	poly,ok := f.Geom(0).(*geom.Polygon)
	require.True(t,ok)
	require.Equal(t,2,poly.NumLinearRings())
	assert.InDelta(t,16.0,shoelace(poly.LinearRing(0)),1e-12)
	assert.InDelta(t,1.0,shoelace(poly.LinearRing(1)),1e-12)
	assert.InDelta(t,15.0,poly.Area(),1e-12)
}

func shoelace(r *geom.LinearRing) float64 {
	fc := r.FlatCoords()
	a := 0.0
	for i := 2; i<len(fc); i += 2 {
		a += fc[i-2]*fc[i+1] - fc[i]*fc[i-1]
	}
	if a<0 { a = -a }
	return a/2
}

func frag3(coords ...float64) *curve.Curve {
	return curve.Simple(geom.NewLineStringFlat(geom.XYZ,coords))
}

func TestSurfaceJoin3D(t *testing.T) {
	sink := new(memSink)
	/* a 3D boundary plus a flat hole; the outer ring sets the layout */
	l,f := surfaceFixture(sink,
		frag3(0,0,5, 4,0,5, 4,4,5, 0,4,5, 0,0,5),
		frag(1,1, 2,1, 2,2, 1,2, 1,1),
	)
	l.JoinGeomLayers()

	poly,ok := f.Geom(0).(*geom.Polygon)
	require.True(t,ok,"surface slot must hold a polygon")
	require.Equal(t,geom.XYZ,poly.Layout())
	require.Equal(t,2,poly.NumLinearRings())
	assert.Equal(t,5.0,poly.LinearRing(0).Coord(0)[2])
	assert.Equal(t,0.0,poly.LinearRing(1).Coord(0)[2])
	assert.InDelta(t,15.0,poly.Area(),1e-12)
	assert.Empty(t,sink.warns)
}

func TestSurfaceTieLaterRingWins(t *testing.T) {
	sink := new(memSink)
	/* two unit squares of equal area; the later one becomes the boundary */
	l,f := surfaceFixture(sink,
		frag(0,0, 1,0, 1,1, 0,1, 0,0),
		frag(5,0, 6,0, 6,1, 5,1, 5,0),
	)
	l.JoinGeomLayers()

	poly,ok := f.Geom(0).(*geom.Polygon)
	require.True(t,ok)
	require.Equal(t,2,poly.NumLinearRings())
	assert.Equal(t,5.0,poly.LinearRing(0).Coord(0)[0])
}

func TestSurfaceCompoundFragment(t *testing.T) {
	sink := new(memSink)
	/* one compound fragment plus the straight closer */
	l,f := surfaceFixture(sink,
		curve.Compound([]*geom.LineString{
			geom.NewLineStringFlat(geom.XY,[]float64{0,0, 1,0}),
			geom.NewLineStringFlat(geom.XY,[]float64{1,0, 1,1, 0,1}),
		}),
		frag(0,1, 0,0),
	)
	l.JoinGeomLayers()

	poly,ok := f.Geom(0).(*geom.Polygon)
	require.True(t,ok)
	require.Equal(t,1,poly.NumLinearRings())
	assert.InDelta(t,1.0,poly.Area(),1e-12)
	assert.Empty(t,sink.warns)
}

func TestSurfaceDanglingChainDropped(t *testing.T) {
	sink := new(memSink)
	l,f := surfaceFixture(sink,
		frag(0,0, 1,0),
		frag(1,0, 1,1),
	)
	l.JoinGeomLayers()

	/* no closed ring, so the slot stays unset */
	assert.Nil(t,f.Geom(0))
	assert.Equal(t,1,sink.warnsContaining("was not closed"))
}

func TestSurfaceDegenerateRingSkipped(t *testing.T) {
	sink := new(memSink)
	/* a spike closes but cannot become a valid ring */
	l,f := surfaceFixture(sink,
		frag(0,0, 1,0, 1,1, 0,1, 0,0),
		frag(7,7, 8,7, 7,7),
	)
	l.JoinGeomLayers()

	poly,ok := f.Geom(0).(*geom.Polygon)
	require.True(t,ok)
	assert.Equal(t,1,poly.NumLinearRings())
	assert.Equal(t,1,sink.warnsContaining("cannot add ring"))
}

func TestSurfaceUnresolvedReference(t *testing.T) {
	sink := new(memSink)
	src := NewLayer("Boundary")
	src.SetDiag(sink)
	src.AddFeature(&Feature{
		TID: "1",
		Fields: []itf.Field{{Value:"999",Valid:true}},
		Curves: []*curve.Curve{frag(0,0, 1,0)},
	})

	l := NewLayer("Parcel")
	l.SetDiag(sink)
	l.AddGeomField(GeomFieldInfo{Name: "Geometry", Kind: KindSurface, GeomLayer: src, RefField: 0})
	l.AddFeature(&Feature{TID: "10"})
	l.JoinGeomLayers()

	assert.Equal(t,1,sink.warnsContaining("couldn't join feature TID 999"))
	assert.Nil(t,l.Feature(0).Geom(0))
}

func TestJoinRunsOnce(t *testing.T) {
	sink := new(memSink)
	l,f := surfaceFixture(sink,frag(0,0, 1,0, 1,1, 0,1, 0,0))
	l.JoinGeomLayers()
	g := f.Geom(0)
	require.NotNil(t,g)

	/* a second pass must not touch the finalized slot */
	l.JoinGeomLayers()
	assert.Same(t,g,f.Geom(0))

	l.ResetReading()
	assert.Same(t,f,l.Next())
	assert.Nil(t,l.Next())
}

func TestFragmentStore(t *testing.T) {
	fs := newFragmentStore()
	a := &Feature{TID: "a"}
	b := &Feature{TID: "b"}
	fs.Add(a,frag(0,0, 1,0))
	fs.Add(b,frag(2,0, 3,0))
	fs.Add(a,frag(1,0, 1,1))
	fs.Add(a,nil)
	fs.Add(a,curve.New())

	require.Equal(t,[]*Feature{a,b},fs.Features())
	assert.Len(t,fs.Take(a),2)
	assert.Len(t,fs.Take(a),0)
	assert.Len(t,fs.Take(b),1)
	fs.Discard()
}
