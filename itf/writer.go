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

package itf

import "fmt"
import "io"
import "math"
import "strconv"

import geom "github.com/twpayne/go-geom"
import "github.com/maxymania/itf-superinserter/curve"
import "github.com/maxymania/itf-superinserter/diag"
import "github.com/maxymania/itf-superinserter/recode"

/* Numbers are written the way other transfer tools expect them. */
func d2str(val float64) string {
	if val==math.Trunc(val) && math.Abs(val)<1e15 {
		return strconv.FormatInt(int64(val),10)
	}
	if math.Abs(val)<370 { return strconv.FormatFloat(val,'g',16,64) }
	if math.Abs(val)>100000000.0 { return strconv.FormatFloat(val,'g',16,64) }
	return strconv.FormatFloat(val,'f',3,64)
}

/*
Writer emits transfer records. The TID counter is owned by the writer,
so independent sessions never share generated identities.
*/
type Writer struct{
	W    io.Writer
	Diag diag.Sink
	tid  int64
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{W: w, Diag: diag.Default(), tid: -1}
}

func (w *Writer) printf(format string, args ...interface{}) (err error) {
	_,err = fmt.Fprintf(w.W,format,args...)
	return
}

func (w *Writer) BeginTopic(name string) error { return w.printf("TOPI %s\n",name) }
func (w *Writer) EndTopic() error { return w.printf("ETOP\n") }
func (w *Writer) BeginTable(name string) error { return w.printf("TABL %s\n",name) }
func (w *Writer) EndTable() error { return w.printf("ETAB\n") }
func (w *Writer) End() error { return w.printf("ENDE\n") }

/*
WriteFeature writes one OBJE entry. An empty tid draws the next
generated identity. Point geometries are embedded into the record
line; everything else follows as coordinate lists.
*/
func (w *Writer) WriteFeature(tid string, fields []Field, g geom.T) error {
	if tid=="" {
		w.tid++
		tid = strconv.FormatInt(w.tid,10)
	} else if i,err := strconv.ParseInt(tid,10,64); err==nil && i>w.tid {
		w.tid = i
	}
	if err := w.printf("OBJE %s",tid); err!=nil { return err }

	if pt,ok := g.(*geom.Point); ok {
		fc := pt.FlatCoords()
		for _,v := range fc { w.printf(" %s",d2str(v)) }
		g = nil
	}
	for _,f := range fields {
		if !f.Valid {
			w.printf(" @")
		} else {
			w.printf(" %s",recode.ToLatin1(f.Value))
		}
	}
	if err := w.printf("\n"); err!=nil { return err }
	if g!=nil { return w.AppendGeometry(g) }
	return nil
}

/* The closed set of geometry kinds the writer knows how to emit. */
type wkind uint
const (
	wLine wkind = iota
	wRing
	wPoly
	wMulti
	numWkinds
)

var appenders [numWkinds]func(w *Writer, g geom.T) error

func init() {
	appenders = [numWkinds]func(w *Writer, g geom.T) error {
		(*Writer).appendLine,
		(*Writer).appendRing,
		(*Writer).appendPoly,
		(*Writer).appendMulti,
	}
}

func kindOf(g geom.T) (wkind,bool) {
	switch g.(type) {
	case *geom.LineString: return wLine,true
	case *geom.LinearRing: return wRing,true
	case *geom.Polygon: return wPoly,true
	case *geom.MultiLineString,*geom.MultiPolygon,*geom.GeometryCollection: return wMulti,true
	}
	return 0,false
}

/* AppendGeometry writes the coordinate lists of one geometry. */
func (w *Writer) AppendGeometry(g geom.T) error {
	k,ok := kindOf(g)
	if !ok {
		w.Diag.Warnf("skipping unknown geometry type %T",g)
		return nil
	}
	return appenders[k](w,g)
}

func (w *Writer) coordList(layout geom.Layout, flat []float64) error {
	str := layout.Stride()
	for i := 0; i+str<=len(flat); i += str {
		tok := "LIPT"
		if i==0 { tok = "STPT" }
		if err := w.printf("%s",tok); err!=nil { return err }
		w.printf(" %s %s",d2str(flat[i]),d2str(flat[i+1]))
		if layout.ZIndex()>=0 { w.printf(" %s",d2str(flat[i+layout.ZIndex()])) }
		w.printf("\n")
	}
	return w.printf("ELIN\n")
}

func (w *Writer) appendLine(g geom.T) error {
	ls := g.(*geom.LineString)
	return w.coordList(ls.Layout(),ls.FlatCoords())
}
func (w *Writer) appendRing(g geom.T) error {
	lr := g.(*geom.LinearRing)
	return w.coordList(lr.Layout(),lr.FlatCoords())
}
func (w *Writer) appendPoly(g geom.T) error {
	p := g.(*geom.Polygon)
	for i := 0; i<p.NumLinearRings(); i++ {
		if err := w.appendRing(p.LinearRing(i)); err!=nil { return err }
	}
	return nil
}
func (w *Writer) appendMulti(g geom.T) error {
	switch v := g.(type) {
	case *geom.MultiLineString:
		for i := 0; i<v.NumLineStrings(); i++ {
			if err := w.appendLine(v.LineString(i)); err!=nil { return err }
		}
	case *geom.MultiPolygon:
		for i := 0; i<v.NumPolygons(); i++ {
			if err := w.appendPoly(v.Polygon(i)); err!=nil { return err }
		}
	case *geom.GeometryCollection:
		for i := 0; i<v.NumGeoms(); i++ {
			if err := w.AppendGeometry(v.Geom(i)); err!=nil { return err }
		}
	}
	return nil
}

/*
AppendCurve writes a curve variant. Members of a compound are spliced
into one coordinate list: every member's last point doubles as the
next member's first point and is written once.
*/
func (w *Writer) AppendCurve(c *curve.Curve) error {
	segs := c.Segments()
	first := true
	for mi,s := range segs {
		fc := s.FlatCoords()
		str := s.Layout().Stride()
		n := len(fc)/str
		for i := 0; i<n; i++ {
			if i==n-1 && mi<len(segs)-1 { continue }
			tok := "LIPT"
			if first { tok = "STPT"; first = false }
			w.printf("%s %s %s",tok,d2str(fc[i*str]),d2str(fc[i*str+1]))
			if s.Layout().ZIndex()>=0 { w.printf(" %s",d2str(fc[i*str+s.Layout().ZIndex()])) }
			w.printf("\n")
		}
	}
	return w.printf("ELIN\n")
}
