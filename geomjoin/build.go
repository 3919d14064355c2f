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
import "github.com/maxymania/itf-superinserter/diag"
import "github.com/maxymania/itf-superinserter/itf"
import "github.com/maxymania/itf-superinserter/schema"

/* LayerSet holds the layers of one transfer, wired per the schema. */
type LayerSet struct{
	sch    schema.Schema
	layers map[string]*Layer
	order  []string
	diag   diag.Sink
}

/*
fieldIndex resolves a schema line to its position among the record
fields. The tid line and geometry lines carry no value of their own
and do not count.
*/
func fieldIndex(tdef schema.Schema, want func(l *schema.Line) bool) int {
	idx := 0
	for i := range tdef {
		l := &tdef[i]
		if l.HasFlag("tid") { continue }
		if l.DataType=="geometry" { continue }
		if want(l) { return idx }
		idx++
	}
	return -1
}

func flagIndex(tdef schema.Schema, flag string) int {
	return fieldIndex(tdef,func(l *schema.Line) bool { return l.HasFlag(flag) })
}

func BuildLayers(sch schema.Schema, pz Polygonizer, d diag.Sink) *LayerSet {
	if d==nil { d = diag.Default() }
	ls := &LayerSet{sch: sch, layers: make(map[string]*Layer), diag: d}
	for _,t := range sch.Tables() {
		l := NewLayer(t)
		l.SetDiag(d)
		l.SetPolygonizer(pz)
		ls.layers[t] = l
		ls.order = append(ls.order,t)
	}

	for _,t := range sch.Tables() {
		layer := ls.layers[t]
		tdef := sch.Table(t)
		for i := range tdef {
			line := &tdef[i]
			if line.DataType!="geometry" { continue }
			switch {
			case line.HasFlag("surface"):
				gname := line.FlagValue("surface")
				layer.AddGeomField(GeomFieldInfo{
					Name: line.Field,
					Kind: KindSurface,
					GeomLayer: ls.layers[gname],
					RefField: refFieldOf(sch.Table(gname)),
				})
			case line.HasFlag("area"):
				gname := line.FlagValue("area")
				pidx := layer.AddGeomField(GeomFieldInfo{
					Name: line.Field+"__Point",
					Kind: KindPoint,
				})
				layer.AddGeomField(GeomFieldInfo{
					Name: line.Field,
					Kind: KindArea,
					GeomLayer: ls.layers[gname],
					PointIndex: pidx,
					RefField: refFieldOf(sch.Table(gname)),
				})
			case line.HasFlag("point"):
				layer.AddGeomField(GeomFieldInfo{Name: line.Field, Kind: KindPoint})
			default:
				layer.AddGeomField(GeomFieldInfo{Name: line.Field, Kind: KindLine})
			}
		}
	}
	return ls
}

func refFieldOf(tdef schema.Schema) int {
	if i := flagIndex(tdef,"ref"); i>=0 { return i }
	return 0
}

func (ls *LayerSet) Layer(name string) *Layer { return ls.layers[name] }
func (ls *LayerSet) Names() []string { return ls.order }

/*
Add files one scanned record into its layer. Point slots are filled
right away from the coordinate fields; line slots get the raw curves
as provisional geometry; surface and area slots stay empty until the
join pass.
*/
func (ls *LayerSet) Add(rec *itf.Record) {
	layer := ls.layers[rec.Table]
	if layer==nil {
		ls.diag.Warnf("record TID %s references unknown table %s",rec.TID,rec.Table)
		return
	}
	f := &Feature{TID: rec.TID, Fields: rec.Fields}
	for _,rc := range rec.Lines {
		f.Curves = append(f.Curves,rc.Curve())
	}

	tdef := ls.sch.Table(rec.Table)
	xi := flagIndex(tdef,"x")
	yi := flagIndex(tdef,"y")
	for i := range layer.geomInfos {
		gi := &layer.geomInfos[i]
		switch gi.Kind {
		case KindPoint:
			if xi<0 || yi<0 { continue }
			if xi>=len(f.Fields) || yi>=len(f.Fields) { continue }
			if !f.Fields[xi].Valid || !f.Fields[yi].Valid { continue }
			f.SetGeom(gi.Index,geom.NewPointFlat(geom.XY,[]float64{
				f.Fields[xi].Float64(),
				f.Fields[yi].Float64(),
			}))
		case KindLine:
			if len(f.Curves)==0 { continue }
			/* the first curve sets the layout, stragglers are coerced */
			layout := f.Curves[0].Layout()
			ml := geom.NewMultiLineString(layout)
			for _,c := range f.Curves {
				for _,s := range c.Segments() {
					ml.Push(curve.ToLayout(s,layout))
				}
			}
			f.SetGeom(gi.Index,ml)
		}
	}
	layer.AddFeature(f)
}

/* Consume drains a scanner into the set. */
func (ls *LayerSet) Consume(sc itf.RecordScanner) error {
	for sc.Scan() {
		ls.Add(sc.Record())
	}
	return sc.Err()
}
