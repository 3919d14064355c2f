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

/*
Package polygonize backs the join pass's external line-polygonization
contract with GEOS.
*/
package polygonize

import "encoding/binary"

import geos "github.com/twpayne/go-geos"
import geom "github.com/twpayne/go-geom"
import "github.com/twpayne/go-geom/encoding/wkb"
import "github.com/maxymania/itf-superinserter/diag"

type Service struct{
	Ctx  *geos.Context
	Diag diag.Sink
}

func New() *Service {
	return &Service{Ctx: geos.NewContext(), Diag: diag.Default()}
}

func (s *Service) toGeos(g geom.T) (*geos.Geom,error) {
	raw,err := wkb.Marshal(g,binary.LittleEndian)
	if err!=nil { return nil,err }
	return s.Ctx.NewGeomFromWKB(raw)
}
func (s *Service) fromGeos(g *geos.Geom) (geom.T,error) {
	return wkb.Unmarshal(g.ToWKB())
}

/*
Polygonize builds the polygons covering the planar arrangement of the
input lines. The crossing fix unions the collection against its first
member, which splits self-intersecting linework, and polygonizes the
pieces instead.
*/
func (s *Service) Polygonize(lines []*geom.LineString, fixCrossings bool) (*geom.MultiPolygon,error) {
	out := geom.NewMultiPolygon(geom.XY)
	if len(lines)==0 { return out,nil }

	gs := make([]*geos.Geom,0,len(lines))
	for _,l := range lines {
		g,err := s.toGeos(l)
		if err!=nil { return nil,err }
		gs = append(gs,g)
	}

	if fixCrossings {
		s.Diag.Debugf("fixing crossing lines")
		first,err := s.toGeos(lines[0])
		if err!=nil { return nil,err }
		coll := s.Ctx.NewCollection(geos.TypeIDMultiLineString,gs)
		union := coll.Union(first)
		if union!=nil {
			switch union.TypeID() {
			case geos.TypeIDGeometryCollection,geos.TypeIDMultiLineString:
				fixed := make([]*geos.Geom,0,union.NumGeometries())
				for i := 0; i<union.NumGeometries(); i++ {
					fixed = append(fixed,union.Geometry(i))
				}
				s.Diag.Debugf("fixed lines: %d",len(fixed)-len(lines))
				gs = fixed
			}
		}
	}

	res := s.Ctx.Polygonize(gs)
	if res==nil { return out,nil }

	for i := 0; i<res.NumGeometries(); i++ {
		p := res.Geometry(i)
		if p.TypeID()!=geos.TypeIDPolygon { continue }
		back,err := s.fromGeos(p)
		if err!=nil { continue }
		if poly,ok := back.(*geom.Polygon); ok {
			out.Push(poly)
		}
	}
	return out,nil
}

/* IsValid reports structural validity of a candidate polygon. */
func (s *Service) IsValid(p *geom.Polygon) bool {
	g,err := s.toGeos(p)
	if err!=nil { return false }
	return g.IsValid()
}
