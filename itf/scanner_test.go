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

import "strings"
import "testing"

import geom "github.com/twpayne/go-geom"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/maxymania/itf-superinserter/curve"

func scanAll(src string) ([]*Record,error) {
	s := NewScanner(strings.NewReader(src))
	var out []*Record
	for s.Scan() {
		out = append(out,s.Record())
	}
	return out,s.Err()
}

const transfer = `MODL Beispiel
TOPI BoFlaechen
TABL BoFlaechen
OBJE 10 20 Gebaeude @
OBJE 11 21 Wald extra
ETAB
TABL Begrenzungen
OBJE 1 10
STPT 0.000 0.000
LIPT 10.000 0.000
LIPT 10.000 10.000
ELIN
STPT 10.000 10.000
LIPT 0.000 10.000
LIPT 0.000 0.000
ELIN
ETAB
ETOP
ENDE
`

func TestScannerRecords(t *testing.T) {
	recs,err := scanAll(transfer)
	require.NoError(t,err)
	require.Len(t,recs,3)

	r := recs[0]
	assert.Equal(t,"BoFlaechen",r.Topic)
	assert.Equal(t,"BoFlaechen",r.Table)
	assert.Equal(t,"10",r.TID)
	require.Len(t,r.Fields,3)
	assert.Equal(t,Field{"20",true},r.Fields[0])
	assert.Equal(t,Field{"Gebaeude",true},r.Fields[1])
	assert.Equal(t,Field{},r.Fields[2])
	assert.Empty(t,r.Lines)

	assert.Equal(t,"11",recs[1].TID)
	assert.Equal(t,"Wald",recs[1].Fields[1].Value)

	r = recs[2]
	assert.Equal(t,"Begrenzungen",r.Table)
	assert.Equal(t,"1",r.TID)
	require.Len(t,r.Lines,2)

	c := r.Lines[0].Curve()
	assert.False(t,c.IsCompound())
	assert.True(t,curve.PtEq(c.StartPoint(),geom.Coord{0,0}))
	assert.True(t,curve.PtEq(c.EndPoint(),geom.Coord{10,10}))
}

func TestScannerNullAndContinuation(t *testing.T) {
	recs,err := scanAll("TOPI T\nTABL A\nOBJE 5 @ eins\nCONT zwei @\nETAB\n")
	require.NoError(t,err)
	require.Len(t,recs,1)
	require.Len(t,recs[0].Fields,4)
	assert.False(t,recs[0].Fields[0].Valid)
	assert.Equal(t,"eins",recs[0].Fields[1].Value)
	assert.Equal(t,"zwei",recs[0].Fields[2].Value)
	assert.False(t,recs[0].Fields[3].Valid)
}

func TestScannerRecordAtEOF(t *testing.T) {
	/* no ETAB, no trailing newline */
	recs,err := scanAll("TOPI T\nTABL A\nOBJE 5 x\nSTPT 1 2\nLIPT 3 4")
	require.NoError(t,err)
	require.Len(t,recs,1)
	require.Len(t,recs[0].Lines,1)
	assert.Equal(t,[]float64{1,2, 3,4},recs[0].Lines[0].Members[0])
}

func TestScannerArc(t *testing.T) {
	recs,err := scanAll("TOPI T\nTABL A\nOBJE 1 x\nSTPT 1 0\nARCP 0 1\nLIPT -1 0\nELIN\nETAB\n")
	require.NoError(t,err)
	require.Len(t,recs,1)
	require.Len(t,recs[0].Lines,1)

	c := recs[0].Lines[0].Curve()
	assert.True(t,curve.PtEq(c.StartPoint(),geom.Coord{1,0}))
	assert.True(t,curve.PtEq(c.EndPoint(),geom.Coord{-1,0}))

	/* the stroked arc stays on the circle through the three points */
	cs := c.Coords()
	assert.True(t,len(cs)>3)
	for _,p := range cs {
		assert.InDelta(t,1.0,p[0]*p[0]+p[1]*p[1],1e-9)
	}
}

func TestScanner3D(t *testing.T) {
	recs,err := scanAll("TOPI T\nTABL A\nOBJE 1 x\nSTPT 0 0 5\nLIPT 1 0 6\nELIN\nETAB\n")
	require.NoError(t,err)
	require.Len(t,recs[0].Lines,1)
	assert.Equal(t,3,recs[0].Lines[0].Stride)

	c := recs[0].Lines[0].Curve()
	assert.True(t,c.Is3D())
	assert.Equal(t,5.0,c.StartPoint()[2])
}

func TestScannerLatin1Value(t *testing.T) {
	recs,err := scanAll("TOPI T\nTABL A\nOBJE 1 Z\xfcrich\nETAB\n")
	require.NoError(t,err)
	assert.Equal(t,"Zürich",recs[0].Fields[0].Value)
}
