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

import "bufio"
import "io"
import "strconv"
import "strings"

import geom "github.com/twpayne/go-geom"
import "github.com/maxymania/itf-superinserter/curve"
import "github.com/maxymania/itf-superinserter/recode"

/*
Scanner reads OBJE records, one table after the other, out of an
Interlis 1 transfer stream. A record is handed out once the scanner
has seen everything belonging to it, i.e. on the next OBJE, ETAB or
end of input.
*/
type Scanner struct{
	br  *bufio.Reader
	rec *Record
	out *Record
	err error

	topic,table string

	/* geometry block under construction */
	members [][]float64
	run     []float64
	stride  int
	arc     []float64 /* pending ARCP point */
}

func NewScanner(r io.Reader) *Scanner {
	return &Scanner{br: bufio.NewReaderSize(r,1<<16)}
}

func (s *Scanner) Record() *Record { return s.out }
func (s *Scanner) Err() error {
	if s.err==io.EOF { return nil }
	return s.err
}

func (s *Scanner) flushRun() {
	if len(s.run)>0 {
		s.members = append(s.members,s.run)
		s.run = nil
	}
}
func (s *Scanner) flushCurve() {
	s.flushRun()
	if len(s.members)>0 && s.rec!=nil {
		s.rec.Lines = append(s.rec.Lines,&RawCurve{s.members,s.stride})
	}
	s.members = nil
	s.arc = nil
}
func (s *Scanner) flushRecord() *Record {
	s.flushCurve()
	r := s.rec
	s.rec = nil
	return r
}

func (s *Scanner) point(cols []string) []float64 {
	p := make([]float64,0,3)
	for _,c := range cols {
		v,err := strconv.ParseFloat(c,64)
		if err!=nil { break }
		p = append(p,v)
	}
	if len(p)>3 { p = p[:3] }
	return p
}

func (s *Scanner) addPoint(p []float64) {
	if len(p)<2 { return }
	if len(p)>s.stride { p = p[:s.stride] }
	if s.arc!=nil && len(s.run)>=s.stride {
		/* the arc from the last point through ARCP ends here */
		last := geom.Coord{s.run[len(s.run)-s.stride],s.run[len(s.run)-s.stride+1]}
		mid := geom.Coord{s.arc[0],s.arc[1]}
		end := geom.Coord{p[0],p[1]}
		s.flushRun()
		stroke := curve.StrokeArc(last,mid,end,curve.ArcStep)
		arcrun := make([]float64,0,len(stroke)*s.stride)
		for _,c := range stroke {
			arcrun = append(arcrun,c[0],c[1])
			if s.stride>2 { arcrun = append(arcrun,0) }
		}
		s.members = append(s.members,arcrun)
		/* the next straight run starts at the arc's end */
		s.run = append(s.run,arcrun[len(arcrun)-s.stride:]...)
		s.arc = nil
		return
	}
	s.arc = nil
	s.run = append(s.run,p...)
	for len(s.run)%s.stride != 0 { s.run = append(s.run,0) }
}

/* Scan advances to the next complete record. */
func (s *Scanner) Scan() bool {
	if s.err!=nil { return false }
	s.out = nil
	for {
		line,err := s.br.ReadString('\n')
		if err!=nil && line=="" {
			s.err = err
			if r := s.flushRecord(); r!=nil { s.out = r; return true }
			return false
		}
		cols := strings.Fields(line)
		if len(cols)==0 { continue }
		switch cols[0] {
		case "TOPI":
			if len(cols)>1 { s.topic = cols[1] }
		case "TABL":
			if len(cols)>1 { s.table = cols[1] }
		case "OBJE":
			done := s.flushRecord()
			rec := &Record{Topic: s.topic, Table: s.table}
			if len(cols)>1 { rec.TID = cols[1] }
			for _,c := range cols[2:] {
				if c=="@" {
					rec.Fields = append(rec.Fields,Field{})
				} else {
					rec.Fields = append(rec.Fields,Field{recode.FromLatin1(c),true})
				}
			}
			s.rec = rec
			s.stride = 2
			if done!=nil { s.out = done; return true }
		case "CONT":
			if s.rec==nil { break }
			for _,c := range cols[1:] {
				if c=="@" {
					s.rec.Fields = append(s.rec.Fields,Field{})
				} else {
					s.rec.Fields = append(s.rec.Fields,Field{recode.FromLatin1(c),true})
				}
			}
		case "STPT":
			s.flushCurve()
			s.stride = 2
			p := s.point(cols[1:])
			if len(p)>2 { s.stride = 3 }
			s.addPoint(p)
		case "LIPT":
			s.addPoint(s.point(cols[1:]))
		case "ARCP":
			s.arc = s.point(cols[1:])
		case "ELIN":
			s.flushCurve()
		case "ETAB","ETOP","EMOD","ENDE":
			if done := s.flushRecord(); done!=nil { s.out = done; return true }
		default:
			/* unknown tokens (MODL, EEDG, PERI, ...) are skipped */
		}
	}
}

/* Curve decodes the raw geometry block into its curve form. */
func (rc *RawCurve) Curve() *curve.Curve {
	layout := geom.XY
	if rc.Stride>2 { layout = geom.XYZ }
	segs := make([]*geom.LineString,0,len(rc.Members))
	for _,m := range rc.Members {
		if len(m)<rc.Stride*2 { continue } /* degenerate member */
		segs = append(segs,geom.NewLineStringFlat(layout,m))
	}
	if len(segs)==1 { return curve.Simple(segs[0]) }
	return curve.Compound(segs)
}
