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

package schema

import "regexp"
import "bufio"
import "io"
import "strings"

var uline = regexp.MustCompile(`^[^\#]*`)
var data  = regexp.MustCompile(`\S+`)
var jug   = regexp.MustCompile(`[^,]+`)

/*
One column description:

	# table   field   datatype  flags
	Building  TID     text      tid
	Building  Form    geometry  surface=Building_Form
	Parcel    Area    geometry  area=Parcel_Boundary
	Parcel    Pos     geometry  point
	Lines     _RefTID text      ref

Flags is a comma separated list. The assignment flags name the
geometry table holding the boundary lines of the role.
*/
type Line struct{
	Table, Field, DataType, Flags string
}
func (l *Line) HasFlag(s string) bool {
	for _,f := range jug.FindAllString(l.Flags,-1) {
		if f==s || strings.HasPrefix(f,s+"=") { return true }
	}
	return false
}
func (l *Line) FlagValue(s string) string {
	for _,f := range jug.FindAllString(l.Flags,-1) {
		if strings.HasPrefix(f,s+"=") { return f[len(s)+1:] }
	}
	return ""
}

type Schema []Line

func (s Schema) Tables() (ts []string) {
	for _,l := range s {
		f := false
		for _,t := range ts { f = f || t==l.Table }
		if !f { ts = append(ts,l.Table) }
	}
	return
}
func (s Schema) Table(name string) (t Schema) {
	for _,l := range s {
		if l.Table==name { t = append(t,l) }
	}
	return
}

func LoadSchema(sch io.Reader) (s Schema) {
	br := bufio.NewReaderSize(sch,1<<13)
	for {
		slc,err := br.ReadSlice('\n')
		if len(slc)==0 && err!=nil { break }
		slc = uline.Find(slc)
		cols := data.FindAll(slc,4)
		if len(cols)<4 { continue }

		s = append(s,Line{
			string(cols[0]),
			string(cols[1]),
			string(cols[2]),
			string(cols[3]),
		})
	}
	return
}
