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

import "strconv"

/* A null field is written as "@" in the transfer. */
type Field struct{
	Value string
	Valid bool
}
func (f Field) String() string {
	if !f.Valid { return "@" }
	return f.Value
}
func (f Field) Int64() int64 {
	i,_ := strconv.ParseInt(f.Value,10,64)
	return i
}
func (f Field) Float64() float64 {
	r,_ := strconv.ParseFloat(f.Value,64)
	return r
}

// One OBJE entry of a transfer table, together with the coordinate
// lines (STPT/ARCP/LIPT..ELIN) that followed it. Every geometry block
// becomes one curve; arcs are stroked into separate compound members.
type Record struct{
	Topic  string
	Table  string
	TID    string
	Fields []Field
	Lines  []*RawCurve
}

/*
RawCurve is the undecoded form of one geometry block: members are
coordinate runs, one run per straight stretch or stroked arc.
*/
type RawCurve struct{
	Members [][]float64 /* flat XY(Z) coords */
	Stride  int
}

type RecordScanner interface{
	Scan() bool
	Record() *Record
	Err() error
}
