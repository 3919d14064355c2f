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

package restarter

import "github.com/maxymania/itf-superinserter/itf"
import "github.com/edsrzf/mmap-go"
import "bytes"
import "encoding/binary"
import "os"

/*
Checkpoint file layout: 8 bytes magic, 8 bytes committed record
count, little endian. A file that does not carry the magic counts as
fresh, so a stale or foreign file restarts the transfer from zero
instead of skipping into nowhere.
*/
var chkMagic = []byte("itfchkp1")

const chkSize = 4<<10

type checkpoint struct{
	file *os.File
	mm   mmap.MMap
}

func openCheckpoint(fn string) (*checkpoint,error) {
	f,err := os.OpenFile(fn,os.O_CREATE|os.O_RDWR,0666)
	if err!=nil { return nil,err }
	if err := f.Truncate(chkSize); err!=nil { f.Close(); return nil,err }
	mm,err := mmap.Map(f,mmap.RDWR,0)
	if err!=nil { f.Close(); return nil,err }
	c := &checkpoint{f,mm}
	if !bytes.Equal(mm[:8],chkMagic) {
		copy(mm[:8],chkMagic)
		c.store(0)
	}
	return c,nil
}
func (c *checkpoint) committed() int64 {
	return int64(binary.LittleEndian.Uint64(c.mm[8:16]))
}
func (c *checkpoint) store(n int64) {
	binary.LittleEndian.PutUint64(c.mm[8:16],uint64(n))
}

type Scanner interface{
	itf.RecordScanner
	Commit()
}

type wrapper struct{
	itf.RecordScanner
	seen int64
	chk  *checkpoint
}
func (w *wrapper) Scan() bool {
	r := w.RecordScanner.Scan()
	if r { w.seen++ }
	return r
}

/* Commit persists the progress seen so far. */
func (w *wrapper) Commit() {
	w.chk.store(w.seen)
	w.chk.mm.Flush()
}

/*
Restartable remembers how many records have been committed in a
memory mapped checkpoint file and fast-forwards past them on the
next run.
*/
func Restartable(chkfile string, s itf.RecordScanner) (Scanner,error) {
	chk,err := openCheckpoint(chkfile)
	if err!=nil { return nil,err }
	w := &wrapper{s,chk.committed(),chk}
	for i := w.seen; i>0; i-- {
		s.Scan()
	}
	return w,nil
}
