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

package steps

import "github.com/maxymania/itf-superinserter/itf"
import "github.com/maxymania/itf-superinserter/store"

import "fmt"
import "time"
import "os"

/*
Ingest scans a whole transfer into a temporary record store and
freezes it into one sorted table file. The temporary store is removed
afterwards.
*/
func Ingest(temp, file string, sca itf.RecordScanner, tck <- chan time.Time) error {
	recs,err := store.OpenStore(temp)
	if err!=nil { return err }

	counts := make(map[string]int)
	total := 0
	for sca.Scan() {
		r := sca.Record()
		counts[r.Table]++
		total++
		err := recs.Upsert(r)
		if err!=nil { return err }
		select {
		case <- tck:
			fmt.Printf("Ingest(): Records(%v) Tables(%v)\n",total,len(counts))
		default:
		}
	}
	fmt.Printf("Ingest(): Records(%v) Tables(%v)\n",total,len(counts))
	for t,n := range counts {
		fmt.Printf("Ingest(): %s(%v)\n",t,n)
	}

	err = recs.Flush()
	if err!=nil { return err }
	err = recs.ExportFile(file)
	if err!=nil { return err }

	recs.DB.Close()
	os.RemoveAll(temp)

	return sca.Err()
}
