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

import "os"
import "path/filepath"
import "strings"
import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/maxymania/itf-superinserter/itf"
import "github.com/maxymania/itf-superinserter/store"

const transfer = `TOPI T
TABL A
OBJE 1 eins
OBJE 2 zwei
ETAB
TABL B
OBJE 1 other
STPT 0 0
LIPT 1 1
ELIN
ETAB
ETOP
ENDE
`

func TestIngest(t *testing.T) {
	dir := t.TempDir()
	temp := filepath.Join(dir,"tmp.db")
	out := filepath.Join(dir,"out.rst")

	sca := itf.NewScanner(strings.NewReader(transfer))
	require.NoError(t,Ingest(temp,out,sca,nil))

	/* the temporary store is gone, the frozen table remains */
	_,err := os.Stat(temp)
	assert.True(t,os.IsNotExist(err))

	imp,err := store.OpenImporterFile(out)
	require.NoError(t,err)

	var r itf.Record
	require.NoError(t,imp.Get("A","2",&r))
	assert.Equal(t,"zwei",r.Fields[0].Value)

	require.NoError(t,imp.Get("B","1",&r))
	require.Len(t,r.Lines,1)
	assert.Equal(t,[]float64{0,0, 1,1},r.Lines[0].Members[0])
}
