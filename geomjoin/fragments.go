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

import "github.com/maxymania/itf-superinserter/curve"

/*
fragmentStore groups the boundary curves of one join pass by owning
feature. Fragments live in one arena slice; per-feature lists hold
indices into it, so handing a fragment over to a ring is a matter of
marking its slot consumed.
*/
type fragment struct{
	c        *curve.Curve
	consumed bool
}

type fragmentStore struct{
	arena  []fragment
	byFeat map[*Feature][]int
	order  []*Feature
}

func newFragmentStore() *fragmentStore {
	return &fragmentStore{byFeat: make(map[*Feature][]int)}
}

func (fs *fragmentStore) Add(f *Feature, c *curve.Curve) {
	if c==nil || c.Empty() { return }
	if _,ok := fs.byFeat[f]; !ok { fs.order = append(fs.order,f) }
	fs.byFeat[f] = append(fs.byFeat[f],len(fs.arena))
	fs.arena = append(fs.arena,fragment{c: c})
}

/* Features lists owners in first-contribution order. */
func (fs *fragmentStore) Features() []*Feature { return fs.order }

/*
Take moves the feature's remaining fragments out of the store. Each
fragment is handed out at most once.
*/
func (fs *fragmentStore) Take(f *Feature) []*curve.Curve {
	idxs := fs.byFeat[f]
	out := make([]*curve.Curve,0,len(idxs))
	for _,i := range idxs {
		if fs.arena[i].consumed { continue }
		fs.arena[i].consumed = true
		out = append(out,fs.arena[i].c)
	}
	delete(fs.byFeat,f)
	return out
}

/* Discard drops everything; fragments never outlive the pass. */
func (fs *fragmentStore) Discard() {
	fs.arena = nil
	fs.byFeat = nil
	fs.order = nil
}
