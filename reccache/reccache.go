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

package reccache

import "container/list"
import "github.com/couchbase/go-slab"
import "github.com/coocood/freecache"
import "fmt"

import json2 "github.com/json-iterator/go"
import "github.com/maxymania/itf-superinserter/itf"
import "github.com/maxymania/itf-superinserter/store"

var json = json2.ConfigCompatibleWithStandardLibrary

var ENotFound = fmt.Errorf("Error: Not Found")
var EAllocation = fmt.Errorf("Error: Allocation")

/* The subset of cache methods the record wrapper needs. */
type Cache interface{
	Get(key []byte) (value []byte, err error)
	Set(key, value []byte, expireSeconds int) (err error)
	Del(key []byte) (affected bool)
}

type fcCache struct{ c *freecache.Cache }
func (f fcCache) Get(key []byte) ([]byte,error) { return f.c.Get(key) }
func (f fcCache) Set(key,value []byte, expire int) error { return f.c.Set(key,value,expire) }
func (f fcCache) Del(key []byte) bool { return f.c.Del(key) }

/* Wrap adapts a freecache instance. */
func Wrap(c *freecache.Cache) Cache { return fcCache{c} }

/*
[ recent <-!-> frequent ] with slab backed buffers; the two halves
trade capacity on re-hits, roughly an Adaptive Replacement Cache
without the ghost lists.
*/
type half uint
const (
	recent half = iota
	frequent
	numHalves
)

type entry struct{
	key string
	half half
	buffer []byte
}

type arcCache struct{
	lst    *list.List
	mid    *list.Element
	index  map[string]*list.Element
	arena  *slab.Arena
	count  [numHalves]int64
	target [numHalves]int64
}

func NewARC(a *slab.Arena, each int) Cache {
	c := &arcCache{
		lst: list.New(),
		index: make(map[string]*list.Element),
		arena: a,
	}
	c.mid = c.lst.PushBack(nil)
	c.target[recent] = int64(each)
	c.target[frequent] = int64(each)
	return c
}

func (c *arcCache) drop(elem *list.Element) {
	e := elem.Value.(*entry)
	if len(e.buffer)>0 { c.arena.DecRef(e.buffer) }
	c.count[e.half]--
	c.lst.Remove(elem)
	delete(c.index,e.key)
}
func (c *arcCache) evict() {
	for c.count[recent]>c.target[recent] {
		c.drop(c.mid.Prev())
	}
	for c.count[frequent]>c.target[frequent] {
		c.drop(c.lst.Back())
	}
}

func (c *arcCache) Get(key []byte) ([]byte,error) {
	elem,ok := c.index[string(key)]
	if !ok { return nil,ENotFound }
	e := elem.Value.(*entry)
	if e.half==recent {
		/* second hit, promote */
		c.count[recent]--
		c.count[frequent]++
		e.half = frequent
	}
	c.lst.MoveAfter(elem,c.mid)
	c.evict()
	return e.buffer,nil
}
func (c *arcCache) Set(key,value []byte, expireSeconds int) error {
	if elem,ok := c.index[string(key)]; ok { c.drop(elem) }
	e := &entry{key: string(key)}
	if len(value)>0 {
		e.buffer = c.arena.Alloc(len(value))
	}
	if len(e.buffer)<len(value) { return EAllocation }
	copy(e.buffer,value)
	c.count[recent]++
	c.index[e.key] = c.lst.InsertBefore(e,c.mid)
	if c.lst.Front()!=c.index[e.key] { c.lst.MoveToFront(c.index[e.key]) }
	c.evict()
	return nil
}
func (c *arcCache) Del(key []byte) bool {
	elem,ok := c.index[string(key)]
	if !ok { return false }
	c.drop(elem)
	return true
}

type splitcache struct{
	little,big Cache
	splitsize int
}

/* Split routes small values to one cache and large ones to the other. */
func Split(little,big Cache, splitsize int) Cache {
	return &splitcache{little,big,splitsize}
}
func (s *splitcache) Get(key []byte) (value []byte, err error) {
	value,err = s.little.Get(key)
	if err!=nil {
		value,err = s.big.Get(key)
	}
	return
}
func (s *splitcache) Set(key,value []byte, expireSeconds int) (err error) {
	if len(value) > s.splitsize {
		err = s.big.Set(key,value,expireSeconds)
		s.little.Del(key)
	} else {
		err = s.little.Set(key,value,expireSeconds)
		s.big.Del(key)
	}
	return
}
func (s *splitcache) Del(key []byte) (affected bool) {
	a := s.little.Del(key)
	b := s.big.Del(key)
	return a||b
}

/* cachedReader puts a cache in front of a record reader's Get path. */
type cachedReader struct{
	inner store.IReader
	cache Cache
}
func Cached(r store.IReader, c Cache) store.IReader {
	return &cachedReader{r,c}
}
func key(table,tid string) []byte {
	k := make([]byte,0,len(table)+1+len(tid))
	k = append(k,table...)
	k = append(k,0)
	k = append(k,tid...)
	return k
}
func (c *cachedReader) Get(table,tid string, r *itf.Record) error {
	k := key(table,tid)
	if v,err := c.cache.Get(k); err==nil {
		return json.Unmarshal(v,r)
	}
	err := c.inner.Get(table,tid,r)
	if err!=nil { return err }
	if b,err2 := json.Marshal(r); err2==nil {
		c.cache.Set(k,b,0)
	}
	return nil
}
func (c *cachedReader) Iterate(table string) store.IIterator {
	return c.inner.Iterate(table)
}
