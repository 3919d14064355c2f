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

package store

import "github.com/syndtr/goleveldb/leveldb/table"
import "github.com/syndtr/goleveldb/leveldb"
import json2 "github.com/json-iterator/go"
import "os"
import "github.com/syndtr/goleveldb/leveldb/iterator"

import (
	"io"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/cache"
	"bytes"
	"fmt"

	"github.com/maxymania/itf-superinserter/itf"
)

var json = json2.ConfigCompatibleWithStandardLibrary

var ENotFound = fmt.Errorf("NotFound")

/* Records are keyed by table name and TID, separated by a NUL. */
func recKey(table,tid string) []byte {
	k := make([]byte,0,len(table)+1+len(tid))
	k = append(k,table...)
	k = append(k,0)
	k = append(k,tid...)
	return k
}

type IReader interface{
	Get(table,tid string, r *itf.Record) error
	Iterate(table string) IIterator
}
type IIterator interface{
	Next() bool
	Fetch(r *itf.Record) error
	Release()
}
type Iterator struct{
	Iter iterator.Iterator
	On   bool
}
func (i *Iterator) Next() bool {
	if i.On {
		return i.Iter.Next()
	}
	i.On = true
	return i.Iter.First()
}
func (i *Iterator) Fetch(r *itf.Record) error {
	return json.Unmarshal(i.Iter.Value(),r)
}
func (i *Iterator) Release() { i.Iter.Release() }

type Storage struct{
	DB *leveldb.DB
	batch leveldb.Batch
	count int
}
func OpenStore(path string) (*Storage,error) {
	db,err := leveldb.OpenFile(path,nil)
	if err!=nil {
		db,err = leveldb.RecoverFile(path,nil)
	}
	if err!=nil { return nil,err }
	return &Storage{DB:db},nil
}

func (s *Storage) Upsert(r *itf.Record) (err error) {
	b,_ := json.Marshal(r)
	k := recKey(r.Table,r.TID)
	s.batch.Put(k,b)
	s.count += len(k)+len(b)
	if s.count > (128<<10) {
		s.count = 0
		err = s.DB.Write(&s.batch,nil)
		s.batch.Reset()
	}
	return
}
func (s *Storage) Flush() (err error) {
	if s.count>0 {
		s.count = 0
		err = s.DB.Write(&s.batch,nil)
		s.batch.Reset()
	}
	return
}
func (s *Storage) Get(table,tid string, r *itf.Record) error {
	v,err := s.DB.Get(recKey(table,tid),nil)
	if err==leveldb.ErrNotFound { return ENotFound }
	if err!=nil { return err }
	return json.Unmarshal(v,r)
}
func (s *Storage) Iterate(table string) IIterator {
	var rng *util.Range
	if table!="" { rng = util.BytesPrefix(recKey(table,"")) }
	return &Iterator{Iter:s.DB.NewIterator(rng,nil)}
}
func (s *Storage) ExportFile(fn string) error {
	f,err := os.Create(fn)
	if err!=nil { return err }
	defer f.Close()
	w := table.NewWriter(f,nil)
	defer w.Close()
	iter := s.DB.NewIterator(nil,nil)
	defer iter.Release()
	if !iter.First() { return nil }
	err = w.Append(iter.Key(),iter.Value())
	if err!=nil { return err }
	for iter.Next() {
		err = w.Append(iter.Key(),iter.Value())
		if err!=nil { return err }
	}
	return nil
}

type Importer struct{
	TBL *table.Reader
}
func OpenImporter(f io.ReaderAt, size int64) (*Importer,error) {
	chx := cache.NewCache(cache.NewLRU(1<<28))
	r,err := table.NewReader(f,size,storage.FileDesc{Type:storage.TypeTable,Num:1},&cache.NamespaceGetter{Cache:chx,NS:1},util.NewBufferPool(1<<20),nil)
	if err!=nil { return nil,err }
	return &Importer{TBL:r},nil
}
func OpenImporterFile(fn string) (*Importer,error) {
	f,err := os.Open(fn)
	if err!=nil { return nil,err }
	s,err := f.Stat()
	if err!=nil { f.Close(); return nil,err }
	i,err := OpenImporter(f,s.Size())
	if err!=nil { f.Close(); return nil,err }
	return i,nil
}
func (i Importer) Clone() *Importer { return &i }
func (i *Importer) Get(table,tid string, r *itf.Record) error {
	k := recKey(table,tid)
	nk,v,err := i.TBL.Find(k,true,nil)
	if err==leveldb.ErrNotFound { return ENotFound }
	if err!=nil { return err }
	if !bytes.Equal(nk,k) { return ENotFound }
	return json.Unmarshal(v,r)
}
func (i *Importer) Iterate(table string) IIterator {
	var rng *util.Range
	if table!="" { rng = util.BytesPrefix(recKey(table,"")) }
	return &Iterator{Iter:i.TBL.NewIterator(rng,nil)}
}

/* Scan adapts an iteration to the record scanner shape. */
type scanAdapter struct{
	it  IIterator
	rec *itf.Record
	err error
}
func Scan(r IReader, table string) itf.RecordScanner {
	return &scanAdapter{it: r.Iterate(table)}
}
func (s *scanAdapter) Scan() bool {
	if s.err!=nil { return false }
	if !s.it.Next() { s.it.Release(); return false }
	s.rec = new(itf.Record)
	s.err = s.it.Fetch(s.rec)
	return s.err==nil
}
func (s *scanAdapter) Record() *itf.Record { return s.rec }
func (s *scanAdapter) Err() error { return s.err }
