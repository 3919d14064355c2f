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

package sqlout

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/lib/pq/hstore"

	"fmt"
	"github.com/coocood/freecache"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
	"github.com/twpayne/go-geom/encoding/ewkb"
	"strings"
	"strconv"
	"bytes"
	"encoding/binary"

	"github.com/maxymania/itf-superinserter/geomjoin"
	"github.com/maxymania/itf-superinserter/itf"
	"github.com/maxymania/itf-superinserter/schema"
)

func rescount(res sql.Result,err error) int64 {
	if err!=nil { return 0 }
	i,err := res.RowsAffected()
	if err!=nil { return 0 }
	return i
}

func isTyped(dt string) bool {
	return strings.HasPrefix(dt,"int") || strings.HasPrefix(dt,"real") ||
		strings.HasPrefix(dt,"double") || strings.HasPrefix(dt,"text")
}

/*
One output table per transfer table: tid, typed columns for the
declared fields, an attrs hstore for everything else, and the
geometry.
*/
type Table struct{
	b *Builder
	Tname string
	Csql,Isql,Usql string
	Def schema.Schema /* non-geometry lines, positional */
}
func (t *Table) Init(tabname string, tdef schema.Schema) *Table {
	t.Tname = tabname
	var create,insert,values,update bytes.Buffer

	t.Def = make(schema.Schema,0,len(tdef))
	for _,line := range tdef {
		if line.DataType=="geometry" || line.HasFlag("tid") { continue }
		t.Def = append(t.Def,line)
	}

	fmt.Fprintf(&create,"CREATE TABLE %s (tid text" /*)*/,tabname)
	fmt.Fprintf(&insert,"INSERT INTO %s (tid,attrs,way" /*)*/,tabname)
	fmt.Fprintf(&values,/*(*/ ") VALUES ($1,$2,ST_GeomFromEWKB($3)")
	fmt.Fprintf(&update,"UPDATE %s SET attrs=$2, way=ST_GeomFromEWKB($3)",tabname)

	off := 4
	for _,line := range t.Def {
		if !isTyped(line.DataType) { continue }
		fmt.Fprintf(&create,",\"%s\" %s",line.Field,line.DataType)
		fmt.Fprintf(&insert,",\"%s\"",line.Field)
		fmt.Fprintf(&values,",$%d",off)
		fmt.Fprintf(&update,",\"%s\" = $%d",line.Field,off)
		off++
	}

	fmt.Fprintf(&create,/*(*/ ",\nattrs hstore, way geometry)")
	values.WriteTo(&insert)
	fmt.Fprintf(&insert,/*(*/ ")")

	fmt.Fprintf(&update," WHERE tid=$1")

	t.Csql = create.String()
	t.Isql = insert.String()
	t.Usql = update.String()

	return t
}

func (t *Table) Insert(tid string, fields []itf.Field, way geom.T) error {
	return t.Insert2(tid,fields,way,false)
}
func (t *Table) Insert2(tid string, fields []itf.Field, way geom.T, is_insert bool) error {
	var waybin interface{}
	if way!=nil {
		b,err := ewkb.Marshal(way,binary.LittleEndian)
		if err!=nil { return err }
		waybin = b
	}

	hs := hstore.Hstore{Map: make(map[string]sql.NullString)}
	target := append(
		make([]interface{},0,len(t.Def)+8),
		tid,hs,waybin)

	for i,line := range t.Def {
		var f itf.Field
		if i<len(fields) { f = fields[i] }
		if !isTyped(line.DataType) {
			if f.Valid { hs.Map[line.Field] = sql.NullString{String:f.Value,Valid:true} }
			continue
		}
		var targ interface{}
		if f.Valid {
			if strings.HasPrefix(line.DataType,"int") {
				targ,_ = strconv.ParseInt(f.Value,0,64)
			} else if strings.HasPrefix(line.DataType,"real") || strings.HasPrefix(line.DataType,"double") {
				targ,_ = strconv.ParseFloat(f.Value,64)
			} else {
				targ = f.Value
			}
		}
		target = append(target,targ)
	}
	if is_insert {
		stm,err := t.b.Get(t.Isql)
		if err!=nil { return err }
		_,err = stm.Exec(target...)
		if err!=nil { return err }
	}else{
		stm,err := t.b.Get(t.Usql)
		if err!=nil { return err }
		if rescount(stm.Exec(target...))<1 {
			stm,err = t.b.Get(t.Isql)
			if err!=nil { return err }
			_,err = stm.Exec(target...)
			if err!=nil { return err }
		}
	}
	t.b.OnWrite()

	return nil
}
func (t *Table) ClearDataForObject(tid string) error {
	stm,err := t.b.Get(fmt.Sprintf("DELETE FROM %s WHERE tid=$1",t.Tname))
	if err!=nil { return err }
	_,err = stm.Exec(tid)
	return err
}

func (t *Table) Read(fields string, tid string, data ...interface{}) error {
	stm,err := t.b.Get(fmt.Sprintf("SELECT %s from %s WHERE tid=$1",fields,t.Tname))
	if err!=nil { return err }
	return stm.QueryRow(tid).Scan(data...)
}

type FuncCommit interface{ Commit() }

type Builder struct{
	DB     *sql.DB
	Tx     *sql.Tx
	Cache  *freecache.Cache
	Tables map[string]*Table
	OnCommit FuncCommit
	psm    map[string]*sql.Stmt
	writes int
}

func (b *Builder) InitCache(size ...int) {
	i := 1<<27
	if len(size)>0 { i = size[0] }
	b.Cache = freecache.NewCache(i)
}
func (b *Builder) InitTables(sch schema.Schema, prefix string) {
	b.Tables = make(map[string]*Table)
	for _,t := range sch.Tables() {
		tab := new(Table).Init(prefix+"_"+strings.ToLower(t),sch.Table(t))
		tab.b = b
		b.Tables[t] = tab
	}
}
func (b *Builder) TouchTables() {
	for _,t := range b.Tables {
		b.DB.Exec(t.Csql)
		b.DB.Exec(fmt.Sprintf("CREATE INDEX %s_tididx ON %s(tid)",t.Tname,t.Tname))
	}
}
func (b *Builder) begin() (err error) {
	if b.Tx==nil {
		b.Tx,err = b.DB.Begin()
	}
	return
}
func (b *Builder) ensurePsmMap() {
	if b.psm==nil { b.psm = make(map[string]*sql.Stmt) }
}
func (b *Builder) Get(sql string) (*sql.Stmt,error) {
	b.ensurePsmMap()
	stm,ok := b.psm[sql]
	if ok { return stm,nil }
	err := b.begin()
	if err!=nil { return nil,err }
	stm,err = b.Tx.Prepare(sql)
	if err!=nil { return nil,err }
	b.psm[sql] = stm
	return stm,nil
}
func (b *Builder) OnWrite() { b.writes++ }
func (b *Builder) AfterWrite() (err error) {
	if b.writes>=(1<<14) {
		err = b.Flush()
	}
	return
}
func (b *Builder) Flush() (err error) {
	for _,stm := range b.psm { stm.Close() }
	b.psm = make(map[string]*sql.Stmt)
	if b.Tx==nil { return }
	err = b.Tx.Commit()
	if err!=nil {
		b.Tx.Rollback()
	} else if b.OnCommit!=nil {
		b.OnCommit.Commit()
	}
	b.Tx = nil
	b.writes = 0
	return
}

/*
InsertLayer writes a layer's resolved features. The slot written is
the layer's default geometry slot unless a name is given.
*/
func (b *Builder) InsertLayer(l *geomjoin.Layer, slotName string) error {
	tab := b.Tables[l.Name()]
	if tab==nil { return fmt.Errorf("no table for layer %s",l.Name()) }
	slot := l.DefaultGeomIndex()
	if slotName!="" { slot = l.GeomFieldIndex(slotName) }
	l.ResetReading()
	for {
		f := l.Next()
		if f==nil { break }
		err := tab.Insert(f.TID,f.Fields,f.Geom(slot))
		if err!=nil { return err }
		err = b.AfterWrite()
		if err!=nil { return err }
	}
	return nil
}

/* LoadGeom reads a written geometry back, going through the cache. */
func (b *Builder) LoadGeom(table,tid string) (geom.T,error) {
	tab := b.Tables[table]
	if tab==nil { return nil,fmt.Errorf("no table for layer %s",table) }
	key := []byte(table+"\x00"+tid)
	data,err := b.Cache.Get(key)
	if err!=nil {
		err = tab.Read("ST_AsBinary(way)",tid,&data)
		if err!=nil { return nil,err }
		b.Cache.Set(key,data,34560000)
	}
	return wkb.Unmarshal(data)
}
