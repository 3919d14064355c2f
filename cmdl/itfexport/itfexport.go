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


package main

import "github.com/maxymania/itf-superinserter/itf"
import "github.com/maxymania/itf-superinserter/schema"
import "github.com/maxymania/itf-superinserter/geomjoin"
import "github.com/maxymania/itf-superinserter/polygonize"
import "github.com/maxymania/itf-superinserter/store"
import "github.com/maxymania/itf-superinserter/diag"

import "fmt"
import "os"
import "flag"
import "io"
import "strings"

var in_stdin bool
var limit,offset uint64

var in_file,storefile,schemafile string
var tables string
var debug bool

func init(){
	flag.BoolVar(&in_stdin,"stdin",false,"use stdin as input")
	flag.BoolVar(&debug,"debug",false,"debug output")

	flag.Uint64Var(&limit,"limit",0,"Max. number of features, 0==infinity")
	flag.Uint64Var(&offset,"offset",0,"Number of features to skip")

	flag.StringVar(&in_file,"file","","use transfer file as input")
	flag.StringVar(&storefile,"store","","use record store file as input")
	flag.StringVar(&schemafile,"schema","interlis.schema","model schema file")
	flag.StringVar(&tables,"tables","","comma-separated table selection, empty==all")
}

func selection() map[string]bool {
	if tables=="" { return nil }
	m := make(map[string]bool)
	for _,t := range strings.Split(tables,",") { m[t] = true }
	return m
}

func main() {
	flag.Parse()

	sf,err := os.Open(schemafile)
	if err!=nil {
		fmt.Fprintf(os.Stderr,"Opening schema %q: %v\n",schemafile,err)
		return
	}
	sch := schema.LoadSchema(sf)
	sf.Close()

	dia := diag.New(nil,debug)
	pz := polygonize.New()
	pz.Diag = dia
	lset := geomjoin.BuildLayers(sch,pz,dia)

	/* Topic of each table, in scan order. */
	topicOf := make(map[string]string)
	var tabOrder []string

	note := func(rec *itf.Record) {
		if _,ok := topicOf[rec.Table]; !ok {
			topicOf[rec.Table] = rec.Topic
			tabOrder = append(tabOrder,rec.Table)
		}
		lset.Add(rec)
	}

	if storefile!="" {
		imp,err := store.OpenImporterFile(storefile)
		if err!=nil {
			fmt.Fprintf(os.Stderr,"Opening store %q: %v\n",storefile,err)
			return
		}
		for _,name := range lset.Names() {
			s := store.Scan(imp,name)
			for s.Scan() { note(s.Record()) }
			if err := s.Err(); err!=nil {
				fmt.Fprintf(os.Stderr,"premature end: %v\n",err)
			}
		}
	} else {
		var src io.Reader
		if in_stdin {
			src = os.Stdin
		} else if in_file!="" {
			f,err := os.Open(in_file)
			if err!=nil {
				fmt.Fprintf(os.Stderr,"Opening input-file %q: %v\n",in_file,err)
				return
			}
			defer f.Close()
			src = f
		}
		if src==nil {
			flag.PrintDefaults()
			return
		}
		s := itf.NewScanner(src)
		for s.Scan() { note(s.Record()) }
		if err := s.Err(); err!=nil {
			fmt.Fprintf(os.Stderr,"premature end: %v\n",err)
		}
	}

	sel := selection()
	nolimit := limit==0

	w := itf.NewWriter(os.Stdout)
	w.Diag = dia

	curTopic := ""
	for _,name := range tabOrder {
		if sel!=nil && !sel[name] { continue }
		l := lset.Layer(name)
		if l==nil { continue }
		if t := topicOf[name]; t!=curTopic {
			if curTopic!="" { w.EndTopic() }
			w.BeginTopic(t)
			curTopic = t
		}
		w.BeginTable(name)
		slot := l.DefaultGeomIndex()
		l.ResetReading()
		for {
			f := l.Next()
			if f==nil { break }
			if offset>0 {
				offset--
				continue
			}
			if nolimit {} else if limit==0 { break }
			limit--
			err := w.WriteFeature(f.TID,f.Fields,f.Geom(slot))
			if err!=nil {
				fmt.Fprintf(os.Stderr,"write: %v\n",err)
				return
			}
		}
		w.EndTable()
	}
	if curTopic!="" { w.EndTopic() }
	w.End()
}
