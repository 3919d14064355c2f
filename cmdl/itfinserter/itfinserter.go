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

import (
	"database/sql"
	_ "github.com/lib/pq"
)

import "flag"
import "io"
import "github.com/maxymania/itf-superinserter/itf"
import "github.com/maxymania/itf-superinserter/schema"
import "github.com/maxymania/itf-superinserter/geomjoin"
import "github.com/maxymania/itf-superinserter/polygonize"
import "github.com/maxymania/itf-superinserter/sqlout"
import "github.com/maxymania/itf-superinserter/reccache"
import "github.com/maxymania/itf-superinserter/restarter"
import "github.com/maxymania/itf-superinserter/store"
import "github.com/coocood/freecache"
import "github.com/couchbase/go-slab"
import "github.com/maxymania/itf-superinserter/steps"
import "github.com/maxymania/itf-superinserter/diag"
import "os"
import "log"
import "time"

var help bool

var table_prefix string
var file,checkfile,schemafile string
var storefile,tempdir string
var dburl string
var cache int
var debug bool

var intervall string

func init() {
	flag.BoolVar(&help,"help",false,"Help!")
	flag.StringVar(&table_prefix,"prefix","itf","table prefix")
	flag.StringVar(&file,"file","","interlis transfer file (will use STDIN if not specified)")
	flag.StringVar(&dburl,"dburl","","DB-Connection description")
	flag.StringVar(&checkfile,"cont","","continuation memoization file")
	flag.StringVar(&schemafile,"schema","interlis.schema","model schema file")
	flag.StringVar(&storefile,"store","","record store file (spools the transfer into a store first)")
	flag.StringVar(&tempdir,"temp","temp.db","temporary record store directory")
	flag.StringVar(&intervall,"intervall","1s","Logging intervall")

	flag.IntVar(&cache,"cache",128,"number of megabytes of cache")
	flag.BoolVar(&debug,"debug",false,"debug output")
}

var modelschema schema.Schema
var intervall_raw = time.Second

func prepare() {
	sf,err := os.Open(schemafile)
	if err!=nil {
		log.Fatalf("open(%s): %v",schemafile,err)
	}
	defer sf.Close()
	modelschema = schema.LoadSchema(sf)
	if d,err := time.ParseDuration(intervall); err==nil { intervall_raw = d }
}

/*
readerCache layers the record cache for the store read-back: small
records go into the slab backed ARC, anything bigger into freecache.
*/
func readerCache() reccache.Cache {
	size := 1<<27
	if cache>=16 { size = cache<<20 }
	arena := slab.NewArena(48,1024*1024,2,nil)
	little := reccache.NewARC(arena,size/(2<<10))
	big := reccache.Wrap(freecache.NewCache(size/2))
	return reccache.Split(little,big,1<<10)
}

func main() {
	flag.Parse()
	if help { flag.PrintDefaults(); return }
	prepare()
	var scanner itf.RecordScanner
	var src io.Reader

	bdr := new(sqlout.Builder)

	src = os.Stdin

	if file!="" {
		f,err := os.Open(file)
		if err!=nil {
			log.Fatalf("open(%s): %v",file,err)
		}
		defer f.Close()
		src = f
	}

	scanner = itf.NewScanner(src)

	{
		db, err := sql.Open("postgres", dburl)
		if err!=nil {
			log.Fatalf("cannot connect to DB: %v",err)
		}
		bdr.DB = db
	}

	if checkfile!="" {
		sca2,err := restarter.Restartable(checkfile,scanner)
		if err!=nil {
			log.Fatalf("cannot open continuation file: %v",err)
		}
		scanner = sca2
		bdr.OnCommit = sca2
	}

	if cache<16 {
		bdr.InitCache()
	} else {
		bdr.InitCache(cache<<20)
	}

	bdr.InitTables(modelschema,table_prefix)
	bdr.TouchTables()

	tck := time.Tick(intervall_raw)

	dia := diag.New(nil,debug)
	pz := polygonize.New()
	pz.Diag = dia

	lset := geomjoin.BuildLayers(modelschema,pz,dia)

	if storefile!="" {
		err := steps.Ingest(tempdir,storefile,scanner,tck)
		if err!=nil {
			log.Fatalf("spooling into %s failed: %v",storefile,err)
		}
		imp,err := store.OpenImporterFile(storefile)
		if err!=nil {
			log.Fatalf("open(%s): %v",storefile,err)
		}
		rdr := reccache.Cached(imp,readerCache())
		for _,name := range lset.Names() {
			err = lset.Consume(store.Scan(rdr,name))
			if err!=nil {
				log.Fatalf("reading table %s back: %v",name,err)
			}
		}
	} else {
		err := lset.Consume(scanner)
		if err!=nil {
			log.Printf("Import ended prematurely due to: %v",err)
		}
	}

	c := 0
	for _,name := range lset.Names() {
		l := lset.Layer(name)
		err := bdr.InsertLayer(l,"")
		if err!=nil {
			log.Printf("inserting layer %s: %v",name,err)
			continue
		}
		c += l.Len()
		select {
		case <- tck:
			log.Printf("Features(%d)\n",c)
		default:
		}
	}

	bdr.Flush()
}
