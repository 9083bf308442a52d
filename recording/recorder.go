// Package recording stores simulation output in SQLite so that runs can
// be compared for bit-reproducibility across machines, partitions, and
// worker counts. Entries are buffered and written in batched
// transactions.
package recording

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// SQLite driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// A Recorder stores flat struct entries into named tables.
type Recorder interface {
	// CreateTable creates a table whose columns are the fields of
	// sampleEntry. All fields must be of scalar or string type.
	CreateTable(name string, sampleEntry any)

	// Insert buffers one entry for a table created earlier.
	Insert(name string, entry any)

	// Tables lists the created table names.
	Tables() []string

	// Flush writes all buffered entries in one transaction.
	Flush()

	// Close flushes and releases the database.
	Close()
}

// New creates a Recorder writing to path + ".sqlite3". An empty path
// picks a unique name. Buffered entries are flushed when the process
// exits through atexit.
func New(path string) Recorder {
	if path == "" {
		path = "counterrand_run_" + xid.New().String()
	}

	filename := path + ".sqlite3"
	if _, err := os.Stat(filename); err == nil {
		log.Panicf("recording database %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		log.Panic(err)
	}

	r := &sqliteRecorder{
		db:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

type table struct {
	columns    []string
	insertStmt string
	entries    []any
}

type sqliteRecorder struct {
	db        *sql.DB
	tables    map[string]*table
	batchSize int
	buffered  int
}

func (r *sqliteRecorder) CreateTable(name string, sampleEntry any) {
	if _, exists := r.tables[name]; exists {
		log.Panicf("table %s already exists", name)
	}

	checkStructFields(sampleEntry)
	columns := structs.Names(sampleEntry)

	createSQL := "CREATE TABLE " + name +
		" (" + strings.Join(columns, ", ") + ");"
	r.mustExecute(createSQL)

	placeholders := strings.TrimSuffix(
		strings.Repeat("?, ", len(columns)), ", ")

	r.tables[name] = &table{
		columns: columns,
		insertStmt: "INSERT INTO " + name +
			" VALUES (" + placeholders + ")",
	}
}

func (r *sqliteRecorder) Insert(name string, entry any) {
	t, exists := r.tables[name]
	if !exists {
		log.Panicf("table %s does not exist", name)
	}

	t.entries = append(t.entries, entry)

	r.buffered++
	if r.buffered >= r.batchSize {
		r.Flush()
	}
}

func (r *sqliteRecorder) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for name := range r.tables {
		names = append(names, name)
	}

	return names
}

func (r *sqliteRecorder) Flush() {
	if r.buffered == 0 {
		return
	}

	r.mustExecute("BEGIN TRANSACTION")
	defer r.mustExecute("COMMIT TRANSACTION")

	for _, t := range r.tables {
		if len(t.entries) == 0 {
			continue
		}

		stmt, err := r.db.Prepare(t.insertStmt)
		if err != nil {
			log.Panic(err)
		}

		for _, entry := range t.entries {
			if _, err := stmt.Exec(structs.Values(entry)...); err != nil {
				log.Panic(err)
			}
		}

		stmt.Close()
		t.entries = nil
	}

	r.buffered = 0
}

func (r *sqliteRecorder) Close() {
	r.Flush()
	r.db.Close()
}

func (r *sqliteRecorder) mustExecute(query string) {
	if _, err := r.db.Exec(query); err != nil {
		fmt.Fprintf(os.Stderr, "failed to execute: %s\n", query)
		log.Panic(err)
	}
}

func checkStructFields(entry any) {
	t := reflect.TypeOf(entry)
	if t.Kind() != reflect.Struct {
		log.Panicf("entry must be a struct, got %s", t.Kind())
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !isAllowedKind(field.Type.Kind()) {
			log.Panicf("field %s has unsupported type %s",
				field.Name, field.Type)
		}
	}
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

