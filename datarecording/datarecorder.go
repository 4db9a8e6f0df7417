// Package datarecording stores simulation traces in a SQLite
// database, one table per record type, with column names derived from
// the record struct fields.
package datarecording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// SQLite driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that records structured trace entries.
type DataRecorder interface {
	// CreateTable creates a table shaped after the sample entry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for the named table.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables.
	ListTables() []string

	// Flush writes all buffered entries to the database.
	Flush()
}

// New creates a DataRecorder writing to path + ".sqlite3". An empty
// path picks a unique name. The recorder flushes at process exit.
func New(path string) DataRecorder {
	w := &sqliteWriter{
		dbName:    path,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	w.init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a DataRecorder on an already-open database.
func NewWithDB(db *sql.DB) DataRecorder {
	w := &sqliteWriter{
		DB:        db,
		batchSize: 100000,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

type table struct {
	structType reflect.Type
	entries    []any
}

type sqliteWriter struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
}

func (w *sqliteWriter) init() {
	if w.dbName == "" {
		w.dbName = "sdram_trace_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	fmt.Fprintf(os.Stderr, "Trace database created: %s\n", filename)

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	w.DB = db
}

func (w *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	mustHaveFlatFields(sampleEntry)

	fields := strings.Join(structs.Names(sampleEntry), ", \n\t")
	w.mustExecute(
		`CREATE TABLE ` + tableName + ` (` + "\n\t" + fields + "\n" + `);`)

	w.tables[tableName] = &table{
		structType: reflect.TypeOf(sampleEntry),
		entries:    []any{},
	}
}

func (w *sqliteWriter) InsertData(tableName string, entry any) {
	t, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	t.entries = append(t.entries, entry)

	w.entryCount++
	if w.entryCount >= w.batchSize {
		w.Flush()
	}
}

func (w *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}

	return names
}

func (w *sqliteWriter) Flush() {
	if w.entryCount == 0 {
		return
	}

	w.mustExecute("BEGIN TRANSACTION")
	defer w.mustExecute("COMMIT TRANSACTION")

	for tableName, t := range w.tables {
		if len(t.entries) == 0 {
			continue
		}

		stmt := w.prepareInsert(tableName, t.entries[0])

		for _, entry := range t.entries {
			v := reflect.ValueOf(entry)
			args := make([]any, 0, v.NumField())

			for i := 0; i < v.NumField(); i++ {
				args = append(args, v.Field(i).Interface())
			}

			_, err := stmt.Exec(args...)
			if err != nil {
				panic(err)
			}
		}

		t.entries = nil
		stmt.Close()
	}

	w.entryCount = 0
}

func (w *sqliteWriter) prepareInsert(tableName string, sample any) *sql.Stmt {
	placeholders := structs.Names(sample)
	for i := range placeholders {
		placeholders[i] = "?"
	}

	stmt, err := w.Prepare("INSERT INTO " + tableName +
		" VALUES (" + strings.Join(placeholders, ", ") + ")")
	if err != nil {
		panic(err)
	}

	return stmt
}

func (w *sqliteWriter) mustExecute(query string) sql.Result {
	res, err := w.Exec(query)
	if err != nil {
		fmt.Printf("Failed to execute: %s\n", query)
		panic(err)
	}

	return res
}

func mustHaveFlatFields(entry any) {
	t := reflect.TypeOf(entry)

	for i := 0; i < t.NumField(); i++ {
		switch t.Field(i).Type.Kind() {
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16,
			reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16,
			reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64,
			reflect.String:
		default:
			panic(fmt.Sprintf("field %s has unsupported type",
				t.Field(i).Name))
		}
	}
}
