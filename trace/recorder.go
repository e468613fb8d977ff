// Package trace records a session's step-by-step metrics into a SQLite
// database, for offline comparison of policies across runs. This is
// strictly an external sink: the simulator itself never reads a trace
// back, and no simulator state is reconstructed from one (persistence of
// simulator state across runs is out of scope).
package trace

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strings"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// Recorder is a backend that can record and store step data.
type Recorder interface {
	// CreateTable creates a new table shaped like sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers a same-shaped entry for tableName.
	InsertData(tableName string, entry any)

	// Flush writes every buffered entry to the database.
	Flush()
}

// New opens (creating if needed) a SQLite-backed Recorder at path+".sqlite3".
// An empty path derives a unique name from xid so concurrent runs never
// collide. The recorder is flushed automatically at process exit.
func New(path string) Recorder {
	w := &sqliteRecorder{dbName: path, batchSize: 10000, tables: make(map[string]*table)}
	w.init()

	atexit.Register(w.Flush)

	return w
}

type table struct {
	entries []any
}

type sqliteRecorder struct {
	db *sql.DB

	dbName     string
	tables     map[string]*table
	batchSize  int
	entryCount int
}

func (w *sqliteRecorder) init() {
	if w.dbName == "" {
		w.dbName = "vmpagesim_trace_" + xid.New().String()
	}

	filename := w.dbName + ".sqlite3"

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(fmt.Errorf("trace: opening %s: %w", filename, err))
	}

	w.db = db

	fmt.Fprintf(os.Stderr, "trace: recording steps to %s\n", filename)
}

func (w *sqliteRecorder) CreateTable(tableName string, sampleEntry any) {
	names := fieldNames(sampleEntry)

	stmt := "CREATE TABLE IF NOT EXISTS " + tableName +
		" (\n\t" + strings.Join(names, ",\n\t") + "\n);"
	w.mustExec(stmt)

	w.tables[tableName] = &table{}
}

func (w *sqliteRecorder) InsertData(tableName string, entry any) {
	t, ok := w.tables[tableName]
	if !ok {
		panic(fmt.Sprintf("trace: table %s does not exist", tableName))
	}

	t.entries = append(t.entries, entry)
	w.entryCount++

	if w.entryCount >= w.batchSize {
		w.Flush()
	}
}

func (w *sqliteRecorder) Flush() {
	if w.entryCount == 0 {
		return
	}

	w.mustExec("BEGIN TRANSACTION")

	for tableName, t := range w.tables {
		if len(t.entries) == 0 {
			continue
		}

		w.flushTable(tableName, t)
		t.entries = nil
	}

	w.mustExec("COMMIT TRANSACTION")

	w.entryCount = 0
}

func (w *sqliteRecorder) flushTable(tableName string, t *table) {
	names := fieldNames(t.entries[0])
	placeholders := make([]string, len(names))

	for i := range placeholders {
		placeholders[i] = "?"
	}

	insertSQL := "INSERT INTO " + tableName + " VALUES (" + strings.Join(placeholders, ",") + ")"

	stmt, err := w.db.Prepare(insertSQL)
	if err != nil {
		panic(fmt.Errorf("trace: preparing insert for %s: %w", tableName, err))
	}
	defer stmt.Close()

	for _, entry := range t.entries {
		v := reflect.ValueOf(entry)

		args := make([]any, v.NumField())
		for i := 0; i < v.NumField(); i++ {
			args[i] = v.Field(i).Interface()
		}

		if _, err := stmt.Exec(args...); err != nil {
			panic(fmt.Errorf("trace: inserting into %s: %w", tableName, err))
		}
	}
}

func (w *sqliteRecorder) mustExec(query string) {
	if _, err := w.db.Exec(query); err != nil {
		panic(fmt.Errorf("trace: executing %q: %w", query, err))
	}
}

func fieldNames(sample any) []string {
	t := reflect.TypeOf(sample)

	names := make([]string, t.NumField())
	for i := range names {
		names[i] = t.Field(i).Name
	}

	return names
}
