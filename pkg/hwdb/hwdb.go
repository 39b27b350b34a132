// Package hwdb loads, validates, and resolves the hardware pin database.
//
// The database is a single JSON document mapping device types to
// revision tables, paired with a JSON Schema it must validate against
// before anything is read out of it. Comments and trailing commas are
// tolerated in both documents. Loading is all or nothing: any
// unreadable, malformed, or schema-violating input aborts with a
// classified error and no partial result.
package hwdb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/tailscale/hujson"
)

// Default locations for the database and its schema.
const (
	DefaultDatabasePath = "/etc/hwinfo/hwdb.json"
	DefaultSchemaPath   = "/etc/hwinfo/hwdb-schema.json"
)

// Classification sentinels for load failures. Every error returned by
// Load wraps exactly one of these.
var (
	ErrSchemaUnreadable   = errors.New("schema unreadable")
	ErrSchemaMalformed    = errors.New("schema malformed")
	ErrDatabaseUnreadable = errors.New("database unreadable")
	ErrDatabaseMalformed  = errors.New("database malformed")
	ErrSchemaViolation    = errors.New("database does not conform to schema")

	// ErrInconsistent reports content that passed schema validation but
	// violates an invariant of the canonical layout, such as a revision
	// key the revision codec cannot parse.
	ErrInconsistent = errors.New("inconsistent hardware database")
)

// pinRecord and revisionRecord mirror the database document layout.
// Fields are pointers so that a field missing from the document stays
// distinguishable from one holding a zero value.
type pinRecord struct {
	Description *string `json:"description"`
	Value       *uint32 `json:"value"`
}

type revisionRecord struct {
	Pins map[string]pinRecord `json:"pins"`
}

// Database is a validated, immutable hardware table. It is safe for
// concurrent readers.
type Database struct {
	types map[string]map[string]revisionRecord
}

// Load reads the schema and the database, validates the database
// against the schema, and decodes it into a Database. The returned
// error wraps one of the package sentinels and carries the offending
// file path.
func Load(dbPath, schemaPath string) (*Database, error) {
	schemaRaw, err := readJWCC(schemaPath, ErrSchemaUnreadable, ErrSchemaMalformed)
	if err != nil {
		return nil, err
	}
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaRaw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaMalformed, schemaPath, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaPath, schemaDoc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaMalformed, schemaPath, err)
	}
	schema, err := compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaMalformed, schemaPath, err)
	}

	dbRaw, err := readJWCC(dbPath, ErrDatabaseUnreadable, ErrDatabaseMalformed)
	if err != nil {
		return nil, err
	}
	dbDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(dbRaw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDatabaseMalformed, dbPath, err)
	}

	if err := schema.Validate(dbDoc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSchemaViolation, dbPath, err)
	}

	var types map[string]map[string]revisionRecord
	if err := json.Unmarshal(dbRaw, &types); err != nil {
		// Only reachable when the schema is looser than the canonical
		// layout, e.g. it admits a negative pin value.
		return nil, fmt.Errorf("%w: %s: %w", ErrInconsistent, dbPath, err)
	}
	if types == nil {
		types = map[string]map[string]revisionRecord{}
	}
	return &Database{types: types}, nil
}

// readJWCC reads one file of JSON with comments and trailing commas and
// returns it standardized to plain JSON.
func readJWCC(path string, unreadable, malformed error) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", unreadable, err)
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", malformed, path, err)
	}
	return std, nil
}

// Types returns the device types recorded in the database, sorted.
func (db *Database) Types() []string {
	out := make([]string, 0, len(db.types))
	for t := range db.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Revisions returns the literal revision keys recorded for a device
// type, sorted as strings. The second return is false for an unknown
// type.
func (db *Database) Revisions(hwType string) ([]string, bool) {
	table, ok := db.types[hwType]
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, true
}
