// Package catalog keeps the table schemas of a database and persists them
// to the metadata file.
//
// The metadata file has one line per table:
//
//	users|id:BUTUN_SON:PK|ism:MATN:NN|yosh:BUTUN_SON
//
// Each column is name:TYPE followed by optional flags PK (primary key),
// NN (not null) and UQ (unique). Types are written with their Uzbek names;
// the English names are accepted on read.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/sql"
	"github.com/RasulbekOzodov/ozbekcha-databaza/internal/storage"
)

// MetadataName is the backend name the catalog is stored under.
const MetadataName = "metadata.txt"

var ErrDuplicateTable = errors.New("catalog: table already registered")

// Catalog maps table names to schemas. Names are kept in creation order.
type Catalog struct {
	backend storage.Backend
	tables  map[string]*sql.TableSchema
	order   []string
}

// Load reads the catalog from backend. A backend with nothing stored yields
// an empty catalog.
func Load(backend storage.Backend) (*Catalog, error) {
	c := &Catalog{backend: backend}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload replaces the in-memory schemas with what the backend holds.
func (c *Catalog) Reload() error {
	data, err := c.backend.Load()
	if err != nil {
		return fmt.Errorf("catalog: load: %w", err)
	}
	schemas, err := Unmarshal(data)
	if err != nil {
		return err
	}

	c.tables = make(map[string]*sql.TableSchema, len(schemas))
	c.order = c.order[:0]
	for _, s := range schemas {
		if _, dup := c.tables[s.Name]; dup {
			return fmt.Errorf("catalog: table %q listed twice", s.Name)
		}
		c.tables[s.Name] = s
		c.order = append(c.order, s.Name)
	}
	return nil
}

// Save writes every schema to the backend.
func (c *Catalog) Save() error {
	schemas := make([]*sql.TableSchema, 0, len(c.order))
	for _, name := range c.order {
		schemas = append(schemas, c.tables[name])
	}
	if err := c.backend.Store(Marshal(schemas)); err != nil {
		return fmt.Errorf("catalog: save: %w", err)
	}
	return nil
}

// Add registers schema. It does not save.
func (c *Catalog) Add(schema *sql.TableSchema) error {
	if _, ok := c.tables[schema.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateTable, schema.Name)
	}
	c.tables[schema.Name] = schema.Clone()
	c.order = append(c.order, schema.Name)
	return nil
}

// Remove drops a table from the catalog. It does not save.
func (c *Catalog) Remove(name string) {
	if _, ok := c.tables[name]; !ok {
		return
	}
	delete(c.tables, name)
	c.order = slices.DeleteFunc(c.order, func(n string) bool { return n == name })
}

// Lookup returns the schema of name.
func (c *Catalog) Lookup(name string) (*sql.TableSchema, bool) {
	s, ok := c.tables[name]
	return s, ok
}

// Names returns the table names in creation order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

func (c *Catalog) Len() int { return len(c.order) }

var typeNames = map[sql.DataType]string{
	sql.TypeInteger: "BUTUN_SON",
	sql.TypeText:    "MATN",
	sql.TypeReal:    "HAQIQIY",
}

var typesByName = map[string]sql.DataType{
	"BUTUN_SON": sql.TypeInteger,
	"MATN":      sql.TypeText,
	"HAQIQIY":   sql.TypeReal,
	"INTEGER":   sql.TypeInteger,
	"INT":       sql.TypeInteger,
	"TEXT":      sql.TypeText,
	"REAL":      sql.TypeReal,
}

// Marshal encodes schemas in the metadata line format.
func Marshal(schemas []*sql.TableSchema) []byte {
	var sb strings.Builder
	for _, s := range schemas {
		sb.WriteString(s.Name)
		for _, col := range s.Columns {
			sb.WriteByte('|')
			sb.WriteString(col.Name)
			sb.WriteByte(':')
			sb.WriteString(typeNames[col.Type])
			if col.PrimaryKey {
				sb.WriteString(":PK")
			}
			if col.NotNull {
				sb.WriteString(":NN")
			}
			if col.Unique {
				sb.WriteString(":UQ")
			}
		}
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// Unmarshal parses the metadata line format. Blank lines and lines with no
// columns are skipped. Unknown flags are ignored; an unknown type is an error.
func Unmarshal(data []byte) ([]*sql.TableSchema, error) {
	var schemas []*sql.TableSchema
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		parts := strings.Split(line, "|")
		if len(parts) < 2 || parts[0] == "" {
			continue
		}

		schema := &sql.TableSchema{Name: parts[0]}
		for _, def := range parts[1:] {
			col, err := parseColumn(def)
			if err != nil {
				return nil, fmt.Errorf("catalog: line %d: table %s: %w", i+1, schema.Name, err)
			}
			schema.Columns = append(schema.Columns, col)
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func parseColumn(def string) (sql.Column, error) {
	fields := strings.Split(def, ":")
	if len(fields) < 2 || fields[0] == "" {
		return sql.Column{}, fmt.Errorf("malformed column %q", def)
	}
	typ, ok := typesByName[strings.ToUpper(fields[1])]
	if !ok {
		return sql.Column{}, fmt.Errorf("column %s: unknown type %q", fields[0], fields[1])
	}

	col := sql.Column{Name: fields[0], Type: typ}
	for _, flag := range fields[2:] {
		switch strings.ToUpper(flag) {
		case "PK":
			col.PrimaryKey = true
		case "NN":
			col.NotNull = true
		case "UQ":
			col.Unique = true
		}
	}
	return col, nil
}
