package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"factcheck/domain/table"
	"factcheck/internal"
	"factcheck/internal/errors"
	"factcheck/internal/logsafe"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens and pings a PostgreSQL connection pool
func Connect(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.DatabaseError(
			"failed to connect to "+logsafe.SanitizeConnectionString(url),
			fmt.Errorf("%s", logsafe.SanitizeError(err)))
	}
	return db, nil
}

// QuerySource profiles the result set of a SQL query. Column types come from
// the driver's reported database type names.
type QuerySource struct {
	db     *sqlx.DB
	query  string
	args   []interface{}
	name   string
	logger *internal.Logger
}

// NewQuerySource creates a source for query; name labels the report
func NewQuerySource(db *sqlx.DB, name, query string, logger *internal.Logger, args ...interface{}) *QuerySource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &QuerySource{
		db:     db,
		query:  query,
		args:   args,
		name:   name,
		logger: logger.WithComponent("QuerySource"),
	}
}

// SourceName returns the report label
func (s *QuerySource) SourceName() string {
	if s.name == "" {
		return "query"
	}
	return s.name
}

// ReadTable runs the query and loads the whole result set
func (s *QuerySource) ReadTable(ctx context.Context) (*table.Table, error) {
	start := time.Now()
	s.logger.Debug("running query: %s", logsafe.SanitizeQuery(s.query))

	rows, err := s.db.QueryxContext(ctx, s.query, s.args...)
	if err != nil {
		return nil, errors.SourceError(s.SourceName(), err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.SourceError(s.SourceName(), err)
	}

	names := make([]string, len(colTypes))
	types := make([]table.DataType, len(colTypes))
	values := make([][]table.Value, len(colTypes))
	for i, ct := range colTypes {
		names[i] = ct.Name()
		types[i] = MapColumnType(ct.DatabaseTypeName())
	}

	rowCount := 0
	for rows.Next() {
		raw, err := rows.SliceScan()
		if err != nil {
			return nil, errors.SourceError(s.SourceName(), err)
		}
		for i, v := range raw {
			val, err := ConvertValue(types[i], v)
			if err != nil {
				return nil, errors.SourceError(s.SourceName(),
					fmt.Errorf("row %d column %q: %w", rowCount+1, names[i], err))
			}
			values[i] = append(values[i], val)
		}
		rowCount++
	}
	if err := rows.Err(); err != nil {
		return nil, errors.SourceError(s.SourceName(), err)
	}

	columns := make([]table.Column, len(names))
	for i := range names {
		columns[i] = table.NewColumn(names[i], types[i], values[i]...)
	}
	t, err := table.New(columns...)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	s.logger.Info("loaded %d rows x %d columns in %v", rowCount, len(columns), time.Since(start))
	return t, nil
}

// MapColumnType maps a PostgreSQL type name to a column type. Unknown types
// are profiled as text.
func MapColumnType(dbType string) table.DataType {
	switch strings.ToUpper(dbType) {
	case "INT2", "INT4", "INT8", "OID", "SMALLINT", "INTEGER", "BIGINT":
		return table.TypeInt64
	case "FLOAT4", "FLOAT8", "NUMERIC", "DECIMAL", "REAL", "DOUBLE PRECISION", "MONEY":
		return table.TypeFloat64
	case "BOOL", "BOOLEAN":
		return table.TypeBoolean
	case "DATE", "TIMESTAMP", "TIMESTAMPTZ":
		return table.TypeDatetime
	}
	return table.TypeString
}

// ConvertValue converts a scanned driver value to a table value of dataType
func ConvertValue(dataType table.DataType, raw interface{}) (table.Value, error) {
	if raw == nil {
		return table.NewNullValue(dataType), nil
	}

	switch dataType {
	case table.TypeInt64:
		switch v := raw.(type) {
		case int64:
			return table.NewIntValue(v), nil
		case []byte:
			n, err := strconv.ParseInt(string(v), 10, 64)
			if err != nil {
				return table.Value{}, err
			}
			return table.NewIntValue(n), nil
		}
	case table.TypeFloat64:
		switch v := raw.(type) {
		case float64:
			return table.NewFloatValue(v), nil
		case int64:
			return table.NewFloatValue(float64(v)), nil
		case []byte:
			// NUMERIC and MONEY arrive as text
			s := strings.NewReplacer("$", "", ",", "").Replace(string(v))
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return table.Value{}, err
			}
			return table.NewFloatValue(f), nil
		}
	case table.TypeBoolean:
		if v, ok := raw.(bool); ok {
			return table.NewBoolValue(v), nil
		}
	case table.TypeDatetime:
		if v, ok := raw.(time.Time); ok {
			return table.NewTimeValue(v), nil
		}
	case table.TypeString:
		switch v := raw.(type) {
		case string:
			return table.NewStringValue(v), nil
		case []byte:
			return table.NewStringValue(string(v)), nil
		case time.Time:
			return table.NewStringValue(v.Format(time.RFC3339Nano)), nil
		default:
			return table.NewStringValue(fmt.Sprint(v)), nil
		}
	}
	return table.Value{}, fmt.Errorf("cannot convert %T to %s", raw, dataType)
}
