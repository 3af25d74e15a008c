package items

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one record of the items table.
type Row struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Columns lists the table's columns in the order rows are selected and decoded.
var Columns = []string{"id", "name", "created_at"}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
}

// decodeRow maps a positional (id, name, created_at) tuple onto a Row.
func decodeRow(values []any) (Row, error) {
	if len(values) != len(Columns) {
		return Row{}, fmt.Errorf("%w: got %d columns, want %d", ErrBadRow, len(values), len(Columns))
	}

	id, err := decodeInt(values[0])
	if err != nil {
		return Row{}, fmt.Errorf("%w: id: %v", ErrBadRow, err)
	}

	name, err := decodeString(values[1])
	if err != nil {
		return Row{}, fmt.Errorf("%w: name: %v", ErrBadRow, err)
	}

	createdAt, err := decodeTime(values[2])
	if err != nil {
		return Row{}, fmt.Errorf("%w: created_at: %v", ErrBadRow, err)
	}

	return Row{ID: id, Name: name, CreatedAt: createdAt}, nil
}

func decodeInt(v any) (int64, error) {
	switch val := v.(type) {
	case int64:
		return val, nil
	case int32:
		return int64(val), nil
	case int:
		return int64(val), nil
	case float64:
		return int64(val), nil
	case []byte:
		return strconv.ParseInt(string(val), 10, 64)
	case string:
		return strconv.ParseInt(val, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func decodeString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case []byte:
		return string(val), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

// decodeTime accepts driver time values, SQLite text timestamps and unix
// seconds. NULL decodes to the zero time.
func decodeTime(v any) (time.Time, error) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return val.UTC(), nil
	case int64:
		return time.Unix(val, 0).UTC(), nil
	case []byte:
		return parseTime(string(val))
	case string:
		return parseTime(val)
	default:
		return time.Time{}, fmt.Errorf("unsupported type %T", v)
	}
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// Cells renders the row for display, in column order.
func (r Row) Cells() []string {
	created := ""
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.Format("2006-01-02 15:04:05")
	}
	return []string{strconv.FormatInt(r.ID, 10), r.Name, created}
}
