package database

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// FakeRow 實作 pgx.Row，依位置把 Values 寫入 Scan 目標
// Values 中的 nil 保留目標的零值；T 值可寫入 *T 目標（nullable 欄位）
type FakeRow struct {
	Values []any
	Err    error
}

func (r FakeRow) Scan(dest ...any) error {
	if r.Err != nil {
		return r.Err
	}
	return assign(dest, r.Values)
}

// FakeRows 實作 pgx.Rows，每一列依 FakeRow 的規則掃描
type FakeRows struct {
	Data    [][]any
	ScanErr error
	ErrVal  error

	idx    int
	Closed bool
}

func (r *FakeRows) Close()                                       { r.Closed = true }
func (r *FakeRows) Err() error                                   { return r.ErrVal }
func (r *FakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *FakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *FakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *FakeRows) RawValues() [][]byte                          { return nil }
func (r *FakeRows) Conn() *pgx.Conn                              { return nil }

func (r *FakeRows) Next() bool {
	if r.idx < len(r.Data) {
		r.idx++
		return true
	}
	return false
}

func (r *FakeRows) Scan(dest ...any) error {
	if r.ScanErr != nil {
		return r.ScanErr
	}
	return assign(dest, r.Data[r.idx-1])
}

func assign(dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("fake scan: %d targets, %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		if vals[i] == nil {
			continue
		}
		target := reflect.ValueOf(d)
		if target.Kind() != reflect.Pointer || target.IsNil() {
			return fmt.Errorf("fake scan: target %d is not a pointer", i)
		}
		elem := target.Elem()
		v := reflect.ValueOf(vals[i])
		switch {
		case v.Type().AssignableTo(elem.Type()):
			elem.Set(v)
		case elem.Kind() == reflect.Pointer && v.Type().AssignableTo(elem.Type().Elem()):
			p := reflect.New(v.Type())
			p.Elem().Set(v)
			elem.Set(p)
		default:
			return fmt.Errorf("fake scan: cannot assign %s to %s", v.Type(), elem.Type())
		}
	}
	return nil
}
