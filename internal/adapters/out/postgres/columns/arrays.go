// Package columns holds column types shared by the gorm repositories.
//
// The array types are stored as native arrays on PostgreSQL and as their
// PostgreSQL text form ("{1,2,3}") on SQLite, both encoded by github.com/lib/pq.
package columns

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Float64Array is a []float64 column.
type Float64Array []float64

func (a *Float64Array) Scan(src any) error {
	return (*pq.Float64Array)(a).Scan(src)
}

func (a Float64Array) Value() (driver.Value, error) {
	return pq.Float64Array(a).Value()
}

func (Float64Array) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "double precision[]"
	}
	return "text"
}

// StringArray is a []string column.
type StringArray []string

func (a *StringArray) Scan(src any) error {
	return (*pq.StringArray)(a).Scan(src)
}

func (a StringArray) Value() (driver.Value, error) {
	return pq.StringArray(a).Value()
}

func (StringArray) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
