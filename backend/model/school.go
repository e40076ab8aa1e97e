package model

import (
	"strings"

	"github.com/burugo/thing"
)

// School is a named institution location students filter by. Rows are only
// ever created, never updated or deleted.
type School struct {
	thing.BaseModel
	Name string `db:"name,unique" json:"name"`
	Lat  string `db:"lat" json:"lat"`
	Lng  string `db:"lng" json:"lng"`
}

func (s *School) TableName() string {
	return "schools"
}

var SchoolDB *thing.Thing[*School]

func SchoolInit() error {
	var err error
	SchoolDB, err = thing.Use[*School]()
	return err
}

// AddSchoolIfAbsent inserts a school unless one with the same name already
// exists. The coordinates of the first successful insert win; later calls with
// the same name are ignored. Concurrent duplicate inserts are resolved by the
// unique index on name, so a constraint failure here is not an error.
func AddSchoolIfAbsent(name string, lat string, lng string) error {
	existing, err := SchoolDB.Where("name = ?", name).Fetch(0, 1)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	school := &School{Name: name, Lat: lat, Lng: lng}
	if err := SchoolDB.Save(school); err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return err
	}
	return nil
}

// GetAllSchools returns every school ordered by name.
func GetAllSchools() ([]*School, error) {
	return SchoolDB.Order("name ASC").All()
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToUpper(err.Error())
	return strings.Contains(msg, "UNIQUE CONSTRAINT") || strings.Contains(msg, "CONSTRAINT FAILED")
}
