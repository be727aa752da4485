package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RoleSet stores a user's roles as a JSON array in a single text column.
// Roles are stored exactly as granted; spelling equivalence is applied at
// check time, not here.
type RoleSet []Role

func (s RoleSet) Value() (driver.Value, error) {
	if s == nil {
		s = RoleSet{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *RoleSet) Scan(destination interface{}) error {
	switch value := destination.(type) {
	case []byte:
		return json.Unmarshal(value, s)
	case string:
		return json.Unmarshal([]byte(value), s)
	default:
		return fmt.Errorf("unexpected value type %T for RoleSet", destination)
	}
}
