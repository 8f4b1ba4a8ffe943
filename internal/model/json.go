package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a []string persisted in a JSON column.  A nil list encodes
// as an empty array both in storage and on the wire.
type StringList []string

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	raw, err := columnBytes(src)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = out
	return nil
}

// Document is an arbitrary JSON value (object or array) persisted as-is in a
// JSON column.  The server does not interpret it.
type Document json.RawMessage

func (d Document) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = nil
		return nil
	}
	*d = append((*d)[:0], b...)
	return nil
}

// Value implements driver.Valuer.  Empty documents are stored as NULL.
func (d Document) Value() (driver.Value, error) {
	if len(d) == 0 {
		return nil, nil
	}
	return string(d), nil
}

// Scan implements sql.Scanner.
func (d *Document) Scan(src any) error {
	raw, err := columnBytes(src)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*d = nil
		return nil
	}
	*d = append(Document(nil), raw...)
	return nil
}

func columnBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, fmt.Errorf("unsupported column type %T", src)
}
