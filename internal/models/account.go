package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// AccountID is a tagged union over the two identifier shapes that coexist in the
// accounts table: integer ids drawn from the shared sequence, and opaque string
// ids minted by earlier imports. Comparisons must go through the explicit
// accessors; there is no implicit numeric/string equivalence.
type AccountID struct {
	num     int64
	raw     string
	numeric bool
}

func NumericAccountID(n int64) AccountID {
	return AccountID{num: n, raw: strconv.FormatInt(n, 10), numeric: true}
}

func OpaqueAccountID(s string) AccountID {
	return AccountID{raw: s}
}

// ParseAccountID classifies a stored identifier: all-digit strings are numeric,
// everything else stays opaque.
func ParseAccountID(s string) AccountID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumericAccountID(n)
	}
	return OpaqueAccountID(s)
}

func (id AccountID) IsNumeric() bool { return id.numeric }

func (id AccountID) Numeric() (int64, bool) {
	if !id.numeric {
		return 0, false
	}
	return id.num, true
}

func (id AccountID) String() string { return id.raw }

// EqualsNumeric reports whether the id is numeric and equal to n. Opaque ids
// never match a numeric key, no matter what their text looks like.
func (id AccountID) EqualsNumeric(n int64) bool {
	return id.numeric && id.num == n
}

func (id AccountID) Equal(other AccountID) bool {
	if id.numeric != other.numeric {
		return false
	}
	if id.numeric {
		return id.num == other.num
	}
	return id.raw == other.raw
}

func (id *AccountID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*id = ParseAccountID(v)
	case []byte:
		*id = ParseAccountID(string(v))
	case int64:
		*id = NumericAccountID(v)
	default:
		return fmt.Errorf("account id: cannot scan %T", src)
	}
	return nil
}

func (id AccountID) Value() (driver.Value, error) { return id.raw, nil }

type Account struct {
	ID        AccountID
	Username  string
	Password  string // sha256 hex for new accounts; 64-char length marks the digest form
	Role      Role
	StudentID *int64
	TeacherID *int64
}
