package event

import (
	"database/sql/driver"
	"fmt"
)

// EditionDisplay selects how the edition number is written in the event name
type EditionDisplay byte

const (
	EditionArabic EditionDisplay = iota + 1
	EditionOrdinal
	EditionRoman
)

func (d EditionDisplay) String() string {
	switch d {
	case EditionArabic:
		return "ARABIC"
	case EditionOrdinal:
		return "ORDINAL"
	case EditionRoman:
		return "ROMAN"
	default:
		return ""
	}
}

// IsValid reports whether d is one of the known modes
func (d EditionDisplay) IsValid() bool {
	return d.String() != ""
}

// EditionDisplayFromString converts a string to an EditionDisplay
func EditionDisplayFromString(s string) (EditionDisplay, bool) {
	switch s {
	case "ARABIC":
		return EditionArabic, true
	case "ORDINAL":
		return EditionOrdinal, true
	case "ROMAN":
		return EditionRoman, true
	default:
		return 0, false
	}
}

// MarshalJSON implements the json.Marshaler interface
func (d EditionDisplay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (d *EditionDisplay) UnmarshalJSON(data []byte) error {
	str := unquote(data)
	parsed, valid := EditionDisplayFromString(str)
	if !valid {
		return fmt.Errorf("invalid edition display: %s", str)
	}
	*d = parsed
	return nil
}

// Scan implements the sql.Scanner interface for database deserialization
func (d *EditionDisplay) Scan(value any) error {
	str, err := scanString(value)
	if err != nil {
		return fmt.Errorf("cannot scan %T into EditionDisplay", value)
	}
	parsed, valid := EditionDisplayFromString(str)
	if !valid {
		return fmt.Errorf("invalid edition display value: %s", str)
	}
	*d = parsed
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (d EditionDisplay) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid edition display: %d", d)
	}
	return d.String(), nil
}

// Display selects which parts compose the event name
type Display byte

const (
	ShowAll Display = iota + 1
	ShowEditionOnly
	ShowYearOnly
	ShowNone
)

func (d Display) String() string {
	switch d {
	case ShowAll:
		return "SHOW_ALL"
	case ShowEditionOnly:
		return "SHOW_EDITION_ONLY"
	case ShowYearOnly:
		return "SHOW_YEAR_ONLY"
	case ShowNone:
		return "SHOW_NONE"
	default:
		return ""
	}
}

// IsValid reports whether d is one of the known modes
func (d Display) IsValid() bool {
	return d.String() != ""
}

// DisplayFromString converts a string to a Display
func DisplayFromString(s string) (Display, bool) {
	switch s {
	case "SHOW_ALL":
		return ShowAll, true
	case "SHOW_EDITION_ONLY":
		return ShowEditionOnly, true
	case "SHOW_YEAR_ONLY":
		return ShowYearOnly, true
	case "SHOW_NONE":
		return ShowNone, true
	default:
		return 0, false
	}
}

// MarshalJSON implements the json.Marshaler interface
func (d Display) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (d *Display) UnmarshalJSON(data []byte) error {
	str := unquote(data)
	parsed, valid := DisplayFromString(str)
	if !valid {
		return fmt.Errorf("invalid display: %s", str)
	}
	*d = parsed
	return nil
}

// Scan implements the sql.Scanner interface for database deserialization
func (d *Display) Scan(value any) error {
	str, err := scanString(value)
	if err != nil {
		return fmt.Errorf("cannot scan %T into Display", value)
	}
	parsed, valid := DisplayFromString(str)
	if !valid {
		return fmt.Errorf("invalid display value: %s", str)
	}
	*d = parsed
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (d Display) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid display: %d", d)
	}
	return d.String(), nil
}

func unquote(data []byte) string {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}
	return str
}

func scanString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("unsupported type %T", value)
	}
}
