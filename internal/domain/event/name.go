package event

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrIncompleteName is returned when a part needed to render the event name is missing
var ErrIncompleteName = errors.New("event name requires edition, edition display, display, category and start date")

// OrdinalSuffix is appended to the edition number in ORDINAL mode
const OrdinalSuffix = "°"

// NameParts holds everything the display name is built from
type NameParts struct {
	Edition        int
	EditionDisplay EditionDisplay
	Display        Display
	Category       string
	StartDate      time.Time
}

// RenderName formats the human readable event name.
//
//	SHOW_ALL          -> "{edition} {category} {year}"
//	SHOW_EDITION_ONLY -> "{edition} {category}"
//	SHOW_YEAR_ONLY    -> "{category} {year}"
//	otherwise         -> "{category}"
func RenderName(p NameParts) (string, error) {
	category := strings.TrimSpace(p.Category)
	if p.Edition <= 0 || !p.EditionDisplay.IsValid() || !p.Display.IsValid() || category == "" || p.StartDate.IsZero() {
		return "", ErrIncompleteName
	}

	edition, err := FormatEdition(p.Edition, p.EditionDisplay)
	if err != nil {
		return "", err
	}
	year := strconv.Itoa(p.StartDate.Year())

	switch p.Display {
	case ShowAll:
		return edition + " " + category + " " + year, nil
	case ShowEditionOnly:
		return edition + " " + category, nil
	case ShowYearOnly:
		return category + " " + year, nil
	default:
		return category, nil
	}
}

// FormatEdition writes the edition number in the requested mode
func FormatEdition(edition int, mode EditionDisplay) (string, error) {
	switch mode {
	case EditionArabic:
		return strconv.Itoa(edition), nil
	case EditionOrdinal:
		return strconv.Itoa(edition) + OrdinalSuffix, nil
	case EditionRoman:
		return ToRoman(edition)
	default:
		return "", fmt.Errorf("unknown edition display: %d", mode)
	}
}

var (
	romanThousands = [...]string{"", "M", "MM", "MMM"}
	romanHundreds  = [...]string{"", "C", "CC", "CCC", "CD", "D", "DC", "DCC", "DCCC", "CM"}
	romanTens      = [...]string{"", "X", "XX", "XXX", "XL", "L", "LX", "LXX", "LXXX", "XC"}
	romanUnits     = [...]string{"", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}
)

// ToRoman converts 1..3999 into a Roman numeral using subtractive notation
func ToRoman(n int) (string, error) {
	if n < 1 || n > 3999 {
		return "", fmt.Errorf("roman numerals support 1 to 3999, got %d", n)
	}
	return romanThousands[n/1000] +
		romanHundreds[n%1000/100] +
		romanTens[n%100/10] +
		romanUnits[n%10], nil
}
