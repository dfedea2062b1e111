package export

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	timeLayout = "02/01/2006 15:04:05"
	dateStamp  = "02-01-2006"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(timeLayout)
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func estadoLabel(estado bool) string {
	if estado {
		return "Activo"
	}
	return "Inactivo"
}

func siNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// capitalize upper-cases the first letter only, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// FileName builds "{dataset}_{dd-mm-yyyy}.{ext}".
func FileName(d Dataset, now time.Time, ext string) string {
	return fmt.Sprintf("%s_%s.%s", d, now.Format(dateStamp), ext)
}
