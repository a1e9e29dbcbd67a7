package stockcsv

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText convierte el contenido crudo de un archivo a texto UTF-8.
// Quita el BOM de Excel y, si el contenido no es UTF-8 válido, lo interpreta como Windows-1252.
func DecodeText(b []byte) string {
	b = bytes.TrimPrefix(b, utf8BOM)
	if utf8.Valid(b) {
		return string(b)
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
