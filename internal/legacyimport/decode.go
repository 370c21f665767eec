// Package legacyimport carga clientes, productos y proveedores desde las exportaciones CSV
// de la aplicación de escritorio, pasando cada fila por los casos de uso.
package legacyimport

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Codificaciones aceptadas para el fichero de entrada.
const (
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "iso-8859-1"
	EncodingWindows1252 = "windows-1252"
)

// NewDecoder envuelve r para leer el texto como UTF-8.
func NewDecoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingLatin1, "latin1", "latin-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWindows1252, "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("legacyimport: codificación %q no soportada", encoding)
	}
}

// parseDecimal acepta "1234.5", "1234,5" y "1.234,50". Vacío = cero.
// Con coma decimal los puntos solo separan miles en grupos de tres. Sin coma, un punto
// seguido de exactamente tres dígitos ("1.234") es ambiguo y se rechaza, igual que un
// punto detrás de la coma ("1,234.50").
func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "€"))
	if s == "" {
		return decimal.Zero, nil
	}
	comma := strings.Index(s, ",")
	if comma < 0 {
		if dot := strings.Index(s, "."); dot >= 0 {
			if strings.Count(s, ".") > 1 || len(s)-dot-1 == 3 {
				return decimal.Zero, fmt.Errorf("importe ambiguo %q", s)
			}
		}
		return decimal.NewFromString(s)
	}
	if strings.Count(s, ",") > 1 || strings.LastIndex(s, ".") > comma {
		return decimal.Zero, fmt.Errorf("separadores inválidos en %q", s)
	}
	intPart := s[:comma]
	if groups := strings.Split(strings.TrimPrefix(intPart, "-"), "."); len(groups) > 1 {
		if len(groups[0]) == 0 || len(groups[0]) > 3 {
			return decimal.Zero, fmt.Errorf("separador de miles inválido en %q", s)
		}
		for _, g := range groups[1:] {
			if len(g) != 3 {
				return decimal.Zero, fmt.Errorf("separador de miles inválido en %q", s)
			}
		}
	}
	return decimal.NewFromString(strings.ReplaceAll(intPart, ".", "") + "." + s[comma+1:])
}

// parseInt entero; vacío = 0.
func parseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseBool acepta true/false, 1/0, si/no, sì.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "si", "sì", "s", "y", "yes":
		return true, nil
	case "0", "false", "no", "n":
		return false, nil
	}
	return false, fmt.Errorf("booleano inválido %q", s)
}
