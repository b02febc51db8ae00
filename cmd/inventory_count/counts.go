package main

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// countRow una línea del archivo de conteo físico: codigo;conteo[;motivo].
type countRow struct {
	Line    int
	Code    string
	Counted int64
	Reason  string
}

// decoderFor envuelve el archivo según la codificación exportada por la hoja de cálculo.
func decoderFor(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "", "utf8", "utf-8":
		return r, nil
	case "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "win1252", "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", encoding)
}

// parseCounts lee el CSV separado por ';'. La primera fila se toma como encabezado si el conteo no es numérico.
func parseCounts(r io.Reader) ([]countRow, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows []countRow
	seen := map[string]int{}
	for n := 1; ; n++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", n, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 2 {
			return nil, fmt.Errorf("línea %d: se esperaban codigo;conteo", n)
		}
		code := strings.TrimSpace(rec[0])
		counted, err := strconv.ParseInt(strings.TrimSpace(rec[1]), 10, 64)
		if err != nil {
			if n == 1 {
				continue
			}
			return nil, fmt.Errorf("línea %d: conteo %q inválido", n, rec[1])
		}
		if code == "" {
			return nil, fmt.Errorf("línea %d: código vacío", n)
		}
		if counted < 0 {
			return nil, fmt.Errorf("línea %d: conteo negativo", n)
		}
		if prev, ok := seen[code]; ok {
			return nil, fmt.Errorf("línea %d: código %s repetido (línea %d)", n, code, prev)
		}
		seen[code] = n
		row := countRow{Line: n, Code: code, Counted: counted}
		if len(rec) > 2 {
			row.Reason = strings.TrimSpace(rec[2])
		}
		rows = append(rows, row)
	}
	return rows, nil
}
