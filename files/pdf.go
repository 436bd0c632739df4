package files

import (
	"bytes"
	"errors"
	"os"

	pdf "rsc.io/pdf"
)

const defaultMaxChars = 200000

// ExtractPDFText devuelve el texto plano de un PDF, limitado a maxChars.
// Si el PDF no trae capa de texto se recurre al contenido crudo del archivo
// para no dejar al analizador sin nada que examinar.
func ExtractPDFText(filePath string, maxChars int) (string, error) {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}

	r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		var lastY float64
		for _, t := range p.Content().Text {
			// El extractor entrega fragmentos sueltos; un salto de Y indica
			// cambio de línea, que el analizador necesita para sus secciones.
			if lastY != 0 && t.Y != lastY {
				buf.WriteByte('\n')
			}
			lastY = t.Y
			buf.WriteString(t.S)
		}
		buf.WriteString("\n\n")
		if buf.Len() >= maxChars {
			return buf.String()[:maxChars], nil
		}
	}

	if buf.Len() == 0 {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", err
		}
		if len(data) == 0 {
			return "", errors.New("el pdf parece vacío")
		}
		if len(data) > maxChars {
			data = data[:maxChars]
		}
		return string(bytes.ReplaceAll(data, []byte{'\x00'}, []byte{' '})), nil
	}
	return buf.String(), nil
}

// ReadTextFile lee un archivo de texto (CSV) completo con un tope de bytes.
func ReadTextFile(filePath string, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxChars
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	if len(data) > maxBytes {
		data = data[:maxBytes]
	}
	return string(data), nil
}
