package translator

import (
	"encoding/csv"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// KeyFindings agrupa los hallazgos estructurados de un documento clínico.
type KeyFindings struct {
	Conditions      []string `json:"conditions"`
	Medications     []string `json:"medications"`
	Vitals          []string `json:"vitals"`
	Recommendations []string `json:"recommendations"`
}

// ClinicalFindings es la salida de Analyze.
type ClinicalFindings struct {
	Analysis    string      `json:"analysis"`
	KeyFindings KeyFindings `json:"keyFindings"`
	Confidence  int         `json:"confidence"`
}

// Una sección de signos vitales dura como máximo este número de líneas para
// que la extracción numérica no se desborde hacia prosa no relacionada.
const vitalSectionMaxLines = 20

var vitalSectionHeaders = []string{
	"SIGNOS VITALES",
	"VITAL SIGNS",
	"CONSTANTES VITALES",
	"EXAMEN FÍSICO",
	"EXPLORACIÓN FÍSICA",
	"DATOS VITALES",
}

var (
	// Sin \b a propósito: las dosis suelen ir pegadas al número ("10mg").
	// Sólo abre la puerta a medicationRe, que sí exige nombre, cifra y unidad.
	dosageUnitRe = regexp.MustCompile(`(?i)mg|ml|mcg|ui|comprimido|cápsula|tableta|jarabe`)
	// Nombre capitalizado (con sufijos farmacológicos habituales) seguido de
	// dosis numérica y unidad. Se guarda la coincidencia tal cual aparece.
	medicationRe = regexp.MustCompile(`[A-ZÁÉÍÓÚÑ][a-záéíóúñ]+(?:ina|ol|pam|mab|ril|tan|vir|din|xin|mida|pina|sona)?\s*\d+(?:[.,]\d+)?\s*(?:mg|ml|mcg|ui|g|gr)\b`)

	recommendationRe = regexp.MustCompile(`(?i)recomienda|sugiere|debe|continuar|suspender`)
	bulletPrefixRe   = regexp.MustCompile(`^[\s\-•*·>#]+|^\d+[.)]\s*`)

	// Cabecera genérica en mayúsculas que cierra una sección de vitales.
	genericHeadingRe = regexp.MustCompile(`^[A-ZÁÉÍÓÚÜÑ][A-ZÁÉÍÓÚÜÑ ]{9,}:?\s*$`)

	bloodPressureRe = regexp.MustCompile(`(\d{2,3})\s*[/-]\s*(\d{2,3})`)
	numberRe        = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	weightAnchorRe  = regexp.MustCompile(`(?i)peso\s*[:=]\s*(\d+(?:[.,]\d+)?)`)

	glucoseKwRe     = regexp.MustCompile(`(?i)glucosa|glucemia|azúcar`)
	heightKwRe      = regexp.MustCompile(`(?i)talla|altura|estatura`)
	temperatureKwRe = regexp.MustCompile(`(?i)temperatura|\btemp\b`)
	heartRateKwRe   = regexp.MustCompile(`(?i)frecuencia\s+card[ií]aca|\bfc\b|pulso|\blpm\b|\bbpm\b`)
	respRateKwRe    = regexp.MustCompile(`(?i)frecuencia\s+respiratoria|\bfr\b|\brpm\b`)
	oxygenKwRe      = regexp.MustCompile(`(?i)saturaci[oó]n|spo2|\bsat\b`)

	csvSystolicRe   = regexp.MustCompile(`(?i)sist[oó]lica|systolic`)
	csvDiastolicRe  = regexp.MustCompile(`(?i)diast[oó]lica|diastolic`)
	csvGlucoseRe    = regexp.MustCompile(`(?i)glucosa|glucemia|glucose|azúcar`)
	csvWeightRe     = regexp.MustCompile(`(?i)peso|weight`)
	csvMedicationRe = regexp.MustCompile(`(?i)medicamento|medicaci[oó]n|medication|f[aá]rmaco`)
)

// Analyze extrae hallazgos estructurados del texto de un historial clínico.
// format es "pdf" o "csv"; cualquier otro valor se trata como texto plano.
// Nunca falla: una entrada vacía o irreconocible produce colecciones vacías
// y el resumen de respaldo.
func (e *Engine) Analyze(content, format string) ClinicalFindings {
	findings := KeyFindings{
		Conditions:      []string{},
		Medications:     []string{},
		Vitals:          []string{},
		Recommendations: []string{},
	}

	lines := strings.Split(content, "\n")
	lowerContent := strings.ToLower(content)

	// Condiciones: barrido del documento completo; se registra la traducción
	// al lenguaje cotidiano, no el término clínico.
	condSeen := make(map[string]bool)
	for _, ent := range e.entries {
		if strings.Contains(lowerContent, strings.ToLower(ent.Medical)) && !condSeen[ent.Simple] {
			condSeen[ent.Simple] = true
			findings.Conditions = append(findings.Conditions, ent.Simple)
		}
	}

	medSeen := make(map[string]bool)
	recSeen := make(map[string]bool)
	for _, line := range lines {
		if dosageUnitRe.MatchString(line) {
			if m := medicationRe.FindString(line); m != "" && !medSeen[m] {
				medSeen[m] = true
				findings.Medications = append(findings.Medications, m)
			}
		}
		if recommendationRe.MatchString(line) {
			rec := bulletPrefixRe.ReplaceAllString(strings.TrimSpace(line), "")
			n := utf8.RuneCountInString(rec)
			if n >= 15 && n <= 300 && !recSeen[rec] {
				recSeen[rec] = true
				findings.Recommendations = append(findings.Recommendations, rec)
			}
		}
	}

	if format == "csv" {
		e.analyzeCSV(content, &findings)
	} else {
		e.scanVitalSections(lines, &findings)
	}

	return ClinicalFindings{
		Analysis:    buildSummary(findings),
		KeyFindings: findings,
		Confidence:  analysisConfidence(findings),
	}
}

// scanVitalSections recorre las líneas con una máquina de estados: una
// cabecera reconocida abre la sección, una cabecera genérica en mayúsculas o
// el tope de líneas la cierran. Los detectores numéricos sólo actúan dentro.
func (e *Engine) scanVitalSections(lines []string, findings *KeyFindings) {
	seen := make(map[string]bool)
	inSection := false
	sectionLines := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if isVitalSectionHeader(line) {
			inSection = true
			sectionLines = 0
			continue
		}
		if !inSection {
			continue
		}
		if genericHeadingRe.MatchString(line) {
			inSection = false
			continue
		}
		sectionLines++
		if sectionLines > vitalSectionMaxLines {
			inSection = false
			continue
		}
		for _, v := range detectVitals(line) {
			if !seen[v] {
				seen[v] = true
				findings.Vitals = append(findings.Vitals, v)
			}
		}
	}
}

func isVitalSectionHeader(line string) bool {
	upper := strings.ToUpper(line)
	for _, h := range vitalSectionHeaders {
		if strings.Contains(upper, h) {
			return true
		}
	}
	return false
}

// detectVitals aplica los detectores de una línea, cada uno con su filtro de
// plausibilidad para descartar lecturas absurdas.
func detectVitals(line string) []string {
	var out []string

	if m := bloodPressureRe.FindStringSubmatch(line); m != nil {
		sys, _ := strconv.Atoi(m[1])
		dia, _ := strconv.Atoi(m[2])
		if sys > 70 && sys < 250 {
			out = append(out, fmt.Sprintf("Presión arterial: %d/%d mmHg", sys, dia))
		}
	}
	if _, v, ok := numberAfter(line, glucoseKwRe); ok {
		if v > 40 && v < 600 {
			out = append(out, fmt.Sprintf("Glucosa: %d mg/dL", int(math.Round(v))))
		}
	}
	if m := weightAnchorRe.FindStringSubmatch(line); m != nil {
		if v, err := parseNumber(m[1]); err == nil && v > 20 && v < 300 {
			out = append(out, fmt.Sprintf("Peso: %s kg", m[1]))
		}
	}
	if raw, v, ok := numberAfter(line, heightKwRe); ok {
		if v > 1.2 && v < 2.5 {
			out = append(out, fmt.Sprintf("Talla: %s m", raw))
		} else if v > 120 && v < 250 {
			out = append(out, fmt.Sprintf("Talla: %s cm", raw))
		}
	}
	if raw, v, ok := numberAfter(line, temperatureKwRe); ok {
		if v > 34 && v < 43 {
			out = append(out, fmt.Sprintf("Temperatura: %s °C", raw))
		}
	}
	if _, v, ok := numberAfter(line, heartRateKwRe); ok {
		if v > 30 && v < 250 {
			out = append(out, fmt.Sprintf("Frecuencia cardíaca: %d lpm", int(math.Round(v))))
		}
	}
	if _, v, ok := numberAfter(line, respRateKwRe); ok {
		if v > 8 && v < 60 {
			out = append(out, fmt.Sprintf("Frecuencia respiratoria: %d rpm", int(math.Round(v))))
		}
	}
	if _, v, ok := numberAfter(line, oxygenKwRe); ok {
		if v > 70 && v <= 100 {
			out = append(out, fmt.Sprintf("Saturación de oxígeno: %d%%", int(math.Round(v))))
		}
	}
	return out
}

// numberAfter busca el primer número que sigue a la palabra clave dentro de
// la línea, evitando que un detector capture la cifra de otra métrica.
func numberAfter(line string, kw *regexp.Regexp) (string, float64, bool) {
	loc := kw.FindStringIndex(line)
	if loc == nil {
		return "", 0, false
	}
	raw := numberRe.FindString(line[loc[1]:])
	if raw == "" {
		return "", 0, false
	}
	v, err := parseNumber(raw)
	if err != nil {
		return "", 0, false
	}
	return raw, v, true
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// analyzeCSV interpreta la primera fila como cabecera, localiza las columnas
// de interés por palabra clave y emite un agregado por métrica (recuento,
// promedio y rango) tras recorrer todas las filas.
func (e *Engine) analyzeCSV(content string, findings *KeyFindings) {
	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil || len(rows) < 2 {
		return
	}

	header := rows[0]
	sysCol, diaCol, gluCol, wtCol, medCol := -1, -1, -1, -1, -1
	for i, h := range header {
		switch {
		case sysCol < 0 && csvSystolicRe.MatchString(h):
			sysCol = i
		case diaCol < 0 && csvDiastolicRe.MatchString(h):
			diaCol = i
		case gluCol < 0 && csvGlucoseRe.MatchString(h):
			gluCol = i
		case wtCol < 0 && csvWeightRe.MatchString(h):
			wtCol = i
		case medCol < 0 && csvMedicationRe.MatchString(h):
			medCol = i
		}
	}

	var sys, dia, glu, wt []float64
	medSeen := make(map[string]bool)
	for _, m := range findings.Medications {
		medSeen[m] = true
	}
	cell := func(row []string, col int) (float64, bool) {
		if col < 0 || col >= len(row) {
			return 0, false
		}
		raw := numberRe.FindString(row[col])
		if raw == "" {
			return 0, false
		}
		v, err := parseNumber(raw)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	for _, row := range rows[1:] {
		if v, ok := cell(row, sysCol); ok {
			sys = append(sys, v)
		}
		if v, ok := cell(row, diaCol); ok {
			dia = append(dia, v)
		}
		if v, ok := cell(row, gluCol); ok {
			glu = append(glu, v)
		}
		if v, ok := cell(row, wtCol); ok {
			wt = append(wt, v)
		}
		if medCol >= 0 && medCol < len(row) {
			if m := strings.TrimSpace(row[medCol]); m != "" && !medSeen[m] {
				medSeen[m] = true
				findings.Medications = append(findings.Medications, m)
			}
		}
	}

	if len(sys) > 0 && len(dia) > 0 {
		findings.Vitals = append(findings.Vitals, fmt.Sprintf(
			"Presión arterial (%d registros): Promedio %d/%d mmHg, Rango %d-%d/%d-%d mmHg",
			len(sys), roundInt(mean(sys)), roundInt(mean(dia)),
			roundInt(minOf(sys)), roundInt(maxOf(sys)), roundInt(minOf(dia)), roundInt(maxOf(dia))))
	}
	if len(glu) > 0 {
		findings.Vitals = append(findings.Vitals, fmt.Sprintf(
			"Glucosa (%d registros): Promedio %d mg/dL, Rango %d-%d mg/dL",
			len(glu), roundInt(mean(glu)), roundInt(minOf(glu)), roundInt(maxOf(glu))))
	}
	if len(wt) > 0 {
		findings.Vitals = append(findings.Vitals, fmt.Sprintf(
			"Peso (%d registros): Promedio %.1f kg, Rango %.1f-%.1f kg",
			len(wt), mean(wt), minOf(wt), maxOf(wt)))
	}
}

func mean(vs []float64) float64 {
	total := 0.0
	for _, v := range vs {
		total += v
	}
	return total / float64(len(vs))
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func roundInt(v float64) int { return int(math.Round(v)) }

// buildSummary concatena, en orden fijo, una oración por colección no vacía.
func buildSummary(f KeyFindings) string {
	var b strings.Builder
	b.WriteString("Resumen del historial clínico:\n\n")
	empty := b.Len()

	if len(f.Conditions) > 0 {
		fmt.Fprintf(&b, "El paciente presenta las siguientes condiciones: %s. ", strings.Join(f.Conditions, ", "))
	}
	if len(f.Medications) > 0 {
		fmt.Fprintf(&b, "Está tomando los siguientes medicamentos: %s. ", strings.Join(f.Medications, ", "))
	}
	if len(f.Vitals) > 0 {
		fmt.Fprintf(&b, "Los signos vitales registrados incluyen: %s. ", strings.Join(f.Vitals, ", "))
	}
	if len(f.Recommendations) > 0 {
		fmt.Fprintf(&b, "Las recomendaciones médicas son: %s.", strings.Join(f.Recommendations, "; "))
	}
	if b.Len() == empty {
		return "Se ha analizado el historial clínico pero no se han podido identificar elementos específicos. Se recomienda revisar el formato del archivo o consultar con un profesional médico."
	}
	return strings.TrimSpace(b.String())
}

func analysisConfidence(f KeyFindings) int {
	if len(f.Conditions) > 0 || len(f.Medications) > 0 || len(f.Vitals) > 0 {
		return 80
	}
	return 40
}
