package translator

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// TranslationResult es la salida de Translate. Se construye por llamada y
// nunca se guarda dentro del paquete.
type TranslationResult struct {
	TranslatedText  string   `json:"translatedText"`
	Confidence      int      `json:"confidence"`
	IdentifiedTerms []string `json:"identifiedTerms"`
}

type compiledEntry struct {
	Entry
	re *regexp.Regexp
}

// Engine encapsula el diccionario y las reglas compiladas. Es inmutable tras
// NewEngine y seguro para uso concurrente.
type Engine struct {
	entries []compiledEntry
}

// NewEngine compila el diccionario ordenado por longitud descendente, de modo
// que una frase específica ("hipertensión arterial sistólica") siempre se
// sustituye antes que una frase general contenida en ella ("hipertensión").
func NewEngine() (*Engine, error) {
	entries := make([]compiledEntry, 0, len(lexicon))
	for _, e := range lexicon {
		entries = append(entries, compiledEntry{Entry: e})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].Medical) > len(entries[j].Medical)
	})
	// Verificación del invariante de orden: ninguna entrada anterior puede ser
	// subcadena propia de una posterior, o la sustitución la corrompería.
	for i := range entries {
		a := strings.ToLower(entries[i].Medical)
		for j := i + 1; j < len(entries); j++ {
			b := strings.ToLower(entries[j].Medical)
			if a != b && strings.Contains(b, a) {
				return nil, fmt.Errorf("translator: la entrada %q precede a %q que la contiene", entries[i].Medical, entries[j].Medical)
			}
			if a == b {
				return nil, fmt.Errorf("translator: entrada duplicada %q", entries[i].Medical)
			}
		}
	}
	for i := range entries {
		entries[i].re = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(entries[i].Medical))
	}
	return &Engine{entries: entries}, nil
}

// Translate convierte un diagnóstico en lenguaje cotidiano. Es una función
// total: cualquier entrada, incluida la vacía, produce un resultado.
func (e *Engine) Translate(diagnosticText string) TranslationResult {
	translated := diagnosticText
	normalized := strings.ToLower(strings.TrimSpace(diagnosticText))

	terms := e.extractTerms(normalized)

	// Sustitución directa del diccionario, en el orden garantizado por
	// NewEngine. Cada reemplazo opera sobre el texto ya transformado.
	exactMatches := 0
	for _, ent := range e.entries {
		if ent.re.MatchString(translated) {
			translated = ent.re.ReplaceAllString(translated, ent.Simple)
			exactMatches++
		}
	}

	// Reglas morfológicas, todas y en orden, sobre el texto resultante.
	patternMatches := 0
	for _, p := range patternRules {
		if p.re.MatchString(translated) {
			translated = p.re.ReplaceAllString(translated, p.replacement)
			patternMatches++
		}
	}

	translated = postProcess(translated)

	totalWords := len(strings.Fields(diagnosticText))
	if totalWords == 0 {
		totalWords = 1
	}
	confidence := float64(exactMatches+patternMatches)/float64(totalWords)*100 + 20
	if confidence > 95 {
		confidence = 95
	}
	if confidence < 40 {
		confidence = 40
	}

	// Con poca cobertura se añade el contexto de sistema corporal detectado
	// sobre el texto ORIGINAL. El +15 no se vuelve a acotar.
	if confidence < 60 {
		if contexts := detectContexts(diagnosticText); len(contexts) > 0 {
			translated += fmt.Sprintf(" (Este es un diagnóstico relacionado con el sistema %s)", strings.Join(contexts, ", "))
			confidence += 15
		}
	}

	return TranslationResult{
		TranslatedText:  capitalizeFirst(translated),
		Confidence:      int(math.Round(confidence)),
		IdentifiedTerms: terms,
	}
}

// extractTerms reúne los términos del diccionario presentes como subcadena y
// las coincidencias de los patrones morfológicos, sin duplicados y en orden
// de primera aparición.
func (e *Engine) extractTerms(normalized string) []string {
	terms := make([]string, 0, 8)
	seen := make(map[string]bool)
	add := func(t string) {
		if t == "" || seen[t] {
			return
		}
		seen[t] = true
		terms = append(terms, t)
	}
	for _, ent := range e.entries {
		if strings.Contains(normalized, strings.ToLower(ent.Medical)) {
			add(ent.Medical)
		}
	}
	for _, p := range patternRules {
		for _, m := range p.re.FindAllString(normalized, -1) {
			add(m)
		}
	}
	return terms
}

func postProcess(text string) string {
	for _, r := range readabilityRules {
		text = r.re.ReplaceAllString(text, r.replacement)
	}
	return strings.TrimSpace(text)
}

func detectContexts(text string) []string {
	var contexts []string
	for _, c := range contextRules {
		if c.re.MatchString(text) {
			contexts = append(contexts, c.name)
		}
	}
	return contexts
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
