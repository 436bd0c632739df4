package translator

import (
	"strings"
	"testing"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestTranslateSpecificPhraseBeforeGeneral(t *testing.T) {
	e := newTestEngine(t)
	res := e.Translate("Hipertensión arterial sistólica con hipertensión leve")

	// La primera letra sale en mayúscula, así que se compara en minúsculas.
	lower := strings.ToLower(res.TranslatedText)
	if strings.Contains(lower, "hipertensión") {
		t.Fatalf("quedó un término sin traducir: %q", res.TranslatedText)
	}
	// La frase larga debe sobrevivir completa a la sustitución del término corto.
	if !strings.Contains(lower, "presión alta cuando el corazón late") {
		t.Fatalf("la frase específica no se tradujo como unidad: %q", res.TranslatedText)
	}
	// La segunda aparición se traduce por la entrada general.
	if strings.Count(lower, "presión alta") < 2 {
		t.Fatalf("la aparición suelta no se tradujo: %q", res.TranslatedText)
	}
	if len(res.IdentifiedTerms) == 0 || res.IdentifiedTerms[0] != "hipertensión arterial sistólica" {
		t.Fatalf("términos identificados inesperados: %v", res.IdentifiedTerms)
	}
	for i, term := range res.IdentifiedTerms {
		for j := i + 1; j < len(res.IdentifiedTerms); j++ {
			if term == res.IdentifiedTerms[j] {
				t.Fatalf("término duplicado %q en %v", term, res.IdentifiedTerms)
			}
		}
	}
}

func TestTranslateEmptyInput(t *testing.T) {
	e := newTestEngine(t)
	res := e.Translate("")
	if res.TranslatedText != "" {
		t.Fatalf("texto inesperado: %q", res.TranslatedText)
	}
	if res.Confidence != 40 {
		t.Fatalf("confianza esperada 40, obtuvo %d", res.Confidence)
	}
	if len(res.IdentifiedTerms) != 0 {
		t.Fatalf("no debería identificar términos: %v", res.IdentifiedTerms)
	}
}

func TestTranslateCapitalizesFirstRune(t *testing.T) {
	e := newTestEngine(t)
	for _, in := range []string{"gastritis aguda", "GASTRITIS", "úlcera péptica"} {
		res := e.Translate(in)
		first := []rune(res.TranslatedText)[0]
		if first != []rune(strings.ToUpper(string(first)))[0] {
			t.Fatalf("Translate(%q) no capitaliza: %q", in, res.TranslatedText)
		}
	}
}

func TestTranslateDictionaryAndPostProcess(t *testing.T) {
	e := newTestEngine(t)
	res := e.Translate("gastritis aguda")
	if res.TranslatedText != "Inflamación del estómago que aparece de repente" {
		t.Fatalf("traducción inesperada: %q", res.TranslatedText)
	}
	if res.Confidence != 70 { // 1 acierto / 2 palabras -> 50+20
		t.Fatalf("confianza esperada 70, obtuvo %d", res.Confidence)
	}
}

func TestTranslatePatternRuleAndCeiling(t *testing.T) {
	e := newTestEngine(t)
	res := e.Translate("colecistopatía")
	if res.TranslatedText != "Enfermedad de colecisto" {
		t.Fatalf("el patrón de sufijo no se aplicó: %q", res.TranslatedText)
	}
	// 1 acierto / 1 palabra -> 120, acotado al techo de 95.
	if res.Confidence != 95 {
		t.Fatalf("confianza esperada 95, obtuvo %d", res.Confidence)
	}
	if len(res.IdentifiedTerms) != 1 || res.IdentifiedTerms[0] != "colecistopatía" {
		t.Fatalf("términos identificados inesperados: %v", res.IdentifiedTerms)
	}
}

func TestTranslateLowConfidenceContextBonus(t *testing.T) {
	e := newTestEngine(t)
	res := e.Translate("molestias difusas en el corazón sin hallazgos")
	if !strings.HasSuffix(res.TranslatedText, "(Este es un diagnóstico relacionado con el sistema cardiovascular)") {
		t.Fatalf("falta la nota de contexto: %q", res.TranslatedText)
	}
	// Base 40 (<60) más el bono de 15, sin volver a acotar.
	if res.Confidence != 55 {
		t.Fatalf("confianza esperada 55, obtuvo %d", res.Confidence)
	}
}

func TestTranslateConfidenceRange(t *testing.T) {
	e := newTestEngine(t)
	inputs := []string{
		"diabetes mellitus tipo 2",
		"cefalea tensional crónica",
		"paciente estable en seguimiento ambulatorio por consulta externa",
		"neumonía",
	}
	for _, in := range inputs {
		res := e.Translate(in)
		if res.Confidence < 40 || res.Confidence > 95 {
			t.Fatalf("Translate(%q) confianza fuera de rango: %d", in, res.Confidence)
		}
	}
}

func TestTranslateMultipleContexts(t *testing.T) {
	e := newTestEngine(t)
	res := e.Translate("control rutinario de presión y glucosa sin datos nuevos")
	if !strings.Contains(res.TranslatedText, "sistema cardiovascular, endocrino") {
		t.Fatalf("contextos esperados cardiovascular y endocrino: %q", res.TranslatedText)
	}
}

func TestNewEngineOrderingInvariant(t *testing.T) {
	e := newTestEngine(t)
	for i, ent := range e.entries {
		for j := i + 1; j < len(e.entries); j++ {
			if len(e.entries[j].Medical) > len(ent.Medical) {
				t.Fatalf("entrada %q (pos %d) más corta que %q (pos %d)", ent.Medical, i, e.entries[j].Medical, j)
			}
		}
	}
}
