package translator

import "regexp"

// Entry vincula un término clínico con su equivalente en lenguaje cotidiano.
type Entry struct {
	Medical string
	Simple  string
}

// Diccionario clínico base. El orden declarado es orientativo; NewEngine
// reordena por longitud descendente para que las frases específicas se
// sustituyan antes que sus formas generales.
var lexicon = []Entry{
	// Cardiovascular
	{"hipertensión arterial", "presión alta en las arterias"},
	{"hipertensión arterial sistólica", "presión alta cuando el corazón late"},
	{"hipertensión arterial diastólica", "presión alta cuando el corazón descansa"},
	{"hipertensión", "presión alta"},
	{"taquicardia", "latidos del corazón muy rápidos"},
	{"taquicardia sinusal", "latidos rápidos normales del corazón"},
	{"bradicardia", "latidos del corazón muy lentos"},
	{"arritmia", "latidos irregulares del corazón"},
	{"fibrilación auricular", "latidos irregulares en la parte superior del corazón"},
	{"insuficiencia cardíaca", "el corazón no bombea bien la sangre"},
	{"infarto de miocardio", "ataque al corazón"},
	{"angina de pecho", "dolor en el pecho por falta de oxígeno al corazón"},
	{"cardiopatía", "enfermedad del corazón"},
	{"valvulopatía", "problema en las válvulas del corazón"},

	// Endocrino
	{"diabetes mellitus", "azúcar alta en la sangre"},
	{"diabetes mellitus tipo 1", "el cuerpo no produce insulina"},
	{"diabetes mellitus tipo 2", "el cuerpo no usa bien la insulina"},
	{"diabetes", "azúcar alta"},
	{"hiperglucemia", "azúcar muy alta en la sangre"},
	{"hipoglucemia", "azúcar muy baja en la sangre"},
	{"resistencia a la insulina", "el cuerpo no responde bien a la insulina"},
	{"cetoacidosis diabética", "complicación grave de la diabetes"},
	{"neuropatía diabética", "daño en los nervios por diabetes"},
	{"retinopatía diabética", "daño en los ojos por diabetes"},
	{"microalbuminuria", "pequeñas cantidades de proteína en la orina"},
	{"macroalbuminuria", "cantidades altas de proteína en la orina"},

	// Neurológico
	{"migraña", "dolor de cabeza muy fuerte"},
	{"cefalea", "dolor de cabeza"},
	{"cefalea tensional", "dolor de cabeza por tensión o estrés"},
	{"epilepsia", "convulsiones repetidas"},
	{"convulsiones", "movimientos involuntarios del cuerpo"},
	{"accidente cerebrovascular", "derrame cerebral"},
	{"ictus", "derrame cerebral"},
	{"demencia", "pérdida de memoria y capacidades mentales"},
	{"alzheimer", "pérdida de memoria progresiva"},
	{"parkinson", "temblores y rigidez muscular"},
	{"esclerosis múltiple", "enfermedad que afecta el sistema nervioso"},
	{"neuropatía", "daño en los nervios"},
	{"neuralgia", "dolor en los nervios"},

	// Respiratorio
	{"asma", "dificultad para respirar con silbidos"},
	{"bronquitis", "inflamación de los tubos respiratorios"},
	{"neumonía", "infección en los pulmones"},
	{"EPOC", "enfermedad que dificulta la respiración"},
	{"enfermedad pulmonar obstructiva crónica", "enfermedad que dificulta la respiración"},
	{"apnea del sueño", "pausas en la respiración mientras duerme"},
	{"embolia pulmonar", "coágulo en los pulmones"},
	{"edema pulmonar", "líquido en los pulmones"},
	{"fibrosis pulmonar", "cicatrices en los pulmones"},

	// Digestivo
	{"gastritis", "inflamación del estómago"},
	{"úlcera péptica", "llaga en el estómago o intestino"},
	{"reflujo gastroesofágico", "ácido del estómago que sube al esófago"},
	{"síndrome del intestino irritable", "problemas digestivos con dolor abdominal"},
	{"enfermedad inflamatoria intestinal", "inflamación crónica del intestino"},
	{"colitis", "inflamación del intestino grueso"},
	{"hepatitis", "inflamación del hígado"},
	{"cirrosis", "cicatrices en el hígado"},
	{"pancreatitis", "inflamación del páncreas"},
	{"colelitiasis", "piedras en la vesícula"},

	// Renal
	{"insuficiencia renal", "los riñones no funcionan bien"},
	{"nefropatía", "enfermedad de los riñones"},
	{"proteinuria", "proteína en la orina"},
	{"hematuria", "sangre en la orina"},
	{"cistitis", "infección en la vejiga"},
	{"pielonefritis", "infección en los riñones"},
	{"cálculos renales", "piedras en los riñones"},

	// Hematológico
	{"anemia", "bajo nivel de glóbulos rojos"},
	{"leucemia", "cáncer en la sangre"},
	{"trombocitopenia", "bajo nivel de plaquetas"},
	{"hemofilia", "sangrado excesivo"},
	{"policitemia", "demasiados glóbulos rojos"},

	// Inmunológico
	{"artritis reumatoide", "inflamación dolorosa de las articulaciones"},
	{"lupus", "enfermedad autoinmune que afecta varios órganos"},
	{"esclerosis sistémica", "endurecimiento de la piel y órganos"},
	{"psoriasis", "manchas rojas y escamosas en la piel"},
	{"alergia", "reacción exagerada del sistema inmune"},

	// Términos generales
	{"agudo", "que aparece de repente"},
	{"crónico", "que dura mucho tiempo"},
	{"benigno", "no canceroso"},
	{"maligno", "canceroso"},
	{"metástasis", "propagación del cáncer"},
	{"inflamación", "hinchazón y enrojecimiento"},
	{"edema", "hinchazón por retención de líquido"},
	{"isquemia", "falta de oxígeno en un órgano"},
	{"necrosis", "muerte de tejido"},
	{"fibrosis", "cicatrización excesiva"},
	{"estenosis", "estrechamiento"},
	{"hipertrofia", "agrandamiento"},
	{"atrofia", "disminución de tamaño"},

	// Síntomas
	{"disnea", "dificultad para respirar"},
	{"taquipnea", "respiración muy rápida"},
	{"ortopnea", "dificultad para respirar al acostarse"},
	{"hemoptisis", "toser sangre"},
	{"hematemesis", "vomitar sangre"},
	{"melena", "heces negras con sangre"},
	{"oliguria", "orinar poco"},
	{"poliuria", "orinar mucho"},
	{"polidipsia", "mucha sed"},
	{"polifagia", "mucha hambre"},
	{"astenia", "cansancio extremo"},
	{"adinamia", "falta de fuerza"},
	{"parestesias", "hormigueo o entumecimiento"},
	{"vértigo", "sensación de que todo da vueltas"},
	{"síncope", "desmayo"},
	{"lipotimia", "sensación de desmayo"},
}

type patternRule struct {
	re          *regexp.Regexp
	replacement string
}

// Reglas morfológicas por sufijo/prefijo. Se aplican TODAS, en este orden,
// sobre el texto ya transformado por el diccionario; el orden es parte del
// comportamiento y no debe alterarse.
var patternRules = []patternRule{
	{regexp.MustCompile(`(?i)(\w+)patía`), "enfermedad de $1"},
	{regexp.MustCompile(`(?i)(\w+)itis`), "inflamación de $1"},
	{regexp.MustCompile(`(?i)(\w+)osis`), "condición de $1"},
	{regexp.MustCompile(`(?i)hiper(\w+)`), "nivel alto de $1"},
	{regexp.MustCompile(`(?i)hipo(\w+)`), "nivel bajo de $1"},
	{regexp.MustCompile(`(?i)(\w+)algia`), "dolor en $1"},
	{regexp.MustCompile(`(?i)(\w+)emia`), "$1 en la sangre"},
	{regexp.MustCompile(`(?i)(\w+)uria`), "$1 en la orina"},
	{regexp.MustCompile(`(?i)(\w+)rrea`), "flujo excesivo de $1"},
	{regexp.MustCompile(`(?i)disfunción\s+(\w+)`), "mal funcionamiento de $1"},
	{regexp.MustCompile(`(?i)insuficiencia\s+(\w+)`), "$1 que no funciona bien"},
	{regexp.MustCompile(`(?i)síndrome\s+de\s+(\w+)`), "conjunto de síntomas relacionados con $1"},
}

// Sustituciones de legibilidad aplicadas tras diccionario y patrones.
// El colapso de espacios va primero y "secundaria a" antes que "secundaria".
var readabilityRules = []patternRule{
	{regexp.MustCompile(`\s+`), " "},
	{regexp.MustCompile(`(?i)\s+con\s+`), " que presenta "},
	{regexp.MustCompile(`(?i)\s+asociada?\s+a\s+`), " junto con "},
	{regexp.MustCompile(`(?i)\s+secundaria?\s+a\s+`), " causada por "},
	{regexp.MustCompile(`(?i)primaria`), "principal"},
	{regexp.MustCompile(`(?i)secundaria`), "que viene de otra causa"},
	{regexp.MustCompile(`(?i)bilateral`), "en ambos lados"},
	{regexp.MustCompile(`(?i)unilateral`), "en un solo lado"},
	{regexp.MustCompile(`(?i)aguda`), "que aparece de repente"},
	{regexp.MustCompile(`(?i)crónica`), "que dura mucho tiempo"},
	{regexp.MustCompile(`(?i)intermitente`), "que va y viene"},
	{regexp.MustCompile(`(?i)persistente`), "que no se quita"},
	{regexp.MustCompile(`(?i)severa`), "grave"},
	{regexp.MustCompile(`(?i)moderada`), "mediana"},
	{regexp.MustCompile(`(?i)leve`), "ligera"},
	{regexp.MustCompile(`(?i)episodios`), "ocasiones"},
	{regexp.MustCompile(`(?i)manifestaciones`), "síntomas"},
	{regexp.MustCompile(`(?i)sintomatología`), "síntomas"},
}

type contextRule struct {
	re   *regexp.Regexp
	name string
}

// Detección de sistema corporal para el bono de confianza baja. Cada regla
// es independiente; pueden acumularse varios contextos.
var contextRules = []contextRule{
	{regexp.MustCompile(`(?i)cardio|corazón|arterial|vascular|presión`), "cardiovascular"},
	{regexp.MustCompile(`(?i)diabetes|glucosa|insulina|tiroides|hormona`), "endocrino"},
	{regexp.MustCompile(`(?i)neuro|cerebro|nervio|convulsión|migraña`), "neurológico"},
	{regexp.MustCompile(`(?i)pulmon|respirat|asma|bronqu`), "respiratorio"},
}
