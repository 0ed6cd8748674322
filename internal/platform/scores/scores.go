// Package scores computes standardized clinical risk and metabolic indices
// (HOMA-IR, TyG, eGFR/CKD-EPI, Framingham, FINDRISC) from a flat context of
// possibly-missing patient data. Missing inputs are modeled as data, never as
// errors: HOMA-IR, TyG and eGFR return nil when their inputs are absent, while
// Framingham and FINDRISC return a degraded Result listing the missing fields.
// Callers must handle both shapes; this asymmetry mirrors the clinical
// catalog's established contract.
package scores

// Context is the flat assembly of everything a calculator might need. Every
// field is a pointer: nil means "unknown", which is semantically distinct
// from zero.
type Context struct {
	Age                *float64 `json:"idade"`
	Sex                *string  `json:"sexo"`
	Weight             *float64 `json:"peso"`
	Height             *float64 `json:"altura"`
	WaistCircumference *float64 `json:"circunferencia"`
	SystolicBP         *float64 `json:"pressaoSistolica"`
	Glucose            *float64 `json:"glicemia"`
	HbA1c              *float64 `json:"hba1c"`
	TotalCholesterol   *float64 `json:"colesterolTotal"`
	LDL                *float64 `json:"ldl"`
	HDL                *float64 `json:"hdl"`
	Triglycerides      *float64 `json:"triglicerideos"`
	Insulin            *float64 `json:"insulina"`
	Creatinine         *float64 `json:"creatinina"`
	Smoker             *bool    `json:"tabagismo"`
	Diabetes           *bool    `json:"diabetes"`
}

// Result is what every calculator produces. When Value is nil the score could
// not be computed and Missing lists the absent inputs by clinical name, with
// an "insufficient data" interpretation.
type Result struct {
	Type           string                 `json:"tipoEscore"`
	Name           string                 `json:"nome"`
	Value          map[string]interface{} `json:"resultado"`
	Interpretation string                 `json:"interpretacao"`
	ParamsUsed     map[string]interface{} `json:"parametrosUsados"`
	Missing        []string               `json:"faltantes,omitempty"`
}

// Standard runs the full score catalog and drops the calculators that were
// inapplicable (nil). Framingham and FINDRISC always contribute a Result,
// degraded or not.
func Standard(ctx Context) []Result {
	var results []Result
	for _, calc := range []func(Context) *Result{HOMAIR, TyG, EGFR, Framingham, FINDRISC} {
		if r := calc(ctx); r != nil {
			results = append(results, *r)
		}
	}
	return results
}
