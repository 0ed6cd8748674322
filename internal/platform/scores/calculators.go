package scores

import (
	"fmt"
	"math"
)

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// HOMAIR computes the Homeostatic Model Assessment of Insulin Resistance.
// Returns nil when fasting glucose or insulin is unknown.
func HOMAIR(ctx Context) *Result {
	if ctx.Glucose == nil || ctx.Insulin == nil {
		return nil
	}
	value := round2(*ctx.Glucose * *ctx.Insulin / 405)
	interpretation := "Dentro da faixa esperada"
	if value >= 2.7 {
		interpretation = "Sugere resistência insulínica"
	}
	return &Result{
		Type:           "homa-ir",
		Name:           "HOMA-IR",
		Value:          map[string]interface{}{"valor": value},
		Interpretation: interpretation,
		ParamsUsed: map[string]interface{}{
			"glicemia": *ctx.Glucose,
			"insulina": *ctx.Insulin,
		},
	}
}

// TyG computes the triglyceride-glucose index, an insulin-resistance proxy.
// Returns nil when glucose or triglycerides are unknown.
func TyG(ctx Context) *Result {
	if ctx.Glucose == nil || ctx.Triglycerides == nil {
		return nil
	}
	value := round2(math.Log(*ctx.Triglycerides * *ctx.Glucose / 2))
	interpretation := "Risco cardiometabólico habitual"
	if value >= 8.8 {
		interpretation = "Risco cardiometabólico elevado"
	}
	return &Result{
		Type:           "tyg",
		Name:           "Índice TyG",
		Value:          map[string]interface{}{"valor": value},
		Interpretation: interpretation,
		ParamsUsed: map[string]interface{}{
			"glicemia":       *ctx.Glucose,
			"triglicerideos": *ctx.Triglycerides,
		},
	}
}

// EGFR estimates the glomerular filtration rate via a simplified CKD-EPI
// creatinine equation. Returns nil when creatinine or age is unknown.
func EGFR(ctx Context) *Result {
	if ctx.Creatinine == nil || ctx.Age == nil {
		return nil
	}
	female := ctx.Sex != nil && (*ctx.Sex == "feminino" || *ctx.Sex == "F" || *ctx.Sex == "f")

	k, alpha, sexFactor := 0.9, -0.411, 1.0
	if female {
		k, alpha, sexFactor = 0.7, -0.329, 1.018
	}
	ratio := *ctx.Creatinine / k
	tfg := 141 *
		math.Pow(math.Min(ratio, 1), alpha) *
		math.Pow(math.Max(ratio, 1), -1.209) *
		math.Pow(0.993, *ctx.Age) *
		sexFactor
	tfg = round1(tfg)

	interpretation := "Função renal preservada"
	if tfg < 60 {
		interpretation = "Sugere doença renal crônica (TFG < 60)"
	}
	return &Result{
		Type:           "tfg",
		Name:           "TFG estimada (CKD-EPI)",
		Value:          map[string]interface{}{"tfg": tfg},
		Interpretation: interpretation,
		ParamsUsed: map[string]interface{}{
			"creatinina": *ctx.Creatinine,
			"idade":      *ctx.Age,
			"sexo":       sexLabel(ctx.Sex),
		},
	}
}

// Framingham estimates 10-year cardiovascular risk. Missing inputs produce a
// degraded Result with the missing fields listed by clinical name.
func Framingham(ctx Context) *Result {
	var missing []string
	if ctx.Age == nil {
		missing = append(missing, "idade")
	}
	if ctx.TotalCholesterol == nil {
		missing = append(missing, "colesterol total")
	}
	if ctx.HDL == nil {
		missing = append(missing, "HDL")
	}
	if ctx.SystolicBP == nil {
		missing = append(missing, "PA sistólica")
	}
	if len(missing) > 0 {
		return &Result{
			Type:           "framingham",
			Name:           "Escore de Framingham (10 anos)",
			Interpretation: "Dados insuficientes",
			ParamsUsed:     map[string]interface{}{},
			Missing:        missing,
		}
	}

	risk := 10.0
	switch {
	case *ctx.Age < 50:
		risk = 3
	case *ctx.Age < 60:
		risk = 6
	}
	risk += *ctx.TotalCholesterol / 50
	risk += (60 - *ctx.HDL) / 25
	if *ctx.SystolicBP > 140 {
		risk += 3
	} else {
		risk++
	}
	if ctx.Smoker != nil && *ctx.Smoker {
		risk += 2
	}
	if ctx.Diabetes != nil && *ctx.Diabetes {
		risk += 2
	}
	risk = round1(math.Min(math.Max(risk, 0), 30))

	interpretation := "Risco baixo"
	switch {
	case risk >= 20:
		interpretation = "Risco alto"
	case risk >= 10:
		interpretation = "Risco intermediário"
	}
	return &Result{
		Type:           "framingham",
		Name:           "Escore de Framingham (10 anos)",
		Value:          map[string]interface{}{"risco": risk},
		Interpretation: fmt.Sprintf("%s (%.1f%% em 10 anos)", interpretation, risk),
		ParamsUsed: map[string]interface{}{
			"idade":            *ctx.Age,
			"colesterolTotal":  *ctx.TotalCholesterol,
			"hdl":              *ctx.HDL,
			"pressaoSistolica": *ctx.SystolicBP,
			"tabagismo":        ctx.Smoker != nil && *ctx.Smoker,
			"diabetes":         ctx.Diabetes != nil && *ctx.Diabetes,
		},
	}
}

// FINDRISC accumulates the Finnish Diabetes Risk Score points. Needs age and
// a computable BMI (weight and height); otherwise degrades with the missing
// fields listed.
func FINDRISC(ctx Context) *Result {
	var missing []string
	if ctx.Age == nil {
		missing = append(missing, "idade")
	}
	if ctx.Weight == nil {
		missing = append(missing, "peso")
	}
	if ctx.Height == nil {
		missing = append(missing, "altura")
	}
	if len(missing) > 0 {
		return &Result{
			Type:           "findrisc",
			Name:           "FINDRISC",
			Interpretation: "Dados insuficientes",
			ParamsUsed:     map[string]interface{}{},
			Missing:        missing,
		}
	}

	heightM := *ctx.Height
	if heightM > 3 { // stored in centimeters
		heightM /= 100
	}
	bmi := *ctx.Weight / (heightM * heightM)

	points := 0
	switch {
	case *ctx.Age >= 65:
		points += 4
	case *ctx.Age >= 55:
		points += 3
	case *ctx.Age >= 45:
		points += 2
	}
	switch {
	case bmi >= 35:
		points += 3
	case bmi >= 30:
		points += 2
	case bmi >= 25:
		points++
	}
	if ctx.WaistCircumference != nil {
		switch {
		case *ctx.WaistCircumference >= 102:
			points += 4
		case *ctx.WaistCircumference >= 94:
			points += 3
		}
	}
	if ctx.Glucose != nil && *ctx.Glucose >= 110 {
		points += 5
	}
	if ctx.HbA1c != nil && *ctx.HbA1c >= 5.7 {
		points += 2
	}

	risk := findriscRiskLabel(points)
	return &Result{
		Type:           "findrisc",
		Name:           "FINDRISC",
		Value:          map[string]interface{}{"pontos": points, "risco": risk},
		Interpretation: fmt.Sprintf("Risco de diabetes tipo 2 em 10 anos: %s", risk),
		ParamsUsed: map[string]interface{}{
			"idade": *ctx.Age,
			"imc":   round1(bmi),
		},
	}
}

func findriscRiskLabel(points int) string {
	switch {
	case points >= 20:
		return "muito alto"
	case points >= 15:
		return "alto"
	case points >= 12:
		return "moderado"
	default:
		return "baixo"
	}
}

func sexLabel(sex *string) string {
	if sex == nil {
		return "desconhecido"
	}
	return *sex
}
