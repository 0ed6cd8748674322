package planner

// builtinTemplates is the condition template catalog shipped with the
// practice. Placeholders beyond {{nome}} are filled per template.
var builtinTemplates = map[string]Template{
	"dm2": {
		Condition: "Diabetes mellitus tipo 2",
		Blocks: []Block{
			{
				Title:   "Diagnóstico",
				Content: "{{nome}} apresenta **diabetes mellitus tipo 2** em acompanhamento. Meta de HbA1c: {{metaHba1c}}.",
			},
			{
				Title:   "Tratamento",
				Content: "Manter **metformina** conforme prescrição. Reforçar atividade física regular e plano alimentar.",
			},
			{
				Title:   "Monitorização",
				Content: "HbA1c a cada 3 meses até atingir a meta; perfil lipídico e função renal anuais.",
			},
		},
		Placeholders: map[string]string{"metaHba1c": "< 7%"},
	},
	"hipotireoidismo": {
		Condition: "Hipotireoidismo",
		Blocks: []Block{
			{
				Title:   "Diagnóstico",
				Content: "{{nome}} em tratamento de **hipotireoidismo primário**.",
			},
			{
				Title:   "Tratamento",
				Content: "**Levotiroxina** em jejum, 30 minutos antes do café. Não associar com cálcio ou ferro no mesmo horário.",
			},
			{
				Title:   "Monitorização",
				Content: "TSH em 6 a 8 semanas após qualquer ajuste de dose; depois, controle semestral.",
			},
		},
	},
	"obesidade": {
		Condition: "Obesidade",
		Blocks: []Block{
			{
				Title:   "Avaliação",
				Content: "{{nome}} em programa de manejo de peso. Meta inicial: {{metaPeso}} do peso corporal em 6 meses.",
			},
			{
				Title:   "Plano",
				Content: "Déficit calórico orientado por nutricionista, atividade aeróbica 150 min/semana e bioimpedância de controle.",
			},
		},
		Placeholders: map[string]string{"metaPeso": "perda de 5 a 10%"},
	},
}

// TemplateFor returns the built-in template for a condition key.
func TemplateFor(condition string) (Template, bool) {
	tpl, ok := builtinTemplates[condition]
	return tpl, ok
}

// Conditions lists the condition keys with a built-in template.
func Conditions() []string {
	keys := make([]string, 0, len(builtinTemplates))
	for k := range builtinTemplates {
		keys = append(keys, k)
	}
	return keys
}
