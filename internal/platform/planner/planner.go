// Package planner renders condition-based treatment plan templates into two
// audiences: a verbatim clinician version and a simplified patient-facing
// version.
package planner

import (
	"regexp"
	"sort"
	"strings"
)

// Block is one titled section of a plan template.
type Block struct {
	Title   string `json:"titulo"`
	Content string `json:"conteudo"`
}

// Template is a condition-specific plan with {{token}} placeholders resolved
// against Placeholders plus the implicit {{nome}} of the patient.
type Template struct {
	Condition    string            `json:"condicao"`
	Blocks       []Block           `json:"blocos"`
	Placeholders map[string]string `json:"placeholders,omitempty"`
}

// Rendering is one audience's view of the plan.
type Rendering struct {
	Blocks     []Block  `json:"blocos"`
	Checklist  []string `json:"checklist"`
	SMARTGoals []string `json:"metasSMART"`
}

// DualPlan carries both renderings of the same template.
type DualPlan struct {
	Clinician Rendering `json:"medico"`
	Patient   Rendering `json:"paciente"`
}

var boldSpan = regexp.MustCompile(`\*\*[^*]+\*\*`)

var clinicianChecklist = []string{
	"Revisar adesão e efeitos adversos das medicações em uso",
	"Conferir exames pendentes e solicitar os de controle",
	"Reavaliar metas terapêuticas na próxima consulta",
}

var patientChecklist = []string{
	"Tomar as medicações conforme a orientação",
	"Anotar dúvidas e sintomas para a próxima consulta",
	"Comparecer na data de retorno agendada",
}

// GenerateDualPlan substitutes placeholders across every block ({{nome}}
// first, then each template placeholder) and produces the clinician rendering
// verbatim and the patient rendering with every **bold** span removed. Note
// the whole span is stripped, content included, not unwrapped. Both renderings
// share the same SMART goal list.
func GenerateDualPlan(tpl Template, patientName string, smartGoals []string) DualPlan {
	clinician := make([]Block, 0, len(tpl.Blocks))
	patient := make([]Block, 0, len(tpl.Blocks))

	keys := make([]string, 0, len(tpl.Placeholders))
	for k := range tpl.Placeholders {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, block := range tpl.Blocks {
		content := strings.ReplaceAll(block.Content, "{{nome}}", patientName)
		for _, k := range keys {
			content = strings.ReplaceAll(content, "{{"+k+"}}", tpl.Placeholders[k])
		}
		clinician = append(clinician, Block{Title: block.Title, Content: content})
		patient = append(patient, Block{
			Title:   block.Title,
			Content: boldSpan.ReplaceAllString(content, ""),
		})
	}

	goals := append([]string(nil), smartGoals...)
	return DualPlan{
		Clinician: Rendering{Blocks: clinician, Checklist: clinicianChecklist, SMARTGoals: goals},
		Patient:   Rendering{Blocks: patient, Checklist: patientChecklist, SMARTGoals: goals},
	}
}
