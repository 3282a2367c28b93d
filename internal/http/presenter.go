package http

import "credit-risk/internal/domain"

// VerdictDetails es el bloque expandible que acompaña al veredicto.
type VerdictDetails struct {
	Title      string   `json:"title"`
	Items      []string `json:"items"`
	Disclaimer string   `json:"disclaimer"`
}

// VerdictView es el texto estatico de cada veredicto. No depende del modelo.
type VerdictView struct {
	Headline    string         `json:"headline"`
	Description string         `json:"description"`
	Details     VerdictDetails `json:"details"`
}

var verdictViews = map[domain.Verdict]VerdictView{
	domain.VerdictHighRisk: {
		Headline:    "High Risk Profile",
		Description: "Based on the provided information, this profile is classified as higher risk.",
		Details: VerdictDetails{
			Title: "Risk Factors That May Be Contributing",
			Items: []string{
				"Credit amount in relation to income",
				"Loan duration and repayment timeline",
				"Account status and financial history",
				"Housing situation and stability",
			},
			Disclaimer: "This assessment is based on statistical patterns and may not reflect individual circumstances.",
		},
	},
	domain.VerdictLowRisk: {
		Headline:    "Low Risk Profile",
		Description: "Based on the provided information, this profile is classified as lower risk.",
		Details: VerdictDetails{
			Title: "Positive Factors Contributing",
			Items: []string{
				"Financial stability indicators",
				"Credit amount appears appropriate",
				"Loan purpose and duration alignment",
				"Account status shows good management",
			},
			Disclaimer: "This assessment is based on statistical patterns and does not guarantee loan approval.",
		},
	},
}

// ViewForVerdict devuelve el texto a mostrar para v.
func ViewForVerdict(v domain.Verdict) VerdictView {
	return verdictViews[v]
}

// FormField describe un control del formulario de evaluacion.
type FormField struct {
	Name    string            `json:"name"`
	Label   string            `json:"label"`
	Type    string            `json:"type"`
	Help    string            `json:"help,omitempty"`
	Options []string          `json:"options,omitempty"`
	Notes   map[string]string `json:"notes,omitempty"`
	Min     *int              `json:"min,omitempty"`
	Max     *int              `json:"max,omitempty"`
	Step    int               `json:"step,omitempty"`
	Default any               `json:"default"`
}

// FormSchema es lo que el frontend necesita para dibujar el formulario.
type FormSchema struct {
	Title    string      `json:"title"`
	Subtitle string      `json:"subtitle"`
	Fields   []FormField `json:"fields"`
	Tips     []string    `json:"tips"`
	About    string      `json:"about"`
}

var purposeNotes = map[string]string{
	"New car":             "Financing for a brand new vehicle purchase.",
	"Used car":            "Financing for a pre-owned vehicle purchase.",
	"Furniture/equipment": "Purchase of household items or equipment.",
	"Radio/tv":            "Purchase of electronic entertainment devices.",
	"Education":           "Funding for formal education expenses.",
	"Re-training":         "Funding for professional development or skill acquisition.",
}

func intPtr(v int) *int { return &v }

// NewFormSchema arma el esquema a partir de las enumeraciones del dominio.
func NewFormSchema() FormSchema {
	return FormSchema{
		Title:    "Risk Classification Tool",
		Subtitle: "Advanced analysis for financial risk assessment",
		Fields: []FormField{
			{Name: domain.FieldAge, Label: "Age", Type: "number", Min: intPtr(domain.AgeMin), Max: intPtr(domain.AgeMax), Step: 1, Default: 30},
			{Name: domain.FieldSex, Label: "Gender", Type: "select", Options: domain.SexOptions, Default: domain.SexOptions[0]},
			{Name: domain.FieldJob, Label: "Employment Status", Type: "select", Options: domain.JobOptions, Default: domain.JobOptions[0]},
			{Name: domain.FieldHousing, Label: "Housing Situation", Type: "select", Options: domain.HousingOptions, Default: domain.HousingOptions[0]},
			{Name: domain.FieldSavingAccounts, Label: "Savings Account Status", Type: "select", Help: "Level of savings you currently maintain", Options: domain.AccountOptions, Default: domain.AccountOptions[0]},
			{Name: domain.FieldCheckingAccount, Label: "Checking Account Status", Type: "select", Help: "Level of funds in your checking account", Options: domain.AccountOptions, Default: domain.AccountOptions[0]},
			{Name: domain.FieldCreditAmount, Label: "Credit Amount ($)", Type: "number", Help: "Amount of credit requested", Min: intPtr(domain.CreditAmountMin), Max: intPtr(domain.CreditAmountMax), Step: 100, Default: 5000},
			{Name: domain.FieldDuration, Label: "Loan Duration (months)", Type: "slider", Help: "Period over which the loan will be repaid", Min: intPtr(domain.DurationMin), Max: intPtr(domain.DurationMax), Step: 1, Default: 12},
			{Name: domain.FieldPurpose, Label: "Purpose of Loan", Type: "select", Help: "What the loan will be used for", Options: domain.PurposeOptions, Notes: purposeNotes, Default: domain.PurposeOptions[0]},
		},
		Tips: []string{
			"Higher savings typically indicate lower risk",
			"Longer loan duration may increase risk assessment",
			"Home ownership is usually viewed favorably",
			"Employment status affects risk evaluation",
		},
		About: "This tool uses machine learning to predict risk categories based on your inputs. The prediction is based on historical data patterns.",
	}
}
