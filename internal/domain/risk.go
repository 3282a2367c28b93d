package domain

import (
	"errors"
	"fmt"
)

// Nombres de campo tal como llegan del formulario.
const (
	FieldAge             = "age"
	FieldSex             = "sex"
	FieldJob             = "job"
	FieldHousing         = "housing"
	FieldSavingAccounts  = "saving_accounts"
	FieldCheckingAccount = "checking_account"
	FieldCreditAmount    = "credit_amount"
	FieldDuration        = "duration"
	FieldPurpose         = "purpose"
)

// Rangos permitidos para los campos numericos. El formulario los aplica antes
// de llegar al encoder; un llamador independiente debe usar ValidateRanges.
const (
	AgeMin          = 18
	AgeMax          = 100
	CreditAmountMin = 0
	CreditAmountMax = 100000
	DurationMin     = 1
	DurationMax     = 60
)

// FeatureOrder es el orden exacto en el que el modelo fue entrenado.
var FeatureOrder = [FeatureCount]string{
	FieldAge,
	FieldSex,
	FieldJob,
	FieldHousing,
	FieldSavingAccounts,
	FieldCheckingAccount,
	FieldCreditAmount,
	FieldDuration,
	FieldPurpose,
}

// Enumeraciones cerradas de cada campo categorico, en el orden del formulario.
var (
	SexOptions     = []string{"Male", "Female"}
	JobOptions     = []string{"Skilled", "Unskilled", "Other"}
	HousingOptions = []string{"Own", "Rent", "Free"}
	AccountOptions = []string{"None", "Basic", "Moderate", "Good"}
	PurposeOptions = []string{"New car", "Used car", "Furniture/equipment", "Radio/tv", "Education", "Re-training"}
)

// CategoricalOptions devuelve la enumeracion de un campo categorico.
func CategoricalOptions(field string) ([]string, bool) {
	switch field {
	case FieldSex:
		return SexOptions, true
	case FieldJob:
		return JobOptions, true
	case FieldHousing:
		return HousingOptions, true
	case FieldSavingAccounts, FieldCheckingAccount:
		return AccountOptions, true
	case FieldPurpose:
		return PurposeOptions, true
	default:
		return nil, false
	}
}

// CategoricalFields lista los campos que pasan por el encoder.
var CategoricalFields = []string{
	FieldSex,
	FieldJob,
	FieldHousing,
	FieldSavingAccounts,
	FieldCheckingAccount,
	FieldPurpose,
}

var ErrOutOfRange = errors.New("value out of range")

// RiskQuery es la solicitud efimera de una evaluacion. No se persiste.
type RiskQuery struct {
	Age             int    `json:"age"`
	Sex             string `json:"sex"`
	Job             string `json:"job"`
	Housing         string `json:"housing"`
	SavingAccounts  string `json:"saving_accounts"`
	CheckingAccount string `json:"checking_account"`
	CreditAmount    int    `json:"credit_amount"`
	Duration        int    `json:"duration"`
	Purpose         string `json:"purpose"`
}

// ValidateRanges verifica los rangos numericos del formulario.
func (q RiskQuery) ValidateRanges() error {
	if q.Age < AgeMin || q.Age > AgeMax {
		return fmt.Errorf("%w: %s=%d (allowed %d-%d)", ErrOutOfRange, FieldAge, q.Age, AgeMin, AgeMax)
	}
	if q.CreditAmount < CreditAmountMin || q.CreditAmount > CreditAmountMax {
		return fmt.Errorf("%w: %s=%d (allowed %d-%d)", ErrOutOfRange, FieldCreditAmount, q.CreditAmount, CreditAmountMin, CreditAmountMax)
	}
	if q.Duration < DurationMin || q.Duration > DurationMax {
		return fmt.Errorf("%w: %s=%d (allowed %d-%d)", ErrOutOfRange, FieldDuration, q.Duration, DurationMin, DurationMax)
	}
	return nil
}

// FeatureCount es el ancho de la matriz que espera el modelo.
const FeatureCount = 9

// FeatureVector es la fila numerica en FeatureOrder. Es un valor: cada
// solicitud tiene su propia copia.
type FeatureVector [FeatureCount]float64

// Matrix devuelve la fila como matriz 1x9 recien asignada.
func (v FeatureVector) Matrix() [][]float64 {
	row := make([]float64, FeatureCount)
	copy(row, v[:])
	return [][]float64{row}
}

// Verdict es el resultado binario de la clasificacion.
type Verdict int

const (
	VerdictLowRisk  Verdict = 0
	VerdictHighRisk Verdict = 1
)

func (v Verdict) String() string {
	switch v {
	case VerdictLowRisk:
		return "low_risk"
	case VerdictHighRisk:
		return "high_risk"
	default:
		return fmt.Sprintf("verdict(%d)", int(v))
	}
}
