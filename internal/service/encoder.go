package service

import (
	"errors"
	"fmt"

	"credit-risk/internal/domain"
)

var ErrInvalidCategory = errors.New("invalid category")

// Tablas de codificacion usadas al entrenar el modelo. Cambiar un codigo
// invalida el artefacto.
var (
	sexCodes = map[string]int{
		"Male":   0,
		"Female": 1,
	}
	jobCodes = map[string]int{
		"Unskilled": 0,
		"Skilled":   1,
		"Other":     2,
	}
	housingCodes = map[string]int{
		"Own":  0,
		"Rent": 1,
		"Free": 2,
	}
	accountCodes = map[string]int{
		"None":     0,
		"Basic":    1,
		"Moderate": 2,
		"Good":     3,
	}
	purposeCodes = map[string]int{
		"New car":             0,
		"Used car":            1,
		"Furniture/equipment": 2,
		"Radio/tv":            3,
		"Education":           4,
		"Re-training":         5,
	}
)

// Encoder traduce etiquetas categoricas a codigos enteros. Es inmutable y
// seguro para uso concurrente.
type Encoder struct {
	tables map[string]map[string]int
}

// NewEncoder arma el encoder y verifica que cada tabla cubra exactamente la
// enumeracion de su campo con codigos densos 0..n-1.
func NewEncoder() (*Encoder, error) {
	tables := map[string]map[string]int{
		domain.FieldSex:             sexCodes,
		domain.FieldJob:             jobCodes,
		domain.FieldHousing:         housingCodes,
		domain.FieldSavingAccounts:  accountCodes,
		domain.FieldCheckingAccount: accountCodes,
		domain.FieldPurpose:         purposeCodes,
	}
	for _, field := range domain.CategoricalFields {
		table, ok := tables[field]
		if !ok {
			return nil, fmt.Errorf("encoder: no table for field %s", field)
		}
		options, _ := domain.CategoricalOptions(field)
		if err := checkExhaustive(field, table, options); err != nil {
			return nil, err
		}
	}
	return &Encoder{tables: tables}, nil
}

// MustNewEncoder es NewEncoder para inicializacion en main y tests.
func MustNewEncoder() *Encoder {
	enc, err := NewEncoder()
	if err != nil {
		panic(err)
	}
	return enc
}

func checkExhaustive(field string, table map[string]int, options []string) error {
	if len(table) != len(options) {
		return fmt.Errorf("encoder: field %s has %d codes for %d options", field, len(table), len(options))
	}
	seen := make([]bool, len(options))
	for _, label := range options {
		code, ok := table[label]
		if !ok {
			return fmt.Errorf("encoder: field %s missing code for %q", field, label)
		}
		if code < 0 || code >= len(options) || seen[code] {
			return fmt.Errorf("encoder: field %s has invalid or duplicated code %d", field, code)
		}
		seen[code] = true
	}
	return nil
}

// Encode devuelve el codigo de label para field. Cualquier valor fuera de la
// enumeracion devuelve ErrInvalidCategory.
func (e *Encoder) Encode(field, label string) (int, error) {
	table, ok := e.tables[field]
	if !ok {
		return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidCategory, field)
	}
	code, ok := table[label]
	if !ok {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidCategory, field, label)
	}
	return code, nil
}

// BuildFeatureVector arma la fila en domain.FeatureOrder. Los campos
// numericos pasan sin cambios; sus rangos los valida el formulario.
func (e *Encoder) BuildFeatureVector(q domain.RiskQuery) (domain.FeatureVector, error) {
	var v domain.FeatureVector

	labels := []struct {
		field string
		label string
		index int
	}{
		{domain.FieldSex, q.Sex, 1},
		{domain.FieldJob, q.Job, 2},
		{domain.FieldHousing, q.Housing, 3},
		{domain.FieldSavingAccounts, q.SavingAccounts, 4},
		{domain.FieldCheckingAccount, q.CheckingAccount, 5},
		{domain.FieldPurpose, q.Purpose, 8},
	}
	for _, l := range labels {
		code, err := e.Encode(l.field, l.label)
		if err != nil {
			return domain.FeatureVector{}, err
		}
		v[l.index] = float64(code)
	}

	v[0] = float64(q.Age)
	v[6] = float64(q.CreditAmount)
	v[7] = float64(q.Duration)
	return v, nil
}
