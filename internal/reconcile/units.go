package reconcile

import "math"

// MaxQuantity é o maior valor absoluto aceito para quantidades, deltas e
// unidades por caixa. Segue o limite da coluna INTEGER do PostgreSQL.
const MaxQuantity = math.MaxInt32

// inRange informa se v cabe em [-MaxQuantity, MaxQuantity].
func inRange(v int) bool {
	return v >= -MaxQuantity && v <= MaxQuantity
}

// InputUnit é a unidade em que o usuário digitou a quantidade.
type InputUnit string

const (
	UnitBase InputUnit = "unit"
	UnitCase InputUnit = "case"
)

// Valid informa se a unidade é conhecida.
func (u InputUnit) Valid() bool {
	return u == UnitBase || u == UnitCase
}

// ComputeUnitsPerCase calcula quantas unidades base cabem em uma caixa.
// Sem embalagem devolve 1. Uma caixa contém caseSize pacotes de packSize
// unidades; com apenas packSize, a caixa é um único pacote. Tamanhos não
// positivos ou um total acima de MaxQuantity dão InvalidPackagingConfig.
func ComputeUnitsPerCase(caseSize, packSize *int) (int, error) {
	if caseSize != nil && (*caseSize <= 0 || *caseSize > MaxQuantity) {
		return 0, InvalidPackagingConfig
	}
	if packSize != nil && (*packSize <= 0 || *packSize > MaxQuantity) {
		return 0, InvalidPackagingConfig
	}

	units := int64(1)
	if caseSize != nil {
		units = int64(*caseSize)
	}
	if packSize != nil {
		units *= int64(*packSize)
	}
	if units > MaxQuantity {
		return 0, InvalidPackagingConfig
	}
	return int(units), nil
}

// ToBaseUnits converte o valor digitado para unidades base.
// Não há arredondamento: as entradas já são inteiras. Valores que saem de
// [-MaxQuantity, MaxQuantity], antes ou depois da conversão, dão InvalidInput.
func ToBaseUnits(rawValue int, unit InputUnit, unitsPerCase int) (int, error) {
	if !inRange(rawValue) {
		return 0, InvalidInput
	}
	if unit != UnitCase {
		return rawValue, nil
	}
	if unitsPerCase <= 0 || unitsPerCase > MaxQuantity {
		return 0, InvalidPackagingConfig
	}

	base := int64(rawValue) * int64(unitsPerCase)
	if base > MaxQuantity || base < -MaxQuantity {
		return 0, InvalidInput
	}
	return int(base), nil
}
