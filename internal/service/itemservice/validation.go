package itemservice

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farminventory/internal/domain"
	apperror "farminventory/internal/errors"
)

// ParseItemID valida o formato do identificador (ObjectID hex de 24 caracteres).
func ParseItemID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperror.NewValidationError(apperror.CodeInvalidID, "Invalid item ID format")
	}
	return oid, nil
}

// ValidateCreate transforma o payload bruto num Item pronto para persistir,
// aplicando os defaults (quantity 0, lowStockThreshold 5, vehicles []).
func ValidateCreate(in domain.ItemInput) (domain.Item, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return domain.Item{}, apperror.NewValidationError(apperror.CodeNameRequired, "Name is required")
	}

	patch, err := validateFields(in)
	if err != nil {
		return domain.Item{}, err
	}

	item := domain.Item{
		Name:              *patch.Name,
		Vehicles:          []string{},
		LowStockThreshold: domain.DefaultLowStockThreshold,
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Vehicles != nil {
		item.Vehicles = *patch.Vehicles
	}
	if patch.LowStockThreshold != nil {
		item.LowStockThreshold = *patch.LowStockThreshold
	}
	return item, nil
}

// ValidateUpdate valida apenas os campos presentes. Nome, se enviado, não pode ser vazio.
func ValidateUpdate(in domain.ItemInput) (domain.ItemPatch, error) {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.ItemPatch{}, apperror.NewValidationError(apperror.CodeNameRequired, "Name cannot be empty")
	}
	return validateFields(in)
}

func validateFields(in domain.ItemInput) (domain.ItemPatch, error) {
	var patch domain.ItemPatch

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.Category != nil {
		category := strings.TrimSpace(*in.Category)
		patch.Category = &category
	}
	if in.Quantity != nil {
		q, ok := coerceInt(*in.Quantity)
		if !ok {
			return domain.ItemPatch{}, apperror.NewValidationError(apperror.CodeInvalidQuantity,
				"Quantity must be an integer", "quantity: "+in.Quantity.String())
		}
		patch.Quantity = &q
	}
	if in.LowStockThreshold != nil {
		th, ok := coerceInt(*in.LowStockThreshold)
		if !ok {
			return domain.ItemPatch{}, apperror.NewValidationError(apperror.CodeInvalidThreshold,
				"Low stock threshold must be an integer", "lowStockThreshold: "+in.LowStockThreshold.String())
		}
		patch.LowStockThreshold = &th
	}
	if len(in.Vehicles) > 0 {
		vehicles, ok := coerceVehicles(in.Vehicles)
		if !ok {
			return domain.ItemPatch{}, apperror.NewValidationError(apperror.CodeInvalidVehicles,
				"Vehicles must be a list of names")
		}
		patch.Vehicles = &vehicles
	}
	return patch, nil
}

// coerceInt aceita inteiros e números integrais ("15", 15, 15.0).
func coerceInt(n json.Number) (int, bool) {
	s := strings.TrimSpace(n.String())
	if s == "" {
		return 0, false
	}
	if i, err := json.Number(s).Int64(); err == nil {
		if i < math.MinInt32 || i > math.MaxInt32 {
			return 0, false
		}
		return int(i), true
	}
	f, err := json.Number(s).Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// coerceVehicles aceita lista de strings, uma string única ou null (lista vazia).
func coerceVehicles(raw json.RawMessage) ([]string, bool) {
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return []string{}, true
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			return []string{}, true
		}
		return []string{strings.TrimSpace(single)}, true
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, strings.TrimSpace(v))
	}
	return out, true
}
