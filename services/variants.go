package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"vitalimes-backend/models"
	"vitalimes-backend/utils"

	"github.com/go-playground/validator/v10"
)

const variantsField = "variants"

// numericColumn is the NUMERIC(precision, scale) shape of a product_variants column.
type numericColumn struct {
	// limit is the exclusive bound on the absolute value.
	limit float64
	scale int
}

var (
	moneyColumn   = numericColumn{limit: 1e10, scale: 2}
	percentColumn = numericColumn{limit: 1e4, scale: 2}
)

func (c numericColumn) check(field, name string, v float64) error {
	if math.Abs(v) >= c.limit {
		return models.NewValidationError(field, "%s must be less than %s", name, strconv.FormatFloat(c.limit, 'f', -1, 64))
	}
	if utils.Decimals(v) > c.scale {
		return models.NewValidationError(field, "%s must have at most %d decimal places", name, c.scale)
	}
	return nil
}

// VariantReconciler turns the submitted variants array into the complete row set
// of a product. Persisting is replace-all: rows missing from the submission are gone.
type VariantReconciler struct {
	validate *validator.Validate
}

func NewVariantReconciler(v *validator.Validate) *VariantReconciler {
	if v == nil {
		v = validator.New()
	}
	return &VariantReconciler{validate: v}
}

// Parse decodes the JSON array. price must coerce to a number; the other
// numeric fields fall back to 0. Numbers must fit their column exactly.
func (r *VariantReconciler) Parse(sub *models.Submission) ([]models.VariantInput, error) {
	raw, ok := sub.Value(variantsField)
	if !ok {
		return nil, models.NewValidationError(variantsField, "variants is required")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(raw))))
	dec.UseNumber()

	var descriptors []any
	if err := dec.Decode(&descriptors); err != nil || descriptors == nil || dec.More() {
		return nil, models.NewValidationError(variantsField, "must be a JSON array of variants")
	}

	inputs := make([]models.VariantInput, 0, len(descriptors))
	for i, d := range descriptors {
		in, err := r.coerce(i, d)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

func (r *VariantReconciler) coerce(i int, d any) (models.VariantInput, error) {
	field := func(name string) string { return fmt.Sprintf("%s[%d].%s", variantsField, i, name) }

	obj, ok := d.(map[string]any)
	if !ok {
		return models.VariantInput{}, models.NewValidationError(fmt.Sprintf("%s[%d]", variantsField, i), "must be an object")
	}

	rawPrice, present := obj["price"]
	if !present || rawPrice == nil {
		return models.VariantInput{}, models.NewValidationError(field("price"), "price is required")
	}
	price, ok := utils.ToFloat(rawPrice)
	if !ok {
		return models.VariantInput{}, models.NewValidationError(field("price"), "price must be a number")
	}

	in := models.VariantInput{Weight: utils.Text(obj["weight"]), Price: price}
	if err := moneyColumn.check(field("price"), "price", price); err != nil {
		return models.VariantInput{}, err
	}

	optional := []struct {
		name   string
		column numericColumn
		dst    *float64
	}{
		{"sale_price", moneyColumn, &in.SalePrice},
		{"offer_percent", percentColumn, &in.OfferPercent},
		{"tax_percent", percentColumn, &in.TaxPercent},
		{"tax_amount", moneyColumn, &in.TaxAmount},
	}
	for _, o := range optional {
		v, ok := utils.ToFloat(obj[o.name])
		if !ok {
			continue
		}
		if err := o.column.check(field(o.name), o.name, v); err != nil {
			return models.VariantInput{}, err
		}
		*o.dst = v
	}

	if stock, ok := utils.ToFloat(obj["stock"]); ok {
		stock = math.Round(stock)
		if stock < math.MinInt32 || stock > math.MaxInt32 {
			return models.VariantInput{}, models.NewValidationError(field("stock"), "stock is out of range")
		}
		in.Stock = int(stock)
	}

	if err := r.validate.Struct(in); err != nil {
		return models.VariantInput{}, models.NewValidationError(field("weight"), "weight is required")
	}
	return in, nil
}

// Rows ties the inputs to a product, keeping submission order.
func (r *VariantReconciler) Rows(productID int, inputs []models.VariantInput) []models.Variant {
	rows := make([]models.Variant, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, models.Variant{
			ProductID:    productID,
			Weight:       in.Weight,
			Price:        in.Price,
			SalePrice:    in.SalePrice,
			OfferPercent: in.OfferPercent,
			TaxPercent:   in.TaxPercent,
			TaxAmount:    in.TaxAmount,
			Stock:        in.Stock,
		})
	}
	return rows
}

// Apply deletes every existing variant of the product, then inserts the inputs.
func (r *VariantReconciler) Apply(ctx context.Context, store CatalogStore, productID int, inputs []models.VariantInput) error {
	return store.ReplaceVariants(ctx, productID, r.Rows(productID, inputs))
}
