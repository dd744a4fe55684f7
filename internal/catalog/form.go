package catalog

import (
	"errors"

	"catalogview/internal/domain"
	"catalogview/internal/validate"
)

// ErrValidation is returned when the form fails the client-side checks.
var ErrValidation = errors.New("product name and a positive unit price are required")

// ProductForm holds the raw values of the add-product form.
type ProductForm struct {
	Name        string
	Description string
	Price       string
	Category    string
	Image       string
}

// NewProduct checks name and price and builds the create request body.
// A blank or non-numeric category becomes null, as does a blank image.
func (f ProductForm) NewProduct() (domain.NewProduct, error) {
	name, ok := validate.Name(f.Name)
	if !ok {
		return domain.NewProduct{}, ErrValidation
	}
	price, ok := validate.Price(f.Price)
	if !ok {
		return domain.NewProduct{}, ErrValidation
	}
	return domain.NewProduct{
		Name:        name,
		Description: f.Description,
		UnitPrice:   price,
		CategoryID:  validate.OptionalInt(f.Category),
		ImageURL:    validate.OptionalString(f.Image),
	}, nil
}
