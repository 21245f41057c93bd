package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	// ErrPersonalizationIsNotConstructed is returned when a Personalization
	// was not created through NewPersonalization.
	ErrPersonalizationIsNotConstructed = errors.New(
		"Personalization must be created via NewPersonalization constructor")

	// ErrDetailIsNotConstructed is returned when a Detail was not created
	// through NewDetail or RestoreDetail.
	ErrDetailIsNotConstructed = errors.New(
		"Detail must be created via NewDetail or RestoreDetail constructor")

	// ErrMandatoryIngredientExcluded is returned when a customization tries
	// to exclude an ingredient the product marks as mandatory.
	ErrMandatoryIngredientExcluded = errors.New("mandatory ingredient cannot be excluded")
)

// Personalization is a customization on a detail line: an ingredient that is
// included or excluded. Ingredients flagged mandatory cannot be excluded.
type Personalization struct { //nolint:recvcheck //using for validation
	ingredient string
	excluded   bool
	mandatory  bool

	guard guard.ConstructorGuard
}

// NewPersonalization creates a validated ingredient customization.
// Excluding a mandatory ingredient is rejected.
func NewPersonalization(ingredient string, excluded, mandatory bool) (Personalization, error) {
	if ingredient == "" {
		return Personalization{}, errs.NewValueIsRequiredError("ingredient")
	}
	if excluded && mandatory {
		return Personalization{}, fmt.Errorf("%w: %s", ErrMandatoryIngredientExcluded, ingredient)
	}

	return Personalization{
		ingredient: ingredient,
		excluded:   excluded,
		mandatory:  mandatory,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Personalization was created through NewPersonalization.
func (p Personalization) Validate() error {
	return p.guard.Validate(ErrPersonalizationIsNotConstructed)
}

// Ingredient returns the ingredient name.
func (p Personalization) Ingredient() string {
	return p.ingredient
}

// Excluded reports whether the ingredient is left out.
func (p Personalization) Excluded() bool {
	return p.excluded
}

// Mandatory reports whether the ingredient may not be excluded.
func (p Personalization) Mandatory() bool {
	return p.mandatory
}

// Detail is one line of an order: a product, its unit price, the ordered
// quantity, and the resulting subtotal. The subtotal always equals
// unitPrice * quantity; RestoreDetail re-checks this when rehydrating from
// persistence.
type Detail struct {
	id               kernel.UUID
	productID        kernel.UUID
	unitPrice        kernel.Money
	quantity         int
	subtotal         kernel.Money
	personalizations []Personalization

	guard guard.ConstructorGuard
}

// NewDetail creates a detail line, computing the subtotal from the unit
// price and quantity. Quantity must be positive.
func NewDetail(
	id kernel.UUID,
	productID kernel.UUID,
	unitPrice kernel.Money,
	quantity int,
	personalizations []Personalization,
) (Detail, error) {
	if err := errors.Join(
		id.Validate(),
		productID.Validate(),
		unitPrice.Validate(),
		validateQuantity(quantity),
		validatePersonalizations(personalizations),
	); err != nil {
		return Detail{}, err
	}

	subtotal, err := unitPrice.MultiplyBy(quantity)
	if err != nil {
		return Detail{}, err
	}

	return Detail{
		id:               id,
		productID:        productID,
		unitPrice:        unitPrice,
		quantity:         quantity,
		subtotal:         subtotal,
		personalizations: personalizations,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// RestoreDetail reconstructs a detail line from persistence, verifying that
// the stored subtotal is consistent with unit price and quantity.
func RestoreDetail(
	id kernel.UUID,
	productID kernel.UUID,
	unitPrice kernel.Money,
	quantity int,
	subtotal kernel.Money,
	personalizations []Personalization,
) (Detail, error) {
	d, err := NewDetail(id, productID, unitPrice, quantity, personalizations)
	if err != nil {
		return Detail{}, err
	}

	if !d.subtotal.IsEqual(subtotal) {
		return Detail{}, errs.NewValueIsInvalidErrorWithCause(
			"subtotal",
			fmt.Errorf("%s does not equal %s * %d", subtotal, unitPrice, quantity))
	}

	return d, nil
}

// Validate ensures the Detail was created through a constructor.
func (d Detail) Validate() error {
	return d.guard.Validate(ErrDetailIsNotConstructed)
}

// ID returns the detail line's unique identifier.
func (d Detail) ID() kernel.UUID {
	return d.id
}

// ProductID returns the identifier of the ordered product.
func (d Detail) ProductID() kernel.UUID {
	return d.productID
}

// UnitPrice returns the price of a single unit.
func (d Detail) UnitPrice() kernel.Money {
	return d.unitPrice
}

// Quantity returns the number of units ordered.
func (d Detail) Quantity() int {
	return d.quantity
}

// Subtotal returns unitPrice * quantity.
func (d Detail) Subtotal() kernel.Money {
	return d.subtotal
}

// Personalizations returns the detail's ingredient customizations.
func (d Detail) Personalizations() []Personalization {
	return d.personalizations
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return nil
}

func validatePersonalizations(personalizations []Personalization) error {
	for _, p := range personalizations {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
