package catalog

import "catalogview/internal/domain"

// API is the remote catalog the controller reads from and writes to.
type API interface {
	Categories() ([]domain.Category, error)
	Products() ([]domain.Product, error)
	CreateProduct(np domain.NewProduct) (domain.CreatedProduct, error)
	DeleteProduct(id int) (domain.DeleteResult, error)
}

// View is everything the controller may touch on the page. Implementations must be
// safe for concurrent use: operations run independently and may overlap.
type View interface {
	SetCategoryOptions(opts []CategoryOption)
	SetBusy(busy bool)
	ShowProducts(blocks []ProductBlock)
	ShowPlaceholder(p Placeholder)
	// RemoveProduct drops the block keyed by id. removed is false when no such block is shown.
	RemoveProduct(id int) (remaining int, removed bool)
	ShowFeedback(f Feedback)
	ShowNotice(f Feedback)
	ResetForm()
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// CategoryOption is one entry of the category selection control.
type CategoryOption struct {
	Value string
	Label string
}

type PlaceholderKind int

const (
	PlaceholderEmpty PlaceholderKind = iota
	PlaceholderError
)

// Placeholder replaces the product blocks when there is nothing to list.
type Placeholder struct {
	Kind PlaceholderKind
	Text string
}

func (p Placeholder) IsError() bool { return p.Kind == PlaceholderError }

// ProductBlock is the display form of one product.
type ProductBlock struct {
	ID          int
	Name        string
	Description string
	Price       string
	Category    string
	ImageURL    string
	Added       string
	AddedAgo    string
}
