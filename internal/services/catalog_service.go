package services

import (
	"database/sql"
	"errors"
	"fmt"

	"catalogview/internal/domain"
	"catalogview/internal/repos"
	"catalogview/internal/validate"
)

var ErrNotFound = errors.New("product not found")

// InvalidError carries a reason meant to be shown to the API caller.
type InvalidError struct{ Reason string }

func (e *InvalidError) Error() string { return e.Reason }

type CatalogService struct {
	Cats  *repos.CategoryRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods}
}

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.List()
}

func (s *CatalogService) ListProducts() ([]domain.Product, error) {
	return s.Prods.List()
}

func (s *CatalogService) GetProduct(id int) (domain.Product, error) {
	p, err := s.Prods.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	return p, err
}

// CreateProduct stores np and returns the stored row. Validation failures are *InvalidError.
func (s *CatalogService) CreateProduct(np domain.NewProduct) (domain.Product, error) {
	if np.Name == "" || !validate.PriceInRange(np.UnitPrice) {
		return domain.Product{}, &InvalidError{Reason: "Missing required fields: ProductName and a positive UnitPrice"}
	}
	if np.CategoryID != nil {
		ok, err := s.Cats.Exists(*np.CategoryID)
		if err != nil {
			return domain.Product{}, err
		}
		if !ok {
			return domain.Product{}, &InvalidError{Reason: fmt.Sprintf("Category with ID %d not found.", *np.CategoryID)}
		}
	}
	id, err := s.Prods.Create(np)
	if err != nil {
		return domain.Product{}, err
	}
	return s.Prods.Get(id)
}

func (s *CatalogService) DeleteProduct(id int) error {
	removed, err := s.Prods.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
