package repos

import (
	"catalogview/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productColumns = `
    p.ProductID, p.ProductName, p.Description, p.CategoryID, c.CategoryName,
    p.UnitPrice, p.ImageURL, COALESCE(p.DateAdded,'') AS DateAdded, p.LastUpdated
  FROM Products p
  LEFT JOIN Categories c ON c.CategoryID = p.CategoryID`

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `SELECT`+productColumns+`
  ORDER BY p.ProductID`)
	return out, err
}

func (r *ProductRepo) Get(id int) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productColumns+`
  WHERE p.ProductID = ?`, id)
	return p, err
}

// Create inserts the product and returns the new ProductID.
func (r *ProductRepo) Create(np domain.NewProduct) (int, error) {
	var desc *string
	if np.Description != "" {
		desc = &np.Description
	}
	res, err := r.db.Exec(`
  INSERT INTO Products(ProductName, Description, CategoryID, UnitPrice, ImageURL)
  VALUES(?,?,?,?,?)`, np.Name, desc, np.CategoryID, np.UnitPrice.InexactFloat64(), np.ImageURL)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	return int(id), err
}

// Delete reports whether a row was removed.
func (r *ProductRepo) Delete(id int) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM Products WHERE ProductID = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
