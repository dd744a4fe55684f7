package repos

import (
	"catalogview/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
  SELECT CategoryID, CategoryName, Description
  FROM Categories
  ORDER BY CategoryID
`)
	return out, err
}

func (r *CategoryRepo) Exists(id int) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM Categories WHERE CategoryID = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}
