package repos

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	applog "catalogview/internal/log"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and serializes sqlite writers.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS Categories(
  CategoryID INTEGER PRIMARY KEY AUTOINCREMENT,
  CategoryName TEXT NOT NULL,
  Description TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON Categories(LOWER(CategoryName));

CREATE TABLE IF NOT EXISTS Products(
  ProductID INTEGER PRIMARY KEY AUTOINCREMENT,
  ProductName TEXT NOT NULL,
  Description TEXT,
  CategoryID INTEGER NULL REFERENCES Categories(CategoryID) ON DELETE SET NULL,
  UnitPrice REAL NOT NULL CHECK (UnitPrice > 0 AND UnitPrice <= 1e9),
  ImageURL TEXT,
  DateAdded TEXT DEFAULT CURRENT_TIMESTAMP,
  LastUpdated TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON Products(CategoryID);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM Categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.Info(nil, "db.seed", map[string]any{"categories": 3, "products": 3})

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO Categories(CategoryName, Description) VALUES
	  ('Electronics','Phones, audio and accessories'),
	  ('Books','Printed and digital books'),
	  ('Home & Kitchen','Cookware and small appliances')`)

	tx.MustExec(`INSERT INTO Products(ProductName, Description, CategoryID, UnitPrice, ImageURL) VALUES
	  ('Wireless Headphones','Over-ear, 30h battery',1,89.99,NULL),
	  ('Go in Practice','Techniques for idiomatic Go',2,39.50,NULL),
	  ('Cast Iron Skillet','10 inch, pre-seasoned',3,24.00,NULL)`)

	return tx.Commit()
}
