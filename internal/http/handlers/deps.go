package handlers

import (
	"catalogview/internal/apiclient"
	"catalogview/internal/catalog"
	"catalogview/internal/config"
	"catalogview/internal/repos"
	"catalogview/internal/services"
	"catalogview/internal/session"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	PageHandler     *PageHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
}

// NewDeps wires the page against cfg.APIBaseURL. The API handlers are only built
// when db is non-nil, i.e. when this process serves the API itself.
func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	client := apiclient.New(cfg.APIBaseURL, cfg.APITimeout)
	store := session.NewStore(cfg.MaxSessions, cfg.SessionTTL, func(v catalog.View) *catalog.Controller {
		return catalog.NewController(client, v, catalog.WithClearDelay(cfg.FeedbackTTL))
	})

	d := &Deps{PageHandler: &PageHandler{Sessions: store}}
	if db != nil {
		catalogSvc := services.NewCatalogService(repos.NewCategoryRepo(db), repos.NewProductRepo(db))
		d.CategoryHandler = &CategoryHandler{Catalog: catalogSvc}
		d.ProductHandler = &ProductHandler{Catalog: catalogSvc}
	}
	return d
}
