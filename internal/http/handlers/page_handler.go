package handlers

import (
	"errors"

	"catalogview/internal/catalog"
	applog "catalogview/internal/log"
	"catalogview/internal/session"

	"github.com/gofiber/fiber/v2"
)

type PageHandler struct {
	Sessions *session.Store
}

func (h *PageHandler) session(c *fiber.Ctx) *session.Session {
	sess, created := h.Sessions.Get(c.Cookies("sid"))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sess.ID,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sess
}

// Home is a page load: it refreshes the category control and renders the page.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	sess := h.session(c)
	// A category failure is shown in the control itself.
	_ = sess.Controller.LoadCategories()
	return render(c, "index", fiber.Map{"Page": sess.Page.Snapshot()})
}

func (h *PageHandler) Load(c *fiber.Ctx) error {
	sess := h.session(c)
	_ = sess.Controller.LoadProducts()
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (h *PageHandler) Add(c *fiber.Ctx) error {
	sess := h.session(c)
	form := catalog.ProductForm{
		Name:        c.FormValue("productName"),
		Description: c.FormValue("description"),
		Price:       c.FormValue("unitPrice"),
		Category:    c.FormValue("categoryID"),
		Image:       c.FormValue("imageURL"),
	}
	sess.Page.KeepForm(form)

	id, err := sess.Controller.AddProduct(form)
	switch {
	case errors.Is(err, catalog.ErrValidation):
		applog.Security(c, "validation.fail", map[string]any{"form": "product"})
	case err == nil:
		applog.Audit(c, "product.add", map[string]any{"product_id": id})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// formConfirmer answers the controller's question from the submitted form and
// remembers what was asked.
type formConfirmer struct {
	answer string
	prompt string
}

func (f *formConfirmer) Confirm(prompt string) bool {
	f.prompt = prompt
	return f.answer == "yes"
}

// Delete renders the confirmation prompt first; the prompt posts back with confirm=yes.
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	sess := h.session(c)
	rawID := c.Params("id")
	conf := &formConfirmer{answer: c.FormValue("confirm")}

	err := sess.Controller.DeleteProduct(rawID, conf)
	switch {
	case errors.Is(err, catalog.ErrDeclined) && conf.answer == "":
		return render(c, "confirm", fiber.Map{"ID": rawID, "Prompt": conf.prompt})
	case errors.Is(err, catalog.ErrBadID):
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
	case err == nil:
		applog.Audit(c, "product.delete", map[string]any{"product_id": rawID})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
