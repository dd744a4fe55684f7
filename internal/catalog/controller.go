// Package catalog drives the product catalog page: category options, the product
// list, the add form and delete actions, all against the remote catalog API.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"catalogview/internal/apiclient"
	applog "catalogview/internal/log"
	"catalogview/internal/validate"
)

// DefaultClearDelay is how long success and error messages stay up.
const DefaultClearDelay = 4 * time.Second

var (
	ErrDeclined = errors.New("delete not confirmed")
	ErrBadID    = errors.New("invalid product id")
	ErrInFlight = errors.New("delete already in progress")
)

const (
	msgNoProducts      = "No products found."
	msgNoneLeft        = "No products to display. Click 'Load Products' or add a new one."
	msgInvalidForm     = "Product Name and a valid Unit Price are required."
	msgAdding          = "Adding product..."
	msgAddFailed       = "Error adding product. Please try again."
	msgDeleteFailedFmt = "Error deleting product ID %d. Please try again."
)

type Controller struct {
	api  API
	view View

	clearDelay time.Duration
	after      Scheduler
	now        func() time.Time

	feedback slot
	notice   slot

	mu       sync.Mutex
	deleting map[int]struct{}
}

type Option func(*Controller)

// WithClearDelay sets how long success and error messages stay visible.
func WithClearDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.clearDelay = d
		}
	}
}

// WithScheduler replaces time.AfterFunc for message expiry.
func WithScheduler(s Scheduler) Option { return func(c *Controller) { c.after = s } }

// WithClock sets the reference time for relative dates.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

func NewController(api API, view View, opts ...Option) *Controller {
	c := &Controller{
		api:        api,
		view:       view,
		clearDelay: DefaultClearDelay,
		after:      afterFunc,
		now:        time.Now,
		deleting:   map[int]struct{}{},
	}
	c.feedback.show = view.ShowFeedback
	c.notice.show = view.ShowNotice
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) setFeedback(k Kind, text string) {
	c.feedback.set(Feedback{Kind: k, Text: text}, c.clearDelay, c.after)
}

func (c *Controller) setNotice(k Kind, text string) {
	c.notice.set(Feedback{Kind: k, Text: text}, c.clearDelay, c.after)
}

// LoadCategories fills the category control. A failure leaves a single error entry
// and is not fatal to the rest of the page.
func (c *Controller) LoadCategories() error {
	cats, err := c.api.Categories()
	if err != nil {
		applog.Error(nil, "catalog.categories.load.fail", err, nil)
		c.view.SetCategoryOptions([]CategoryOption{{Value: "", Label: categoryFailed}})
		return err
	}
	c.view.SetCategoryOptions(categoryOptions(cats))
	return nil
}

// LoadProducts replaces the product list with the current server state.
func (c *Controller) LoadProducts() error {
	c.view.SetBusy(true)
	defer c.view.SetBusy(false)

	list, err := c.api.Products()
	if err != nil {
		applog.Error(nil, "catalog.products.load.fail", err, nil)
		c.view.ShowPlaceholder(Placeholder{Kind: PlaceholderError, Text: "Error loading products: " + err.Error()})
		return err
	}
	if len(list) == 0 {
		c.view.ShowPlaceholder(Placeholder{Kind: PlaceholderEmpty, Text: msgNoProducts})
		return nil
	}
	c.view.ShowProducts(renderProducts(list, c.now()))
	return nil
}

// AddProduct validates the form, creates the product and refreshes the list.
// It returns the server-assigned id, which is 0 when the server did not report one.
func (c *Controller) AddProduct(form ProductForm) (int, error) {
	np, err := form.NewProduct()
	if err != nil {
		c.setFeedback(Error, msgInvalidForm)
		return 0, err
	}

	c.setFeedback(Info, msgAdding)
	created, err := c.api.CreateProduct(np)
	if err != nil {
		applog.Error(nil, "catalog.products.create.fail", err, map[string]any{"name": np.Name})
		c.setFeedback(Error, failureText(err, msgAddFailed))
		return 0, err
	}

	if created.ID > 0 {
		c.setFeedback(Success, fmt.Sprintf("Product added successfully! (ID: %d)", created.ID))
	} else {
		c.setFeedback(Success, "Product added successfully!")
	}
	c.view.ResetForm()
	// The refresh reports its own failure in the product container.
	_ = c.LoadProducts()
	return created.ID, nil
}

// DeleteProduct asks for confirmation, deletes the product and drops its block.
// A second delete of the same id while one is in flight is ignored.
func (c *Controller) DeleteProduct(rawID string, confirm Confirmer) error {
	id, ok := validate.ID(rawID)
	if !ok {
		c.setNotice(Error, "Invalid product ID.")
		return ErrBadID
	}
	if !confirm.Confirm(fmt.Sprintf("Are you sure you want to delete product ID %d?", id)) {
		return ErrDeclined
	}
	if !c.beginDelete(id) {
		return ErrInFlight
	}
	defer c.endDelete(id)

	c.setNotice(Info, fmt.Sprintf("Deleting product ID %d...", id))
	res, err := c.api.DeleteProduct(id)
	if err != nil {
		applog.Error(nil, "catalog.products.delete.fail", err, map[string]any{"product_id": id})
		c.setNotice(Error, failureText(err, fmt.Sprintf(msgDeleteFailedFmt, id)))
		return err
	}

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Product ID %d deleted successfully.", id)
	}
	c.setNotice(Success, msg)

	if remaining, removed := c.view.RemoveProduct(id); removed && remaining == 0 {
		c.view.ShowPlaceholder(Placeholder{Kind: PlaceholderEmpty, Text: msgNoneLeft})
	}
	return nil
}

func (c *Controller) beginDelete(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.deleting[id]; busy {
		return false
	}
	c.deleting[id] = struct{}{}
	return true
}

func (c *Controller) endDelete(id int) {
	c.mu.Lock()
	delete(c.deleting, id)
	c.mu.Unlock()
}

// failureText prefers the server's own message, then the status, then the transport error.
func failureText(err error, generic string) string {
	var ae *apiclient.APIError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae.Message
		}
		return generic + " (HTTP status " + strconv.Itoa(ae.Status) + ")"
	}
	var te *apiclient.TransportError
	if errors.As(err, &te) {
		return generic + " (" + te.Error() + ")"
	}
	return err.Error()
}
