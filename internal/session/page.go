// Package session keeps the server-side state of each browser's catalog page.
package session

import (
	"sync"

	"catalogview/internal/catalog"
)

const initialPlaceholder = "Click 'Load Products' to see the catalog."

// Page is the rendered state of one catalog page. It implements catalog.View.
type Page struct {
	mu          sync.Mutex
	options     []catalog.CategoryOption
	busy        bool
	blocks      []catalog.ProductBlock
	placeholder *catalog.Placeholder
	feedback    catalog.Feedback
	notice      catalog.Feedback
	form        catalog.ProductForm
}

func NewPage() *Page {
	return &Page{placeholder: &catalog.Placeholder{Kind: catalog.PlaceholderEmpty, Text: initialPlaceholder}}
}

func (p *Page) SetCategoryOptions(opts []catalog.CategoryOption) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.options = append([]catalog.CategoryOption(nil), opts...)
}

func (p *Page) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = busy
}

func (p *Page) ShowProducts(blocks []catalog.ProductBlock) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blocks = append([]catalog.ProductBlock(nil), blocks...)
	p.placeholder = nil
}

func (p *Page) ShowPlaceholder(ph catalog.Placeholder) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.blocks = nil
	p.placeholder = &ph
}

func (p *Page) RemoveProduct(id int) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.blocks {
		if b.ID == id {
			p.blocks = append(p.blocks[:i:i], p.blocks[i+1:]...)
			return len(p.blocks), true
		}
	}
	return len(p.blocks), false
}

func (p *Page) ShowFeedback(f catalog.Feedback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.feedback = f
}

func (p *Page) ShowNotice(f catalog.Feedback) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notice = f
}

func (p *Page) ResetForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = catalog.ProductForm{}
}

// KeepForm remembers submitted values so a rejected form comes back filled in.
func (p *Page) KeepForm(f catalog.ProductForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = f
}

// Snapshot is a consistent copy of the page for templates.
type Snapshot struct {
	Options     []catalog.CategoryOption
	Busy        bool
	Products    []catalog.ProductBlock
	Placeholder *catalog.Placeholder
	Feedback    catalog.Feedback
	Notice      catalog.Feedback
	Form        catalog.ProductForm
}

// IsError reports whether the placeholder describes a failure.
func (s Snapshot) IsError() bool {
	return s.Placeholder != nil && s.Placeholder.IsError()
}

func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := Snapshot{
		Options:  append([]catalog.CategoryOption(nil), p.options...),
		Busy:     p.busy,
		Products: append([]catalog.ProductBlock(nil), p.blocks...),
		Feedback: p.feedback,
		Notice:   p.notice,
		Form:     p.form,
	}
	if p.placeholder != nil {
		ph := *p.placeholder
		s.Placeholder = &ph
	}
	return s
}
