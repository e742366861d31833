package host

import (
	"context"
	"errors"
	"fmt"
)

// Stylesheet is the name of the stylesheet installed with the search script.
const Stylesheet = "searchbar.css"

// PageInjector installs listeners into pages of a Registry.
type PageInjector struct {
	registry *Registry
	factory  ListenerFactory
}

var _ Injector = (*PageInjector)(nil)

// NewPageInjector creates an injector creating listeners with factory.
func NewPageInjector(registry *Registry, factory ListenerFactory) (*PageInjector, error) {
	if registry == nil {
		return nil, errors.New("registry is required")
	}
	if factory == nil {
		return nil, errors.New("listener factory is required")
	}
	return &PageInjector{registry: registry, factory: factory}, nil
}

// InjectScript installs a fresh listener into the page shown in tabID. A page
// that already has a listener keeps it.
func (p *PageInjector) InjectScript(ctx context.Context, tabID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	page, err := p.registry.Page(tabID)
	if err != nil {
		return err
	}
	if p.registry.Listener(tabID) != nil {
		return nil
	}

	l, err := p.factory(page.Document)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	return p.registry.Listen(tabID, l)
}

// InjectCSS records the search stylesheet on the page shown in tabID.
func (p *PageInjector) InjectCSS(ctx context.Context, tabID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.registry.AddStylesheet(tabID, Stylesheet)
}
