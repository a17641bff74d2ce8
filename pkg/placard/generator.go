package placard

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator renders one multi-page placard document per shipment from a
// read-only template. The template is cloned for every page render, so
// a single Generator is safe for concurrent Render calls on independent
// shipments.
type Generator struct {
	template *Document
	config   *Config
	logger   *Logger
	observer RenderObserver
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the logger used for render progress and warnings.
func WithLogger(logger *Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithObserver sets the observer receiving assembly callbacks. It
// replaces the default logger-backed observer.
func WithObserver(obs RenderObserver) GeneratorOption {
	return func(g *Generator) {
		if obs != nil {
			g.observer = obs
		}
	}
}

// WithConfig sets the generator configuration.
func WithConfig(config *Config) GeneratorOption {
	return func(g *Generator) {
		if config != nil {
			g.config = config
		}
	}
}

// NewGenerator creates a generator around a template document.
func NewGenerator(template *Document, opts ...GeneratorOption) (*Generator, error) {
	if template == nil {
		return nil, &TemplateUnavailableError{Cause: fmt.Errorf("nil template document")}
	}
	g := &Generator{
		template: template,
		config:   DefaultConfig(),
		logger:   NopLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.observer == nil {
		g.observer = LogObserver{Logger: g.logger}
	}
	return g, nil
}

// RenderResult is the outcome of rendering one shipment.
type RenderResult struct {
	// ID correlates this render across batch logs.
	ID       uuid.UUID
	Shipment string
	Doc      *Document
	Pages    int
	Degraded bool
}

// Render builds the multi-page document for one shipment from its
// validated rows. Rows must all belong to the shipment and have passed
// upstream validation; grouping by order number, aggregation, and page
// assembly happen here. Errors are per-shipment values: the caller
// collects them and keeps going with other shipments.
func (g *Generator) Render(shipment string, rows []Row) (*RenderResult, error) {
	if len(rows) == 0 {
		return nil, &EmptyGroupSetError{Shipment: shipment}
	}
	if g.config.MaxRecords > 0 && len(rows) > g.config.MaxRecords {
		return nil, fmt.Errorf("shipment %s has %d rows, limit is %d", shipment, len(rows), g.config.MaxRecords)
	}

	groups := GroupRows(rows)
	log := g.logger.WithField("shipment", shipment)
	log.Info("rendering %d groups", len(groups))

	shipmentRow := rows[0]
	pages := make([]Page, len(groups))
	for i, group := range groups {
		pages[i] = Page{
			Key:          group.Key,
			Replacements: g.truncated(group.Replacements(shipmentRow)),
		}
	}

	assembled, err := Assemble(g.template, pages, g.observer)
	if err != nil {
		return nil, err
	}
	if assembled.Degraded {
		log.Warn("document assembled with degraded formatting")
	}

	return &RenderResult{
		ID:       uuid.New(),
		Shipment: shipment,
		Doc:      assembled.Doc,
		Pages:    assembled.Pages,
		Degraded: assembled.Degraded,
	}, nil
}

// truncated enforces the max field length on replacement values. The
// substitution engine expects pre-truncated inputs and never truncates
// on its own.
func (g *Generator) truncated(m ReplacementMap) ReplacementMap {
	max := g.config.MaxFieldLength
	if max <= 0 {
		return m
	}
	for token, value := range m {
		if len(value) > max {
			m[token] = value[:max]
		}
	}
	return m
}
