package plantings

import (
	"context"
	"errors"
	"fmt"

	"github.com/aescanero/plantings-render/internal/template"
	"go.uber.org/zap"
)

var (
	// ErrTemplateRegistration is returned when the layout is not valid Handlebars
	ErrTemplateRegistration = errors.New("template registration failed")

	// ErrRender is returned when the content template fails to render
	ErrRender = errors.New("render failed")
)

// Renderer renders the plantings list
type Renderer struct {
	layout  string
	content string
	logger  *zap.Logger
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLayout replaces the embedded layout source
func WithLayout(source string) Option {
	return func(r *Renderer) {
		r.layout = source
	}
}

// WithContent replaces the embedded content source
func WithContent(source string) Option {
	return func(r *Renderer) {
		r.content = source
	}
}

// NewRenderer creates a renderer over the embedded templates
func NewRenderer(logger *zap.Logger, opts ...Option) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Renderer{
		layout:  Layout,
		content: Content,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Render registers the layout, renders the content against the payload and
// then registers the uppercase helper.
//
// Each call uses its own engine. The content is rendered directly, so the
// layout never wraps it, and the helper is registered after the render has
// completed, so it never applies to the returned document.
func (r *Renderer) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	engine := template.NewEngine()

	if err := engine.RegisterTemplate(LayoutName, r.layout); err != nil {
		r.logger.Error("failed to register layout",
			zap.String("template", LayoutName),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", ErrTemplateRegistration, err)
	}

	result, renderErr := engine.RenderTemplate(r.content, Payload())

	if err := engine.RegisterHelper(UppercaseHelper, template.Uppercase); err != nil {
		return "", fmt.Errorf("failed to register helper %s: %w", UppercaseHelper, err)
	}

	if renderErr != nil {
		r.logger.Error("failed to render plantings", zap.Error(renderErr))
		return "", fmt.Errorf("%w: %w", ErrRender, renderErr)
	}

	r.logger.Debug("rendered plantings",
		zap.Int("plants", len(Plants())),
		zap.Int("bytes", len(result)),
	)

	return result, nil
}

// Render renders the embedded templates without logging
func Render() (string, error) {
	return NewRenderer(nil).Render(context.Background())
}

// MustRender is like Render but panics on failure
func MustRender() string {
	result, err := Render()
	if err != nil {
		panic(err)
	}
	return result
}
