package template

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/aymerick/raymond"
)

// Engine renders Handlebars templates.
//
// Named templates and helpers live on the engine rather than in raymond's
// global registries, so every engine starts empty and never sees
// registrations made on another one.
type Engine struct {
	templates map[string]*raymond.Template
	helpers   map[string]interface{}
	cache     map[string]*raymond.Template
	mu        sync.RWMutex
}

// NewEngine creates a new template engine with no templates or helpers
func NewEngine() *Engine {
	return &Engine{
		templates: make(map[string]*raymond.Template),
		helpers:   make(map[string]interface{}),
		cache:     make(map[string]*raymond.Template),
	}
}

// RegisterTemplate parses source and stores it under name.
//
// A registered template can be rendered with Render and is available as a
// partial ({{> name}}) to every template rendered afterwards.
func (e *Engine) RegisterTemplate(name, source string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("template name is required")
	}

	tmpl, err := raymond.Parse(source)
	if err != nil {
		return fmt.Errorf("failed to register template %q: parse error: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.templates[name]; ok {
		return fmt.Errorf("template %q already registered", name)
	}
	e.templates[name] = tmpl

	return nil
}

// RegisterHelper stores a helper for use by later renders.
//
// Renders that already completed are not affected.
func (e *Engine) RegisterHelper(name string, helper interface{}) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("helper name is required")
	}

	if err := validateHelper(helper); err != nil {
		return fmt.Errorf("invalid helper %q: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.helpers[name]; ok {
		return fmt.Errorf("helper %q already registered", name)
	}
	e.helpers[name] = helper

	return nil
}

// RenderTemplate renders a template source string with the given data
func (e *Engine) RenderTemplate(templateStr string, data interface{}) (string, error) {
	// Get or compile template
	tmpl, err := e.getTemplate(templateStr)
	if err != nil {
		return "", fmt.Errorf("failed to compile template: %w", err)
	}

	return e.exec(tmpl, data)
}

// Render renders a registered template with the given data
func (e *Engine) Render(name string, data interface{}) (string, error) {
	e.mu.RLock()
	registered, ok := e.templates[name]
	e.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("template %q not registered", name)
	}

	return e.exec(registered.Clone(), data)
}

// exec attaches the current partials and helpers to tmpl and executes it.
// tmpl must be a private copy.
func (e *Engine) exec(tmpl *raymond.Template, data interface{}) (string, error) {
	e.mu.RLock()
	for name, partial := range e.templates {
		tmpl.RegisterPartialTemplate(name, partial)
	}
	if len(e.helpers) > 0 {
		tmpl.RegisterHelpers(e.helpers)
	}
	e.mu.RUnlock()

	// Execute the template
	result, err := tmpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return result, nil
}

// getTemplate returns a private copy of the compiled template, compiling and
// caching it on first use
func (e *Engine) getTemplate(templateStr string) (*raymond.Template, error) {
	// Check cache first (read lock)
	e.mu.RLock()
	if tmpl, ok := e.cache[templateStr]; ok {
		e.mu.RUnlock()
		return tmpl.Clone(), nil
	}
	e.mu.RUnlock()

	// Compile the template (write lock)
	e.mu.Lock()
	defer e.mu.Unlock()

	// Check again in case another goroutine compiled it
	if tmpl, ok := e.cache[templateStr]; ok {
		return tmpl.Clone(), nil
	}

	// Parse and compile the template
	tmpl, err := raymond.Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	// Cache the pristine template, hand out copies
	e.cache[templateStr] = tmpl

	return tmpl.Clone(), nil
}

// ValidateTemplate validates a template without rendering it
func (e *Engine) ValidateTemplate(templateStr string) error {
	_, err := raymond.Parse(templateStr)
	return err
}

// HasTemplate reports whether a template is registered under name
func (e *Engine) HasTemplate(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.templates[name]
	return ok
}

// HasHelper reports whether a helper is registered under name
func (e *Engine) HasHelper(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.helpers[name]
	return ok
}

// ClearCache clears the compiled template cache
func (e *Engine) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cache = make(map[string]*raymond.Template)
}

// validateHelper mirrors raymond's own check, which panics instead of
// returning an error
func validateHelper(helper interface{}) error {
	if helper == nil {
		return fmt.Errorf("helper is nil")
	}

	t := reflect.TypeOf(helper)
	if t.Kind() != reflect.Func {
		return fmt.Errorf("helper must be a function, got %T", helper)
	}

	if t.NumOut() != 1 {
		return fmt.Errorf("helper must return exactly one value, got %d", t.NumOut())
	}

	return nil
}

// Uppercase converts a string to uppercase
func Uppercase(str string) string {
	return strings.ToUpper(str)
}
