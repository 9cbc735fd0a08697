// Package tool holds the agent's tool catalog: declarative specs with typed
// parameters, a registry that validates and dispatches calls, and the
// built-in handlers for menu search, knowledge lookup, recommendations and
// order management.
package tool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/ovenly/pizza-agent/agent/contract"
)

// Param describes one tool argument. Type is a JSON type name: string,
// number, integer, boolean, array or object.
type Param struct {
	Type        string
	Description string
	Required    bool
}

// Handler executes a tool call with validated arguments.
type Handler func(ctx context.Context, args map[string]any) (any, error)

type Spec struct {
	Name        string
	Description string
	Params      map[string]Param
	Handler     Handler
}

// Registry is the central tool catalog. Registering a name twice replaces
// the earlier spec.
type Registry struct {
	mu    sync.RWMutex
	specs map[string]Spec
	order []string
}

var _ contractx.Invoker = (*Registry)(nil)

func NewRegistry(specs ...Spec) (*Registry, error) {
	r := &Registry{specs: make(map[string]Spec)}
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(spec Spec) error {
	if strings.TrimSpace(spec.Name) == "" {
		return fmt.Errorf("%w: tool name is required", contractx.ErrValidation)
	}
	if spec.Handler == nil {
		return fmt.Errorf("%w: tool %s has no handler", contractx.ErrValidation, spec.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.specs[spec.Name]; !exists {
		r.order = append(r.order, spec.Name)
	}
	r.specs[spec.Name] = spec
	log.Debug().Str("tool", spec.Name).Msg("tool registered")
	return nil
}

func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.specs[name]
	return spec, ok
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Invoke validates the arguments against the tool's parameter schema and
// runs the handler. Unknown arguments are tolerated; missing required or
// mistyped ones are not.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (contractx.ToolResult, error) {
	spec, ok := r.Lookup(name)
	if !ok {
		return contractx.ToolResult{Tool: name}, fmt.Errorf("%w: %s", contractx.ErrToolNotFound, name)
	}

	if err := validateArgs(spec, args); err != nil {
		return contractx.ToolResult{Tool: name}, err
	}

	result, err := spec.Handler(ctx, args)
	if err != nil {
		if isDomainError(err) {
			return contractx.ToolResult{Tool: name, Error: err.Error()}, err
		}
		wrapped := fmt.Errorf("%w: %s: %v", contractx.ErrToolExecution, name, err)
		return contractx.ToolResult{Tool: name, Error: wrapped.Error()}, wrapped
	}
	return contractx.ToolResult{Tool: name, Result: result}, nil
}

// Describe renders the catalog for inclusion in the decision prompt.
func (r *Registry) Describe() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var b strings.Builder
	for _, name := range r.order {
		spec := r.specs[name]
		fmt.Fprintf(&b, "- %s: %s\n", spec.Name, spec.Description)

		params := make([]string, 0, len(spec.Params))
		for pname := range spec.Params {
			params = append(params, pname)
		}
		sort.Strings(params)
		for _, pname := range params {
			p := spec.Params[pname]
			req := "optional"
			if p.Required {
				req = "required"
			}
			fmt.Fprintf(&b, "    %s (%s, %s): %s\n", pname, p.Type, req, p.Description)
		}
	}
	return b.String()
}

func validateArgs(spec Spec, args map[string]any) error {
	for pname, p := range spec.Params {
		value, present := args[pname]
		if !present || value == nil {
			if p.Required {
				return fmt.Errorf("%w: %s: missing required parameter %q", contractx.ErrToolValidation, spec.Name, pname)
			}
			continue
		}
		if !matchesType(p.Type, value) {
			return fmt.Errorf("%w: %s: parameter %q must be a %s", contractx.ErrToolValidation, spec.Name, pname, p.Type)
		}
	}
	return nil
}

// matchesType checks a decoded JSON value against a JSON type name. Numbers
// arrive as float64 after generic decoding, so integer accepts whole floats.
func matchesType(typ string, value any) bool {
	switch typ {
	case "string":
		_, ok := value.(string)
		return ok
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "number":
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case "integer":
		switch v := value.(type) {
		case int, int64:
			return true
		case float64:
			return v == float64(int64(v))
		}
		return false
	case "array":
		_, ok := value.([]any)
		return ok
	case "object":
		_, ok := value.(map[string]any)
		return ok
	default:
		return true
	}
}

func isDomainError(err error) bool {
	for _, sentinel := range []error{
		contractx.ErrOrderNotFound,
		contractx.ErrInvalidTransition,
		contractx.ErrToolValidation,
		contractx.ErrValidation,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
