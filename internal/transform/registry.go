package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters for CLI use.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (OfferTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_slider", createSetSlider)
	registry.Register("shift_slider", createShiftSlider)
	registry.Register("set_duration", createSetDuration)
	registry.Register("extend_duration", createExtendDuration)
	registry.Register("scale_market_value", createScaleMarketValue)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (OfferTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform spec string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_slider:percent=80"
func (r *TransformRegistry) ParseTransformSpec(spec string) (OfferTransform, error) {
	name, paramsStr, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if paramsStr = strings.TrimSpace(paramsStr); paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}

	return r.Create(strings.TrimSpace(name), params)
}

func intParam(transform, key string, params map[string]string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetSlider(params map[string]string) (OfferTransform, error) {
	pct, err := intParam("set_slider", "percent", params)
	if err != nil {
		return nil, err
	}
	return &SetSlider{Percent: pct}, nil
}

func createShiftSlider(params map[string]string) (OfferTransform, error) {
	points, err := intParam("shift_slider", "points", params)
	if err != nil {
		return nil, err
	}
	return &ShiftSlider{Points: points}, nil
}

func createSetDuration(params map[string]string) (OfferTransform, error) {
	years, err := intParam("set_duration", "years", params)
	if err != nil {
		return nil, err
	}
	return &SetDuration{Years: years}, nil
}

func createExtendDuration(params map[string]string) (OfferTransform, error) {
	years, err := intParam("extend_duration", "years", params)
	if err != nil {
		return nil, err
	}
	return &ExtendDuration{Years: years}, nil
}

func createScaleMarketValue(params map[string]string) (OfferTransform, error) {
	raw, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("scale_market_value requires 'percent' parameter")
	}
	pct, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}
	return &ScaleMarketValue{Percent: pct}, nil
}
