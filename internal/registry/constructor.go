package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// Constructor is a constructible entity: anything that can produce a value
// from a set of keyword arguments built out of the configuration document.
type Constructor interface {
	Construct(ctx context.Context, args map[string]any) (any, error)
}

// Func adapts a plain function over the raw keyword-argument map to the
// Constructor interface.
type Func func(ctx context.Context, args map[string]any) (any, error)

// Construct implements Constructor.
func (f Func) Construct(ctx context.Context, args map[string]any) (any, error) {
	return f(ctx, args)
}

// Factory invokes a typed handler function. The keyword arguments are
// decoded into the struct returned by NewInput, then Fn is called with it.
// Fn must have the shape `func(ctx context.Context, input *T) (V, error)`.
type Factory struct {
	// NewInput returns a pointer to a fresh arguments struct. A nil NewInput
	// means the handler takes no arguments.
	NewInput func() any

	// Fn is the handler to invoke.
	Fn any
}

// Construct implements Constructor. Unknown argument names and argument
// values the input struct cannot hold are reported as errors, the closest
// thing Go has to a callable rejecting unexpected keyword arguments.
func (f *Factory) Construct(ctx context.Context, args map[string]any) (any, error) {
	fn := reflect.ValueOf(f.Fn)
	fnType := fn.Type()
	if fnType.Kind() != reflect.Func || fnType.NumIn() != 2 || fnType.NumOut() != 2 {
		return nil, fmt.Errorf("factory handler must be func(ctx, input) (value, error), got %T", f.Fn)
	}

	var inputValue reflect.Value
	if f.NewInput == nil {
		if len(args) > 0 {
			return nil, fmt.Errorf("handler does not accept arguments, got %d", len(args))
		}
		inputValue = reflect.Zero(fnType.In(1))
	} else {
		input := f.NewInput()
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           input,
			WeaklyTypedInput: true,
			ErrorUnused:      true,
		})
		if err != nil {
			return nil, fmt.Errorf("building argument decoder: %w", err)
		}
		if err := decoder.Decode(args); err != nil {
			return nil, fmt.Errorf("decoding arguments: %w", err)
		}
		inputValue = reflect.ValueOf(input)
	}

	results := fn.Call([]reflect.Value{reflect.ValueOf(ctx), inputValue})
	if errResult := results[1].Interface(); errResult != nil {
		return nil, errResult.(error)
	}
	return results[0].Interface(), nil
}
