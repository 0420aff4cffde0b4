package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Price is a decimal odds value read from a fixture file. Both quoted ("3.40") and
// bare (3.4) scalars are accepted.
type Price struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler
func (p *Price) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: odds must be a scalar", value.Line)
	}
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid odds %q: %w", value.Line, value.Value, err)
	}
	p.Decimal = d
	return nil
}

// Float returns the price as decimal odds
func (p Price) Float() float64 {
	f, _ := p.Float64()
	return f
}

// readFixture decodes a YAML fixture file into out, mapping failures to source errors
func readFixture(ctx context.Context, source, path string, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return NewSourceError(source, ErrCodeCanceled, "fetch canceled", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewSourceError(source, ErrCodeNotFound, "fixture file not found: "+path, ErrNotFound)
		}
		return NewSourceError(source, ErrCodeUnknown, "failed to read fixture file", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return NewSourceError(source, ErrCodeInvalidData, "failed to parse fixture file",
			fmt.Errorf("%w: %v", ErrInvalidData, err))
	}
	return nil
}
