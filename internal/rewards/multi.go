package rewards

import (
	"context"
	"errors"
)

// Multi hands each grant to every granter in order. One failure does not
// stop the others; the errors are joined.
type Multi []Granter

func (m Multi) Grant(ctx context.Context, g Grant) error {
	var errs []error
	for _, gr := range m {
		if err := gr.Grant(ctx, g); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
