package cmd

import (
	"context"

	"github.com/lawrencejones/bytesink/internal/telem"
	"github.com/lawrencejones/bytesink/pkg/sinks/format"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"
)

// printAll prints each value in turn, stopping at the first failure. Output already
// written when a later value fails is left in place.
func printAll(ctx context.Context, out *format.Sink, values []int64, newline bool) error {
	ctx, span, logger := telem.StartSpan(ctx, "cmd/bytesink/cmd.printAll")
	defer span.End()

	span.AddAttributes(
		trace.Int64Attribute("count", int64(len(values))),
		trace.BoolAttribute("newline", newline),
	)

	printValue := out.PrintInteger
	if newline {
		printValue = out.PrintIntegerLine
	}

	for idx, value := range values {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := printValue(value); err != nil {
			return errors.Wrapf(err, "failed to print value %d at index %d", value, idx)
		}
	}

	logger.Log("event", "printed", "count", len(values), "newline", newline)
	return nil
}
