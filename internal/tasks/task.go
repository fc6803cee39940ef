// Package tasks runs structured AI tasks: validate input, build the prompt,
// invoke the model once, decode the output, then persist best-effort. The
// five task pipelines differ only in the descriptor they pass in.
package tasks

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/avelyx/prepmate/internal/providers/llm"
	"github.com/avelyx/prepmate/internal/utils"
)

// Descriptor parameterizes one task type.
type Descriptor[In any, Out any] struct {
	Name string // operation name, ex: "QuizService.Generate"

	// Validate rejects incomplete input before the model is invoked.
	Validate func(in In) error

	// Prompt builds the message sequence for the model.
	Prompt func(in In) []llm.Message

	// JSONOutput asks the provider for a single JSON object.
	JSONOutput bool
	MaxTokens  int

	// Decode turns the model's raw text into the typed output.
	Decode func(raw string) (Out, error)

	// Persist writes the durable record(s). Optional; failures never
	// override a computed result.
	Persist func(ctx context.Context, userID string, in In, out Out) error
}

// Result pairs a task's output with the outcome of its best-effort write.
// PersistErr set means the caller got their result but the durable record
// may be absent.
type Result[Out any] struct {
	Output     Out
	PersistErr error
}

// OutputError carries the undecodable raw text for diagnostics.
type OutputError struct {
	Raw string
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("schema decode failed: %v (raw: %.200s)", e.Err, e.Raw)
}

func (e *OutputError) Unwrap() error { return e.Err }

// Run executes one task pipeline sequentially. Validation and invocation
// failures are terminal; persistence failure is logged and reported in the
// result instead.
func Run[In any, Out any](ctx context.Context, inv llm.Provider, log *logrus.Logger, d Descriptor[In, Out], userID string, in In) (*Result[Out], error) {
	if d.Validate != nil {
		if err := d.Validate(in); err != nil {
			return nil, err
		}
	}

	raw, err := inv.Complete(ctx, llm.Request{
		Messages:   d.Prompt(in),
		JSONObject: d.JSONOutput,
		MaxTokens:  d.MaxTokens,
	})
	if err != nil {
		return nil, utils.E(utils.CodeModelInvocation, d.Name, "model invocation failed", err)
	}

	out, err := d.Decode(raw)
	if err != nil {
		return nil, utils.E(utils.CodeModelOutput, d.Name, "model output failed schema decode", &OutputError{Raw: raw, Err: err})
	}

	res := &Result[Out]{Output: out}
	if d.Persist != nil {
		if perr := d.Persist(ctx, userID, in, out); perr != nil {
			log.WithError(perr).WithFields(logrus.Fields{
				"task":    d.Name,
				"user_id": userID,
			}).Error("result computed but persistence failed")
			res.PersistErr = utils.E(utils.CodeInternal, d.Name, "failed to persist result", perr)
		}
	}
	return res, nil
}
