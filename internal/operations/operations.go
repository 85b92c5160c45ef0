package operations

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"slices"
	"strings"
	"time"

	"clinear/internal/linear"
	"clinear/internal/progress"
	"clinear/internal/prompt"
)

const (
	defaultMaxRetries = 3    // Default maximum retries for rate-limited updates
	maxBackoffDelay   = 32   // Maximum backoff delay in seconds
	jitterMaxMs       = 1000 // Maximum jitter in milliseconds
)

// LabelService is the subset of the Linear API the workflows use.
type LabelService interface {
	ListLabels(ctx context.Context) ([]linear.Label, error)
	UpdateLabel(ctx context.Context, id string, update linear.LabelUpdate) (linear.Label, error)
}

type Config struct {
	MaxRetries int       // Maximum retries for retryable update failures
	Out        io.Writer // Where plan tables and retry notices are written
}

type Operations struct {
	client   LabelService
	prompter prompt.Prompter
	reporter progress.Reporter
	config   *Config
	sleep    func(ctx context.Context, d time.Duration) error
}

// Summary counts the outcome of an apply loop.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

func NewOperations(client LabelService, prompter prompt.Prompter, reporter progress.Reporter) *Operations {
	return NewOperationsWithConfig(client, prompter, reporter, &Config{
		MaxRetries: defaultMaxRetries,
		Out:        os.Stdout,
	})
}

func NewOperationsWithConfig(client LabelService, prompter prompt.Prompter, reporter progress.Reporter, config *Config) *Operations {
	if config.Out == nil {
		config.Out = os.Stdout
	}
	return &Operations{
		client:   client,
		prompter: prompter,
		reporter: reporter,
		config:   config,
		sleep:    sleepContext,
	}
}

// retryWithBackoff performs an operation with exponential backoff for retryable failures
func (o *Operations) retryWithBackoff(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt <= o.config.MaxRetries; attempt++ {
		if attempt > 0 {
			baseDelay := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			jitter := time.Duration(rand.Intn(jitterMaxMs)) * time.Millisecond
			delay := baseDelay + jitter

			if delay > maxBackoffDelay*time.Second {
				delay = maxBackoffDelay * time.Second
			}

			fmt.Fprintf(o.config.Out, "   ⏳ Request failed (retryable), waiting %v before retry %d/%d...\n", delay.Round(time.Millisecond), attempt, o.config.MaxRetries)
			if err := o.sleep(ctx, delay); err != nil {
				return fmt.Errorf("retry interrupted after %d attempts: %w", attempt, err)
			}
		}

		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !linear.IsRetryable(err) {
			return err
		}
	}

	if o.config.MaxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("operation failed after %d retries: %w", o.config.MaxRetries, lastErr)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// loadLabels fetches the label snapshot used for the rest of the run.
func (o *Operations) loadLabels(ctx context.Context) ([]linear.Label, error) {
	o.reporter.Start("Loading labels")
	labels, err := o.client.ListLabels(ctx)
	if err != nil {
		o.reporter.Fail("Failed to load labels")
		return nil, &RemoteError{Op: "list labels", Err: err}
	}
	o.reporter.Succeed(fmt.Sprintf("Loaded %d labels", len(labels)))
	return labels, nil
}

// labelChoices turns labels into prompt choices sorted case-insensitively by name.
func labelChoices(labels []linear.Label, name func(linear.Label) string) []prompt.Choice {
	choices := make([]prompt.Choice, 0, len(labels))
	for _, label := range labels {
		choices = append(choices, prompt.Choice{Value: label.ID, Name: name(label)})
	}
	slices.SortStableFunc(choices, func(a, b prompt.Choice) int {
		if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return choices
}

func namePrefixFilter(c prompt.Choice, input string) bool {
	return strings.HasPrefix(c.Name, input)
}

// selectLabels asks for a non-empty set of label ids and resolves them
// against the snapshot, dropping duplicates.
func (o *Operations) selectLabels(message string, choices []prompt.Choice, byID map[string]linear.Label) ([]linear.Label, error) {
	ids, err := o.prompter.MultiSelect(prompt.MultiSelectConfig{
		Message: message,
		Choices: choices,
		Filter:  namePrefixFilter,
	})
	if err != nil {
		return nil, promptError(err)
	}

	seen := make(map[string]bool, len(ids))
	var selected []linear.Label
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		label, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("selected label %s is not in the loaded label set", id)
		}
		selected = append(selected, label)
	}

	if len(selected) == 0 {
		return nil, ErrEmptySelection
	}
	return selected, nil
}

func indexLabels(labels []linear.Label) map[string]linear.Label {
	byID := make(map[string]linear.Label, len(labels))
	for _, label := range labels {
		byID[label.ID] = label
	}
	return byID
}

// applyEach runs update for every item in order, one at a time. A failing
// item is reported and skipped; it never stops the loop.
func (o *Operations) applyEach(ctx context.Context, total int, update func(i int) error, onError func(i int, err error)) Summary {
	summary := Summary{Total: total}
	for i := 0; i < total; i++ {
		if err := o.retryWithBackoff(ctx, func() error { return update(i) }); err != nil {
			summary.Failed++
			onError(i, err)
		} else {
			summary.Succeeded++
		}
		o.reporter.Report(i+1, total)
	}
	return summary
}
