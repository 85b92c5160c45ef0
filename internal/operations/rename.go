package operations

import (
	"context"
	"fmt"

	"clinear/internal/linear"
	"clinear/internal/prompt"
	"clinear/internal/transform"
)

type RenameOptions struct {
	Transform       transform.Options
	IgnoreUnmatched bool
	DryRun          bool
}

// RenamePlanEntry is one proposed rename.
type RenamePlanEntry struct {
	ID     string
	Before string
	After  string
}

// BuildRenamePlan applies the transform to each label in order. A label that
// does not match fails the whole plan unless ignoreUnmatched is set.
func BuildRenamePlan(labels []linear.Label, opts transform.Options, ignoreUnmatched bool) ([]RenamePlanEntry, error) {
	var plan []RenamePlanEntry
	for _, label := range labels {
		after, ok := transform.Apply(label.Name, opts)
		if !ok {
			if ignoreUnmatched {
				continue
			}
			pattern := transform.DefaultPattern
			if opts.Pattern != nil {
				pattern = opts.Pattern.MatchExpr()
			}
			return nil, &PatternMismatchError{Label: label.Name, Pattern: pattern}
		}
		plan = append(plan, RenamePlanEntry{ID: label.ID, Before: label.Name, After: after})
	}

	if len(plan) == 0 {
		return nil, ErrNoMatches
	}
	return plan, nil
}

// RenameLabels renames a chosen set of labels after a per-row review.
func (o *Operations) RenameLabels(ctx context.Context, opts RenameOptions) (*Summary, error) {
	labels, err := o.loadLabels(ctx)
	if err != nil {
		return nil, err
	}

	selected, err := o.selectLabels(
		"Which labels do you want to rename?",
		labelChoices(labels, func(l linear.Label) string { return l.Name }),
		indexLabels(labels),
	)
	if err != nil {
		return nil, err
	}

	o.reporter.Start("Applying patterns")
	plan, err := BuildRenamePlan(selected, opts.Transform, opts.IgnoreUnmatched)
	if err != nil {
		o.reporter.Fail(err.Error())
		return nil, err
	}
	o.reporter.Succeed(fmt.Sprintf("Applied patterns to %d labels", len(plan)))

	if opts.DryRun {
		o.displayRenamePlan(plan)
		return &Summary{Total: len(plan)}, nil
	}

	rows := make([]prompt.ReviewRow, 0, len(plan))
	for _, entry := range plan {
		rows = append(rows, prompt.ReviewRow{
			Value: entry.ID,
			Title: fmt.Sprintf("'%s' => '%s'", entry.Before, entry.After),
		})
	}

	acceptedIDs, err := o.prompter.Review("Apply changes?", rows)
	if err != nil {
		return nil, promptError(err)
	}

	keep := make(map[string]bool, len(acceptedIDs))
	for _, id := range acceptedIDs {
		keep[id] = true
	}
	var accepted []RenamePlanEntry
	for _, entry := range plan {
		if keep[entry.ID] {
			accepted = append(accepted, entry)
		}
	}

	o.reporter.Start("Applying changes")
	summary := o.applyEach(ctx, len(accepted),
		func(i int) error {
			after := accepted[i].After
			_, err := o.client.UpdateLabel(ctx, accepted[i].ID, linear.LabelUpdate{Name: &after})
			return err
		},
		func(i int, err error) {
			e := accepted[i]
			o.reporter.Errorf("Failed to update label <%s> '%s' => '%s': %v", e.ID, e.Before, e.After, err)
		},
	)

	if summary.Failed > 0 {
		o.reporter.Warn(fmt.Sprintf("Renamed %d labels with %d errors", summary.Succeeded, summary.Failed))
	} else {
		o.reporter.Succeed(fmt.Sprintf("Renamed %d labels", summary.Succeeded))
	}
	return &summary, nil
}
