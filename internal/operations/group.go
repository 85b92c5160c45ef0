package operations

import (
	"context"
	"fmt"
	"strings"

	"clinear/internal/linear"
	"clinear/internal/prompt"
)

type GroupOptions struct {
	DryRun bool
}

// GroupLabels moves a chosen set of ungrouped labels under a chosen group.
func (o *Operations) GroupLabels(ctx context.Context, opts GroupOptions) (*Summary, error) {
	labels, err := o.loadLabels(ctx)
	if err != nil {
		return nil, err
	}
	byID := indexLabels(labels)

	var orphaned []linear.Label
	for _, label := range labels {
		if label.Orphaned() {
			orphaned = append(orphaned, label)
		}
	}

	selected, err := o.selectLabels(
		"Which labels do you want to move?",
		labelChoices(orphaned, func(l linear.Label) string { return l.Name }),
		byID,
	)
	if err != nil {
		return nil, err
	}

	targetID, err := o.prompter.Select(prompt.SelectConfig{
		Message: fmt.Sprintf("Which group do you want to move %d labels to?", len(selected)),
		Choices: groupTargetChoices(labels, selected),
		Filter:  groupTargetFilter,
	})
	if err != nil {
		return nil, promptError(err)
	}

	target, ok := byID[targetID]
	if !ok {
		return nil, fmt.Errorf("group %s is not in the loaded label set", targetID)
	}

	if opts.DryRun {
		o.displayGroupPlan(selected, target)
		return &Summary{Total: len(selected)}, nil
	}

	accepted, err := o.prompter.Confirm(
		fmt.Sprintf("Are you sure you want to group %d labels under %s?", len(selected), target.Name), true)
	if err != nil {
		return nil, promptError(err)
	}
	if !accepted {
		return nil, ErrAborted
	}

	o.reporter.Start("Moving labels")
	parentID := target.ID
	summary := o.applyEach(ctx, len(selected),
		func(i int) error {
			_, err := o.client.UpdateLabel(ctx, selected[i].ID, linear.LabelUpdate{ParentID: &parentID})
			return err
		},
		func(i int, err error) {
			o.reporter.Errorf("Failed to move label <%s>: %v", selected[i].ID, err)
		},
	)

	if summary.Failed > 0 {
		o.reporter.Warn(fmt.Sprintf("Moved %d of %d labels to %s with %d errors", summary.Succeeded, summary.Total, target.Name, summary.Failed))
	} else {
		o.reporter.Succeed(fmt.Sprintf("All %d labels moved to %s", summary.Succeeded, target.Name))
	}
	return &summary, nil
}

const groupTagSeparator = " | "

// groupTargetChoices offers every label not being moved, tagged "group" or "label".
func groupTargetChoices(labels, selected []linear.Label) []prompt.Choice {
	excluded := make(map[string]bool, len(selected))
	for _, label := range selected {
		excluded[label.ID] = true
	}

	var candidates []linear.Label
	for _, label := range labels {
		if !excluded[label.ID] {
			candidates = append(candidates, label)
		}
	}

	return labelChoices(candidates, func(l linear.Label) string {
		tag := "label"
		if l.IsGroup {
			tag = "group"
		}
		return tag + groupTagSeparator + l.Name
	})
}

// groupTargetFilter matches the typed prefix against either the tag or the name.
func groupTargetFilter(c prompt.Choice, input string) bool {
	tag, name, _ := strings.Cut(c.Name, groupTagSeparator)
	return strings.HasPrefix(tag, input) || strings.HasPrefix(name, input)
}
