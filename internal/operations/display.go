package operations

import (
	"fmt"

	"clinear/internal/linear"

	"github.com/olekukonko/tablewriter"
)

func (o *Operations) displayRenamePlan(plan []RenamePlanEntry) {
	table := tablewriter.NewTable(o.config.Out,
		tablewriter.WithHeader([]string{"Current Label", "New Name", "ID"}),
	)

	for _, entry := range plan {
		table.Append([]string{entry.Before, entry.After, entry.ID})
	}

	table.Render()

	fmt.Fprintf(o.config.Out, "\n💡 Dry run: %d labels would be renamed. Re-run without --dry-run to review and apply.\n", len(plan))
}

func (o *Operations) displayGroupPlan(selected []linear.Label, target linear.Label) {
	table := tablewriter.NewTable(o.config.Out,
		tablewriter.WithHeader([]string{"Label", "ID", "New Group"}),
	)

	for _, label := range selected {
		table.Append([]string{label.Name, label.ID, target.Name})
	}

	table.Render()

	fmt.Fprintf(o.config.Out, "\n💡 Dry run: %d labels would be moved under %s. Re-run without --dry-run to apply.\n", len(selected), target.Name)
}
