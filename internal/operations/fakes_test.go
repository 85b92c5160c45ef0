package operations

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"clinear/internal/linear"
	"clinear/internal/progress"
	"clinear/internal/prompt"

	"github.com/google/uuid"
)

// fakeClient keeps labels in memory and applies updates to them.
type fakeClient struct {
	labels  []linear.Label
	listErr error
	// failures maps a label id to the errors returned by successive update calls.
	failures map[string][]error
	updates  []updateCall
}

type updateCall struct {
	ID     string
	Update linear.LabelUpdate
}

func newFakeClient(labels ...linear.Label) *fakeClient {
	return &fakeClient{labels: labels, failures: make(map[string][]error)}
}

func (f *fakeClient) ListLabels(ctx context.Context) ([]linear.Label, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]linear.Label(nil), f.labels...), nil
}

func (f *fakeClient) UpdateLabel(ctx context.Context, id string, update linear.LabelUpdate) (linear.Label, error) {
	f.updates = append(f.updates, updateCall{ID: id, Update: update})

	if errs := f.failures[id]; len(errs) > 0 {
		f.failures[id] = errs[1:]
		return linear.Label{}, errs[0]
	}

	for i := range f.labels {
		if f.labels[i].ID != id {
			continue
		}
		if update.Name != nil {
			f.labels[i].Name = *update.Name
		}
		if update.ParentID != nil {
			f.labels[i].ParentID = *update.ParentID
		}
		return f.labels[i], nil
	}
	return linear.Label{}, fmt.Errorf("label %s not found", id)
}

func (f *fakeClient) label(id string) linear.Label {
	for _, l := range f.labels {
		if l.ID == id {
			return l
		}
	}
	return linear.Label{}
}

// fakePrompter answers prompts from scripted functions and records what it was shown.
type fakePrompter struct {
	multiSelect func(cfg prompt.MultiSelectConfig) ([]string, error)
	selectOne   func(cfg prompt.SelectConfig) (string, error)
	confirm     func(message string) (bool, error)
	review      func(rows []prompt.ReviewRow) ([]string, error)

	multiSelectCfg prompt.MultiSelectConfig
	selectCfg      prompt.SelectConfig
	confirmMessage string
	reviewRows     []prompt.ReviewRow
}

func (p *fakePrompter) MultiSelect(cfg prompt.MultiSelectConfig) ([]string, error) {
	p.multiSelectCfg = cfg
	return p.multiSelect(cfg)
}

func (p *fakePrompter) Select(cfg prompt.SelectConfig) (string, error) {
	p.selectCfg = cfg
	return p.selectOne(cfg)
}

func (p *fakePrompter) Confirm(message string, def bool) (bool, error) {
	p.confirmMessage = message
	if p.confirm == nil {
		return def, nil
	}
	return p.confirm(message)
}

func (p *fakePrompter) Review(message string, rows []prompt.ReviewRow) ([]string, error) {
	p.reviewRows = rows
	if p.review == nil {
		var all []string
		for _, r := range rows {
			all = append(all, r.Value)
		}
		return all, nil
	}
	return p.review(rows)
}

func pick(ids ...string) func(prompt.MultiSelectConfig) ([]string, error) {
	return func(prompt.MultiSelectConfig) ([]string, error) { return ids, nil }
}

func pickOne(id string) func(prompt.SelectConfig) (string, error) {
	return func(prompt.SelectConfig) (string, error) { return id, nil }
}

type reportEvent struct {
	Kind string
	Text string
}

type fakeReporter struct {
	events []reportEvent
}

var _ progress.Reporter = (*fakeReporter)(nil)

func (r *fakeReporter) Start(text string) { r.events = append(r.events, reportEvent{"start", text}) }
func (r *fakeReporter) Report(current, total int) {
	r.events = append(r.events, reportEvent{"report", fmt.Sprintf("%d/%d", current, total)})
}
func (r *fakeReporter) Succeed(text string) { r.events = append(r.events, reportEvent{"succeed", text}) }
func (r *fakeReporter) Warn(text string)    { r.events = append(r.events, reportEvent{"warn", text}) }
func (r *fakeReporter) Fail(text string)    { r.events = append(r.events, reportEvent{"fail", text}) }
func (r *fakeReporter) Errorf(format string, args ...any) {
	r.events = append(r.events, reportEvent{"error", fmt.Sprintf(format, args...)})
}

func (r *fakeReporter) kinds(kind string) []string {
	var out []string
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e.Text)
		}
	}
	return out
}

func (r *fakeReporter) last() reportEvent {
	if len(r.events) == 0 {
		return reportEvent{}
	}
	return r.events[len(r.events)-1]
}

type harness struct {
	client   *fakeClient
	prompter *fakePrompter
	reporter *fakeReporter
	out      *bytes.Buffer
	sleeps   []time.Duration
	ops      *Operations
}

func newHarness(labels ...linear.Label) *harness {
	h := &harness{
		client:   newFakeClient(labels...),
		prompter: &fakePrompter{},
		reporter: &fakeReporter{},
		out:      &bytes.Buffer{},
	}
	h.ops = NewOperationsWithConfig(h.client, h.prompter, h.reporter, &Config{MaxRetries: 2, Out: h.out})
	h.ops.sleep = func(_ context.Context, d time.Duration) error {
		h.sleeps = append(h.sleeps, d)
		return nil
	}
	return h
}

func label(name string) linear.Label {
	return linear.Label{ID: uuid.NewString(), Name: name}
}

func group(name string) linear.Label {
	return linear.Label{ID: uuid.NewString(), Name: name, IsGroup: true}
}

func child(name string, parent linear.Label) linear.Label {
	return linear.Label{ID: uuid.NewString(), Name: name, ParentID: parent.ID}
}

func choiceValues(choices []prompt.Choice) []string {
	var out []string
	for _, c := range choices {
		out = append(out, c.Value)
	}
	return out
}

func choiceNames(choices []prompt.Choice) []string {
	var out []string
	for _, c := range choices {
		out = append(out, c.Name)
	}
	return out
}
