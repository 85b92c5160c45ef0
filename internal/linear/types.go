package linear

// Label is an issue label as returned by the Linear API.
type Label struct {
	ID       string
	Name     string
	IsGroup  bool
	ParentID string
}

// Orphaned reports whether the label is neither a group nor inside one.
func (l Label) Orphaned() bool {
	return !l.IsGroup && l.ParentID == ""
}

// LabelUpdate is a partial update. Nil fields are left untouched.
type LabelUpdate struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type labelNode struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsGroup bool   `json:"isGroup"`
	Parent  *struct {
		ID string `json:"id"`
	} `json:"parent"`
}

func (n labelNode) toLabel() Label {
	label := Label{ID: n.ID, Name: n.Name, IsGroup: n.IsGroup}
	if n.Parent != nil {
		label.ParentID = n.Parent.ID
	}
	return label
}

type issueLabelsData struct {
	IssueLabels struct {
		Nodes    []labelNode `json:"nodes"`
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"issueLabels"`
}

type issueLabelUpdateData struct {
	IssueLabelUpdate struct {
		Success    bool      `json:"success"`
		IssueLabel labelNode `json:"issueLabel"`
	} `json:"issueLabelUpdate"`
}

const labelFields = `id name isGroup parent { id }`

const listLabelsQuery = `query IssueLabels($first: Int!, $after: String) {
  issueLabels(first: $first, after: $after, includeArchived: false) {
    nodes { ` + labelFields + ` }
    pageInfo { hasNextPage endCursor }
  }
}`

const updateLabelMutation = `mutation IssueLabelUpdate($id: String!, $input: IssueLabelUpdateInput!) {
  issueLabelUpdate(id: $id, input: $input) {
    success
    issueLabel { ` + labelFields + ` }
  }
}`
