package model

import "time"

// Project statuses.
const (
	ProjectDraft     = "draft"
	ProjectPublished = "published"
	ProjectArchived  = "archived"
)

// Project is a portfolio project as stored in the `projects` table.  UserID
// is the owning account and may be NULL for rows imported before ownership
// existed; such rows are only mutable by admins.
type Project struct {
	ID               uint64     `json:"id"`
	UserID           *uint64    `json:"userId"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ImageURL         string     `json:"imageUrl"`
	Stack            StringList `json:"stack"`
	HighlightedStack *string    `json:"highlightedStack"`
	DemoURL          *string    `json:"demoUrl"`
	RepoURL          *string    `json:"repoUrl"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// OwnerID implements auth.Owned.
func (p Project) OwnerID() *uint64 { return p.UserID }

// NewProject is the create payload.  Only title and slug are mandatory.
type NewProject struct {
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	ImageURL         string     `json:"imageUrl"`
	Stack            StringList `json:"stack"`
	HighlightedStack *string    `json:"highlightedStack"`
	DemoURL          *string    `json:"demoUrl"`
	RepoURL          *string    `json:"repoUrl"`
	Status           string     `json:"status"`
}

func (n NewProject) Validate() error {
	v := newValidator()
	v.required("title", n.Title)
	v.slug("slug", n.Slug)
	if n.Status != "" {
		v.oneOf("status", n.Status, ProjectDraft, ProjectPublished, ProjectArchived)
	}
	return v.err()
}

// Project builds the row to insert, owned by ownerID.
func (n NewProject) Project(ownerID uint64) Project {
	status := n.Status
	if status == "" {
		status = ProjectPublished
	}
	stack := n.Stack
	if stack == nil {
		stack = StringList{}
	}
	return Project{
		UserID:           &ownerID,
		Title:            n.Title,
		Slug:             n.Slug,
		Description:      n.Description,
		ImageURL:         n.ImageURL,
		Stack:            stack,
		HighlightedStack: n.HighlightedStack,
		DemoURL:          n.DemoURL,
		RepoURL:          n.RepoURL,
		Status:           status,
	}
}

// ProjectPatch carries the fields of a partial update.
type ProjectPatch struct {
	Title            Optional[string]     `json:"title"`
	Slug             Optional[string]     `json:"slug"`
	Description      Optional[string]     `json:"description"`
	ImageURL         Optional[string]     `json:"imageUrl"`
	Stack            Optional[StringList] `json:"stack"`
	HighlightedStack Optional[*string]    `json:"highlightedStack"`
	DemoURL          Optional[*string]    `json:"demoUrl"`
	RepoURL          Optional[*string]    `json:"repoUrl"`
	Status           Optional[string]     `json:"status"`
}

func (p ProjectPatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("title", p.Title)
	v.slugIfSet("slug", p.Slug)
	v.oneOfIfSet("status", p.Status, ProjectDraft, ProjectPublished, ProjectArchived)
	return v.err()
}

// ApplyTo overwrites the set fields of dst.  The repository writes the
// same fields as a partial UPDATE; ApplyTo backs in-memory stores.
func (p ProjectPatch) ApplyTo(dst *Project) {
	apply(p.Title, &dst.Title)
	apply(p.Slug, &dst.Slug)
	apply(p.Description, &dst.Description)
	apply(p.ImageURL, &dst.ImageURL)
	apply(p.Stack, &dst.Stack)
	apply(p.HighlightedStack, &dst.HighlightedStack)
	apply(p.DemoURL, &dst.DemoURL)
	apply(p.RepoURL, &dst.RepoURL)
	apply(p.Status, &dst.Status)
}
