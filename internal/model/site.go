package model

import "time"

// Experience is an entry of the resume timeline.
type Experience struct {
	ID           uint64     `json:"id"`
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Period       string     `json:"period"`
	Description  string     `json:"description"`
	Achievements StringList `json:"achievements"`
	OrderIndex   int        `json:"orderIndex"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type NewExperience struct {
	Role         string     `json:"role"`
	Company      string     `json:"company"`
	Period       string     `json:"period"`
	Description  string     `json:"description"`
	Achievements StringList `json:"achievements"`
	OrderIndex   int        `json:"orderIndex"`
}

func (n NewExperience) Validate() error {
	v := newValidator()
	v.required("role", n.Role)
	v.required("company", n.Company)
	v.required("period", n.Period)
	v.required("description", n.Description)
	return v.err()
}

func (n NewExperience) Experience() Experience {
	ach := n.Achievements
	if ach == nil {
		ach = StringList{}
	}
	return Experience{
		Role:         n.Role,
		Company:      n.Company,
		Period:       n.Period,
		Description:  n.Description,
		Achievements: ach,
		OrderIndex:   n.OrderIndex,
	}
}

type ExperiencePatch struct {
	Role         Optional[string]     `json:"role"`
	Company      Optional[string]     `json:"company"`
	Period       Optional[string]     `json:"period"`
	Description  Optional[string]     `json:"description"`
	Achievements Optional[StringList] `json:"achievements"`
	OrderIndex   Optional[int]        `json:"orderIndex"`
}

func (p ExperiencePatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("role", p.Role)
	v.requiredIfSet("company", p.Company)
	v.requiredIfSet("period", p.Period)
	v.requiredIfSet("description", p.Description)
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p ExperiencePatch) ApplyTo(dst *Experience) {
	apply(p.Role, &dst.Role)
	apply(p.Company, &dst.Company)
	apply(p.Period, &dst.Period)
	apply(p.Description, &dst.Description)
	apply(p.Achievements, &dst.Achievements)
	apply(p.OrderIndex, &dst.OrderIndex)
}

// BlogIdea is a backlog entry for future articles.
type BlogIdea struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewBlogIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (n NewBlogIdea) Validate() error {
	v := newValidator()
	v.required("title", n.Title)
	v.required("description", n.Description)
	return v.err()
}

// Content studio statuses and platforms.
var (
	TopicStatuses = []string{"idea", "writing", "ready", "published"}
	PostStatuses  = []string{"draft", "ready", "published"}
	PostPlatforms = []string{"twitter", "linkedin", "facebook"}
)

// ContentTopic groups social posts derived from one idea.
type ContentTopic struct {
	ID        uint64        `json:"id"`
	Title     string        `json:"title"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	Posts     []ContentPost `json:"posts"`
}

type NewContentTopic struct {
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (n NewContentTopic) Validate() error {
	v := newValidator()
	v.required("title", n.Title)
	if n.Status != "" {
		v.oneOf("status", n.Status, TopicStatuses...)
	}
	return v.err()
}

func (n NewContentTopic) Topic() ContentTopic {
	status := n.Status
	if status == "" {
		status = TopicStatuses[0]
	}
	return ContentTopic{Title: n.Title, Status: status, Posts: []ContentPost{}}
}

type ContentTopicPatch struct {
	Title  Optional[string] `json:"title"`
	Status Optional[string] `json:"status"`
}

func (p ContentTopicPatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("title", p.Title)
	v.oneOfIfSet("status", p.Status, TopicStatuses...)
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p ContentTopicPatch) ApplyTo(dst *ContentTopic) {
	apply(p.Title, &dst.Title)
	apply(p.Status, &dst.Status)
}

// ContentPost is a platform-specific post belonging to a topic.
type ContentPost struct {
	ID        uint64    `json:"id"`
	TopicID   uint64    `json:"topicId"`
	Platform  string    `json:"platform"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewContentPost struct {
	TopicID  uint64 `json:"topicId"`
	Platform string `json:"platform"`
	Content  string `json:"content"`
	Status   string `json:"status"`
}

func (n NewContentPost) Validate() error {
	v := newValidator()
	v.check(n.TopicID > 0, "topicId", "is required")
	v.oneOf("platform", n.Platform, PostPlatforms...)
	v.required("content", n.Content)
	if n.Status != "" {
		v.oneOf("status", n.Status, PostStatuses...)
	}
	return v.err()
}

func (n NewContentPost) Post() ContentPost {
	status := n.Status
	if status == "" {
		status = PostStatuses[0]
	}
	return ContentPost{TopicID: n.TopicID, Platform: n.Platform, Content: n.Content, Status: status}
}

type ContentPostPatch struct {
	Content Optional[string] `json:"content"`
	Status  Optional[string] `json:"status"`
}

func (p ContentPostPatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("content", p.Content)
	v.oneOfIfSet("status", p.Status, PostStatuses...)
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p ContentPostPatch) ApplyTo(dst *ContentPost) {
	apply(p.Content, &dst.Content)
	apply(p.Status, &dst.Status)
}
