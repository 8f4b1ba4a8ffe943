package model

import "time"

// Article is a blog article.  Content, CTA, SEO and SocialContent are
// structured documents authored by the back office; the server stores them
// verbatim.
type Article struct {
	ID               uint64     `json:"id"`
	UserID           *uint64    `json:"userId"`
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          *string    `json:"excerpt"`
	CoverImage       *string    `json:"coverImage"`
	Content          Document   `json:"content"`
	CTA              Document   `json:"cta"`
	SEO              Document   `json:"seo"`
	SocialContent    Document   `json:"socialContent"`
	RelatedProjectID *uint64    `json:"relatedProjectId"`
	Tags             StringList `json:"tags"`
	Published        bool       `json:"published"`
	Archived         bool       `json:"archived"`
	ReadingTime      int        `json:"readingTime"`
	PublishedDate    *string    `json:"publishedDate"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// OwnerID implements auth.Owned.
func (a Article) OwnerID() *uint64 { return a.UserID }

// Visible reports whether anonymous readers may see the article.
func (a Article) Visible() bool { return a.Published && !a.Archived }

const defaultReadingTime = 5

type NewArticle struct {
	Title            string     `json:"title"`
	Slug             string     `json:"slug"`
	Excerpt          *string    `json:"excerpt"`
	CoverImage       *string    `json:"coverImage"`
	Content          Document   `json:"content"`
	CTA              Document   `json:"cta"`
	SEO              Document   `json:"seo"`
	SocialContent    Document   `json:"socialContent"`
	RelatedProjectID *uint64    `json:"relatedProjectId"`
	Tags             StringList `json:"tags"`
	Published        bool       `json:"published"`
	ReadingTime      *int       `json:"readingTime"`
	PublishedDate    *string    `json:"publishedDate"`
}

func (n NewArticle) Validate() error {
	v := newValidator()
	v.required("title", n.Title)
	v.slug("slug", n.Slug)
	if n.ReadingTime != nil {
		v.check(*n.ReadingTime > 0, "readingTime", "must be positive")
	}
	return v.err()
}

func (n NewArticle) Article(ownerID uint64) Article {
	rt := defaultReadingTime
	if n.ReadingTime != nil {
		rt = *n.ReadingTime
	}
	tags := n.Tags
	if tags == nil {
		tags = StringList{}
	}
	return Article{
		UserID:           &ownerID,
		Title:            n.Title,
		Slug:             n.Slug,
		Excerpt:          n.Excerpt,
		CoverImage:       n.CoverImage,
		Content:          n.Content,
		CTA:              n.CTA,
		SEO:              n.SEO,
		SocialContent:    n.SocialContent,
		RelatedProjectID: n.RelatedProjectID,
		Tags:             tags,
		Published:        n.Published,
		ReadingTime:      rt,
		PublishedDate:    n.PublishedDate,
	}
}

type ArticlePatch struct {
	Title            Optional[string]     `json:"title"`
	Slug             Optional[string]     `json:"slug"`
	Excerpt          Optional[*string]    `json:"excerpt"`
	CoverImage       Optional[*string]    `json:"coverImage"`
	Content          Optional[Document]   `json:"content"`
	CTA              Optional[Document]   `json:"cta"`
	SEO              Optional[Document]   `json:"seo"`
	SocialContent    Optional[Document]   `json:"socialContent"`
	RelatedProjectID Optional[*uint64]    `json:"relatedProjectId"`
	Tags             Optional[StringList] `json:"tags"`
	Published        Optional[bool]       `json:"published"`
	Archived         Optional[bool]       `json:"archived"`
	ReadingTime      Optional[int]        `json:"readingTime"`
	PublishedDate    Optional[*string]    `json:"publishedDate"`
}

func (p ArticlePatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("title", p.Title)
	v.slugIfSet("slug", p.Slug)
	if rt, ok := p.ReadingTime.Get(); ok {
		v.check(rt > 0, "readingTime", "must be positive")
	}
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p ArticlePatch) ApplyTo(dst *Article) {
	apply(p.Title, &dst.Title)
	apply(p.Slug, &dst.Slug)
	apply(p.Excerpt, &dst.Excerpt)
	apply(p.CoverImage, &dst.CoverImage)
	apply(p.Content, &dst.Content)
	apply(p.CTA, &dst.CTA)
	apply(p.SEO, &dst.SEO)
	apply(p.SocialContent, &dst.SocialContent)
	apply(p.RelatedProjectID, &dst.RelatedProjectID)
	apply(p.Tags, &dst.Tags)
	apply(p.Published, &dst.Published)
	apply(p.Archived, &dst.Archived)
	apply(p.ReadingTime, &dst.ReadingTime)
	apply(p.PublishedDate, &dst.PublishedDate)
}
