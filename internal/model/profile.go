package model

import "time"

// Profile is the hero/about content of a portfolio.  Each user owns at most
// one profile (unique user_id).
type Profile struct {
	ID               uint64     `json:"id"`
	UserID           *uint64    `json:"userId"`
	Name             string     `json:"name"`
	HeroTitle        string     `json:"heroTitle"`
	HeroSubtitle     string     `json:"heroSubtitle"`
	BioSummary       string     `json:"bioSummary"`
	AboutText        string     `json:"aboutText"`
	ProfileImageURL  *string    `json:"profileImageUrl"`
	CVURL            *string    `json:"cvUrl"`
	SocialLinks      Document   `json:"socialLinks"`
	TechStackSummary StringList `json:"techStackSummary"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// OwnerID implements auth.Owned.
func (p Profile) OwnerID() *uint64 { return p.UserID }

type NewProfile struct {
	Name             string     `json:"name"`
	HeroTitle        string     `json:"heroTitle"`
	HeroSubtitle     string     `json:"heroSubtitle"`
	BioSummary       string     `json:"bioSummary"`
	AboutText        string     `json:"aboutText"`
	ProfileImageURL  *string    `json:"profileImageUrl"`
	CVURL            *string    `json:"cvUrl"`
	SocialLinks      Document   `json:"socialLinks"`
	TechStackSummary StringList `json:"techStackSummary"`
}

func (n NewProfile) Validate() error {
	v := newValidator()
	v.required("name", n.Name)
	v.required("heroTitle", n.HeroTitle)
	v.required("heroSubtitle", n.HeroSubtitle)
	v.required("bioSummary", n.BioSummary)
	v.required("aboutText", n.AboutText)
	return v.err()
}

func (n NewProfile) Profile(ownerID uint64) Profile {
	links := n.SocialLinks
	if len(links) == 0 {
		links = Document("[]")
	}
	stack := n.TechStackSummary
	if stack == nil {
		stack = StringList{}
	}
	return Profile{
		UserID:           &ownerID,
		Name:             n.Name,
		HeroTitle:        n.HeroTitle,
		HeroSubtitle:     n.HeroSubtitle,
		BioSummary:       n.BioSummary,
		AboutText:        n.AboutText,
		ProfileImageURL:  n.ProfileImageURL,
		CVURL:            n.CVURL,
		SocialLinks:      links,
		TechStackSummary: stack,
	}
}

type ProfilePatch struct {
	Name             Optional[string]     `json:"name"`
	HeroTitle        Optional[string]     `json:"heroTitle"`
	HeroSubtitle     Optional[string]     `json:"heroSubtitle"`
	BioSummary       Optional[string]     `json:"bioSummary"`
	AboutText        Optional[string]     `json:"aboutText"`
	ProfileImageURL  Optional[*string]    `json:"profileImageUrl"`
	CVURL            Optional[*string]    `json:"cvUrl"`
	SocialLinks      Optional[Document]   `json:"socialLinks"`
	TechStackSummary Optional[StringList] `json:"techStackSummary"`
}

func (p ProfilePatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("name", p.Name)
	v.requiredIfSet("heroTitle", p.HeroTitle)
	v.requiredIfSet("heroSubtitle", p.HeroSubtitle)
	v.requiredIfSet("bioSummary", p.BioSummary)
	v.requiredIfSet("aboutText", p.AboutText)
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p ProfilePatch) ApplyTo(dst *Profile) {
	apply(p.Name, &dst.Name)
	apply(p.HeroTitle, &dst.HeroTitle)
	apply(p.HeroSubtitle, &dst.HeroSubtitle)
	apply(p.BioSummary, &dst.BioSummary)
	apply(p.AboutText, &dst.AboutText)
	apply(p.ProfileImageURL, &dst.ProfileImageURL)
	apply(p.CVURL, &dst.CVURL)
	apply(p.SocialLinks, &dst.SocialLinks)
	apply(p.TechStackSummary, &dst.TechStackSummary)
}
