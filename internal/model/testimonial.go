package model

import "time"

// Testimonial is a quote shown on a portfolio.
type Testimonial struct {
	ID        uint64    `json:"id"`
	UserID    *uint64   `json:"userId"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerID implements auth.Owned.
func (t Testimonial) OwnerID() *uint64 { return t.UserID }

const defaultRating = 5

type NewTestimonial struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Rating  *int   `json:"rating"`
}

func (n NewTestimonial) Validate() error {
	v := newValidator()
	v.required("name", n.Name)
	v.required("role", n.Role)
	v.required("content", n.Content)
	if n.Rating != nil {
		v.check(*n.Rating >= 1 && *n.Rating <= 5, "rating", "must be between 1 and 5")
	}
	return v.err()
}

func (n NewTestimonial) Testimonial(ownerID uint64) Testimonial {
	rating := defaultRating
	if n.Rating != nil {
		rating = *n.Rating
	}
	return Testimonial{UserID: &ownerID, Name: n.Name, Role: n.Role, Content: n.Content, Rating: rating}
}

type TestimonialPatch struct {
	Name    Optional[string] `json:"name"`
	Role    Optional[string] `json:"role"`
	Content Optional[string] `json:"content"`
	Rating  Optional[int]    `json:"rating"`
}

func (p TestimonialPatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.requiredIfSet("name", p.Name)
	v.requiredIfSet("role", p.Role)
	v.requiredIfSet("content", p.Content)
	if r, ok := p.Rating.Get(); ok {
		v.check(r >= 1 && r <= 5, "rating", "must be between 1 and 5")
	}
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p TestimonialPatch) ApplyTo(dst *Testimonial) {
	apply(p.Name, &dst.Name)
	apply(p.Role, &dst.Role)
	apply(p.Content, &dst.Content)
	apply(p.Rating, &dst.Rating)
}
