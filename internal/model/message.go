package model

import (
	"strings"
	"time"
)

// Message categories used by the inbox.
const (
	CategoryInquiry = "inquiry"
	CategoryProject = "project"
	CategorySpam    = "spam"
	CategoryOther   = "other"
)

var messageCategories = []string{CategoryInquiry, CategoryProject, CategorySpam, CategoryOther}

// Message is a contact-form submission held in the inbox.
type Message struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Starred   bool      `json:"starred"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Category string `json:"category"`
}

func (n NewMessage) Validate() error {
	v := newValidator()
	v.required("name", n.Name)
	v.check(validEmail(strings.TrimSpace(n.Email)), "email", "must be a valid email address")
	v.required("subject", n.Subject)
	v.required("message", n.Message)
	if n.Category != "" {
		v.oneOf("category", n.Category, messageCategories...)
	}
	return v.err()
}

func (n NewMessage) Msg() Message {
	cat := n.Category
	if cat == "" {
		cat = CategoryInquiry
	}
	return Message{
		Name:     strings.TrimSpace(n.Name),
		Email:    strings.TrimSpace(n.Email),
		Subject:  n.Subject,
		Message:  n.Message,
		Category: cat,
	}
}

// MessagePatch only touches the triage flags; the visitor's text is immutable.
type MessagePatch struct {
	Read     Optional[bool]   `json:"read"`
	Starred  Optional[bool]   `json:"starred"`
	Category Optional[string] `json:"category"`
}

func (p MessagePatch) Validate() error {
	v := newValidator()
	v.noNulls(p)
	v.oneOfIfSet("category", p.Category, messageCategories...)
	return v.err()
}

// ApplyTo is the in-memory counterpart of the repository update.
func (p MessagePatch) ApplyTo(dst *Message) {
	apply(p.Read, &dst.Read)
	apply(p.Starred, &dst.Starred)
	apply(p.Category, &dst.Category)
}
