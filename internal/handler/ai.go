package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/portfolio-api/internal/logging"
	"github.com/iliyamo/portfolio-api/internal/model"
)

type generateReq struct {
	Prompt      string `json:"prompt"`
	ContextType string `json:"contextType"`
}

type draftSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
	Image   string `json:"image"`
}

type draftContent struct {
	Intro    string         `json:"intro"`
	Sections []draftSection `json:"sections"`
}

type draft struct {
	Title   string       `json:"title"`
	Excerpt string       `json:"excerpt"`
	Content draftContent `json:"content"`
}

// conversionKeywords select the conversion-focused template.
var conversionKeywords = []string{"conversion", "audit", "marketing", "site"}

// AIHandler produces article drafts from a prompt.  Drafts come from fixed
// templates; no model is called.
type AIHandler struct {
	log logging.Logger
}

func NewAIHandler(log logging.Logger) *AIHandler {
	return &AIHandler{log: log}
}

func (h *AIHandler) Generate(c echo.Context) error {
	var req generateReq
	if err := bind(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return respondError(c, h.log, &model.ValidationError{Fields: map[string]string{"prompt": "is required"}})
	}
	h.log.Debug(c.Request().Context(), "draft generated", "context_type", req.ContextType)
	return c.JSON(http.StatusOK, draftFor(prompt))
}

func draftFor(prompt string) draft {
	lower := strings.ToLower(prompt)
	for _, k := range conversionKeywords {
		if strings.Contains(lower, k) {
			return conversionDraft(prompt)
		}
	}
	return guideDraft(prompt)
}

func conversionDraft(prompt string) draft {
	return draft{
		Title:   fmt.Sprintf("How to optimise your %s for maximum conversion", prompt),
		Excerpt: "The psychological and technical levers that turn an online presence into a steady source of qualified leads.",
		Content: draftContent{
			Intro: "Having a website is no longer enough. What separates a site that survives from one that dominates " +
				"is its ability to capture attention and turn it into action. This article walks through the pillars " +
				"of a high-performing conversion strategy.",
			Sections: []draftSection{
				{
					Heading: "Understand the visitor",
					Body: "Every visitor arrives with an intent. If your value proposition is not clear within the first " +
						"seconds, the visit is already lost. Align the message with what your audience actually needs.",
				},
				{
					Heading: "Optimise the user experience",
					Body: "UX is about flow more than colours. The fewer clicks between landing and the goal, the higher " +
						"the conversion rate. Simplify, clarify, convert.",
				},
			},
		},
	}
}

func guideDraft(prompt string) draft {
	return draft{
		Title:   fmt.Sprintf("The complete guide to %s: expertise and strategy", prompt),
		Excerpt: fmt.Sprintf("An in-depth look at %s for professionals who want to stand out in a crowded market.", prompt),
		Content: draftContent{
			Intro: fmt.Sprintf("Why has %s become the topic everyone is talking about this year? This piece combines "+
				"technical analysis with lessons from the field.", prompt),
			Sections: []draftSection{
				{
					Heading: "The fundamentals",
					Body: fmt.Sprintf("To understand what is at stake with %s, start from the basics. Here are the "+
						"mechanisms that make the approach work.", prompt),
				},
				{
					Heading: "Towards an innovative approach",
					Body: "The future belongs to those willing to break the rules. Here is how to apply these ideas to " +
						"get tangible, lasting results.",
				},
			},
		},
	}
}
