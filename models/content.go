package models

import (
	"html/template"
	"time"
)

// PageKey names one CMS-editable static page.
type PageKey string

const (
	PageFAQs    PageKey = "faqs"
	PageHelp    PageKey = "help"
	PagePrivacy PageKey = "privacy"
	PageTerms   PageKey = "terms"
)

// PageKeys lists every CMS page in navigation order.
var PageKeys = []PageKey{PageFAQs, PageHelp, PagePrivacy, PageTerms}

// Valid reports whether k is a known CMS page.
func (k PageKey) Valid() bool {
	for _, known := range PageKeys {
		if k == known {
			return true
		}
	}
	return false
}

// QAItem is one question and its HTML answer.
type QAItem struct {
	Q     string `json:"q" bson:"q"`
	AHTML string `json:"aHtml" bson:"aHtml"`
}

// PageContent is the editable content of one page. Every field is optional.
type PageContent struct {
	HeroImage string    `json:"heroImage,omitempty" bson:"heroImage,omitempty"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Intro     string    `json:"intro,omitempty" bson:"intro,omitempty"`
	BodyHTML  string    `json:"bodyHtml,omitempty" bson:"bodyHtml,omitempty"`
	Items     []QAItem  `json:"items,omitempty" bson:"items,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero" bson:"updatedAt,omitempty"`
}

// CMSPages is the whole content document, keyed by page.
type CMSPages map[PageKey]PageContent

// QAView is a rendered disclosure entry.
type QAView struct {
	Question string
	Answer   template.HTML
}

// PageView is a fully populated page ready for rendering.
type PageView struct {
	Key          PageKey
	HeroImage    string
	Title        string
	Intro        string
	Body         template.HTML
	Items        []QAView
	EmptyMessage string
}
