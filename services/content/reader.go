package content

import (
	"context"
	"errors"
	"html/template"
	"strings"

	"cibnlibrary/models"

	"go.uber.org/zap"
)

// untitledQuestion labels an item saved without a question.
const untitledQuestion = "Untitled Question"

// Defaults is the fallback copy for one page.
type Defaults struct {
	Title        string
	Intro        string
	Body         string
	EmptyMessage string
}

// PageDefaults holds the fallback copy shown when the CMS has nothing for a field.
var PageDefaults = map[models.PageKey]Defaults{
	models.PageFAQs: {
		Title:        "FAQs",
		Intro:        "Frequently asked questions about the platform.",
		EmptyMessage: "No FAQs added yet.",
	},
	models.PageHelp: {
		Title:        "Help Center",
		Intro:        "Guides and answers for getting the most out of the CIBN Digital Library.",
		EmptyMessage: "No help topics added yet.",
	},
	models.PagePrivacy: {
		Title:        "Privacy Policy",
		Intro:        "How we collect, use, and protect your data.",
		Body:         "Your privacy is important to us. This policy explains our practices...",
		EmptyMessage: "No privacy questions added yet.",
	},
	models.PageTerms: {
		Title:        "Terms of Service",
		Intro:        "Please review the terms governing the use of this platform.",
		Body:         "By accessing or using the CIBN Digital Library, you agree to these terms...",
		EmptyMessage: "No questions about these terms yet.",
	},
}

// Reader is the read boundary between a Store and the page renderers.
type Reader struct {
	store  Store
	logger *zap.Logger
}

// NewReader creates a Reader over store.
func NewReader(store Store, logger *zap.Logger) *Reader {
	return &Reader{store: store, logger: logger}
}

// View returns the page for key with every missing field defaulted.
// Store and decode failures are logged and yield the default view.
func (r *Reader) View(ctx context.Context, key models.PageKey) models.PageView {
	page, err := r.store.Page(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.logger.Debug("Falling back to default page content", zap.String("page", string(key)), zap.Error(err))
		}
		page = nil
	}
	return BuildView(key, page)
}

// BuildView merges page over the defaults for key. page may be nil.
// Body and answers are CMS-authored HTML and are rendered unescaped.
func BuildView(key models.PageKey, page *models.PageContent) models.PageView {
	def := PageDefaults[key]
	view := models.PageView{
		Key:          key,
		Title:        def.Title,
		Intro:        def.Intro,
		Body:         template.HTML(def.Body),
		Items:        []models.QAView{},
		EmptyMessage: def.EmptyMessage,
	}
	if page == nil {
		return view
	}

	view.HeroImage = strings.TrimSpace(page.HeroImage)
	if page.Title != "" {
		view.Title = page.Title
	}
	if page.Intro != "" {
		view.Intro = page.Intro
	}
	if page.BodyHTML != "" {
		view.Body = template.HTML(page.BodyHTML)
	}
	for _, item := range page.Items {
		q := item.Q
		if q == "" {
			q = untitledQuestion
		}
		view.Items = append(view.Items, models.QAView{Question: q, Answer: template.HTML(item.AHTML)})
	}
	return view
}
