package templating

import "senior_living_backend/internal/model"

// ResolvedPage is a landing page with every template field filled in.
type ResolvedPage struct {
	Slug            string `json:"slug"`
	Title           string `json:"title"`
	MetaDescription string `json:"metaDescription"`
	Heading         string `json:"heading"`
	Subheading      string `json:"subheading"`
	Body            string `json:"body"`
	CTA             string `json:"cta"`
	Tokens          Tokens `json:"tokens"`
}

// ResolvePage substitutes tokens into each templated field of page.
func ResolvePage(page *model.DynamicLandingPage, tokens Tokens) ResolvedPage {
	return ResolvedPage{
		Slug:            page.Slug,
		Title:           Substitute(page.TitleTemplate, tokens),
		MetaDescription: Substitute(page.MetaDescriptionTemplate, tokens),
		Heading:         Substitute(page.HeadingTemplate, tokens),
		Subheading:      Substitute(page.SubheadingTemplate, tokens),
		Body:            Substitute(page.BodyTemplate, tokens),
		CTA:             Substitute(page.CTATemplate, tokens),
		Tokens:          tokens,
	}
}
