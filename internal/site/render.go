package site

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/vytor/lirajourney/internal/journey"
	"github.com/vytor/lirajourney/internal/models"
)

// JourneyPage is the data of a character journey page.
type JourneyPage struct {
	Character models.Character
	Assets    models.JourneyAssets
	Head      journey.HeadContext
	// Script is the serialized phase payload
	Script template.JS
	Theme  map[string]string
}

// CharacterCard is one character tile on the index page.
type CharacterCard struct {
	ID         string
	Icon       string
	Name       string
	Role       string
	PhaseCount int
	URL        string
}

// IndexPage is the data of the landing page.
type IndexPage struct {
	Cards       []CharacterCard
	ReviewItems []models.ReviewItem
	Theme       map[string]string
}

// Renderer executes the page templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer wraps parsed templates; see LoadTemplates.
func NewRenderer(tmpl *template.Template) *Renderer {
	return &Renderer{tmpl: tmpl}
}

// RenderJourney renders journey.html.
func (r *Renderer) RenderJourney(page JourneyPage) (string, error) {
	return r.render("journey.html", page)
}

// RenderIndex renders index.html.
func (r *Renderer) RenderIndex(page IndexPage) (string, error) {
	return r.render("index.html", page)
}

func (r *Renderer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
