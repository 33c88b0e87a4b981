package gemini

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/cardforge/cardforge-api/internal/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// formatInstructions describes the JSON shape the model must return for
// card generation. Injected into every content template.
const formatInstructions = `Return your response as a JSON object with this exact structure:
{
    "cards": [
        {
            "term": "Question or term",
            "definition": "Answer or definition",
            "type": 1,
            "options": [
                "Option A text",
                "Option B text",
                "Option C text"
            ]
        }
    ]
}

RESPONSE FORMAT INSTRUCTIONS:
- Return response as valid JSON with the exact structure shown above
- "type": Use 1 for flashcards, 2 for multiple choice questions
- For flashcards (type=1): Set "options" to empty array []
- For MCQs (type=2): Include 3 incorrect options in "options" array (do not include the correct answer)
- "term": Contains the question text or vocabulary term
- "definition": Contains the answer or definition
- Ensure JSON is properly formatted and valid`

// questionMarkers flag inputs that read as questions rather than bare terms.
var questionMarkers = []string{"what", "how", "why", "when", "where", "who", "which", "?"}

// promptLibrary holds the parsed prompt templates keyed by file name.
type promptLibrary struct {
	templates *template.Template
}

// newPromptLibrary parses all embedded templates.
func newPromptLibrary() (*promptLibrary, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}
	return &promptLibrary{templates: tmpl}, nil
}

// contentTemplateName picks a card-generation template for the given content
// type and modality.
func contentTemplateName(contentType domain.ContentType, isImage bool) string {
	focus := "knowledge"
	if contentType == domain.ContentTypeVocab {
		focus = "vocab"
	}
	modality := "text"
	if isImage {
		modality = "image"
	}
	return focus + "_" + modality + ".tmpl"
}

// choicesTemplateName picks a choices template based on whether the input
// reads as a question or a bare term.
func choicesTemplateName(input string) string {
	lowered := strings.ToLower(input)
	for _, marker := range questionMarkers {
		if strings.Contains(lowered, marker) {
			return "choices_question.tmpl"
		}
	}
	return "choices_term.tmpl"
}

// ContentPrompt renders the card-generation prompt. For image requests the
// source content travels as a separate multimodal part, so content stays
// empty.
func (l *promptLibrary) ContentPrompt(
	content string,
	numFlashcards, numMCQs int,
	contentType domain.ContentType,
	isImage bool,
) (string, error) {
	data := contentPromptData{
		Content:            content,
		NumFlashcards:      numFlashcards,
		NumMCQs:            numMCQs,
		FormatInstructions: formatInstructions,
	}

	return l.render(contentTemplateName(contentType, isImage), data)
}

// ChoicesPrompt renders the distractor-generation prompt for a question or term.
func (l *promptLibrary) ChoicesPrompt(input string) (string, error) {
	return l.render(choicesTemplateName(input), choicesPromptData{Input: input})
}

func (l *promptLibrary) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := l.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
