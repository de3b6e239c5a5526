// Package gemini provides a language-model fallback for locating field
// values that every selector strategy missed.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/rfontes/anuncio"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxPageTextRunes bounds how much page text goes into the prompt.
const maxPageTextRunes = 20000

// Ensure Guesser implements anuncio.Guesser at compile time.
var _ anuncio.Guesser = (*Guesser)(nil)

// Guesser implements anuncio.Guesser using Google Gemini.
type Guesser struct {
	client *genai.Client
}

// NewGuesser creates a new Guesser.
func NewGuesser(client *genai.Client) *Guesser {
	return &Guesser{client: client}
}

// fieldQuestions maps each field to the question posed to the model.
var fieldQuestions = map[anuncio.Field]string{
	anuncio.FieldSeller:         "the seller's name",
	anuncio.FieldBrand:          "the vehicle brand (e.g. Volkswagen, Fiat)",
	anuncio.FieldModel:          "the vehicle model (e.g. Gol, Argo)",
	anuncio.FieldVersion:        "the full vehicle version as announced",
	anuncio.FieldYear:           "the vehicle's model year",
	anuncio.FieldPrice:          "the asking price, including the R$ prefix",
	anuncio.FieldReferencePrice: "the FIPE reference price, including the R$ prefix",
	anuncio.FieldAveragePrice:   "the average price on the site, including the R$ prefix",
	anuncio.FieldMileage:        "the vehicle's mileage in kilometers",
	anuncio.FieldPhone:          "the seller's phone number",
	anuncio.FieldNeighbourhood:  "the neighbourhood where the vehicle is located",
	anuncio.FieldLocation:       "the municipality and state where the vehicle is located",
}

// Guess asks the model to locate the field value in the page's visible
// text. Returns "" when the model judges the field absent.
func (g *Guesser) Guess(ctx context.Context, pageText string, field anuncio.Field) (string, error) {
	if pageText == "" {
		return "", anuncio.Errorf(anuncio.EINVALID, "page text required")
	}
	question, ok := fieldQuestions[field]
	if !ok {
		return "", anuncio.Errorf(anuncio.EINVALID, "unknown field %q", field)
	}

	prompt := BuildUserPrompt(pageText, question)
	config := BuildConfig()

	result, err := g.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", anuncio.Errorf(anuncio.EINTERNAL, "gemini returned nil result")
	}

	answer := strings.TrimSpace(result.Text())
	if strings.EqualFold(answer, "ABSENT") {
		return "", nil
	}
	return answer, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract a single piece of information from the visible text of a Brazilian classified ad for a vehicle. Reply with the value exactly as it appears in the text and nothing else. If the information is not present, reply with the single word ABSENT.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing the page text and
// the field question.
func BuildUserPrompt(pageText, question string) string {
	if len([]rune(pageText)) > maxPageTextRunes {
		pageText = string([]rune(pageText)[:maxPageTextRunes])
	}

	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(pageText)
	sb.WriteString("\n</page>\n\n")
	fmt.Fprintf(&sb, "Find %s in the page above.", question)
	return sb.String()
}
