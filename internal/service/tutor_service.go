package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/dailyquest/config"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type TutorExplanation struct {
	Explanation string
	Tip         string
}

// TutorService asks an LLM to explain why a learner's choice was wrong.
type TutorService interface {
	Enabled() bool
	ExplainMistake(ctx context.Context, question *model.Question, userAnswerID string) (*TutorExplanation, error)
}

type geminiTutorService struct {
	client *genai.GenerativeModel
}

func NewGeminiTutorService(cfg *config.Config) (TutorService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Mistake explanations are disabled.")
		return &geminiTutorService{client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel("gemini-1.5-flash")
	m.SetTemperature(0.3)
	return &geminiTutorService{client: m}, nil
}

func (s *geminiTutorService) Enabled() bool {
	return s.client != nil
}

func buildTutorPrompt(q *model.Question, userAnswerID string) string {
	var b strings.Builder
	b.WriteString("You are a patient exam tutor. A student answered the following multiple-choice question incorrectly.\n\n")
	fmt.Fprintf(&b, "Skill area: %s (difficulty %d)\n", q.SkillArea, q.DifficultyLevel)
	b.WriteString("Question:\n---\n")
	b.WriteString(q.QuestionText)
	b.WriteString("\n---\nChoices:\n")
	for _, c := range q.Choices {
		fmt.Fprintf(&b, "%s) %s\n", c.ID, c.Text)
	}
	fmt.Fprintf(&b, "\nStudent's answer: %s) %s\n", userAnswerID, q.ChoiceText(userAnswerID))
	fmt.Fprintf(&b, "Correct answer: %s) %s\n", q.CorrectAnswerID, q.ChoiceText(q.CorrectAnswerID))
	if q.FeedbackText != "" {
		b.WriteString("Reference explanation: ")
		b.WriteString(q.FeedbackText)
		b.WriteString("\n")
	}
	b.WriteString(`
Explain briefly why the student's choice is wrong and why the correct answer is right, then give one short tip for similar questions.

Format your response strictly as:
Explanation: [2-4 sentences]
Tip: [one sentence]
`)
	return b.String()
}

// parseTutorResponse splits "Explanation:" and "Tip:" sections. A response
// without the Explanation prefix is returned whole as the explanation.
func parseTutorResponse(raw string) TutorExplanation {
	const explanationPrefix = "Explanation:"
	const tipPrefix = "Tip:"

	text := strings.TrimSpace(raw)
	tipIndex := strings.LastIndex(text, tipPrefix)
	var out TutorExplanation
	if tipIndex != -1 {
		out.Tip = strings.TrimSpace(text[tipIndex+len(tipPrefix):])
		text = strings.TrimSpace(text[:tipIndex])
	}
	if i := strings.Index(text, explanationPrefix); i != -1 {
		text = text[i+len(explanationPrefix):]
	}
	out.Explanation = strings.TrimSpace(text)
	return out
}

func (s *geminiTutorService) ExplainMistake(ctx context.Context, question *model.Question, userAnswerID string) (*TutorExplanation, error) {
	if s.client == nil {
		return nil, ErrExplainerDisabled
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(buildTutorPrompt(question, userAnswerID)))
	if err != nil {
		log.Error().Err(err).Str("questionID", question.QuestionID).Msg("Gemini API error during explanation")
		return nil, fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("Gemini returned no candidates or parts in response.")
		return nil, fmt.Errorf("gemini returned no content")
	}

	var full strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			full.WriteString(string(txt))
		}
	}
	if full.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	parsed := parseTutorResponse(full.String())
	return &parsed, nil
}
