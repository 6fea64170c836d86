// Package catalog reads question banks from CSV exports.
package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lshigami/dailyquest/internal/model"
	"github.com/rs/zerolog/log"
)

const maxChoices = 4

// Load parses a question CSV with a header row. Rows without a question id,
// with a non-numeric difficulty, or whose correct answer matches no choice are
// skipped with a warning.
func Load(r io.Reader) ([]model.Question, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	get := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var questions []model.Question
	for rowNum := 2; ; rowNum++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", rowNum, err)
		}

		id := get(record, "question_id")
		if id == "" {
			log.Warn().Int("row", rowNum).Msg("Skipping row with missing question_id")
			continue
		}

		difficulty := 0
		if raw := get(record, "difficulty_level"); raw != "" {
			difficulty, err = strconv.Atoi(raw)
			if err != nil {
				log.Warn().Str("questionID", id).Str("difficulty", raw).Msg("Skipping question with bad difficulty_level")
				continue
			}
		}

		q := model.Question{
			QuestionID:      id,
			QuestionText:    get(record, "question_text"),
			SkillArea:       get(record, "skill_area"),
			DifficultyLevel: difficulty,
			CorrectAnswerID: get(record, "correct_answer_id"),
			FeedbackText:    get(record, "feedback_text"),
		}
		if q.SkillArea == "" {
			q.SkillArea = "N/A"
		}
		if q.FeedbackText == "" {
			q.FeedbackText = get(record, "feedback_th")
		}
		for i := 1; i <= maxChoices; i++ {
			cid := get(record, fmt.Sprintf("choice_%d_id", i))
			text := get(record, fmt.Sprintf("choice_%d_text", i))
			if cid != "" && text != "" {
				q.Choices = append(q.Choices, model.ChoiceOption{ID: cid, Text: text})
			}
		}

		if !hasChoice(q.Choices, q.CorrectAnswerID) {
			log.Warn().Str("questionID", id).Str("correctAnswerID", q.CorrectAnswerID).
				Msg("Skipping question whose correct_answer_id matches no choice")
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func hasChoice(choices []model.ChoiceOption, id string) bool {
	for _, c := range choices {
		if c.ID == id {
			return true
		}
	}
	return false
}

func LoadFile(path string) ([]model.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening question file: %w", err)
	}
	defer f.Close()

	questions, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Info().Int("count", len(questions)).Str("path", path).Msg("Loaded questions from CSV")
	return questions, nil
}
