package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `question_id,question_text,skill_area,difficulty_level,feedback_text,choice_1_id,choice_1_text,choice_2_id,choice_2_text,choice_3_id,choice_3_text,choice_4_id,choice_4_text,correct_answer_id
Q1,What is 2+2?,Arithmetic,1,Two plus two is four.,a,3,b,4,c,5,d,6,b
,Missing id,Arithmetic,1,,a,x,b,y,,,,,a
Q2,Pick the noun,Grammar,2,Dog is a noun.,a,run,b,dog,,,,,b
Q3,Broken key,Grammar,2,,a,x,b,y,,,,,z
Q4,Bad difficulty,Grammar,hard,,a,x,b,y,,,,,a
`

func TestLoad(t *testing.T) {
	questions, err := Load(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, questions, 2)

	q1 := questions[0]
	assert.Equal(t, "Q1", q1.QuestionID)
	assert.Equal(t, "Arithmetic", q1.SkillArea)
	assert.Equal(t, 1, q1.DifficultyLevel)
	assert.Len(t, q1.Choices, 4)
	assert.Equal(t, "b", q1.CorrectAnswerID)
	assert.Equal(t, "Two plus two is four.", q1.FeedbackText)

	q2 := questions[1]
	assert.Equal(t, "Q2", q2.QuestionID)
	assert.Len(t, q2.Choices, 2)
}

func TestLoadLegacyFeedbackColumn(t *testing.T) {
	data := "question_id,question_text,skill_area,difficulty_level,feedback_th,choice_1_id,choice_1_text,correct_answer_id\n" +
		"Q9,Text,Reading,3,Legacy feedback,a,Only,a\n"
	questions, err := Load(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Legacy feedback", questions[0].FeedbackText)
}

func TestLoadEmpty(t *testing.T) {
	questions, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	questions, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, questions, 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
