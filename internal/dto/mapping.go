package dto

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/jinzhu/copier"
	"github.com/lshigami/dailyquest/internal/model"
)

var copyOptions = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: civil.Date{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				d, ok := src.(civil.Date)
				if !ok {
					return nil, fmt.Errorf("expected civil.Date, got %T", src)
				}
				return d.String(), nil
			},
		},
		{
			SrcType: model.MissionStatus(0),
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				s, ok := src.(model.MissionStatus)
				if !ok {
					return nil, fmt.Errorf("expected MissionStatus, got %T", src)
				}
				return s.String(), nil
			},
		},
		{
			SrcType: model.PracticeSessionStatus(0),
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				s, ok := src.(model.PracticeSessionStatus)
				if !ok {
					return nil, fmt.Errorf("expected PracticeSessionStatus, got %T", src)
				}
				return s.String(), nil
			},
		},
	},
}

func NewMissionResponse(m *model.DailyMission) (*MissionResponse, error) {
	var resp MissionResponse
	if err := copier.CopyWithOption(&resp, m, copyOptions); err != nil {
		return nil, fmt.Errorf("mapping mission: %w", err)
	}
	if resp.Answers == nil {
		resp.Answers = []AnswerResponse{}
	}
	return &resp, nil
}

func NewPracticeSessionResponse(s *model.PracticeSession) (*PracticeSessionResponse, error) {
	var resp PracticeSessionResponse
	if err := copier.CopyWithOption(&resp, s, copyOptions); err != nil {
		return nil, fmt.Errorf("mapping practice session: %w", err)
	}
	if resp.Answers == nil {
		resp.Answers = []PracticeAnswerResponse{}
	}
	return &resp, nil
}

func NewPracticeSessionSummaries(sessions []model.PracticeSession) ([]PracticeSessionSummaryDTO, error) {
	out := []PracticeSessionSummaryDTO{}
	if err := copier.CopyWithOption(&out, &sessions, copyOptions); err != nil {
		return nil, fmt.Errorf("mapping practice sessions: %w", err)
	}
	return out, nil
}

func NewQuestionResponse(q *model.Question) (*QuestionResponse, error) {
	var resp QuestionResponse
	if err := copier.Copy(&resp, q); err != nil {
		return nil, fmt.Errorf("mapping question: %w", err)
	}
	return &resp, nil
}

// ToQuestions converts an admin import payload into catalog questions.
func (d QuestionImportDTO) ToQuestions() ([]model.Question, error) {
	out := make([]model.Question, 0, len(d.Questions))
	for _, q := range d.Questions {
		var m model.Question
		if err := copier.Copy(&m, &q); err != nil {
			return nil, fmt.Errorf("mapping question %s: %w", q.QuestionID, err)
		}
		out = append(out, m)
	}
	return out, nil
}
