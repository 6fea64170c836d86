package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lshigami/dailyquest/internal/model"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const practiceCollection = "practice_sessions"

type practiceDocument struct {
	SessionID     string                 `bson:"session_id"`
	UserID        string                 `bson:"user_id"`
	Topic         string                 `bson:"topic"`
	QuestionCount int                    `bson:"question_count"`
	Questions     []model.Question       `bson:"questions"`
	Answers       []model.PracticeAnswer `bson:"answers"`
	Status        string                 `bson:"status"`
	CorrectCount  int                    `bson:"correct_count"`
	CreatedAt     time.Time              `bson:"created_at"`
	CompletedAt   *time.Time             `bson:"completed_at,omitempty"`
}

func newPracticeDocument(s *model.PracticeSession) practiceDocument {
	answers := s.Answers
	if answers == nil {
		answers = []model.PracticeAnswer{}
	}
	return practiceDocument{
		SessionID:     s.SessionID,
		UserID:        s.UserID,
		Topic:         s.Topic,
		QuestionCount: s.QuestionCount,
		Questions:     s.Questions,
		Answers:       answers,
		Status:        s.Status.String(),
		CorrectCount:  s.CorrectCount,
		CreatedAt:     s.CreatedAt,
		CompletedAt:   s.CompletedAt,
	}
}

func (d *practiceDocument) toModel() (*model.PracticeSession, error) {
	status, err := model.ParsePracticeSessionStatus(d.Status)
	if err != nil {
		return nil, err
	}
	return &model.PracticeSession{
		SessionID:     d.SessionID,
		UserID:        d.UserID,
		Topic:         d.Topic,
		QuestionCount: d.QuestionCount,
		Questions:     d.Questions,
		Answers:       d.Answers,
		Status:        status,
		CorrectCount:  d.CorrectCount,
		CreatedAt:     d.CreatedAt,
		CompletedAt:   d.CompletedAt,
	}, nil
}

type mongoPracticeRepository struct {
	collection *mongo.Collection
}

func NewMongoPracticeRepository(db *mongo.Database) PracticeRepository {
	r := &mongoPracticeRepository{collection: db.Collection(practiceCollection)}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create practice session indexes")
	}
	return r
}

func (r *mongoPracticeRepository) CreateSession(ctx context.Context, session *model.PracticeSession) error {
	_, err := r.collection.InsertOne(ctx, newPracticeDocument(session))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoPracticeRepository) FindSession(ctx context.Context, sessionID string) (*model.PracticeSession, error) {
	var doc practiceDocument
	err := r.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel()
}

func (r *mongoPracticeRepository) UpdateSession(ctx context.Context, session *model.PracticeSession) error {
	doc := newPracticeDocument(session)
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"session_id": session.SessionID},
		bson.M{"$set": bson.M{
			"answers":       doc.Answers,
			"status":        doc.Status,
			"correct_count": doc.CorrectCount,
			"completed_at":  doc.CompletedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoPracticeRepository) list(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]model.PracticeSession, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []practiceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	sessions := make([]model.PracticeSession, 0, len(docs))
	for i := range docs {
		s, err := docs[i].toModel()
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, nil
}

func (r *mongoPracticeRepository) GetUserSessions(ctx context.Context, userID string, status *model.PracticeSessionStatus, limit int) ([]model.PracticeSession, error) {
	filter := bson.M{"user_id": userID}
	if status != nil {
		filter["status"] = status.String()
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	return r.list(ctx, filter, opts)
}

func (r *mongoPracticeRepository) GetUserStats(ctx context.Context, userID string) (*model.PracticeStats, error) {
	filter := bson.M{"user_id": userID, "status": model.PracticeCompleted.String()}
	opts := options.Find().SetProjection(bson.M{"topic": 1, "question_count": 1, "correct_count": 1, "status": 1})
	completed, err := r.list(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	return aggregatePracticeStats(completed), nil
}
