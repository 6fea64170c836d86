package repository

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/lshigami/dailyquest/internal/model"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const missionsCollection = "daily_missions"

// missionDocument stores the day as midnight UTC so range queries on date work.
type missionDocument struct {
	UserID               string           `bson:"user_id"`
	Date                 time.Time        `bson:"date"`
	Questions            []model.Question `bson:"questions"`
	Status               string           `bson:"status"`
	CurrentQuestionIndex int              `bson:"current_question_index"`
	Answers              []model.Answer   `bson:"answers"`
	CreatedAt            time.Time        `bson:"created_at"`
	UpdatedAt            time.Time        `bson:"updated_at"`
}

func dateKey(d civil.Date) time.Time {
	return d.In(time.UTC)
}

func newMissionDocument(m *model.DailyMission) missionDocument {
	answers := m.Answers
	if answers == nil {
		answers = []model.Answer{}
	}
	return missionDocument{
		UserID:               m.UserID,
		Date:                 dateKey(m.Date),
		Questions:            m.Questions,
		Status:               m.Status.String(),
		CurrentQuestionIndex: m.CurrentQuestionIndex,
		Answers:              answers,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func (d *missionDocument) toModel() (*model.DailyMission, error) {
	status, err := model.ParseMissionStatus(d.Status)
	if err != nil {
		return nil, err
	}
	return &model.DailyMission{
		UserID:               d.UserID,
		Date:                 civil.DateOf(d.Date.UTC()),
		Questions:            d.Questions,
		Status:               status,
		CurrentQuestionIndex: d.CurrentQuestionIndex,
		Answers:              d.Answers,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}, nil
}

type mongoMissionRepository struct {
	collection *mongo.Collection
}

func NewMongoMissionRepository(db *mongo.Database) MissionRepository {
	r := &mongoMissionRepository{collection: db.Collection(missionsCollection)}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.ensureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to create daily mission indexes")
	}
	return r
}

func (r *mongoMissionRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_date_unique"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("status_date"),
		},
	})
	return err
}

func missionKey(userID string, date civil.Date) bson.M {
	return bson.M{"user_id": userID, "date": dateKey(date)}
}

func (r *mongoMissionRepository) FindMission(ctx context.Context, userID string, date civil.Date) (*model.DailyMission, error) {
	var doc missionDocument
	err := r.collection.FindOne(ctx, missionKey(userID, date)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toModel()
}

func (r *mongoMissionRepository) CreateMission(ctx context.Context, mission *model.DailyMission) error {
	_, err := r.collection.InsertOne(ctx, newMissionDocument(mission))
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

func (r *mongoMissionRepository) SaveMission(ctx context.Context, mission *model.DailyMission) error {
	_, err := r.collection.ReplaceOne(ctx,
		missionKey(mission.UserID, mission.Date),
		newMissionDocument(mission),
		options.Replace().SetUpsert(true),
	)
	return err
}

func (r *mongoMissionRepository) find(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]model.DailyMission, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var missions []model.DailyMission
	for cursor.Next(ctx) {
		var doc missionDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		m, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		missions = append(missions, *m)
	}
	return missions, cursor.Err()
}

func (r *mongoMissionRepository) GetMissionsToArchive(ctx context.Context, before civil.Date) ([]model.DailyMission, error) {
	filter := bson.M{
		"date":   bson.M{"$lt": dateKey(before)},
		"status": bson.M{"$in": statusNames(archivableStatuses)},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
}

func (r *mongoMissionRepository) FindMissionsByStatus(ctx context.Context, userID string, statuses ...model.MissionStatus) ([]model.DailyMission, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  bson.M{"$in": statusNames(statuses)},
	}
	return r.find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
}

func (r *mongoMissionRepository) ForEachMission(ctx context.Context, fn func(*model.DailyMission) error) error {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc missionDocument
		if err := cursor.Decode(&doc); err != nil {
			return err
		}
		m, err := doc.toModel()
		if err != nil {
			return err
		}
		if err := fn(m); err != nil {
			return err
		}
	}
	return cursor.Err()
}
