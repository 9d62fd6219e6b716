package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/finsight/revenue-analytics/internal/core/domain"
	"github.com/finsight/revenue-analytics/internal/core/ports"
)

const reportCollection = "reports"

// ReportRepository stores generated analysis reports.
type ReportRepository struct {
	coll *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportCollection)}
}

type mongoReport struct {
	ID         primitive.ObjectID       `bson:"_id,omitempty"`
	OrgID      int64                    `bson:"org_id"`
	OrgName    string                   `bson:"org_name"`
	CreatedBy  string                   `bson:"created_by"`
	Summary    string                   `bson:"summary"`
	AISummary  bool                     `bson:"ai_summary"`
	Insights   []string                 `bson:"insights"`
	Sections   []*ports.CategorySummary `bson:"sections"`
	Categories []string                 `bson:"categories"`
	CreatedAt  int64                    `bson:"created_at"`
}

func (r *ReportRepository) Insert(ctx context.Context, report *ports.Report) (string, error) {
	doc := mongoReport{
		OrgID:     report.OrgID,
		OrgName:   report.OrgName,
		CreatedBy: report.CreatedBy,
		Summary:   report.Summary,
		AISummary: report.AISummary,
		Insights:  report.Insights,
		Sections:  report.Sections,
		CreatedAt: report.CreatedAt.Unix(),
	}
	for _, cat := range report.Categories {
		doc.Categories = append(doc.Categories, string(cat))
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert report: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert report: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*ports.Report, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrReportNotFound
	}

	var doc mongoReport
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrReportNotFound
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return doc.toPort(), nil
}

func (r *ReportRepository) ListByOrg(ctx context.Context, orgID int64, limit int) ([]*ports.Report, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"org_id": orgID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer cur.Close(ctx)

	var reports []*ports.Report
	for cur.Next(ctx) {
		var doc mongoReport
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		reports = append(reports, doc.toPort())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (doc mongoReport) toPort() *ports.Report {
	report := &ports.Report{
		ID:        doc.ID.Hex(),
		OrgID:     doc.OrgID,
		OrgName:   doc.OrgName,
		CreatedBy: doc.CreatedBy,
		Summary:   doc.Summary,
		AISummary: doc.AISummary,
		Insights:  doc.Insights,
		Sections:  doc.Sections,
		CreatedAt: time.Unix(doc.CreatedAt, 0).UTC(),
	}
	for _, cat := range doc.Categories {
		report.Categories = append(report.Categories, domain.Category(cat))
	}
	return report
}
