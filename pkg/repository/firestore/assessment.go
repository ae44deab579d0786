package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/aegis-sec/aegis/pkg/domain/model"
	"github.com/aegis-sec/aegis/pkg/domain/types"
)

// assessmentDocument flattens the answer map to string keys for the
// firestore serializer
type assessmentDocument struct {
	ID          int64                          `firestore:"id"`
	Title       string                         `firestore:"title"`
	SubjectName string                         `firestore:"subject_name"`
	TemplateID  string                         `firestore:"template_id"`
	Answers     map[string]*model.RawResponse  `firestore:"answers"`
	CreatedAt   time.Time                      `firestore:"created_at"`
	UpdatedAt   time.Time                      `firestore:"updated_at"`
}

func toAssessmentDocument(a *model.Assessment) *assessmentDocument {
	doc := &assessmentDocument{
		ID:          a.ID,
		Title:       a.Title,
		SubjectName: a.SubjectName,
		TemplateID:  string(a.TemplateID),
		Answers:     make(map[string]*model.RawResponse, len(a.Answers)),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
	for id, resp := range a.Answers {
		doc.Answers[string(id)] = resp
	}
	return doc
}

func (d *assessmentDocument) toModel() *model.Assessment {
	a := &model.Assessment{
		ID:          d.ID,
		Title:       d.Title,
		SubjectName: d.SubjectName,
		TemplateID:  types.TemplateID(d.TemplateID),
		Answers:     make(model.AnswerSet, len(d.Answers)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for id, resp := range d.Answers {
		a.Answers[types.QuestionID(id)] = resp
	}
	return a
}

type assessmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssessmentRepository(client *firestore.Client) *assessmentRepository {
	return &assessmentRepository{client: client}
}

func (r *assessmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assessments"
	}
	return "assessments"
}

func (r *assessmentRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "assessment_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stored := *assessment
	stored.ID = id
	stored.CreatedAt = now
	stored.UpdatedAt = now

	doc := toAssessmentDocument(&stored)
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create assessment")
	}

	return doc.toModel(), nil
}

func (r *assessmentRepository) Get(ctx context.Context, id int64) (*model.Assessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	var stored assessmentDocument
	if err := doc.DataTo(&stored); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
	}
	return stored.toModel(), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.Assessment, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var assessments []*model.Assessment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assessments")
		}

		var stored assessmentDocument
		if err := doc.DataTo(&stored); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assessment")
		}
		assessments = append(assessments, stored.toModel())
	}

	return assessments, nil
}

func (r *assessmentRepository) Update(ctx context.Context, assessment *model.Assessment) (*model.Assessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", assessment.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", assessment.ID))
		}
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", assessment.ID))
	}

	var existing assessmentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", assessment.ID))
	}

	updated := toAssessmentDocument(assessment)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update assessment", goerr.V("id", assessment.ID))
	}
	return updated.toModel(), nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}
	return nil
}

func (r *assessmentRepository) PutAnswers(ctx context.Context, id int64, answers model.AnswerSet) (*model.Assessment, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	var result *model.Assessment
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
		}

		var stored assessmentDocument
		if err := doc.DataTo(&stored); err != nil {
			return goerr.Wrap(err, "failed to unmarshal assessment", goerr.V("id", id))
		}

		if stored.Answers == nil {
			stored.Answers = make(map[string]*model.RawResponse, len(answers))
		}
		for qid, resp := range answers {
			stored.Answers[string(qid)] = resp
		}
		stored.UpdatedAt = time.Now().UTC()

		result = stored.toModel()
		return tx.Set(docRef, &stored)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
