package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	contentstore "github.com/dalemusser/stratapapers/internal/app/store/content"
	"github.com/dalemusser/stratapapers/internal/app/system/txn"
	"github.com/dalemusser/stratapapers/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Result counts the documents written per collection.
type Result struct {
	ExamBoards     int
	Subjects       int
	Topics         int
	PastPapers     int
	Questions      int
	SubjectPages   int
	ExamBoardPages int
	Sections       int
}

// Total is the number of documents written.
func (r Result) Total() int {
	return r.ExamBoards + r.Subjects + r.Topics + r.PastPapers + r.Questions +
		r.SubjectPages + r.ExamBoardPages + r.Sections
}

// Import validates b and upserts it. Catalog documents are keyed by slug,
// questions by paper and question number, subject pages by subject_id and
// exam board, exam board pages by subject slug, and sections replace the live
// (first) document of their type. Running the same bundle twice leaves the
// store unchanged apart from updated_at.
//
// The import runs in one transaction when the deployment supports them, so a
// reference error part way through writes nothing. On a standalone server it
// runs without one and documents written before the error stay in place.
func Import(ctx context.Context, db *mongo.Database, b *Bundle) (Result, error) {
	if err := b.Validate(); err != nil {
		return Result{}, err
	}

	var res Result
	err := txn.Run(ctx, db, zap.L(), func(tctx context.Context) error {
		// The transaction may be retried; start each attempt clean.
		im := &importer{
			db:  db,
			now: time.Now().UTC(),
			ids: map[string]map[string]primitive.ObjectID{},
		}
		var err error
		res, err = im.run(tctx, b)
		return err
	})
	return res, err
}

func (im *importer) run(ctx context.Context, b *Bundle) (Result, error) {
	var res Result

	for _, d := range b.ExamBoards {
		pills := make([]models.Pill, 0, len(d.Pills))
		for _, p := range d.Pills {
			pills = append(pills, p.Pill)
		}
		set := bson.M{
			"name":        d.Name,
			"description": d.Description,
			"logo":        d.Logo.model(),
			"website_url": d.WebsiteURL,
			"pills":       pills,
			"active":      active(d.Active),
		}
		if _, err := im.upsertBySlug(ctx, contentstore.ExamBoardsCollection, d.Slug, set); err != nil {
			return res, fmt.Errorf("exam board %q: %w", d.Slug, err)
		}
		res.ExamBoards++
	}

	// Subjects first without topics: topics reference their subject.
	for _, d := range b.Subjects {
		boards, err := im.refs(ctx, contentstore.ExamBoardsCollection, d.ExamBoards)
		if err != nil {
			return res, fmt.Errorf("subject %q: %w", d.Slug, err)
		}
		set := bson.M{
			"title":       d.Title,
			"description": d.Description,
			"image":       d.Image.model(),
			"exam_boards": boards,
			"order":       d.Order,
			"active":      active(d.Active),
		}
		if _, err := im.upsertBySlug(ctx, contentstore.SubjectsCollection, d.Slug, set); err != nil {
			return res, fmt.Errorf("subject %q: %w", d.Slug, err)
		}
		res.Subjects++
	}

	for _, d := range b.Topics {
		subj, err := im.ref(ctx, contentstore.SubjectsCollection, d.Subject)
		if err != nil {
			return res, fmt.Errorf("topic %q: %w", d.Slug, err)
		}
		boards, err := im.refs(ctx, contentstore.ExamBoardsCollection, d.ExamBoards)
		if err != nil {
			return res, fmt.Errorf("topic %q: %w", d.Slug, err)
		}
		set := bson.M{
			"title":       d.Title,
			"description": d.Description,
			"subject":     subj,
			"exam_boards": boards,
			"order":       d.Order,
			"active":      active(d.Active),
		}
		if _, err := im.upsertBySlug(ctx, contentstore.TopicsCollection, d.Slug, set); err != nil {
			return res, fmt.Errorf("topic %q: %w", d.Slug, err)
		}
		res.Topics++
	}

	for _, d := range b.Subjects {
		topics, err := im.refs(ctx, contentstore.TopicsCollection, d.Topics)
		if err != nil {
			return res, fmt.Errorf("subject %q: %w", d.Slug, err)
		}
		if _, err := im.db.Collection(contentstore.SubjectsCollection).UpdateOne(ctx,
			bson.M{"slug": d.Slug}, bson.M{"$set": bson.M{"topics": topics}}); err != nil {
			return res, fmt.Errorf("subject %q topics: %w", d.Slug, err)
		}
	}

	for _, d := range b.PastPapers {
		set, err := im.pastPaperFields(ctx, d)
		if err != nil {
			return res, fmt.Errorf("past paper %q: %w", d.Slug, err)
		}
		if _, err := im.upsertBySlug(ctx, contentstore.PastPapersCollection, d.Slug, set); err != nil {
			return res, fmt.Errorf("past paper %q: %w", d.Slug, err)
		}
		res.PastPapers++
	}

	paperQuestions := map[string][]primitive.ObjectID{}
	var paperOrder []string
	for _, d := range b.Questions {
		id, err := im.upsertQuestion(ctx, d)
		if err != nil {
			return res, fmt.Errorf("question %s/%s: %w", d.PastPaper, d.QuestionNumber, err)
		}
		if _, seen := paperQuestions[d.PastPaper]; !seen {
			paperOrder = append(paperOrder, d.PastPaper)
		}
		paperQuestions[d.PastPaper] = append(paperQuestions[d.PastPaper], id)
		res.Questions++
	}
	for _, slug := range paperOrder {
		if _, err := im.db.Collection(contentstore.PastPapersCollection).UpdateOne(ctx,
			bson.M{"slug": slug}, bson.M{"$set": bson.M{"questions": paperQuestions[slug]}}); err != nil {
			return res, fmt.Errorf("past paper %q questions: %w", slug, err)
		}
	}

	for i, raw := range b.SubjectPages {
		if err := im.replaceSubjectPage(ctx, raw); err != nil {
			return res, fmt.Errorf("subject_pages[%d]: %w", i, err)
		}
		res.SubjectPages++
	}

	for i, raw := range b.ExamBoardPages {
		var page models.ExamBoardPage
		if err := convert(raw, &page); err != nil {
			return res, fmt.Errorf("exam_board_pages[%d]: %w", i, err)
		}
		page.ID = primitive.NilObjectID
		page.UpdatedAt = &im.now
		if _, err := im.db.Collection(contentstore.ExamBoardPagesCollection).ReplaceOne(ctx,
			bson.M{"subject_slug": page.SubjectSlug}, page, options.Replace().SetUpsert(true)); err != nil {
			return res, fmt.Errorf("exam_board_pages[%d]: %w", i, err)
		}
		res.ExamBoardPages++
	}

	for i, raw := range b.Sections {
		if err := im.replaceSection(ctx, raw); err != nil {
			return res, fmt.Errorf("sections[%d]: %w", i, err)
		}
		res.Sections++
	}

	return res, nil
}

type importer struct {
	db  *mongo.Database
	now time.Time
	ids map[string]map[string]primitive.ObjectID // collection -> slug -> _id
}

func (im *importer) remember(coll, slug string, id primitive.ObjectID) {
	m := im.ids[coll]
	if m == nil {
		m = map[string]primitive.ObjectID{}
		im.ids[coll] = m
	}
	m[slug] = id
}

func (im *importer) upsertBySlug(ctx context.Context, coll, slug string, set bson.M) (primitive.ObjectID, error) {
	set["updated_at"] = im.now
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})
	var out struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := im.db.Collection(coll).FindOneAndUpdate(ctx,
		bson.M{"slug": slug},
		bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": im.now}},
		opts,
	).Decode(&out)
	if err != nil {
		return primitive.NilObjectID, err
	}
	im.remember(coll, slug, out.ID)
	return out.ID, nil
}

// ref resolves a slug to an _id, looking at documents written by this import
// before querying the store. Inactive documents resolve too.
func (im *importer) ref(ctx context.Context, coll, slug string) (primitive.ObjectID, error) {
	if id, ok := im.ids[coll][slug]; ok {
		return id, nil
	}
	var out struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := im.db.Collection(coll).FindOne(ctx, bson.M{"slug": slug},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return primitive.NilObjectID, fmt.Errorf("unknown %s slug %q", coll, slug)
	}
	if err != nil {
		return primitive.NilObjectID, err
	}
	im.remember(coll, slug, out.ID)
	return out.ID, nil
}

func (im *importer) refs(ctx context.Context, coll string, slugs []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(slugs))
	for _, s := range slugs {
		id, err := im.ref(ctx, coll, s)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (im *importer) optRef(ctx context.Context, coll, slug string) (*primitive.ObjectID, error) {
	if slug == "" {
		return nil, nil
	}
	id, err := im.ref(ctx, coll, slug)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (im *importer) pastPaperFields(ctx context.Context, d PastPaperDoc) (bson.M, error) {
	subj, err := im.ref(ctx, contentstore.SubjectsCollection, d.Subject)
	if err != nil {
		return nil, err
	}
	board, err := im.ref(ctx, contentstore.ExamBoardsCollection, d.ExamBoard)
	if err != nil {
		return nil, err
	}
	topic, err := im.optRef(ctx, contentstore.TopicsCollection, d.Topic)
	if err != nil {
		return nil, err
	}
	return bson.M{
		"title":          d.Title,
		"subject":        subj,
		"exam_board":     board,
		"topic":          topic,
		"year":           d.Year,
		"season":         d.Season,
		"paper_number":   d.PaperNumber,
		"level":          d.Level,
		"question_paper": d.QuestionPaper.model(),
		"mark_scheme":    d.MarkScheme.model(),
		"active":         active(d.Active),
	}, nil
}

func (im *importer) upsertQuestion(ctx context.Context, d QuestionDoc) (primitive.ObjectID, error) {
	paper, err := im.ref(ctx, contentstore.PastPapersCollection, d.PastPaper)
	if err != nil {
		return primitive.NilObjectID, err
	}
	topic, err := im.optRef(ctx, contentstore.TopicsCollection, d.Topic)
	if err != nil {
		return primitive.NilObjectID, err
	}
	set := bson.M{
		"title":      d.Title,
		"marks":      d.Marks,
		"difficulty": d.Difficulty,
		"topic":      topic,
		"body":       d.Body,
		"active":     active(d.Active),
		"updated_at": im.now,
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetProjection(bson.M{"_id": 1})
	var out struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err = im.db.Collection(contentstore.QuestionsCollection).FindOneAndUpdate(ctx,
		bson.M{"past_paper": paper, "question_number": d.QuestionNumber},
		bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": im.now}},
		opts,
	).Decode(&out)
	return out.ID, err
}

func (im *importer) replaceSubjectPage(ctx context.Context, raw map[string]any) error {
	doc := copyMap(raw)
	boardSlug, _ := doc["exam_board"].(string)
	delete(doc, "exam_board")
	normalizePaperYears(doc)

	var page models.SubjectPage
	if err := convert(doc, &page); err != nil {
		return err
	}
	page.ID = primitive.NilObjectID
	page.UpdatedAt = &im.now

	filter := bson.M{"subject_id": page.SubjectID, "exam_board": nil}
	if boardSlug != "" {
		id, err := im.ref(ctx, contentstore.ExamBoardsCollection, boardSlug)
		if err != nil {
			return err
		}
		page.ExamBoard = &id
		filter["exam_board"] = id
	}
	_, err := im.db.Collection(contentstore.SubjectPagesCollection).ReplaceOne(ctx, filter, page,
		options.Replace().SetUpsert(true))
	return err
}

func (im *importer) replaceSection(ctx context.Context, raw map[string]any) error {
	doc := bson.M(copyMap(raw))
	delete(doc, "_id")
	doc["updated_at"] = im.now
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	err := im.db.Collection(contentstore.SectionsCollection).FindOneAndReplace(ctx,
		bson.M{"type": doc["type"]}, doc, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Upsert inserted a new document.
		return nil
	}
	return err
}

// convert maps a decoded YAML document onto a model through its bson tags.
func convert(doc map[string]any, out any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// normalizePaperYears turns unquoted YAML years into the four-digit strings
// inline papers store.
func normalizePaperYears(doc map[string]any) {
	papers, _ := doc["past_papers"].([]any)
	for _, p := range papers {
		m, ok := p.(map[string]any)
		if !ok {
			continue
		}
		if y, ok := m["year"].(int); ok {
			m["year"] = fmt.Sprintf("%04d", y)
		}
	}
}
