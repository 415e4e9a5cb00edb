package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"farhanmaulana/hire-screener/internal/models"
)

// QuestionArchiveService keeps a vector index of previously generated
// interview questions. It only enriches AI prompts: every caller treats a
// failure here as a logged warning, never as a pipeline error.
type QuestionArchiveService interface {
	InitCollection() error
	ArchiveQuestions(ctx context.Context, interviewID, jobTitle string, questions []models.Question) error
	SimilarQuestions(ctx context.Context, jobTitle string, jobSkills []string, limit int) ([]string, error)
}

type questionArchiveService struct {
	client         *qdrant.Client
	gemini         GeminiService
	promptBuilder  *PromptBuilder
	collectionName string
	vectorSize     uint64
}

func NewQuestionArchiveService(urlStr, apiKey, collectionName string, gemini GeminiService) (QuestionArchiveService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// gRPC port by default
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &questionArchiveService{
		client:         client,
		gemini:         gemini,
		promptBuilder:  NewPromptBuilder(),
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements QuestionArchiveService.
func (q *questionArchiveService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// ArchiveQuestions implements QuestionArchiveService.
func (q *questionArchiveService) ArchiveQuestions(ctx context.Context, interviewID, jobTitle string, questions []models.Question) error {
	var points []*qdrant.PointStruct

	for _, question := range questions {
		embedding, err := q.gemini.GenerateEmbedding(ctx, question.Text)
		if err != nil {
			return fmt.Errorf("failed to embed question: %w", err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(uuid.New().ID())),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"interview_id": interviewID,
				"job_title":    jobTitle,
				"category":     string(question.Category),
				"text":         question.Text,
			}),
		})
	}

	if len(points) == 0 {
		return nil
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert questions: %w", err)
	}

	return nil
}

// SimilarQuestions implements QuestionArchiveService.
func (q *questionArchiveService) SimilarQuestions(ctx context.Context, jobTitle string, jobSkills []string, limit int) ([]string, error) {
	query := q.promptBuilder.BuildArchiveQuery(jobTitle, jobSkills)

	embedding, err := q.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed archive query: %w", err)
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}

	var questions []string
	for _, point := range points {
		if text, ok := point.Payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				questions = append(questions, val.StringValue)
			}
		}
	}

	return questions, nil
}
