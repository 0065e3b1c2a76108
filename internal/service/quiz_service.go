package service

import (
	"context"
	"errors"
	"strings"

	"skillforge_backend/internal/model"
	"skillforge_backend/internal/repository"
	"skillforge_backend/internal/util"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	ProgressRepo *repository.ProgressRepository
	Validation   *ValidationService
	Logger       *zap.Logger
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	questionRepo *repository.QuestionRepository,
	progressRepo *repository.ProgressRepository,
	validation *ValidationService,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		ProgressRepo: progressRepo,
		Validation:   validation,
		Logger:       logger,
	}
}

// checkAnswer compares a submitted answer against the expected one:
// trimmed, case-insensitive, exact equality.
func checkAnswer(correct, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(correct), strings.TrimSpace(submitted))
}

// QuizWithQuestions is the take-a-quiz payload. Question JSON omits the
// correct answers.
type QuizWithQuestions struct {
	Quiz      model.Quiz       `json:"quiz"`
	Questions []model.Question `json:"questions"`
}

func (s *QuizService) GetWithQuestions(ctx context.Context, quizID string) (*QuizWithQuestions, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	questions, err := s.QuestionRepo.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return &QuizWithQuestions{Quiz: *quiz, Questions: questions}, nil
}

// QuestionReview is the admin view of a question. Unlike the player
// payload it serializes the stored correct answer, for the edit screens.
type QuestionReview struct {
	model.Question
	CorrectAnswer string `json:"correctAnswer"`
}

// QuestionsForReview returns a quiz's questions with their stored answers.
func (s *QuizService) QuestionsForReview(ctx context.Context, quizID string) ([]QuestionReview, error) {
	if _, err := s.QuizRepo.FindByID(ctx, quizID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	questions, err := s.QuestionRepo.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	reviews := make([]QuestionReview, 0, len(questions))
	for _, q := range questions {
		reviews = append(reviews, QuestionReview{Question: q, CorrectAnswer: q.CorrectAnswer})
	}
	return reviews, nil
}

// QuestionResult is the per-question breakdown of a submission.
type QuestionResult struct {
	QuestionID string `json:"questionId"`
	Correct    bool   `json:"correct"`
	Points     int    `json:"points"`
	Earned     int    `json:"earned"`
}

// QuizResult is the full submission outcome, including the validation
// result when a skill quiz was passed.
type QuizResult struct {
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Percentage int               `json:"percentage"`
	Passed     bool              `json:"passed"`
	Questions  []QuestionResult  `json:"questions"`
	Validation *ValidationResult `json:"validation,omitempty"`
}

// Score grades answers against the quiz's questions. Unanswered questions
// count as incorrect; a quiz with no points totals to 0%.
func Score(questions []model.Question, answers map[string]string) (score, total int, results []QuestionResult) {
	results = make([]QuestionResult, 0, len(questions))
	for _, q := range questions {
		total += q.Points
		earned := 0
		correct := false
		if submitted, ok := answers[q.ID.Hex()]; ok && checkAnswer(q.CorrectAnswer, submitted) {
			correct = true
			earned = q.Points
			score += earned
		}
		results = append(results, QuestionResult{
			QuestionID: q.ID.Hex(),
			Correct:    correct,
			Points:     q.Points,
			Earned:     earned,
		})
	}
	return score, total, results
}

// Submit grades the submission, records a quiz progress entry, and when
// the quiz passed and belongs to a skill, runs the validation chain.
func (s *QuizService) Submit(ctx context.Context, userID, quizID string, answers map[string]string) (*QuizResult, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	questions, err := s.QuestionRepo.FindByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	score, total, perQuestion := Score(questions, answers)
	percentage := Percentage(score, total)
	passed := percentage >= quiz.EffectivePassingScore()

	result := &QuizResult{
		Score:      score,
		Total:      total,
		Percentage: percentage,
		Passed:     passed,
		Questions:  perQuestion,
	}

	if err := s.ProgressRepo.Upsert(ctx, userID, model.ProgressKey{QuizID: quizID}, percentage, passed); err != nil {
		return nil, err
	}

	s.Logger.Info("quiz submitted",
		zap.String("userId", userID),
		zap.String("quizId", quizID),
		zap.Int("percentage", percentage),
		zap.Bool("passed", passed))

	if passed && quiz.SkillID != "" {
		validation, err := s.Validation.ValidateSkill(ctx, userID, quiz.SkillID, percentage)
		if err != nil {
			return nil, err
		}
		result.Validation = validation
	}
	return result, nil
}

func (s *QuizService) Create(ctx context.Context, quiz *model.Quiz) error {
	return s.QuizRepo.Create(ctx, quiz)
}

func (s *QuizService) Update(ctx context.Context, id string, update model.QuizUpdate) (*model.Quiz, error) {
	if err := s.QuizRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.QuizRepo.FindByID(ctx, id)
}

// Delete removes the quiz together with its questions.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if err := s.QuestionRepo.DeleteByQuiz(ctx, id); err != nil {
		return err
	}
	err := s.QuizRepo.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return util.ErrQuizNotFound
	}
	return err
}

func (s *QuizService) List(ctx context.Context) ([]model.Quiz, error) {
	return s.QuizRepo.FindAll(ctx)
}

// CreateQuestion inserts the question and registers it on its quiz.
func (s *QuizService) CreateQuestion(ctx context.Context, question *model.Question) error {
	if _, err := s.QuizRepo.FindByID(ctx, question.QuizID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrQuizNotFound
		}
		return err
	}
	if err := s.QuestionRepo.Create(ctx, question); err != nil {
		return err
	}
	return s.QuizRepo.AddQuestionRef(ctx, question.QuizID, question.ID.Hex())
}

func (s *QuizService) UpdateQuestion(ctx context.Context, id string, update model.QuestionUpdate) (*model.Question, error) {
	if err := s.QuestionRepo.Update(ctx, id, update); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return s.QuestionRepo.FindByID(ctx, id)
}

func (s *QuizService) DeleteQuestion(ctx context.Context, id string) error {
	question, err := s.QuestionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	if err := s.QuestionRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.QuizRepo.RemoveQuestionRef(ctx, question.QuizID, id)
}
