package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"quizbox/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrValidation   = errors.New("invalid quiz payload")
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title     string                  `json:"title" binding:"required,max=200"`
	Questions []CreateQuestionRequest `json:"questions" binding:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required,max=500"`
	Options       []string `json:"options" binding:"required,len=4,dive,required"`
	CorrectOption int      `json:"correct_option" binding:"required,min=1,max=4"`
}

// Validate enforces the payload rules independent of transport binding, so
// the same checks hold for any caller of the service.
func (r *CreateQuizRequest) Validate() error {
	if r.Title == "" || utf8.RuneCountInString(r.Title) > 200 {
		return fmt.Errorf("%w: title must be 1-200 characters", ErrValidation)
	}
	if len(r.Questions) == 0 {
		return fmt.Errorf("%w: at least one question is required", ErrValidation)
	}
	for i, question := range r.Questions {
		if question.Text == "" || utf8.RuneCountInString(question.Text) > 500 {
			return fmt.Errorf("%w: question %d text must be 1-500 characters", ErrValidation, i+1)
		}
		if len(question.Options) != models.OptionCount {
			return fmt.Errorf("%w: question %d must have exactly %d options", ErrValidation, i+1, models.OptionCount)
		}
		if question.CorrectOption < 1 || question.CorrectOption > models.OptionCount {
			return fmt.Errorf("%w: question %d correct_option must be between 1 and %d", ErrValidation, i+1, models.OptionCount)
		}
	}
	return nil
}

// QuestionView is the read shape of a question. CorrectOption is
// intentionally absent; the answer key never leaves the server on reads.
type QuestionView struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type QuizView struct {
	Title     string         `json:"title"`
	Questions []QuestionView `json:"questions"`
}

type QuizSummary struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// CreateQuiz validates the payload, then persists the quiz and bulk-inserts
// its questions in one transaction so a malformed question never leaves a
// partial quiz behind.
func (s *QuizService) CreateQuiz(req *CreateQuizRequest) (uint, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	quiz := models.Quiz{Title: req.Title}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&quiz).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	questions := make([]models.Question, 0, len(req.Questions))
	for _, qReq := range req.Questions {
		questions = append(questions, models.Question{
			QuizID:        quiz.ID,
			Text:          qReq.Text,
			Options:       datatypes.NewJSONSlice(qReq.Options),
			CorrectOption: qReq.CorrectOption,
		})
	}

	if err := tx.Create(&questions).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if err := tx.Commit().Error; err != nil {
		return 0, err
	}

	return quiz.ID, nil
}

func (s *QuizService) GetQuiz(quizID uint) (*QuizView, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id")
		}).
		First(&quiz, quizID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}

	view := &QuizView{
		Title:     quiz.Title,
		Questions: make([]QuestionView, 0, len(quiz.Questions)),
	}
	for _, question := range quiz.Questions {
		view.Questions = append(view.Questions, QuestionView{
			ID:      question.ID,
			Text:    question.Text,
			Options: question.Options,
		})
	}

	return view, nil
}

// ListQuizzes returns the quizzes the given user has not attempted yet, i.e.
// those without a Result row for that user.
func (s *QuizService) ListQuizzes(userID uint) ([]QuizSummary, error) {
	attempted := s.db.Model(&models.Result{}).Select("quiz_id").Where("user_id = ?", userID)

	var quizzes []models.Quiz
	if err := s.db.Where("id NOT IN (?)", attempted).Order("id").Find(&quizzes).Error; err != nil {
		return nil, err
	}

	summaries := make([]QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, QuizSummary{ID: quiz.ID, Title: quiz.Title})
	}
	return summaries, nil
}
