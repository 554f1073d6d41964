package services

import (
	"errors"
	"fmt"

	"quizbox/models"

	"gorm.io/gorm"
)

var (
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoResultsForUser is returned by GetResults when the quiz exists but
	// the user never submitted an answer for it.
	ErrNoResultsForUser = errors.New("results not found for the user in this quiz")
	ErrResultNotFound   = errors.New("result not found")
)

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{db: db}
}

type SubmitAnswerRequest struct {
	QuestionID     uint `json:"question_id" binding:"required"`
	SelectedOption int  `json:"selected_option" binding:"required,min=1,max=4"`
}

type AnswerFeedback struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectOption int    `json:"correct_option"`
	Message       string `json:"message"`
}

type AnswerSummary struct {
	QuestionID     uint `json:"question_id"`
	SelectedOption int  `json:"selected_option"`
	CorrectOption  int  `json:"correct_option"`
	IsCorrect      bool `json:"is_correct"`
}

type ResultView struct {
	QuizID     uint            `json:"quiz_id"`
	UserID     uint            `json:"user_id"`
	TotalScore int             `json:"total_score"`
	Answers    []AnswerSummary `json:"answers"`
}

// SubmitAnswer records one answer and folds it into the user's running result
// for the owning quiz. Repeated submissions for the same question accumulate
// as separate answers; a correct re-submission still counts.
//
// The get-or-create plus increment below is not isolated against a concurrent
// submission for the same (quiz, user) pair; two racing correct submissions
// can lose an increment. The unique index on results keeps the row itself
// singular.
func (s *ResultService) SubmitAnswer(userID uint, req *SubmitAnswerRequest) (*AnswerFeedback, error) {
	var question models.Question
	if err := s.db.First(&question, req.QuestionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	isCorrect := req.SelectedOption == question.CorrectOption

	answer := models.Answer{
		QuestionID:     question.ID,
		UserID:         userID,
		SelectedOption: req.SelectedOption,
		IsCorrect:      isCorrect,
	}
	if err := s.db.Create(&answer).Error; err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	var result models.Result
	if err := s.db.Where(models.Result{QuizID: question.QuizID, UserID: userID}).FirstOrCreate(&result).Error; err != nil {
		return nil, fmt.Errorf("failed to load result: %w", err)
	}

	if isCorrect {
		result.Score++
		if err := s.db.Model(&result).Update("score", result.Score).Error; err != nil {
			return nil, fmt.Errorf("failed to save result: %w", err)
		}
	}

	if err := s.db.Model(&result).Association("Answers").Append(&answer); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	feedback := &AnswerFeedback{
		IsCorrect:     isCorrect,
		CorrectOption: question.CorrectOption,
	}
	if isCorrect {
		feedback.Message = "Correct answer!"
	} else {
		feedback.Message = fmt.Sprintf("Incorrect. The correct answer is %d: %s.",
			question.CorrectOption, question.Options[question.CorrectOption-1])
	}

	return feedback, nil
}

// GetResults checks the quiz before the result so a missing quiz and a
// missing result report as different errors. Answers come back in submission
// order.
func (s *ResultService) GetResults(quizID, userID uint) (*ResultView, error) {
	var quizCount int64
	if err := s.db.Model(&models.Quiz{}).Where("id = ?", quizID).Count(&quizCount).Error; err != nil {
		return nil, err
	}
	if quizCount == 0 {
		return nil, ErrQuizNotFound
	}

	var result models.Result
	err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.id")
		}).
		Preload("Answers.Question").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoResultsForUser
		}
		return nil, err
	}

	view := &ResultView{
		QuizID:     result.QuizID,
		UserID:     result.UserID,
		TotalScore: result.Score,
		Answers:    make([]AnswerSummary, 0, len(result.Answers)),
	}
	for _, answer := range result.Answers {
		view.Answers = append(view.Answers, AnswerSummary{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			CorrectOption:  answer.Question.CorrectOption,
			IsCorrect:      answer.IsCorrect,
		})
	}

	return view, nil
}

// DeleteResult removes the result for the pair together with the answers
// attached to it. Answers belonging to other users or quizzes are untouched.
func (s *ResultService) DeleteResult(quizID, userID uint) error {
	var result models.Result
	err := s.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Preload("Answers").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResultNotFound
		}
		return err
	}

	// Clear zeroes result.Answers, so capture the ids first.
	answerIDs := make([]uint, 0, len(result.Answers))
	for _, answer := range result.Answers {
		answerIDs = append(answerIDs, answer.ID)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&result).Association("Answers").Clear(); err != nil {
		tx.Rollback()
		return err
	}

	if len(answerIDs) > 0 {
		if err := tx.Delete(&models.Answer{}, answerIDs).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Delete(&result).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
