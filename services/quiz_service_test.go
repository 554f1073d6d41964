package services

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"quizbox/models"
)

func validQuizRequest() *CreateQuizRequest {
	return &CreateQuizRequest{
		Title: "Sample Quiz",
		Questions: []CreateQuestionRequest{
			{
				Text:          "Sample Question 1?",
				Options:       []string{"Option 1", "Option 2", "Option 3", "Option 4"},
				CorrectOption: 2,
			},
			{
				Text:          "Sample Question 2?",
				Options:       []string{"Option A", "Option B", "Option C", "Option D"},
				CorrectOption: 1,
			},
		},
	}
}

func TestCreateQuizPersistsQuestions(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)

	req := validQuizRequest()
	quizID, err := service.CreateQuiz(req)
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	if quizID == 0 {
		t.Fatal("expected a non-zero quiz id")
	}

	var questions []models.Question
	if err := db.Where("quiz_id = ?", quizID).Order("id").Find(&questions).Error; err != nil {
		t.Fatalf("failed to load questions: %v", err)
	}
	if len(questions) != len(req.Questions) {
		t.Fatalf("expected %d questions, got %d", len(req.Questions), len(questions))
	}

	for i, question := range questions {
		if question.Text != req.Questions[i].Text {
			t.Errorf("question %d text = %q, want %q", i, question.Text, req.Questions[i].Text)
		}
		if question.CorrectOption != req.Questions[i].CorrectOption {
			t.Errorf("question %d correct option = %d, want %d", i, question.CorrectOption, req.Questions[i].CorrectOption)
		}
		if len(question.Options) != models.OptionCount {
			t.Fatalf("question %d has %d options, want %d", i, len(question.Options), models.OptionCount)
		}
		for j, option := range question.Options {
			if option != req.Questions[i].Options[j] {
				t.Errorf("question %d option %d = %q, want %q", i, j, option, req.Questions[i].Options[j])
			}
		}
	}
}

func TestCreateQuizRejectsInvalidPayloads(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateQuizRequest)
	}{
		{"empty title", func(r *CreateQuizRequest) { r.Title = "" }},
		{"title too long", func(r *CreateQuizRequest) { r.Title = strings.Repeat("a", 201) }},
		{"no questions", func(r *CreateQuizRequest) { r.Questions = nil }},
		{"empty question text", func(r *CreateQuizRequest) { r.Questions[0].Text = "" }},
		{"question text too long", func(r *CreateQuizRequest) { r.Questions[1].Text = strings.Repeat("b", 501) }},
		{"too few options", func(r *CreateQuizRequest) { r.Questions[0].Options = []string{"Only Option"} }},
		{"too many options", func(r *CreateQuizRequest) {
			r.Questions[0].Options = append(r.Questions[0].Options, "Option 5")
		}},
		{"correct option too low", func(r *CreateQuizRequest) { r.Questions[0].CorrectOption = 0 }},
		{"correct option too high", func(r *CreateQuizRequest) { r.Questions[0].CorrectOption = 5 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := newTestDB(t)
			service := NewQuizService(db)

			req := validQuizRequest()
			tc.mutate(req)

			if _, err := service.CreateQuiz(req); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}

			// A rejected payload must not leave partial rows behind.
			var quizCount, questionCount int64
			db.Model(&models.Quiz{}).Count(&quizCount)
			db.Model(&models.Question{}).Count(&questionCount)
			if quizCount != 0 || questionCount != 0 {
				t.Fatalf("partial write: %d quizzes, %d questions", quizCount, questionCount)
			}
		})
	}
}

func TestGetQuizOmitsAnswerKey(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)

	quizID, err := service.CreateQuiz(validQuizRequest())
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	view, err := service.GetQuiz(quizID)
	if err != nil {
		t.Fatalf("GetQuiz failed: %v", err)
	}
	if view.Title != "Sample Quiz" {
		t.Errorf("title = %q, want %q", view.Title, "Sample Quiz")
	}
	if len(view.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(view.Questions))
	}

	encoded, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("failed to marshal view: %v", err)
	}
	if strings.Contains(string(encoded), "correct_option") {
		t.Errorf("quiz view leaks the answer key: %s", encoded)
	}
}

func TestGetQuizNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)

	if _, err := service.GetQuiz(42); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestListQuizzesExcludesAttempted(t *testing.T) {
	db := newTestDB(t)
	service := NewQuizService(db)

	firstID, err := service.CreateQuiz(validQuizRequest())
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}
	second := validQuizRequest()
	second.Title = "Second Quiz"
	secondID, err := service.CreateQuiz(second)
	if err != nil {
		t.Fatalf("CreateQuiz failed: %v", err)
	}

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	if err := db.Create(&models.Result{QuizID: firstID, UserID: alice}).Error; err != nil {
		t.Fatalf("failed to create result: %v", err)
	}

	got, err := service.ListQuizzes(alice)
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != secondID {
		t.Fatalf("expected only quiz %d for alice, got %+v", secondID, got)
	}

	got, err = service.ListQuizzes(bob)
	if err != nil {
		t.Fatalf("ListQuizzes failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both quizzes for bob, got %+v", got)
	}
}
