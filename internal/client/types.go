// ABOUTME: Request and response payloads for the NeuroStudy API
// ABOUTME: Mirrors the backend's JSON field names

package client

import (
	"encoding/json"
	"time"

	"github.com/Zubimendi/neurostudy/cli/internal/session"
)

// envelope wraps every /api/v1 response body
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the data of a successful login or registration
type AuthResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

// UploadResult is the data of POST /upload
type UploadResult struct {
	SessionID string `json:"session_id"`
	ImageURL  string `json:"image_url"`
}

// ProcessRequest is the body of POST /process
type ProcessRequest struct {
	SessionID string `json:"session_id"`
	ImageURL  string `json:"image_url"`
}

// ProcessResult is the data of POST /process
type ProcessResult struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
}

// Flashcard is one generated front/back card
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// QuizQuestion is one generated multiple-choice question.
// Options maps the option key (A, B, ...) to its text.
type QuizQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// StudySession is the data of GET /study/{id}
type StudySession struct {
	ID                    string         `json:"id"`
	Title                 string         `json:"title"`
	ImageURL              string         `json:"image_url"`
	ExtractedText         string         `json:"extracted_text"`
	Topic                 string         `json:"topic"`
	Status                string         `json:"status"`
	CreatedAt             time.Time      `json:"created_at"`
	ShortSummary          string         `json:"short_summary"`
	DetailedSummary       string         `json:"detailed_summary"`
	SimplifiedExplanation string         `json:"simplified_explanation"`
	KeyConcepts           []string       `json:"key_concepts"`
	Flashcards            []Flashcard    `json:"flashcards"`
	QuizQuestions         []QuizQuestion `json:"quiz_questions"`
}

// SessionSummary is one entry of GET /study/recent
type SessionSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthResponse represents the /health endpoint response
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
