package model

import (
	"time"

	"github.com/google/uuid"
)

// PartOfSpeech classifies a vocabulary entry grammatically.
type PartOfSpeech string

const (
	PartOfSpeechNoun     PartOfSpeech = "noun"
	PartOfSpeechVerb     PartOfSpeech = "verb"
	PartOfSpeechParticle PartOfSpeech = "particle"
	PartOfSpeechPhrase   PartOfSpeech = "phrase"
)

// NounAttributes carries noun-specific morphology. Stored as JSONB.
type NounAttributes struct {
	Plural string `json:"plural,omitempty"`
	Gender string `json:"gender,omitempty"` // "masculine" or "feminine"
}

// VerbAttributes carries verb-specific morphology. Stored as JSONB.
type VerbAttributes struct {
	Form    string `json:"form,omitempty"` // Roman numeral form I–X
	Present string `json:"present,omitempty"`
	Masdar  string `json:"masdar,omitempty"`
}

// Word represents one vocabulary entry owned by a user.
type Word struct {
	ID           uuid.UUID       `json:"id"`
	UserID       int             `json:"user_id"`
	English      string          `json:"english"`
	Arabic       string          `json:"arabic"`
	Root         string          `json:"root,omitempty"`
	PartOfSpeech PartOfSpeech    `json:"part_of_speech"`
	Noun         *NounAttributes `json:"noun,omitempty"`
	Verb         *VerbAttributes `json:"verb,omitempty"`
	TagIDs       []uuid.UUID     `json:"tag_ids"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateWordRequest is the payload for adding a word.
type CreateWordRequest struct {
	English      string          `json:"english" binding:"required,min=1,max=200"`
	Arabic       string          `json:"arabic" binding:"required,min=1,max=200"`
	Root         string          `json:"root" binding:"max=20"`
	PartOfSpeech string          `json:"part_of_speech" binding:"required,oneof=noun verb particle phrase"`
	Noun         *NounAttributes `json:"noun" binding:"omitempty"`
	Verb         *VerbAttributes `json:"verb" binding:"omitempty"`
	TagIDs       []string        `json:"tag_ids" binding:"omitempty,dive,uuid"`
}

// UpdateWordRequest is the payload for replacing a word's fields.
type UpdateWordRequest struct {
	English      string          `json:"english" binding:"required,min=1,max=200"`
	Arabic       string          `json:"arabic" binding:"required,min=1,max=200"`
	Root         string          `json:"root" binding:"max=20"`
	PartOfSpeech string          `json:"part_of_speech" binding:"required,oneof=noun verb particle phrase"`
	Noun         *NounAttributes `json:"noun" binding:"omitempty"`
	Verb         *VerbAttributes `json:"verb" binding:"omitempty"`
	TagIDs       []string        `json:"tag_ids" binding:"omitempty,dive,uuid"`
}
