// ABOUTME: Data models for sales pipeline entities
// ABOUTME: Defines Contact, Deal, and Task structs with closed enums
package models

import (
	"time"

	"github.com/google/uuid"
)

type Contact struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Company         string     `json:"company,omitempty"`
	Tags            []string   `json:"tags,omitempty"`
	Status          string     `json:"status"`
	Score           int        `json:"score"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type Deal struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	ContactID   uuid.UUID  `json:"contact_id"`
	Value       int64      `json:"value"` // in cents
	Stage       string     `json:"stage"`
	Probability int        `json:"probability"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Archived    bool       `json:"archived"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type Task struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	ContactID     *uuid.UUID `json:"contact_id,omitempty"`
	DealID        *uuid.UUID `json:"deal_id,omitempty"`
	Type          string     `json:"type"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	DueDate       time.Time  `json:"due_date"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	AutoGenerated bool       `json:"auto_generated"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Deal stage constants.
const (
	StageProspect = "prospect"
	StageEngaged  = "engaged"
	StageMeeting  = "meeting"
	StageProposal = "proposal"
	StageWon      = "won"
	StageLost     = "lost"
)

// Contact status constants.
const (
	StatusCold = "cold"
	StatusWarm = "warm"
	StatusHot  = "hot"
)

// Task type constants.
const (
	TaskTypeCall     = "call"
	TaskTypeEmail    = "email"
	TaskTypeMeeting  = "meeting"
	TaskTypeFollowUp = "follow-up"
	TaskTypeOther    = "other"
)

// Task status constants.
const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusSnoozed   = "snoozed"
)

// Task priority constants.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Stages lists every deal stage. The stage policy table must carry an entry
// for each of these; models.ValidatePolicyTable enforces it.
var Stages = []string{
	StageProspect,
	StageEngaged,
	StageMeeting,
	StageProposal,
	StageWon,
	StageLost,
}

func IsValidStage(stage string) bool {
	for _, s := range Stages {
		if stage == s {
			return true
		}
	}
	return false
}

func IsValidContactStatus(status string) bool {
	switch status {
	case StatusCold, StatusWarm, StatusHot:
		return true
	}
	return false
}

func IsValidTaskType(taskType string) bool {
	switch taskType {
	case TaskTypeCall, TaskTypeEmail, TaskTypeMeeting, TaskTypeFollowUp, TaskTypeOther:
		return true
	}
	return false
}

func IsValidTaskStatus(status string) bool {
	switch status {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusSnoozed:
		return true
	}
	return false
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}
