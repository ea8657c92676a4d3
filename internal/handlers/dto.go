package handlers

import (
	"time"

	"persona-admin/internal/service"
)

// PersonaDTO is the wire form of a persona.
//
// swagger:model PersonaDTO
type PersonaDTO struct {
	PersonaCode   string `json:"personaCode"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	DescriptionEn string `json:"descriptionEn,omitempty"`
	Category      string `json:"category"`
	WelcomeMsg    string `json:"welcomeMsg,omitempty"`
	SystemPrompt  string `json:"systemPrompt,omitempty"`
	// Active is always true; personas cannot be deactivated.
	Active      bool   `json:"active"`
	CreatedDate string `json:"createdDate,omitempty"`
	UpdatedDate string `json:"updatedDate,omitempty"`
}

func toPersonaDTO(p service.Persona) PersonaDTO {
	return PersonaDTO{
		PersonaCode:   p.PersonaCode,
		Title:         p.Title,
		Description:   p.Description,
		DescriptionEn: p.DescriptionEn,
		Category:      p.Category,
		WelcomeMsg:    p.WelcomeMsg,
		SystemPrompt:  p.SystemPrompt,
		Active:        p.Active,
		CreatedDate:   formatTime(p.CreatedDate),
		UpdatedDate:   formatTime(p.UpdatedDate),
	}
}

func toPersonaDTOs(personas []service.Persona) []PersonaDTO {
	out := make([]PersonaDTO, 0, len(personas))
	for _, p := range personas {
		out = append(out, toPersonaDTO(p))
	}
	return out
}

// Timestamps are assigned by the store, so they are not read from requests.
func (d PersonaDTO) toPersona() service.Persona {
	return service.Persona{
		PersonaCode:   d.PersonaCode,
		Title:         d.Title,
		Description:   d.Description,
		DescriptionEn: d.DescriptionEn,
		Category:      d.Category,
		WelcomeMsg:    d.WelcomeMsg,
		SystemPrompt:  d.SystemPrompt,
		Active:        true,
	}
}

// PromptVersionDTO is one stored prompt version.
//
// swagger:model PromptVersionDTO
type PromptVersionDTO struct {
	RecordID    int64  `json:"recordId"`
	PersonaCode string `json:"personaCode"`
	PromptText  string `json:"promptText"`
	CreatedAt   string `json:"createdAt"`
}

// PersonaHistoryDTO lists the stored versions of a persona.
type PersonaHistoryDTO struct {
	PersonaCode string             `json:"personaCode"`
	Total       int                `json:"total"`
	Versions    []PromptVersionDTO `json:"versions"`
}

func toPromptVersionDTOs(versions []service.PromptVersion) []PromptVersionDTO {
	out := make([]PromptVersionDTO, 0, len(versions))
	for _, v := range versions {
		out = append(out, PromptVersionDTO{
			RecordID:    v.RecordID,
			PersonaCode: v.PersonaCode,
			PromptText:  v.PromptText,
			CreatedAt:   formatTime(v.CreatedAt),
		})
	}
	return out
}

// SimilarPersonaDTO is a persona found by similarity search.
type SimilarPersonaDTO struct {
	PersonaDTO
	Score float32 `json:"score"`
}

// ImportResultDTO summarizes a bulk import.
type ImportResultDTO struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
	Report   string   `json:"report"`
}

// ConversationDTO is the wire form of a logged conversation.
//
// swagger:model ConversationDTO
type ConversationDTO struct {
	ID          int64  `json:"id"`
	PersonaCode string `json:"personaCode"`
	UserQuery   string `json:"userQuery"`
	AIResponse  string `json:"aiResponse"`
	UserID      string `json:"userId"`
	CreatedAt   string `json:"createdAt"`
}

func toConversationDTO(c service.Conversation) ConversationDTO {
	return ConversationDTO{
		ID:          c.ID,
		PersonaCode: c.PersonaCode,
		UserQuery:   c.UserQuery,
		AIResponse:  c.AIResponse,
		UserID:      c.UserID,
		CreatedAt:   formatTime(c.CreatedAt),
	}
}

// ConversationPageDTO is one page of conversations.
//
// swagger:model ConversationPageDTO
type ConversationPageDTO struct {
	Conversations []ConversationDTO `json:"conversations"`
	CurrentPage   int               `json:"currentPage"`
	PageSize      int               `json:"pageSize"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	First         bool              `json:"first"`
	Last          bool              `json:"last"`
	HasNext       bool              `json:"hasNext"`
	HasPrevious   bool              `json:"hasPrevious"`
	PersonaCode   string            `json:"personaCode,omitempty"`
	UserID        string            `json:"userId,omitempty"`
	StartDate     string            `json:"startDate,omitempty"`
	EndDate       string            `json:"endDate,omitempty"`
}

func toConversationPageDTO(p service.ConversationPage) ConversationPageDTO {
	convs := make([]ConversationDTO, 0, len(p.Conversations))
	for _, c := range p.Conversations {
		convs = append(convs, toConversationDTO(c))
	}
	return ConversationPageDTO{
		Conversations: convs,
		CurrentPage:   p.CurrentPage,
		PageSize:      p.PageSize,
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		First:         p.First,
		Last:          p.Last,
		HasNext:       p.HasNext,
		HasPrevious:   p.HasPrevious,
		PersonaCode:   p.PersonaCode,
		UserID:        p.UserID,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	}
}

// RecordConversationRequest is the payload for logging a conversation.
// CreatedAt is optional and uses TimestampLayout.
type RecordConversationRequest struct {
	PersonaCode string `json:"personaCode"`
	UserQuery   string `json:"userQuery"`
	AIResponse  string `json:"aiResponse"`
	UserID      string `json:"userId"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// SystemPromptTestRequest is the payload for testing a system prompt.
type SystemPromptTestRequest struct {
	PromptContent string `json:"promptContent"`
	TestInput     string `json:"testInput"`
	PersonaCode   string `json:"personaCode"`
}

// SystemPromptUpdateRequest is the payload for replacing a persona prompt.
type SystemPromptUpdateRequest struct {
	SystemPrompt string `json:"systemPrompt"`
}

// ValidationResultDTO reports whether a prompt is acceptable.
type ValidationResultDTO struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Length  int    `json:"length"`
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(TimestampLayout, s, time.UTC)
}
