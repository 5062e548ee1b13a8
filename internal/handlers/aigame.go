package handlers

import (
	"net/http"

	"github.com/siddug/sag/internal/auth"
	"github.com/siddug/sag/internal/services"
	"github.com/siddug/sag/pkg/llm"
)

// handleCreateTemplate creates an AI chat game template
func (h *Handlers) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	tmpl, err := h.AIGame.CreateTemplate(r.Context(), auth.AdminID(r.Context()), services.CreateTemplateInput{
		Name:                req.Name,
		GameType:            req.GameType,
		SystemPrompt:        req.SystemPrompt,
		ScoringInstructions: req.ScoringInstructions,
		InitialScore:        req.InitialScore,
		APIKeys:             req.APIKeys,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondCreated(w, tmpl)
}

// handleListTemplates lists the admin's AI chat game templates
func (h *Handlers) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.AIGame.ListTemplates(r.Context(), auth.AdminID(r.Context()))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, templates)
}

// handleDeleteTemplate deletes an AI chat game template
func (h *Handlers) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := requireParam(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.AIGame.DeleteTemplate(r.Context(), auth.AdminID(r.Context()), id); err != nil {
		respondError(w, err)
		return
	}

	respondDeleted(w)
}

// handleChat runs one AI chat turn against a template
func (h *Handlers) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.TemplateID == "" {
		respondError(w, BadRequest("Missing template_id"))
		return
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	reply, err := h.AIGame.Chat(r.Context(), req.TemplateID, messages)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, ChatResponse{
		Message:    reply.Message,
		ScoreDelta: reply.ScoreDelta,
		Reasoning:  reply.Reasoning,
	})
}
