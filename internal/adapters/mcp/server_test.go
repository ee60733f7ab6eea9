package mcpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/oncograph/paperqa/internal/core/domain"
)

type answererFake struct {
	lastQuestion string
	lastLimit    int
	answer       *domain.Answer
	err          error
}

func (f *answererFake) Ask(_ context.Context, question string, limit int) (*domain.Answer, error) {
	f.lastQuestion = question
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func newToolRequest(args map[string]any) mcp.CallToolRequest {
	request := mcp.CallToolRequest{}
	request.Params.Name = "ask_paper"
	request.Params.Arguments = args
	return request
}

func TestHandleAskReturnsAnswerJSON(t *testing.T) {
	fake := &answererFake{answer: &domain.Answer{
		Question: "What are the symptoms of lung cancer?",
		Intent:   domain.IntentSymptoms,
		Results:  []domain.Row{{"item": "coughing"}},
	}}
	srv := NewServer(fake, "test")

	result, err := srv.handleAsk(context.Background(), newToolRequest(map[string]any{
		"question": "What are the symptoms of lung cancer?",
		"limit":    3,
	}))
	if err != nil {
		t.Fatalf("handleAsk() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %+v", result)
	}
	if fake.lastLimit != 3 {
		t.Fatalf("expected limit 3, got %d", fake.lastLimit)
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	var answer domain.Answer
	if err := json.Unmarshal([]byte(text.Text), &answer); err != nil {
		t.Fatalf("decode answer payload: %v", err)
	}
	if answer.Intent != domain.IntentSymptoms {
		t.Fatalf("unexpected intent %s", answer.Intent)
	}
}

func TestHandleAskRequiresQuestion(t *testing.T) {
	srv := NewServer(&answererFake{}, "test")

	result, err := srv.handleAsk(context.Background(), newToolRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handleAsk() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error for missing question")
	}
}

func TestHandleAskReportsPipelineFailure(t *testing.T) {
	fake := &answererFake{err: errors.New("graph unavailable")}
	srv := NewServer(fake, "test")

	result, err := srv.handleAsk(context.Background(), newToolRequest(map[string]any{
		"question": "What dataset was used?",
	}))
	if err != nil {
		t.Fatalf("handleAsk() error = %v", err)
	}
	if !result.IsError {
		t.Fatalf("expected tool error for pipeline failure")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if !strings.Contains(text.Text, "graph unavailable") {
		t.Fatalf("expected cause in error text, got %q", text.Text)
	}
}
