package tt

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// -----------------------------------------------------------------------------
// MockModel - implements llms.Model
// -----------------------------------------------------------------------------

// MockModel is a configurable fake backend. Responses and errors are queued
// per call; messages and resolved call options are captured for inspection.
type MockModel struct {
	responses []*llms.ContentResponse
	errors    []error
	callCount int

	// CapturedMessages stores the messages passed to each
	// GenerateContent call. Populated automatically on every call.
	CapturedMessages [][]llms.MessageContent

	// CapturedOptions stores the call options of each call, applied to a
	// llms.CallOptions struct so individual fields can be asserted.
	CapturedOptions []llms.CallOptions
}

// NewMockModel creates an empty MockModel. With nothing queued, every call
// yields a completion with empty content.
func NewMockModel() *MockModel {
	return &MockModel{}
}

// AddResponse queues a single-choice completion with the given content and
// stop reason.
func (m *MockModel) AddResponse(content, stopReason string) *MockModel {
	return m.AddRawResponse(&llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: content, StopReason: stopReason}},
	})
}

// AddRawResponse queues a completion as-is. Use this when the response
// structure matters, such as an empty Choices slice.
func (m *MockModel) AddRawResponse(resp *llms.ContentResponse) *MockModel {
	m.responses = append(m.responses, resp)
	return m
}

// AddError queues an error for the next call.
func (m *MockModel) AddError(err error) *MockModel {
	// Errors and responses are matched by call index.
	for len(m.responses) <= len(m.errors) {
		m.responses = append(m.responses, nil)
	}
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times GenerateContent has been called.
func (m *MockModel) CallCount() int {
	return m.callCount
}

// GenerateContent implements llms.Model.
func (m *MockModel) GenerateContent(
	_ context.Context,
	messages []llms.MessageContent,
	options ...llms.CallOption,
) (*llms.ContentResponse, error) {
	idx := m.callCount
	m.callCount++

	m.CapturedMessages = append(m.CapturedMessages, messages)
	var applied llms.CallOptions
	for _, opt := range options {
		opt(&applied)
	}
	m.CapturedOptions = append(m.CapturedOptions, applied)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return nil, m.errors[idx]
	}
	if idx < len(m.responses) && m.responses[idx] != nil {
		return m.responses[idx], nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: ""}},
	}, nil
}

// Call implements llms.Model by delegating to GenerateContent.
func (m *MockModel) Call(
	ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	resp, err := m.GenerateContent(ctx, []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: prompt}},
		},
	}, options...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}

// Compile-time check that MockModel implements llms.Model.
var _ llms.Model = (*MockModel)(nil)
