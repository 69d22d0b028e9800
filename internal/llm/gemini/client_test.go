package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{Role: "model"}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestNewClientValidatesInputs(t *testing.T) {
	_, err := NewClient(context.Background(), "", "gemini-2.0-flash", time.Second)
	assert.Error(t, err)

	_, err = NewClient(context.Background(), "key", "", time.Second)
	assert.Error(t, err)
}

func TestCompleteJoinsTextParts(t *testing.T) {
	var gotModel string
	var gotPrompt string
	client := &Client{
		model: "gemini-2.0-flash",
		generate: func(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			gotPrompt = contents[0].Parts[0].Text
			require.NotNil(t, cfg.Temperature)
			return textResponse("```json\n[\"Go\",", " \"SQL\"]\n```"), nil
		},
	}

	out, err := client.Complete(context.Background(), "extract skills")
	require.NoError(t, err)
	assert.Equal(t, "```json\n[\"Go\", \"SQL\"]\n```", out)
	assert.Equal(t, "gemini-2.0-flash", gotModel)
	assert.Equal(t, "extract skills", gotPrompt)
	assert.Equal(t, "gemini:gemini-2.0-flash", client.Name())
}

func TestCompleteWrapsProviderErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	client := &Client{
		model: "gemini-2.0-flash",
		generate: func(context.Context, string, []*genai.Content, *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, boom
		},
	}

	_, err := client.Complete(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
}

func TestResponseTextRejectsEmptyResponses(t *testing.T) {
	_, err := responseText(nil)
	assert.Error(t, err)

	_, err = responseText(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = responseText(textResponse("   "))
	assert.Error(t, err)
}

func TestResponseTextSkipsThoughtParts(t *testing.T) {
	resp := textResponse("[\"Go\"]")
	resp.Candidates[0].Content.Parts = append([]*genai.Part{{Text: "thinking...", Thought: true}}, resp.Candidates[0].Content.Parts...)

	out, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, "[\"Go\"]", out)
}
