package utils

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/raushankrgupta/skinbox/recommender"
	"github.com/stretchr/testify/require"
)

func TestToGenaiSchema(t *testing.T) {
	s := toGenaiSchema(recommender.ResponseSchema("Russian"))

	require.Equal(t, genai.TypeObject, s.Type)
	require.Len(t, s.Required, 6)
	require.Equal(t, genai.TypeObject, s.Properties["routine"].Type)
	require.Equal(t, []string{"morning", "evening"}, s.Properties["routine"].Required)
	require.Equal(t, genai.TypeArray, s.Properties["productIds"].Type)
	require.Equal(t, genai.TypeString, s.Properties["productIds"].Items.Type)
	require.Equal(t, genai.TypeString, s.Properties["reasoning"].Items.Properties["explanation"].Type)
}

func TestResponseText(t *testing.T) {
	require.Empty(t, responseText(nil))
	require.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"analysis":`),
				genai.Blob{MIMEType: "image/png", Data: []byte{1}},
				genai.Text(`"ok"}`),
			}},
		}},
	}
	require.Equal(t, `{"analysis":"ok"}`, responseText(resp))
}
