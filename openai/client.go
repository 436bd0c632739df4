package openai

import (
	"context"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Client envuelve la API de chat para pedir una lectura complementaria de un
// historial. Es un apoyo opcional: el análisis determinista nunca depende de
// esta ruta.
type Client struct {
	api   *openai.Client
	Model string
}

const defaultModel = "gpt-4o-mini"

// NewClient devuelve nil cuando la función está deshabilitada o falta la
// clave, de modo que el resto de la app pueda tratar la IA como ausente.
func NewClient() *Client {
	if os.Getenv("AI_ANALYSIS") != "1" {
		return nil
	}
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil
	}
	model := os.Getenv("AI_ANALYSIS_MODEL")
	if model == "" {
		model = defaultModel
	}
	return &Client{api: openai.NewClient(key), Model: model}
}

const historyPrompt = "Eres un experto médico que analiza historiales clínicos. " +
	"Resume en español simple el estado de salud del paciente a partir del siguiente contenido, " +
	"en un solo párrafo y sin inventar datos que no aparezcan en el texto."

// AnalyzeHistory pide un resumen en lenguaje sencillo del contenido clínico.
func (c *Client) AnalyzeHistory(ctx context.Context, content string) (string, error) {
	const maxChars = 4000
	if len(content) > maxChars {
		content = content[:maxChars]
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: historyPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
