package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// maxRounds bounds the function calls an expert can chain before answering.
const maxRounds = 8

// Expert is a chat with a model specialised by its instructions and tools.
// An Expert is itself a Function: other experts can consult it.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start opens the expert's chat.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

func (e *Expert) started() bool { return e.chat != nil }

// Ask sends parts to the expert and returns its answer.
//
// The function calls the expert makes on the way are run through its Library
// and their responses sent back, until it answers with content.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if !e.started() {
		return nil, fmt.Errorf("expert %s has not been started", e.Name)
	}
	for range maxRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content

		var responses []*genai.Part
		for _, p := range content.Parts {
			if p.FunctionCall == nil {
				continue
			}
			if e.Library == nil {
				return nil, fmt.Errorf("expert %s cannot make function calls", e.Name)
			}
			zerolog.Ctx(ctx).Debug().Str("expert", e.Name).Str("function", p.FunctionCall.Name).Msg("function call")
			// Failures are reported back to the model inside the response.
			responses = append(responses, &genai.Part{FunctionResponse: e.Library(ctx, p.FunctionCall)})
		}
		if len(responses) == 0 {
			return content, nil
		}
		parts = responses
	}
	return nil, fmt.Errorf("expert %s made more than %d rounds of function calls", e.Name, maxRounds)
}

// Declaration declares the expert as a function taking a question.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {Type: genai.TypeString, Description: "The question to ask the expert."},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{Type: genai.TypeString, Description: "The expert's answer."},
	}
}

// Call asks the question found in args.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, err := stringArg(args, "question")
	if err != nil {
		return failure(id, e.Name, err)
	}
	answer, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return failure(id, e.Name, fmt.Errorf("the expert could not answer: %w", err))
	}
	zerolog.Ctx(ctx).Debug().Str("expert", e.Name).Str("question", question).Msg("expert consulted")
	return success(id, e.Name, text(answer))
}

func success(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": output}}
}

func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"error": err.Error()}}
}

// stringArg returns the string argument called name.
func stringArg(args map[string]any, name string) (string, error) {
	switch v := args[name].(type) {
	case string:
		return v, nil
	case nil:
		return "", fmt.Errorf("missing argument %q", name)
	default:
		return "", fmt.Errorf("argument %q: got %T, want a string", name, v)
	}
}
