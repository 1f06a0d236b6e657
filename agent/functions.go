package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library dispatches function calls to their implementation.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

type Function interface {
	// Declare this function
	Declaration() *genai.FunctionDeclaration
	// Call this function
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary returns a Library calling functions by their declared name.
func NewLibrary[T Function](functions []T) Library {
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		for _, f := range functions {
			if f.Declaration().Name == call.Name {
				return f.Call(ctx, call.ID, call.Args)
			}
		}
		return failure(call.ID, call.Name, fmt.Errorf("unknown function %s", call.Name))
	}
}

// NewDeclaration returns the declarations of functions.
func NewDeclaration[T Function](functions []T) []*genai.FunctionDeclaration {
	result := make([]*genai.FunctionDeclaration, 0, len(functions))
	for _, f := range functions {
		result = append(result, f.Declaration())
	}
	return result
}

// Func implements a Function with a closure.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}
