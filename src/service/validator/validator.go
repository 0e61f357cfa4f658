// Package validator checks source text for syntax errors using a real
// grammar. Unlike the analyzer it builds a parse tree.
package validator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"

	"codetools/src/model"
)

// ErrUnsupportedLanguage is returned for languages without a grammar
var ErrUnsupportedLanguage = errors.New("unsupported language")

// maxReportedErrors caps the error list for badly broken input
const maxReportedErrors = 50

var (
	languagesOnce sync.Once
	languages     map[model.Language]*tree_sitter.Language
)

func grammarFor(lang model.Language) (*tree_sitter.Language, bool) {
	languagesOnce.Do(func() {
		languages = map[model.Language]*tree_sitter.Language{
			model.LanguageJavaScript: tree_sitter.NewLanguage(tree_sitter_javascript.Language()),
		}
	})
	l, ok := languages[lang]
	return l, ok && l != nil
}

// Supports reports whether a grammar exists for lang
func Supports(lang model.Language) bool {
	_, ok := grammarFor(lang)
	return ok
}

// Validate parses code and collects syntax errors
func Validate(ctx context.Context, code string, lang model.Language) (*model.ValidationResult, error) {
	if lang == "" {
		lang = model.DefaultLanguage
	}
	grammar, ok := grammarFor(lang)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, lang)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, fmt.Errorf("loading %s grammar: %w", lang, err)
	}

	tree := parser.Parse([]byte(code), nil)
	if tree == nil {
		return nil, fmt.Errorf("parsing %s source: parser returned no tree", lang)
	}
	defer tree.Close()

	result := &model.ValidationResult{Language: lang, Errors: make([]model.SyntaxError, 0)}
	root := tree.RootNode()
	if root.HasError() {
		collectErrors(root, &result.Errors)
	}
	result.Valid = len(result.Errors) == 0 && !root.HasError()
	if !result.Valid && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, model.SyntaxError{Line: 1, Column: 1, Message: "unexpected syntax"})
	}
	return result, nil
}

func collectErrors(node *tree_sitter.Node, out *[]model.SyntaxError) {
	if len(*out) >= maxReportedErrors {
		return
	}

	switch {
	case node.IsMissing():
		*out = append(*out, syntaxError(node, "missing "+node.Kind()))
		return
	case node.IsError():
		*out = append(*out, syntaxError(node, "unexpected syntax"))
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if child.HasError() || child.IsMissing() {
			collectErrors(child, out)
		}
	}
}

func syntaxError(node *tree_sitter.Node, msg string) model.SyntaxError {
	pos := node.StartPosition()
	return model.SyntaxError{
		Line:    int(pos.Row) + 1,
		Column:  int(pos.Column) + 1,
		Message: msg,
	}
}
