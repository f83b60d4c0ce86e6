package syntax

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language describes how one tree-sitter grammar maps onto the abstract node kinds.
type Language struct {
	name       string
	extensions []string
	language   *sitter.Language

	// kinds maps grammar node kinds to abstract kinds.
	kinds map[string]Kind
	// bodyKinds are the member containers used when a declaration has no "body" field.
	bodyKinds map[string]bool
	// declaratorKind is the grammar kind of one variable in a multi-variable field.
	// Empty when every field declaration names exactly one variable.
	declaratorKind string
	// constructorName marks a method as a constructor by its identifier.
	constructorName string
	// memberSections maps a body kind to the child kind that must be present
	// before members can follow, like the ';' section of a Java enum body.
	memberSections map[string]string
}

var (
	javaLanguage = &Language{
		name:       "Java",
		extensions: []string{".java"},
		language:   sitter.NewLanguage(tree_sitter_java.Language()),
		kinds: map[string]Kind{
			"class_declaration":                   KindClass,
			"interface_declaration":               KindInterface,
			"enum_declaration":                    KindEnum,
			"record_declaration":                  KindRecord,
			"annotation_type_declaration":         KindAnnotation,
			"object_creation_expression":          KindAnonymousClass,
			"enum_constant":                       KindAnonymousClass,
			"method_declaration":                  KindMethod,
			"annotation_type_element_declaration": KindMethod,
			"constructor_declaration":             KindConstructor,
			"compact_constructor_declaration":     KindConstructor,
			"field_declaration":                   KindField,
			"constant_declaration":                KindField,
		},
		bodyKinds: map[string]bool{
			"class_body": true,
		},
		declaratorKind: "variable_declarator",
		memberSections: map[string]string{
			"enum_body": "enum_body_declarations",
		},
	}

	typeScriptKinds = map[string]Kind{
		"class_declaration":          KindClass,
		"abstract_class_declaration": KindClass,
		"class":                      KindClass,
		"interface_declaration":      KindInterface,
		"enum_declaration":           KindEnum,
		"method_definition":          KindMethod,
		"method_signature":           KindMethod,
		"abstract_method_signature":  KindMethod,
		"public_field_definition":    KindField,
		"property_signature":         KindField,
	}

	typeScriptLanguage = &Language{
		name:            "TypeScript",
		extensions:      []string{".ts"},
		language:        sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		kinds:           typeScriptKinds,
		bodyKinds:       map[string]bool{"class_body": true},
		constructorName: "constructor",
	}

	tsxLanguage = &Language{
		name:            "TSX",
		extensions:      []string{".tsx"},
		language:        sitter.NewLanguage(tree_sitter_typescript.LanguageTSX()),
		kinds:           typeScriptKinds,
		bodyKinds:       map[string]bool{"class_body": true},
		constructorName: "constructor",
	}
)

func Java() *Language {
	return javaLanguage
}

func TypeScript() *Language {
	return typeScriptLanguage
}

func TSX() *Language {
	return tsxLanguage
}

// Languages returns every registered grammar.
func Languages() []*Language {
	return []*Language{javaLanguage, typeScriptLanguage, tsxLanguage}
}

// ForPath returns the grammar registered for the file's extension.
func ForPath(path string) (*Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, lang := range Languages() {
		if slices.Contains(lang.SupportedExtensions(), ext) {
			return lang, nil
		}
	}
	return nil, ErrUnsupportedLanguage
}

// Extensions returns the extensions of every registered grammar.
func Extensions() []string {
	var exts []string
	for _, lang := range Languages() {
		exts = append(exts, lang.SupportedExtensions()...)
	}
	return exts
}

func (l *Language) Name() string {
	return l.name
}

func (l *Language) SupportedExtensions() []string {
	return l.extensions
}
