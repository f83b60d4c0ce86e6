package inject

import (
	"github.com/agusespa/classweave/internal/source"
	"github.com/agusespa/classweave/internal/syntax"
)

// Options controls how InjectFile persists its result.
type Options struct {
	// OutputPath receives the updated text. Empty means overwrite the input.
	OutputPath string
	// DryRun builds the updated text without writing anything.
	DryRun bool
}

// Result describes one completed injection.
type Result struct {
	Path       string
	OutputPath string
	Class      string
	Original   []byte
	Updated    []byte
	// InsertAt is the offset of the class body's closing delimiter in Original.
	InsertAt int
	Method   string
	Written  bool
}

// InjectMethod returns src with method inserted on its own line immediately
// before the closing delimiter of className's body. Every other byte of src is
// kept. Injecting the same method twice inserts it twice.
func InjectMethod(lang *syntax.Language, src []byte, className, method string) ([]byte, error) {
	tree, err := syntax.Parse(lang, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	span, err := LocateClassBody(tree, className)
	if err != nil {
		return nil, err
	}

	return splice(src, span.End-1, method), nil
}

// InjectFile injects method into className in the file at path. The updated
// text is built in full before anything is written, and nothing is written
// when any step fails.
func InjectFile(path, className, method string, opts Options) (*Result, error) {
	f, err := source.Read(path)
	if err != nil {
		return nil, err
	}

	tree, err := syntax.ParseFile(f.Path, f.Text)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	span, err := LocateClassBody(tree, className)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Path:       f.Path,
		OutputPath: opts.OutputPath,
		Class:      className,
		Original:   f.Text,
		InsertAt:   span.End - 1,
		Method:     method,
	}
	if res.OutputPath == "" {
		res.OutputPath = f.Path
	}
	res.Updated = splice(f.Text, res.InsertAt, method)

	if opts.DryRun {
		return res, nil
	}

	if err := source.WriteAtomic(res.OutputPath, res.Updated); err != nil {
		return nil, err
	}
	res.Written = true

	return res, nil
}

func splice(src []byte, at int, method string) []byte {
	out := make([]byte, 0, len(src)+len(method)+2)
	out = append(out, src[:at]...)
	out = append(out, '\n')
	out = append(out, method...)
	out = append(out, '\n')
	out = append(out, src[at:]...)
	return out
}
