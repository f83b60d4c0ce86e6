package types

// ClassInfo is the structural summary of one class-like declaration.
type ClassInfo struct {
	Name    string   `json:"name" yaml:"name"`       // Identifier text, unique within its file
	Methods []string `json:"methods" yaml:"methods"` // Method names in declaration order, overloads repeated
	Fields  []string `json:"variables" yaml:"variables"`
}

// FileStructure holds the classes of one parsed file in pre-order discovery order.
type FileStructure struct {
	Classes []ClassInfo `json:"classes" yaml:"classes"`
}

// Class returns the first class with the given name.
func (fs *FileStructure) Class(name string) (ClassInfo, bool) {
	for _, c := range fs.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassInfo{}, false
}

// ClassNames returns the class names in discovery order.
func (fs *FileStructure) ClassNames() []string {
	names := make([]string, 0, len(fs.Classes))
	for _, c := range fs.Classes {
		names = append(names, c.Name)
	}
	return names
}

// FileResult is the extraction outcome for a single file of a batch.
// Structure is nil when Error is set.
type FileResult struct {
	File      string         `json:"file" yaml:"file"`
	Structure *FileStructure `json:"structure,omitempty" yaml:"structure,omitempty"`
	Error     string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether extraction failed for this file.
func (r FileResult) Failed() bool {
	return r.Error != ""
}
