package structure

import (
	"testing"

	"github.com/agusespa/classweave/internal/syntax"
	"github.com/agusespa/classweave/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractJava(t *testing.T, src string) *types.FileStructure {
	t.Helper()
	fs, err := ExtractSource(syntax.Java(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, fs)
	return fs
}

func TestExtract_TopLevelOrder(t *testing.T) {
	fs := extractJava(t, `package com.example;

class Zeta {}
class Alpha {}
interface Middle {}
`)

	assert.Equal(t, []string{"Zeta", "Alpha", "Middle"}, fs.ClassNames())
}

func TestExtract_Calculator(t *testing.T) {
	fs := extractJava(t, `package com.example;

import java.util.List;

public class Calculator {
    private int value;

    public Calculator() {
        this.value = 0;
    }

    public int add(int a, int b) {
        return a + b;
    }

    public int add(int a, int b, int c) {
        return a + b + c;
    }

    public void setValue(int newValue) {
        this.value = newValue;
    }
}
`)

	require.Len(t, fs.Classes, 1)
	assert.Equal(t, types.ClassInfo{
		Name:    "Calculator",
		Methods: []string{"add", "add", "setValue"},
		Fields:  []string{"value"},
	}, fs.Classes[0])
}

func TestExtract_MultiVariableField(t *testing.T) {
	fs := extractJava(t, `class Box { int a, b, c; String label; }`)

	require.Len(t, fs.Classes, 1)
	assert.Equal(t, []string{"a", "b", "c", "label"}, fs.Classes[0].Fields)
}

func TestExtract_NestedClasses(t *testing.T) {
	fs := extractJava(t, `class Outer {
    int before;
    class Inner {
        int depth;
        void m() {}
    }
    void after() {}
    class Sibling {
        void s() {}
    }
}
`)

	assert.Equal(t, []string{"Outer", "Inner", "Sibling"}, fs.ClassNames())

	outer, _ := fs.Class("Outer")
	inner, _ := fs.Class("Inner")
	sibling, _ := fs.Class("Sibling")

	assert.Equal(t, []string{"after"}, outer.Methods)
	assert.Equal(t, []string{"before"}, outer.Fields)
	assert.Equal(t, []string{"m"}, inner.Methods)
	assert.Equal(t, []string{"depth"}, inner.Fields)
	assert.Equal(t, []string{"s"}, sibling.Methods)
	assert.Empty(t, sibling.Fields)
}

func TestExtract_AnonymousClassDoesNotLeak(t *testing.T) {
	fs := extractJava(t, `class Scheduler {
    private Runnable task = new Runnable() {
        int runs;
        public void run() {}
    };

    void start() {
        new Thread(new Runnable() {
            public void run() {}
        }).start();
    }
}
`)

	require.Len(t, fs.Classes, 1)
	assert.Equal(t, []string{"start"}, fs.Classes[0].Methods)
	assert.Equal(t, []string{"task"}, fs.Classes[0].Fields)
}

func TestExtract_AnonymousClassInitializers(t *testing.T) {
	tests := []struct {
		name string
		file string
		src  string
		want []types.ClassInfo
	}{
		{
			name: "java anonymous field initializer",
			file: "Outer.java",
			src:  `class Outer { Runnable r = new Runnable() { int leaked; public void run() {} }; }`,
			want: []types.ClassInfo{
				{Name: "Outer", Methods: []string{}, Fields: []string{"r"}},
			},
		},
		{
			name: "anonymous class inside anonymous class",
			file: "Outer.java",
			src: `class Outer {
    Runnable r = new Runnable() {
        Runnable inner = new Runnable() {
            int deep;
            public void run() {}
        };
        public void run() {}
    };
    void after() {}
}`,
			want: []types.ClassInfo{
				{Name: "Outer", Methods: []string{"after"}, Fields: []string{"r"}},
			},
		},
		{
			name: "local class inside anonymous class",
			file: "Outer.java",
			src:  `class Outer { void m() { new Object() { void helper() { class Local { int x; } } }; } }`,
			want: []types.ClassInfo{
				{Name: "Outer", Methods: []string{"m"}, Fields: []string{}},
				{Name: "Local", Methods: []string{}, Fields: []string{"x"}},
			},
		},
		{
			name: "typescript class expression field",
			file: "host.ts",
			src:  "class Host {\n  helper = class { leaked = 1; run() {} };\n  start() {}\n}\n",
			want: []types.ClassInfo{
				{Name: "Host", Methods: []string{"start"}, Fields: []string{"helper"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, err := ExtractFile(tt.file, []byte(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.want, fs.Classes)
		})
	}
}

func TestExtract_LocalClass(t *testing.T) {
	fs := extractJava(t, `class Host {
    void build() {
        class Local {
            void help() {}
        }
    }
    void after() {}
}
`)

	assert.Equal(t, []string{"Host", "Local"}, fs.ClassNames())
	host, _ := fs.Class("Host")
	local, _ := fs.Class("Local")
	assert.Equal(t, []string{"build", "after"}, host.Methods)
	assert.Equal(t, []string{"help"}, local.Methods)
}

func TestExtract_DeclarationVariants(t *testing.T) {
	fs := extractJava(t, `interface Shape {
    double PI = 3.14;
    double area();
}

enum Direction {
    NORTH, SOUTH;
    private final String code = "n";
    String code() { return code; }
}

record Pair(int left, int right) {
    int sum() { return left + right; }
}
`)

	assert.Equal(t, []string{"Shape", "Direction", "Pair"}, fs.ClassNames())

	shape, _ := fs.Class("Shape")
	assert.Equal(t, []string{"area"}, shape.Methods)
	assert.Equal(t, []string{"PI"}, shape.Fields)

	direction, _ := fs.Class("Direction")
	assert.Equal(t, []string{"code"}, direction.Methods)
	assert.Equal(t, []string{"code"}, direction.Fields)

	pair, _ := fs.Class("Pair")
	assert.Equal(t, []string{"sum"}, pair.Methods)
	assert.Empty(t, pair.Fields)
}

func TestExtract_EmptyClassHasEmptySlices(t *testing.T) {
	fs := extractJava(t, `class Empty {}`)

	require.Len(t, fs.Classes, 1)
	assert.NotNil(t, fs.Classes[0].Methods)
	assert.NotNil(t, fs.Classes[0].Fields)
	assert.Empty(t, fs.Classes[0].Methods)
	assert.Empty(t, fs.Classes[0].Fields)
}

func TestExtract_NoClasses(t *testing.T) {
	fs := extractJava(t, `package com.example;`)
	assert.Empty(t, fs.Classes)
}

func TestExtract_TypeScript(t *testing.T) {
	fs, err := ExtractFile("shapes.ts", []byte(`export interface Shape {
  name: string;
  area(): number;
}

export class Square implements Shape {
  name = "square";
  private side: number;

  constructor(side: number) {
    this.side = side;
  }

  area(): number {
    return this.side * this.side;
  }
}
`))
	require.NoError(t, err)

	assert.Equal(t, []types.ClassInfo{
		{Name: "Shape", Methods: []string{"area"}, Fields: []string{"name"}},
		{Name: "Square", Methods: []string{"area"}, Fields: []string{"name", "side"}},
	}, fs.Classes)
}

func TestExtract_ParseError(t *testing.T) {
	_, err := ExtractFile("Bad.java", []byte("class Bad { void x( }"))
	require.Error(t, err)
	assert.True(t, syntax.IsParseError(err))
}

func TestExtract_ClosedTree(t *testing.T) {
	tree, err := syntax.Parse(syntax.Java(), []byte("class A {}"))
	require.NoError(t, err)
	tree.Close()

	_, err = Extract(tree)
	assert.ErrorIs(t, err, ErrParseIncomplete)

	_, err = Extract(nil)
	assert.ErrorIs(t, err, ErrParseIncomplete)
}
