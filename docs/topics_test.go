package docs

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fenced code blocks tagged with one of these info strings are executed in
// order, each file being a scenario:
//
//   - "bash setup" starts from a fresh directory,
//   - "bash run" output is kept for the next "console check",
//   - "bash check" must exit with status 0.
const (
	bashSetup    = "bash setup"
	bashRun      = "bash run"
	consoleCheck = "console check"
	bashCheck    = "bash check"
)

// listed matches the topic entries of readme.md: "* name: summary".
var listed = regexp.MustCompile(`(?m)^\*\s+([^:]+):`)

func TestTopics(t *testing.T) {
	readme, err := os.ReadFile("readme.md")
	if err != nil {
		t.Fatal(err)
	}
	var topicsInReadme []string
	for _, m := range listed.FindAllSubmatch(readme, -1) {
		topic := strings.TrimSpace(string(m[1]))
		topicsInReadme = append(topicsInReadme, topic)
		if _, err := Topic(topic); err != nil {
			t.Errorf("readme.md lists %q: %v", topic, err)
		}
	}

	all, err := List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
	if len(all) != len(topicsInReadme) {
		t.Errorf("readme.md lists %d topics, want %d", len(topicsInReadme), len(all))
	}

	if _, err := Topic("nope"); err == nil {
		t.Errorf("Topic(\"nope\") succeeded, want an error")
	}
	everything, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(\"*\") failed: %v", err)
	}
	if !strings.Contains(everything, "# Methodology") {
		t.Errorf("Topic(\"*\") does not contain the methodology")
	}
}

func TestCodeBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	files = append(files, "../README.md")

	var pst string
	for _, file := range files {
		blocks := fencedBlocks(t, file)
		if len(blocks) == 0 {
			continue
		}
		if pst == "" {
			pst = buildPst(t)
		}
		t.Run(file, func(t *testing.T) {
			s := scenario{dir: t.TempDir(), env: scenarioEnv(pst)}
			for _, b := range blocks {
				s.play(t, b)
			}
		})
	}
}

type block struct {
	kind string
	code string
	pos  string // file:line
}

// buildPst builds the pst binary and returns the directory holding it.
func buildPst(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := exec.Command("go", "build", "-o", filepath.Join(dir, "pst"), "../pst/").CombinedOutput()
	if err != nil {
		t.Fatalf("go build ../pst/: %v\n%s", err, out)
	}
	return dir
}

// scenarioEnv puts pst first in the PATH and clears the user's settings so
// documented examples never depend on them.
func scenarioEnv(pstDir string) []string {
	env := append(os.Environ(), "PATH="+pstDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	for _, name := range []string{"PST_MARKET_FILE", "DATABASE_URL", "EODHD_API_KEY", "PST_CURRENCY", "PST_LOG_LEVEL"} {
		env = append(env, name+"=")
	}
	return env
}

// fencedBlocks returns the executable blocks of a markdown file.
func fencedBlocks(t *testing.T, file string) []block {
	t.Helper()
	source, err := os.ReadFile(file)
	if err != nil {
		t.Fatal(err)
	}

	var blocks []block
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !entering || !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		kind := string(fcb.Info.Segment.Value(source))
		switch kind {
		case bashSetup, bashRun, bashCheck, consoleCheck:
		default:
			return ast.WalkContinue, nil
		}
		var code strings.Builder
		lines := fcb.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			code.Write(seg.Value(source))
		}
		line := bytes.Count(source[:fcb.Info.Segment.Start], []byte("\n")) + 1
		blocks = append(blocks, block{kind: kind, code: code.String(), pos: file + ":" + strconv.Itoa(line)})
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return blocks
}

// scenario is the state shared by the blocks of a file.
type scenario struct {
	dir    string
	env    []string
	output string // of the last "bash run"
}

func (s *scenario) play(t *testing.T, b block) {
	t.Helper()
	if b.kind == consoleCheck {
		want := strings.TrimSpace(b.code)
		got := strings.ReplaceAll(strings.TrimSpace(s.output), "\t", "        ")
		if got != want {
			t.Errorf("%s: output mismatch\ngot:\n%s\nwant:\n%s", b.pos, got, want)
		}
		return
	}
	if b.kind == bashSetup {
		s.dir = t.TempDir()
	}

	cmd := exec.Command("bash", "-c", "set -e; "+b.code)
	cmd.Dir, cmd.Env = s.dir, s.env
	out, err := cmd.CombinedOutput()
	if b.kind == bashRun {
		s.output = string(out)
	}
	switch {
	case err == nil:
	case b.kind == bashCheck:
		t.Errorf("%s: %s failed: %v\n%s", b.pos, b.kind, err, out)
	default:
		t.Fatalf("%s: %s failed: %v\n%s", b.pos, b.kind, err, out)
	}
}
