package shell

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/RubixDev/Roost/pkg/eval"
	"github.com/RubixDev/Roost/pkg/parse"
)

func TestCompletionWords(t *testing.T) {
	ev := eval.NewEvaler()
	if _, err := ev.Eval(parse.SourceForTest("var zebra = 1"), eval.EvalCfg{}); err != nil {
		t.Fatal(err)
	}
	words := completionWords(ev)
	for _, want := range []string{"zebra", "println", "while"} {
		found := false
		for _, w := range words {
			if w == want {
				found = true
			}
		}
		if !found {
			t.Errorf("completion words don't include %q", want)
		}
	}
}

func TestPlainReader(t *testing.T) {
	var prompts strings.Builder
	r := &plainReader{in: bufio.NewReader(strings.NewReader("a\nb")), promptOut: &prompts}
	for _, want := range []struct {
		line string
		err  error
	}{{"a\n", nil}, {"b", io.EOF}, {"", io.EOF}} {
		line, err := r.readLine("> ")
		if line != want.line || err != want.err {
			t.Errorf("readLine -> (%q, %v), want (%q, %v)", line, err, want.line, want.err)
		}
	}
	if got := prompts.String(); got != "> > > \n" {
		t.Errorf("prompts written: %q", got)
	}
}
