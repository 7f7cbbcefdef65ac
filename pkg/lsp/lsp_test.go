package lsp

import (
	"testing"

	. "github.com/RubixDev/Roost/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	Test(t, Program{},
		ThatRoost().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
		// The server stops when the input ends.
		ThatRoost("-lsp").WithStdin(""),
	)
}
