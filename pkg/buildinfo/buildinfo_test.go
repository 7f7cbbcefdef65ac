package buildinfo

import (
	"fmt"
	"testing"

	. "github.com/RubixDev/Roost/pkg/prog/progtest"
	"github.com/RubixDev/Roost/pkg/testutil"
)

func TestProgram(t *testing.T) {
	info := Value()
	Test(t, Program,
		ThatRoost("-version").WritesStdout(info.Version+"\n"),
		ThatRoost("-version", "-json").WritesStdout(mustToJSON(info.Version)+"\n"),

		ThatRoost("-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\nReproducible build: false\n",
				info.Version, info.GoVersion)),
		ThatRoost("-buildinfo", "-json").WritesStdout(mustToJSON(info)+"\n"),

		ThatRoost().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestValue(t *testing.T) {
	testutil.Set(t, &VersionSuffix, "-test")
	testutil.Set(t, &Reproducible, "true")
	want := Info{Version + "-test", Value().GoVersion, true}
	if got := Value(); got != want {
		t.Errorf("Value() = %+v, want %+v", got, want)
	}
}
