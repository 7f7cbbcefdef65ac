package shell

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/RubixDev/Roost/pkg/prog"
	. "github.com/RubixDev/Roost/pkg/prog/progtest"
	"github.com/RubixDev/Roost/pkg/testutil"
)

// Points the home and XDG directories to a new temporary directory, and
// returns it.
func setupCleanHomePaths(t *testing.T) string {
	home := testutil.TempDir(t)
	testutil.Setenv(t, "HOME", home)
	testutil.Unsetenv(t, "XDG_CONFIG_HOME")
	testutil.Unsetenv(t, "XDG_STATE_HOME")
	return home
}

func TestLoadConfig_DefaultPathMissing(t *testing.T) {
	setupCleanHomePaths(t)
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Config{Prompt: defaultPrompt}, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_DefaultPath(t *testing.T) {
	home := setupCleanHomePaths(t)
	testutil.MustWriteFile(filepath.Join(home, ".config", "roost", "config.yaml"),
		"prompt: 'roost> '\ntime: true\n")
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	want := Config{Prompt: "roost> ", Time: true}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_XDG(t *testing.T) {
	setupCleanHomePaths(t)
	xdg := testutil.TempDir(t)
	testutil.Setenv(t, "XDG_CONFIG_HOME", xdg)
	testutil.MustWriteFile(filepath.Join(xdg, "roost", "config.yaml"), "history: none\n")
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.History != noHistory || cfg.Prompt != defaultPrompt {
		t.Errorf("got config %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := testutil.InTempDir(t)
	testutil.MustWriteFile("bad.yaml", "prompt: [")
	testutil.MustWriteFile("unknown.yaml", "colour: red\n")
	testutil.MustWriteFile("empty.yaml", "")

	for _, name := range []string{"bad.yaml", "unknown.yaml", "missing.yaml"} {
		if _, err := loadConfig(filepath.Join(dir, name)); err == nil {
			t.Errorf("loadConfig(%q) returns no error", name)
		}
	}
	if cfg, err := loadConfig("empty.yaml"); err != nil || cfg.Prompt != defaultPrompt {
		t.Errorf("loadConfig(empty) -> (%+v, %v)", cfg, err)
	}
}

func TestHistoryPath(t *testing.T) {
	home := setupCleanHomePaths(t)
	defaultDB := filepath.Join(home, ".local", "state", "roost", "history.db")
	tests := []struct {
		name string
		flag string
		cfg  string
		want string
	}{
		{"default", "", "", defaultDB},
		{"config", "", "/cfg/db", "/cfg/db"},
		{"flag overrides config", "/flag/db", "/cfg/db", "/flag/db"},
		{"disabled", "", noHistory, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := historyPath(&prog.Flags{DB: test.flag}, Config{History: test.cfg})
			if got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestRCPath(t *testing.T) {
	home := setupCleanHomePaths(t)
	if got := rcPath(&prog.Flags{}, Config{}); got != filepath.Join(home, ".config", "roost", "rc.roost") {
		t.Errorf("default rc path = %q", got)
	}
	if got := rcPath(&prog.Flags{RC: "a"}, Config{RC: "b"}); got != "a" {
		t.Errorf("rc path with flag = %q, want a", got)
	}
	if got := rcPath(&prog.Flags{}, Config{RC: "b"}); got != "b" {
		t.Errorf("rc path with config = %q, want b", got)
	}
}

func TestProgram_BadConfig(t *testing.T) {
	testutil.InTempDir(t)
	testutil.MustWriteFile("bad.yaml", "prompt: [")
	Test(t, Program{},
		ThatRoost("-config", "bad.yaml", "-c", "println(1)").
			ExitsWith(2).
			WritesStderrContaining("cannot parse config"),
		ThatRoost("-config", "missing.yaml", "-c", "println(1)").
			ExitsWith(2).
			WritesStderrContaining("cannot read config"),
	)
}
