package pipeline

import (
	"bytes"
	"testing"

	"github.com/josephlewis42/digenv/core/vos/vostest"
)

type testRun struct {
	opts   Options
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	tools  map[string]string
}

// newTestRun builds options that start real programs from SystemPath with
// exactly env as their environment. The only pager is cat, by absolute path.
func newTestRun(t *testing.T, env ...string) *testRun {
	t.Helper()

	tools := vostest.RequireTools(t, "printenv", "grep", "sort", "cat", "sh")
	tr := &testRun{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		tools:  tools,
	}
	tr.opts = Options{
		Commands: Commands{
			Source: tools["printenv"],
			Filter: tools["grep"],
			Sort:   tools["sort"],
		},
		Pager: PagerResolver{
			Env:       "PAGER",
			Fallbacks: []string{tools["cat"]},
		},
		OS:     vostest.NewHostOS(env...),
		Stdout: tr.stdout,
		Stderr: tr.stderr,
	}

	return tr
}

func (tr *testRun) run(args ...string) int {
	return New(tr.opts, args).Run()
}
