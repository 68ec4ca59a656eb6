package pipeline

import (
	"github.com/josephlewis42/digenv/core/vos"
)

// PagerResolver chooses the program run by the sink stage.
type PagerResolver struct {
	// Env names the variable holding the preferred pager, usually PAGER.
	Env string
	// Fallbacks are tried in order after the preferred pager.
	Fallbacks []string
}

// Candidates returns the pagers to try, in priority order: the program named
// by the Env variable if it is set and non-empty, then every fallback. The
// first candidate that starts becomes the sink; none of them gets arguments.
func (r PagerResolver) Candidates(env vos.VEnv) []string {
	var out []string
	if r.Env != "" {
		if preferred := env.Getenv(r.Env); preferred != "" {
			out = append(out, preferred)
		}
	}

	return append(out, r.Fallbacks...)
}
