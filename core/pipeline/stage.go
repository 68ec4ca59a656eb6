package pipeline

import (
	"fmt"
	"os"
)

// Role is a stage's position in the pipeline.
type Role int

const (
	RoleSource Role = iota
	RoleFilter
	RoleSort
	RoleSink
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleFilter:
		return "filter"
	case RoleSort:
		return "sort"
	case RoleSink:
		return "sink"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Stage describes one process of the pipeline.
type Stage struct {
	Role Role
	// Command is the program to run. Topology leaves it empty for the sink
	// and the Launcher ignores it there: the sink's program is chosen by the
	// PagerResolver once the stage's input is wired.
	Command string
	// Args excludes the program name.
	Args []string

	// In is the read end of the channel feeding the stage, nil for the first
	// stage.
	In *os.File
	// Out is the write end of the channel the stage feeds, nil for the last
	// stage.
	Out *os.File
}

// Commands names the programs run by the fixed stages.
type Commands struct {
	Source string
	Filter string
	Sort   string
}

// Topology returns the stages for an invocation: source, filter, sort, sink
// when args are given, otherwise source, sort, sink. Channels are not
// assigned yet.
func Topology(cmds Commands, args []string) []Stage {
	stages := []Stage{{Role: RoleSource, Command: cmds.Source}}
	if len(args) > 0 {
		stages = append(stages, Stage{
			Role:    RoleFilter,
			Command: cmds.Filter,
			Args:    append([]string(nil), args...),
		})
	}
	stages = append(stages,
		Stage{Role: RoleSort, Command: cmds.Sort},
		Stage{Role: RoleSink},
	)

	return stages
}
