package pipeline

import (
	"io"

	"github.com/josephlewis42/digenv/core/vos"
	"go.uber.org/zap"
)

// Options configures a Pipeline.
type Options struct {
	Commands Commands
	Pager    PagerResolver

	// OS supplies the environment of every stage and the filesystem searched
	// for their programs.
	OS vos.VOS

	// Stdin feeds the source stage, Stdout receives the sink's output and
	// Stderr is shared by all stages and digenv's own diagnostics.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Log *zap.Logger
}

// Pipeline is one run of the pipeline.
type Pipeline struct {
	stages   []Stage
	launcher *Launcher
	reaper   *Reaper
	diag     *Diagnostics
	log      *zap.Logger

	fabric   *Fabric
	children []*Child
}

// New decides the topology for args; nothing is started until Start or Run.
func New(opts Options, args []string) *Pipeline {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	diag := &Diagnostics{W: opts.Stderr}

	return &Pipeline{
		stages: Topology(opts.Commands, args),
		launcher: &Launcher{
			OS:     opts.OS,
			Pager:  opts.Pager,
			Stdin:  opts.Stdin,
			Stdout: opts.Stdout,
			Stderr: opts.Stderr,
			Log:    log,
		},
		reaper: NewReaper(diag, log),
		diag:   diag,
		log:    log,
	}
}

// Stages returns the topology.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Start allocates the channels and launches the stages from left to right.
// Once a stage is running, the parent closes its copies of the channel
// between that stage and the previous one, so after Start returns the parent
// holds no channel ends at all.
//
// A *SetupError kills the stages already running and closes every channel;
// those stages still have to be reaped with Wait or Drain.
func (p *Pipeline) Start() error {
	fabric, err := NewFabric(len(p.stages) - 1)
	if err != nil {
		return err
	}
	p.fabric = fabric

	for i, stage := range p.stages {
		child, err := p.launcher.Launch(fabric.Wire(stage, i, len(p.stages)))
		if err != nil {
			p.abort()
			return err
		}
		p.children = append(p.children, child)
		p.reaper.Track(child)

		if i == 0 {
			continue
		}
		if err := fabric.Channel(i - 1).Close(); err != nil {
			p.abort()
			return &SetupError{Op: "close", Err: err}
		}
	}

	p.log.Debug("pipeline started", zap.Int("stages", len(p.stages)))
	return nil
}

func (p *Pipeline) abort() {
	for _, c := range p.children {
		if c.cmd != nil {
			_ = c.cmd.Process.Kill()
		}
	}
	if p.fabric != nil {
		_ = p.fabric.Close()
	}
}

// Wait reaps every started stage, see Reaper.Wait.
func (p *Pipeline) Wait() (int, error) {
	return p.reaper.Wait()
}

// Run starts the pipeline, waits for it and returns the exit status for the
// whole pipeline.
func (p *Pipeline) Run() int {
	if err := p.Start(); err != nil {
		p.diag.Printf("%v", err)
		p.reaper.Drain()
		return ExitSetupFailure
	}

	status, err := p.Wait()
	if err != nil {
		// Already reported by the reaper.
		return ExitSetupFailure
	}

	p.log.Debug("pipeline finished", zap.Int("status", status))
	return status
}
