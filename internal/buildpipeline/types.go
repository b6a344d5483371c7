// Package buildpipeline carries per-file progress of a build from the
// driver to whatever displays it.
package buildpipeline

import "time"

// Stage is a step of compiling one file.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse"
	StageInfer Stage = "infer"
	StageLower Stage = "lower"
	StagePrint Stage = "print"
	StageWrite Stage = "write"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageLoad, StageParse, StageInfer, StageLower, StagePrint, StageWrite}

// Status is the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
	StatusCached  Status = "cached" // вывод типов взят из кеша
)

// Event reports progress of one file, or of the whole build when File is
// empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Sinks are called from build
// workers concurrently.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit sends ev to sink when there is one.
func Emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

// EmitQueued marks every file as queued.
func EmitQueued(sink ProgressSink, files []string) {
	for _, f := range files {
		Emit(sink, Event{File: f, Status: StatusQueued})
	}
}

// Timings holds stage durations summed over files.
type Timings struct {
	stages map[Stage]time.Duration
}

func (t *Timings) Add(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] += dur
}

func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the total over stages, or over all stages when none are given.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, s := range stages {
		total += t.stages[s]
	}
	return total
}
