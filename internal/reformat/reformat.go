// Package reformat parses and pretty prints JSON documents, each one inside
// its own arena.
package reformat

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"

	arena "github.com/pavanmanishd/arenajson"
	"github.com/pavanmanishd/arenajson/internal/config"
	"github.com/pavanmanishd/arenajson/json"
)

var (
	// ErrInvalidJSON is the cause of the error of a job whose input is not
	// one valid JSON document.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrArenaExhausted is the cause of the error of a job that needed more
	// memory than its arena holds.
	ErrArenaExhausted = errors.New("arena exhausted")
)

// Options configure how documents are processed.
type Options struct {
	// ArenaSize is the capacity of the arena of one job. The input file, the
	// decoded strings and the output all live in it.
	ArenaSize int

	MaxDepth          int
	AllowBareExponent bool
	Formatter         json.Formatter

	// WriteBack replaces the content of Job.Path with the formatted output.
	WriteBack bool

	// Profiler, when set, is attached to every arena.
	Profiler arena.Profiler
}

// OptionsFromConfig maps the command line configuration to Options.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		ArenaSize:         int(cfg.ArenaSize.Bytes()),
		MaxDepth:          cfg.Parse.MaxDepth,
		AllowBareExponent: cfg.Parse.AllowBareExponent,
		Formatter: json.Formatter{
			Indent:         cfg.Format.Indent,
			EscapeStrings:  cfg.Format.EscapeStrings,
			PreciseNumbers: cfg.Format.PreciseNumbers,
		},
		WriteBack: cfg.Write,
	}
}

// Job is one document to reformat. Data is used when it is not nil,
// otherwise the file at Path is read into the job's arena.
type Job struct {
	Name string
	Path string
	Data []byte
}

// FileJob returns the job reformatting the file at path.
func FileJob(path string) Job {
	return Job{Name: path, Path: path}
}

func (j Job) name() string {
	if j.Name != "" {
		return j.Name
	}
	return j.Path
}

// Result is the outcome of one job. Output is owned by the caller.
type Result struct {
	Name        string
	Output      []byte
	InputBytes  int
	OutputBytes int
	ArenaUsed   int
	Duration    time.Duration
	Err         error
}

// Processor reformats documents one at a time, reusing its arena and parser
// between them. Not goroutine-safe.
type Processor struct {
	opts   Options
	arena  *arena.Arena
	parser json.Parser
}

// NewProcessor creates a Processor owning an arena of opts.ArenaSize bytes.
func NewProcessor(opts Options) *Processor {
	var arenaOpts []arena.Option
	if opts.Profiler != nil {
		arenaOpts = append(arenaOpts, arena.WithProfiler(opts.Profiler))
	}
	return &Processor{
		opts:  opts,
		arena: arena.New(opts.ArenaSize, arenaOpts...),
		parser: json.Parser{
			MaxDepth:          opts.MaxDepth,
			AllowBareExponent: opts.AllowBareExponent,
		},
	}
}

// Process runs job in a freshly reset arena. Running out of arena memory is
// reported as ErrArenaExhausted; any other panic is not recovered.
func (p *Processor) Process(job Job) (res Result) {
	res.Name = job.name()
	start := time.Now()
	p.arena.Reset()

	defer func() {
		res.ArenaUsed = p.arena.SizeInUse()
		res.Duration = time.Since(start)
	}()
	defer func() {
		if r := recover(); r != nil {
			oom, ok := r.(*arena.OutOfMemoryError)
			if !ok {
				panic(r)
			}
			res.Output = nil
			res.Err = errors.Wrap(ErrArenaExhausted, oom.Error())
		}
	}()

	input := job.Data
	if input == nil {
		var err error
		if input, err = p.readFile(job.Path); err != nil {
			res.Err = err
			return res
		}
	}
	res.InputBytes = len(input)

	root := p.parser.ParseBytes(input, p.arena)
	if root == nil {
		res.Err = ErrInvalidJSON
		return res
	}

	out := p.opts.Formatter.Format(root, p.arena)
	res.Output = append([]byte(nil), out...)
	res.OutputBytes = len(out)

	if p.opts.WriteBack && job.Path != "" {
		if err := writeFile(job.Path, res.Output); err != nil {
			res.Err = err
		}
	}
	return res
}

// readFile reads the whole file into the arena.
func (p *Processor) readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat input")
	}
	size := int(fi.Size())
	if size == 0 {
		return []byte{}, nil
	}

	buf := p.arena.Alloc(1, 1, size)
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return buf, nil
}

// writeFile replaces the file content, keeping its permissions. The output
// is terminated by a newline.
func writeFile(path string, out []byte) error {
	fi, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "stat output")
	}
	data := make([]byte, 0, len(out)+1)
	data = append(data, out...)
	data = append(data, '\n')
	return errors.Wrapf(os.WriteFile(path, data, fi.Mode().Perm()), "write %s", path)
}
