/*
Copyright (C) 2024  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
/*
	lyra: a small lisp with self tail calls

*/
package main

import "os"
import "fmt"
import "flag"
import "time"
import "context"
import "syscall"
import "runtime"
import "os/signal"
import "crypto/rand"
import "path/filepath"
import "runtime/pprof"
import "github.com/google/uuid"
import "github.com/dc0d/onexit"
import "github.com/docker/go-units"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/lyra/lyra"
import "github.com/launix-de/lyra/corelib"

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type options struct {
	wd        string
	core      string
	noCore    bool
	keepGoing bool
	backtrace bool
	timeout   time.Duration
	settings  lyra.Settings
	ctx       context.Context // cancelled by SIGINT/SIGTERM
}

func newInterpreter(opts *options) (*lyra.Interpreter, error) {
	if opts.noCore || opts.core != "" {
		in := lyra.New(lyra.WithSettings(opts.settings), lyra.WithContext(opts.ctx))
		corelib.Init(in)
		if opts.core != "" {
			if _, err := corelib.LoadFile(context.Background(), in, resolve(opts.wd, opts.core)); err != nil {
				in.Close()
				return nil, err
			}
		}
		return in, nil
	}
	return corelib.New(lyra.WithSettings(opts.settings), lyra.WithContext(opts.ctx))
}

func report(opts *options, err error) {
	if opts.backtrace {
		lyra.ReportError(os.Stderr, err)
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
}

func resolve(wd, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(wd, file)
}

// runFiles evaluates the source files in order; it stops at the first
// failing file unless keepGoing is set.
func runFiles(in *lyra.Interpreter, files []string, opts *options) bool {
	ok := true
	for _, file := range files {
		ctx := opts.ctx
		cancel := func() {}
		if opts.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		}
		_, err := corelib.LoadFile(ctx, in, resolve(opts.wd, file))
		cancel()
		if err != nil {
			report(opts, err)
			ok = false
			if !opts.keepGoing {
				return false
			}
		}
	}
	return ok
}

func runCommands(in *lyra.Interpreter, commands []string, opts *options) bool {
	ok := true
	for _, command := range commands {
		result, err := in.EvalString("command line", command)
		if err != nil {
			report(opts, err)
			ok = false
			if !opts.keepGoing {
				return false
			}
			continue
		}
		fmt.Println(lyra.Serialize(result))
	}
	return ok
}

// watchFiles reruns all files in a fresh interpreter whenever one of them
// changes on disk until the process is interrupted.
func watchFiles(files []string, opts *options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	rewatch := func() {
		for _, file := range files {
			if err := watcher.Add(resolve(opts.wd, file)); err != nil {
				fmt.Fprintln(os.Stderr, "watch:", err)
			}
		}
	}
	rewatch()
	defer watcher.Close()
	for {
		select {
		case <-opts.ctx.Done():
			return nil
		case <-watcher.Events:
			// flush all other events
			for {
				time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
				select {
				case <-watcher.Events:
					// ignore
				default:
					goto to_rerun
				}
			}
		to_rerun:
			fmt.Println("reloading ...")
			in, err := newInterpreter(opts)
			if err != nil {
				report(opts, err)
			} else {
				runFiles(in, files, opts)
				in.Close()
			}
			rewatch() // text editors rename, so we have to rewatch
		case err := <-watcher.Errors:
			fmt.Fprintln(os.Stderr, "watch:", err)
		}
	}
}

func main() {
	onexit.ForceExit(run()) // runs the exit hooks (trace files) before leaving
}

func run() int {
	started := time.Now()

	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	opts := options{settings: lyra.DefaultSettings, ctx: ctx}
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute lyra command (repeatable)")
	wd, _ := os.Getwd() // source files are relative to working directory... or change with -wd PATH
	flag.StringVar(&opts.wd, "wd", wd, "Working directory for source files")
	flag.StringVar(&opts.core, "core", "", "Load this bootstrap library instead of the built-in one")
	flag.BoolVar(&opts.noCore, "no-core", false, "Do not load the bootstrap library")
	interactive := flag.Bool("i", false, "Start the REPL after running files and commands")
	flag.BoolVar(&opts.keepGoing, "keep-going", false, "Continue with the next file or command after an error")
	flag.BoolVar(&opts.settings.Trace, "trace", false, "Write a chrome trace of all function calls")
	flag.BoolVar(&opts.settings.TracePrint, "trace-print", false, "Print the duration of every function call")
	flag.StringVar(&opts.settings.TraceDir, "trace-dir", "", "Folder for trace files")
	flag.BoolVar(&opts.backtrace, "backtrace", true, "Print the call stack of errors")
	flag.IntVar(&opts.settings.MaxDepth, "max-depth", lyra.DefaultSettings.MaxDepth, "Nested calls before an error (0 = unlimited)")
	flag.DurationVar(&opts.timeout, "timeout", 0, "Abort a source file after this duration (checked between top-level forms)")
	watch := flag.Bool("watch", false, "Rerun the source files whenever they change")
	docs := ""
	flag.StringVar(&docs, "docs", "", "Write markdown documentation of all functions into this folder and exit")
	profile := ""
	flag.StringVar(&profile, "profile", "", "Write a CPU profile to this file")
	stats := flag.Bool("stats", false, "Print heap usage and run time on exit")
	flag.Parse()
	files := flag.Args()

	if docs != "" {
		if err := lyra.WriteDocumentation(docs); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		return 0
	}

	// init profiling
	if profile != "" {
		f, err := os.Create(profile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		defer f.Close()
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	in, err := newInterpreter(&opts)
	if err != nil {
		report(&opts, err)
		return 1
	}
	defer in.Close()

	// install exit handler; the interpreter stops at its next function call
	// and run closes it through the deferred Close
	cancelChan := make(chan os.Signal, 1)
	signal.Notify(cancelChan, syscall.SIGTERM, syscall.SIGINT)
	go (func() {
		<-cancelChan
		cancel()
	})()

	ok := runFiles(in, files, &opts)
	if ok || opts.keepGoing {
		ok = runCommands(in, commands, &opts) && ok
	}

	if ctx.Err() != nil {
		return 1
	}

	if *watch && len(files) > 0 {
		if err := watchFiles(files, &opts); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
	}

	if *interactive || (len(files) == 0 && len(commands) == 0) {
		signal.Stop(cancelChan) // readline handles ^C itself
		fmt.Print(`lyra Copyright (C) 2024   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

    Type (help) to show help

`)
		if err := lyra.Repl(in); err != nil {
			report(&opts, err)
			ok = false
		}
	}

	if *stats {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		fmt.Fprintf(os.Stderr, "heap %s, total allocated %s, ran %s\n",
			units.HumanSize(float64(m.HeapAlloc)),
			units.HumanSize(float64(m.TotalAlloc)),
			units.HumanDuration(time.Since(started)))
	}
	if !ok {
		return 1
	}
	return 0
}
