package interp

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/woodhull/taskmgr/internal/instrumentation"
	"github.com/woodhull/taskmgr/internal/logging"
	"github.com/woodhull/taskmgr/internal/render"
	"github.com/woodhull/taskmgr/internal/store"
	"github.com/woodhull/taskmgr/internal/task"
)

// helpText is the fixed usage listing the help command prints after its
// success line.
const helpText = `help
print [sort_by=<prop>] [direction=<asc|desc>]
add name=<name> [type=<type>] [desc=<desc>] [due=<DD-MM-YYYY>] [rep=<NONE|DAILY|WEEKLY|MONTHLY>] [prio=<LOW|MEDIUM|HIGH>]
list property=<prop> val=<value> [sort_by=<prop>] [direction=<asc|desc>]
mod id=<id> property=<prop> new_val=<value>
done id=<id>
delete id=<id> | delete property=<prop> val=<value>
`

// Interp executes command lines against a task store.
type Interp struct {
	store   *store.Store
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	tracer  trace.Tracer
}

// Option configures an Interp.
type Option func(*Interp)

// WithLogger sets the structured logger. Logs go to the logger only; they
// never mix into the stdout protocol.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Interp) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *instrumentation.Metrics) Option {
	return func(in *Interp) { in.metrics = m }
}

// WithTracer sets the tracer used to create a span per executed command.
func WithTracer(t trace.Tracer) Option {
	return func(in *Interp) { in.tracer = t }
}

// New creates an interpreter over the given store.
func New(s *store.Store, opts ...Option) *Interp {
	in := &Interp{
		store:  s,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// commandSpec describes one command: the argument keys it tolerates, the
// keys it requires, and its handler. The handler returns any output to
// print after the success line.
type commandSpec struct {
	allowed  map[string]bool
	required []string
	handler  func(in *Interp, ctx context.Context, args map[string]string) (string, error)
}

var commands = map[string]commandSpec{
	"help": {
		allowed: map[string]bool{},
		handler: (*Interp).cmdHelp,
	},
	"print": {
		allowed: map[string]bool{"sort_by": true, "direction": true},
		handler: (*Interp).cmdPrint,
	},
	"add": {
		allowed:  map[string]bool{"name": true, "type": true, "desc": true, "due": true, "rep": true, "prio": true},
		required: []string{"name"},
		handler:  (*Interp).cmdAdd,
	},
	"list": {
		allowed:  map[string]bool{"property": true, "val": true, "sort_by": true, "direction": true},
		required: []string{"property", "val"},
		handler:  (*Interp).cmdList,
	},
	"mod": {
		allowed:  map[string]bool{"id": true, "property": true, "new_val": true},
		required: []string{"id", "property", "new_val"},
		handler:  (*Interp).cmdMod,
	},
	"done": {
		allowed:  map[string]bool{"id": true},
		required: []string{"id"},
		handler:  (*Interp).cmdDone,
	},
	"delete": {
		allowed: map[string]bool{"id": true, "property": true, "val": true},
		handler: (*Interp).cmdDelete,
	},
}

// Execute runs one command line and writes the success or error text to w.
// It returns the rendered error kind, or "" on success. Failures never
// propagate; the text contract is the only escalation path.
func (in *Interp) Execute(ctx context.Context, w io.Writer, line string) Kind {
	start := time.Now()

	name, kind := in.execute(ctx, w, line)

	duration := time.Since(start)
	status := "success"
	if kind != "" {
		status = "error"
	}
	if in.metrics != nil {
		in.metrics.RecordCommand(ctx, name, status, duration)
		if kind != "" {
			in.metrics.RecordError(ctx, string(kind))
		}
	}
	if in.tracer != nil {
		_, span := in.tracer.Start(ctx, "taskmgr.command",
			trace.WithTimestamp(start),
			trace.WithAttributes(
				attribute.String("taskmgr.command", name),
				attribute.String("taskmgr.status", status),
				attribute.String("taskmgr.error_kind", string(kind)),
			))
		span.End(trace.WithTimestamp(start.Add(duration)))
	}
	if kind != "" {
		in.logger.Debug("command failed",
			logging.Command(name), logging.Kind(string(kind)), logging.Duration(duration))
	} else {
		in.logger.Debug("command executed",
			logging.Command(name), logging.Duration(duration))
	}
	return kind
}

// execute tokenizes, validates, and dispatches one line. It writes exactly
// one success or error line (plus command output) to w and returns the
// command word and the error kind, if any.
func (in *Interp) execute(ctx context.Context, w io.Writer, line string) (name string, kind Kind) {
	name, rest, err := splitCommand(line)
	if err != nil {
		kind = KindOf(err)
		WriteError(w, kind, line)
		return name, kind
	}

	out, err := in.dispatch(ctx, name, rest)
	if err != nil {
		kind = KindOf(err)
		WriteError(w, kind, line)
		return name, kind
	}

	WriteSuccess(w, line)
	io.WriteString(w, out)
	return name, ""
}

// dispatch resolves the command word and applies the generic argument
// checks before the per-command handler runs: unknown keys fail with
// TooManyArguments, then absent required keys with MissingArguments.
func (in *Interp) dispatch(ctx context.Context, name, rest string) (string, error) {
	spec, ok := commands[name]
	if !ok {
		// Unknown command words render InvalidArgument; UnknownCommand
		// stays reserved in the taxonomy.
		return "", NewCommandError(KindInvalidArgument, "unknown command "+name)
	}

	args, err := tokenizeArgs(rest)
	if err != nil {
		return "", err
	}

	for key := range args {
		if !spec.allowed[key] {
			return "", NewCommandError(KindTooManyArguments, "unexpected argument "+key)
		}
	}
	for _, key := range spec.required {
		if _, present := args[key]; !present {
			return "", NewCommandError(KindMissingArguments, "missing argument "+key)
		}
	}

	return spec.handler(in, ctx, args)
}

func (in *Interp) cmdHelp(context.Context, map[string]string) (string, error) {
	return helpText, nil
}

func (in *Interp) cmdPrint(ctx context.Context, args map[string]string) (string, error) {
	sortBy, direction, err := sortArgs(args)
	if err != nil {
		return "", err
	}
	return tableOf(in.store.All(), sortBy, direction), nil
}

func (in *Interp) cmdAdd(ctx context.Context, args map[string]string) (string, error) {
	name := args["name"]
	if task.NumericName(name) {
		return "", NewCommandError(KindInvalidArgumentType, "purely numeric name")
	}

	rep, ok := task.ParseRepeat(argOr(args, "rep", string(task.DefaultRepeat)))
	if !ok {
		return "", errKind(KindInvalidRepeat)
	}
	prio, ok := task.ParsePriority(argOr(args, "prio", string(task.DefaultPriority)))
	if !ok {
		return "", errKind(KindInvalidPriority)
	}
	due := argOr(args, "due", task.DueNone)
	if !task.ValidDue(due) {
		return "", errKind(KindInvalidDateFormat)
	}

	in.store.Add(task.Task{
		Name: name,
		Type: argOr(args, "type", "NONE"),
		Desc: args["desc"],
		Due:  due,
		Rep:  rep,
		Prio: prio,
	})
	if in.metrics != nil {
		in.metrics.AddTasks(ctx, 1)
	}
	return "", nil
}

func (in *Interp) cmdList(ctx context.Context, args map[string]string) (string, error) {
	prop, ok := task.ParseProperty(args["property"])
	if !ok {
		return "", NewCommandError(KindInvalidArgument, "unrecognized property "+args["property"])
	}
	sortBy, direction, err := sortArgs(args)
	if err != nil {
		return "", err
	}
	return tableOf(in.store.Match(prop, args["val"]), sortBy, direction), nil
}

func (in *Interp) cmdMod(ctx context.Context, args map[string]string) (string, error) {
	id, err := parseID(args["id"])
	if err != nil {
		return "", err
	}
	prop, ok := task.ParseProperty(args["property"])
	if !ok {
		return "", NewCommandError(KindInvalidArgument, "unrecognized property "+args["property"])
	}
	t, err := in.store.Get(id)
	if err != nil {
		return "", err
	}

	newVal := args["new_val"]
	switch prop {
	case task.PropDue:
		if !task.ValidDue(newVal) {
			return "", errKind(KindInvalidDateFormat)
		}
		t.Due = newVal
	case task.PropRep:
		rep, ok := task.ParseRepeat(newVal)
		if !ok {
			return "", errKind(KindInvalidRepeat)
		}
		t.Rep = rep
	case task.PropPrio:
		prio, ok := task.ParsePriority(newVal)
		if !ok {
			return "", errKind(KindInvalidPriority)
		}
		t.Prio = prio
	case task.PropDone:
		done, ok := task.ParseDone(newVal)
		if !ok {
			return "", errKind(KindInvalidDoneStatus)
		}
		t.Done = done
	case task.PropID, task.PropCtime:
		// id and ctime are write-once.
		return "", NewCommandError(KindInvalidArgument, string(prop)+" is not editable")
	case task.PropName:
		if task.NumericName(newVal) {
			return "", NewCommandError(KindInvalidArgumentType, "purely numeric name")
		}
		t.Name = newVal
	default:
		// type and desc accept any string.
		if prop == task.PropType {
			t.Type = newVal
		} else {
			t.Desc = newVal
		}
	}
	return "", nil
}

func (in *Interp) cmdDone(ctx context.Context, args map[string]string) (string, error) {
	id, err := parseID(args["id"])
	if err != nil {
		return "", err
	}
	t, err := in.store.Get(id)
	if err != nil {
		return "", err
	}
	t.Done = true
	return "", nil
}

func (in *Interp) cmdDelete(ctx context.Context, args map[string]string) (string, error) {
	if _, byID := args["id"]; byID {
		if _, ok := args["property"]; ok {
			return "", NewCommandError(KindTooManyArguments, "id excludes property/val")
		}
		if _, ok := args["val"]; ok {
			return "", NewCommandError(KindTooManyArguments, "id excludes property/val")
		}
		id, err := parseID(args["id"])
		if err != nil {
			return "", err
		}
		if err := in.store.Delete(id); err != nil {
			return "", err
		}
		if in.metrics != nil {
			in.metrics.AddTasks(ctx, -1)
		}
		return "", nil
	}

	if _, ok := args["property"]; !ok {
		return "", errKind(KindMissingArguments)
	}
	if _, ok := args["val"]; !ok {
		return "", errKind(KindMissingArguments)
	}
	prop, ok := task.ParseProperty(args["property"])
	if !ok {
		return "", NewCommandError(KindInvalidArgument, "unrecognized property "+args["property"])
	}
	removed, err := in.store.DeleteMatching(prop, args["val"])
	if err != nil {
		return "", err
	}
	if in.metrics != nil {
		in.metrics.AddTasks(ctx, -int64(removed))
	}
	return "", nil
}

// sortArgs validates the optional sort_by/direction arguments shared by
// print and list. Direction is checked before sort_by.
func sortArgs(args map[string]string) (task.Property, render.Direction, error) {
	direction, ok := render.ParseDirection(argOr(args, "direction", string(render.DefaultDirection)))
	if !ok {
		return "", "", NewCommandError(KindInvalidArgument, "invalid direction")
	}
	sortBy, ok := task.ParseProperty(argOr(args, "sort_by", string(render.DefaultSortBy)))
	if !ok {
		return "", "", NewCommandError(KindInvalidArgument, "invalid sort_by")
	}
	return sortBy, direction, nil
}

func tableOf(tasks []*task.Task, sortBy task.Property, direction render.Direction) string {
	var b strings.Builder
	render.Table(&b, render.Sort(tasks, sortBy, direction))
	return b.String()
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, NewCommandError(KindInvalidArgumentType, "id is not an integer")
	}
	return id, nil
}

func argOr(args map[string]string, key, fallback string) string {
	if v, ok := args[key]; ok {
		return v
	}
	return fallback
}
