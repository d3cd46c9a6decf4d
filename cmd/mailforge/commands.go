package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailforge/pkg/document"
	"github.com/dmitrymomot/mailforge/pkg/email"
	"github.com/dmitrymomot/mailforge/pkg/httpserver"
	"github.com/dmitrymomot/mailforge/pkg/logger"
	"github.com/dmitrymomot/mailforge/pkg/markup"
	"github.com/dmitrymomot/mailforge/pkg/previewapi"
	"github.com/dmitrymomot/mailforge/pkg/ratelimiter"
	"github.com/dmitrymomot/mailforge/pkg/redis"
	"github.com/dmitrymomot/mailforge/pkg/render"
	"github.com/dmitrymomot/mailforge/pkg/sanitizer"
	"github.com/dmitrymomot/mailforge/pkg/variables"
)

func newFlagSet(a *app, name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "Usage: mailforge %s [options] %s\n\nOptions:\n", name, args)
		fs.PrintDefaults()
	}
	return fs
}

// positional returns the single file argument; "-" or none means stdin.
func positional(fs *flag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		return "-", nil
	case 1:
		return fs.Arg(0), nil
	default:
		fs.Usage()
		return "", errUsage
	}
}

func (a *app) read(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(path)
}

// readVariables decodes a variables object. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func (a *app) readVariables(path string) (map[string]any, error) {
	raw, err := a.read(path)
	if err != nil {
		return nil, err
	}
	vars := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(raw, &vars)
	default:
		err = json.Unmarshal(raw, &vars)
	}
	if err != nil {
		return nil, fmt.Errorf("variables: %w", err)
	}
	if vars == nil {
		vars = map[string]any{}
	}
	return vars, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func (a *app) warn(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(a.stderr, "warning: %s\n", w)
	}
}

func runCompile(_ context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "compile", "[document.json]")
	elements := fs.Bool("elements", false, "input is a flat element document")
	asJSON := fs.Bool("json", false, "print markup, warnings and errors as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := positional(fs)
	if err != nil {
		return err
	}
	data, err := a.read(path)
	if err != nil {
		return err
	}

	var res markup.Result
	if *elements {
		doc, err := document.DecodeElements(data)
		if err != nil {
			return err
		}
		res = a.renderer.CompileElements(doc)
	} else {
		doc, err := document.Decode(data)
		if err != nil {
			return err
		}
		res = a.renderer.Compile(doc)
	}

	if *asJSON {
		if err := a.writeJSON(res); err != nil {
			return err
		}
		return res.Err()
	}
	a.warn(res.Warnings)
	if err := res.Err(); err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, res.Markup)
	return err
}

func runPreview(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "preview", "[document.json]")
	elements := fs.Bool("elements", false, "input is a flat element document")
	format := fs.String("format", "json", "output format: json, html or text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := positional(fs)
	if err != nil {
		return err
	}
	data, err := a.read(path)
	if err != nil {
		return err
	}

	var out render.PreviewOutput
	if *elements {
		doc, derr := document.DecodeElements(data)
		if derr != nil {
			return derr
		}
		out, err = a.renderer.PreviewElements(ctx, doc)
	} else {
		doc, derr := document.Decode(data)
		if derr != nil {
			return derr
		}
		out, err = a.renderer.Preview(ctx, doc)
	}

	switch *format {
	case "json":
		if werr := a.writeJSON(out); werr != nil {
			return werr
		}
		return err
	case "html", "text":
		a.warn(out.Warnings)
		if err != nil {
			return err
		}
		body := out.HTML
		if *format == "text" {
			body = out.Plaintext
		}
		_, err = fmt.Fprintln(a.stdout, body)
		return err
	default:
		fmt.Fprintf(a.stderr, "unknown format %q\n", *format)
		return errUsage
	}
}

func runPublish(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "publish", "[document.json]")
	stableID := fs.String("stable-id", "", "template identifier; generated when empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, err := positional(fs)
	if err != nil {
		return err
	}
	data, err := a.read(path)
	if err != nil {
		return err
	}
	doc, err := document.Decode(data)
	if err != nil {
		return err
	}
	snap, err := a.renderer.Publish(ctx, doc, *stableID)
	if err != nil {
		return err
	}
	return a.writeJSON(snap)
}

type renderFlags struct {
	snapshot  *string
	vars      *string
	mode      *string
	subject   *string
	preheader *string
}

func addRenderFlags(fs *flag.FlagSet) renderFlags {
	return renderFlags{
		snapshot:  fs.String("snapshot", "", "path to a published snapshot (required)"),
		vars:      fs.String("vars", "", "path to a JSON or YAML object of variables"),
		mode:      fs.String("mode", string(variables.Strict), "variable validation mode: strict or permissive"),
		subject:   fs.String("subject", "", "subject override"),
		preheader: fs.String("preheader", "", "preheader override"),
	}
}

func (a *app) renderFromFlags(ctx context.Context, fs *flag.FlagSet, f renderFlags) (render.RenderOutput, error) {
	if *f.snapshot == "" {
		fmt.Fprintln(a.stderr, "error: -snapshot is required")
		fs.Usage()
		return render.RenderOutput{}, errUsage
	}
	mode, err := variables.ParseMode(*f.mode)
	if err != nil {
		return render.RenderOutput{}, err
	}

	raw, err := a.read(*f.snapshot)
	if err != nil {
		return render.RenderOutput{}, err
	}
	var snap document.TemplateSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return render.RenderOutput{}, fmt.Errorf("%w: %v", render.ErrInvalidSnapshot, err)
	}

	rcpt := render.Recipient{Mode: mode, Variables: map[string]any{}}
	if *f.vars != "" {
		vars, err := a.readVariables(*f.vars)
		if err != nil {
			return render.RenderOutput{}, err
		}
		rcpt.Variables = vars
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "subject":
			rcpt.Subject = f.subject
		case "preheader":
			rcpt.Preheader = f.preheader
		}
	})

	out, err := a.renderer.Render(ctx, snap, rcpt)
	if err != nil {
		if msgs := variables.Messages(err); len(msgs) > 0 {
			return out, fmt.Errorf("%w:\n  %s", render.ErrInvalidVariables, strings.Join(msgs, "\n  "))
		}
		return out, err
	}
	return out, nil
}

func runRender(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "render", "")
	f := addRenderFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	out, err := a.renderFromFlags(ctx, fs, f)
	if err != nil {
		return err
	}
	return a.writeJSON(out)
}

func runSend(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "send", "")
	f := addRenderFlags(fs)
	to := fs.String("to", "", "recipient address (required)")
	tag := fs.String("tag", "", "delivery tag")
	if err := fs.Parse(args); err != nil {
		return err
	}
	*to = sanitizer.Apply(*to, sanitizer.NormalizeEmail)
	if *to == "" {
		fmt.Fprintln(a.stderr, "error: -to is required")
		fs.Usage()
		return errUsage
	}

	mailCfg, err := loadConfig[email.Config](a)
	if err != nil {
		return err
	}
	sender, err := email.New(mailCfg)
	if err != nil {
		return err
	}

	out, err := a.renderFromFlags(ctx, fs, f)
	if err != nil {
		return err
	}
	a.warn(out.Warnings)

	if err := sender.Send(ctx, email.Message{
		To:      *to,
		Subject: out.UsedSubject,
		HTML:    out.HTML,
		Text:    out.Plaintext,
		Tag:     *tag,
	}); err != nil {
		return err
	}
	a.logger.InfoContext(ctx, "email sent",
		logger.Component("cli"),
		logger.Recipient(*to),
		logger.SizeBytes(out.SizeBytes),
	)
	return nil
}

// probeDocument is rendered by the readiness check.
var probeDocument = &document.Document{Root: &document.BlockNode{
	ID:   "probe",
	Type: document.TypeRoot,
	Children: []*document.BlockNode{
		{ID: "text", Type: document.TypeText, Props: &document.TextProps{Content: "ok"}},
	},
}}

func runServe(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "serve", "")
	addr := fs.String("addr", "", "listen address, overrides HTTP_ADDR")
	if err := fs.Parse(args); err != nil {
		return err
	}

	httpCfg, err := loadConfig[httpserver.Config](a)
	if err != nil {
		return err
	}
	if *addr != "" {
		httpCfg.Addr = *addr
	}
	rateCfg, err := loadConfig[ratelimiter.Config](a)
	if err != nil {
		return err
	}
	limiter, err := ratelimiter.New(rateCfg)
	if err != nil {
		return err
	}
	defer limiter.Close()

	checks := []httpserver.Check{{
		Name: "compiler",
		Probe: func(ctx context.Context) error {
			_, err := a.renderer.Preview(ctx, probeDocument)
			return err
		},
	}}

	redisCfg, err := loadConfig[redis.Config](a)
	if err != nil {
		return err
	}
	if redisCfg.URL != "" {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		a.renderer = render.New(a.renderer.Config(),
			render.WithLogger(a.logger),
			render.WithSharedCache(redis.NewHTMLCache(client, redisCfg)),
		)
		checks = append(checks, httpserver.Check{Name: "redis", Probe: redis.Healthcheck(client)})
		a.logger.InfoContext(ctx, "shared compile cache enabled", logger.Component("redis"))
	}

	svc := previewapi.NewService(a.renderer,
		previewapi.WithLogger(a.logger),
		previewapi.WithEnvironment(a.env),
		previewapi.WithRateLimiter(limiter),
		previewapi.WithHealthChecks(checks...),
	)
	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(a.logger))
	return srv.Run(ctx, svc.Handle())
}
