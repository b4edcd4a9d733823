// Command cpls lists classpath roots and describes JVM descriptors.
//
//	cpls [flags] ls ROOT [SUBDIR]
//	cpls [flags] find ROOT CLASS
//	cpls desc DESCRIPTOR...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	digest "github.com/opencontainers/go-digest"

	"github.com/meigma/classpath"
	"github.com/meigma/classpath/archive"
	"github.com/meigma/classpath/cache/disk"
	"github.com/meigma/classpath/desc"
)

type config struct {
	kinds     string
	recurse   bool
	cacheDir  string
	cacheMax  int64
	digests   bool
	verbose   bool
	caseCheck string
}

var errUsage = errors.New("usage: cpls [flags] ls ROOT [SUBDIR] | find ROOT CLASS | desc DESCRIPTOR...")

func main() {
	cfg := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, flag.Args(), os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "cpls:", err)
		if errors.Is(err, errUsage) {
			flag.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.kinds, "kinds", "class,source", "comma-separated kinds to list: class, source, html, other, all")
	flag.BoolVar(&cfg.recurse, "r", false, "list subdirectories recursively")
	flag.StringVar(&cfg.cacheDir, "cache-dir", "", "persist archive indexes in this directory")
	flag.Int64Var(&cfg.cacheMax, "cache-max-bytes", 0, "index cache size limit (0 = unlimited)")
	flag.BoolVar(&cfg.digests, "digest", false, "print the content digest of each listed file")
	flag.BoolVar(&cfg.verbose, "v", false, "log debug output to stderr")
	flag.StringVar(&cfg.caseCheck, "case-check", "auto", "stored-spelling check for directory lookups: auto, on, off")
	flag.Parse()
	return cfg
}

func run(ctx context.Context, cfg config, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	if args[0] == "desc" {
		return describe(stdout, args[1:])
	}

	fm, err := newFileManager(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fm.Close(); cerr != nil {
			fmt.Fprintln(stderr, "cpls: close:", cerr)
		}
	}()

	switch args[0] {
	case "ls":
		if len(args) < 2 || len(args) > 3 {
			return errUsage
		}
		subdir := ""
		if len(args) == 3 {
			subdir = args[2]
		}
		kinds, err := parseKinds(cfg.kinds)
		if err != nil {
			return err
		}
		return list(ctx, fm, stdout, args[1], subdir, kinds, cfg)
	case "find":
		if len(args) != 3 {
			return errUsage
		}
		return find(fm, stdout, args[1], args[2], cfg)
	default:
		return errUsage
	}
}

func newFileManager(cfg config, stderr io.Writer) (*classpath.FileManager, error) {
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []classpath.Option{classpath.WithLogger(logger)}
	switch cfg.caseCheck {
	case "auto", "":
	case "on":
		opts = append(opts, classpath.WithCaseCheck(true))
	case "off":
		opts = append(opts, classpath.WithCaseCheck(false))
	default:
		return nil, fmt.Errorf("invalid -case-check %q", cfg.caseCheck)
	}
	if cfg.cacheDir != "" {
		c, err := disk.New(cfg.cacheDir, disk.WithMaxBytes(cfg.cacheMax))
		if err != nil {
			return nil, fmt.Errorf("open index cache: %w", err)
		}
		opts = append(opts, classpath.WithIndexCache(c))
	}
	return classpath.New(opts...), nil
}

func parseKinds(s string) (classpath.KindSet, error) {
	var set classpath.KindSet
	for name := range strings.SplitSeq(s, ",") {
		name = strings.TrimSpace(name)
		if name == "all" {
			return classpath.AllKinds, nil
		}
		k, ok := classpath.ParseKind(name)
		if !ok {
			return 0, fmt.Errorf("unknown kind %q", name)
		}
		set |= classpath.Kinds(k)
	}
	return set, nil
}

func list(ctx context.Context, fm *classpath.FileManager, w io.Writer, root, subdir string, kinds classpath.KindSet, cfg config) error {
	files, err := fm.List(ctx, root, subdir, kinds, cfg.recurse)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := printFile(w, f, cfg.digests); err != nil {
			return err
		}
	}
	return nil
}

func find(fm *classpath.FileManager, w io.Writer, root, class string, cfg config) error {
	d, err := desc.Of(class)
	if err != nil {
		return err
	}
	var found bool
	for _, kind := range []classpath.Kind{classpath.KindClass, classpath.KindSource} {
		f, err := fm.FileForClass(root, d, kind)
		if err != nil {
			continue
		}
		found = true
		if err := printFile(w, f, cfg.digests); err != nil {
			return err
		}
	}
	if !found {
		return fmt.Errorf("%s: not found in %s", class, root)
	}
	return nil
}

func printFile(w io.Writer, f classpath.FileObject, digests bool) error {
	if !digests {
		_, err := fmt.Fprintln(w, f.Path())
		return err
	}
	d, err := fileDigest(f)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\t%s\n", f.Path(), d)
	return err
}

func fileDigest(f classpath.FileObject) (digest.Digest, error) {
	if e, ok := f.(*archive.Entry); ok {
		return e.Digest()
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return digest.Canonical.FromReader(rc)
}

func describe(w io.Writer, descriptors []string) error {
	if len(descriptors) == 0 {
		return errUsage
	}
	for _, s := range descriptors {
		if strings.HasPrefix(s, "(") {
			m, err := desc.MethodTypeOfDescriptor(s)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\tmethod\t%s\tparams=%d\n", m, m.DisplayDescriptor(), m.ParameterCount())
			continue
		}
		d, err := desc.OfDescriptor(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s", d, d.Kind(), d.DisplayName())
		if pkg := d.PackageName(); pkg != "" {
			fmt.Fprintf(w, "\tpackage=%s", pkg)
		}
		if d.IsArray() {
			fmt.Fprintf(w, "\tdims=%d", desc.ArrayDepth(d.String()))
		}
		fmt.Fprintln(w)
	}
	return nil
}
