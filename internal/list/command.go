// Package list implements the list subcommand: enumerate archive members and
// optionally the aggregate metadata, without extracting anything.
package list

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/yousefabuz17/pyzipgrep"
	"github.com/yousefabuz17/pyzipgrep/internal"
	"github.com/yousefabuz17/pyzipgrep/internal/source"
)

type Command struct {
	Long bool `short:"l" long:"long" description:"also print archive metadata: size, member count, compressed and uncompressed totals, compression ratio"`
	Args struct {
		Archives []string `positional-arg-name:"archive" description:"archive paths or s3://bucket/key URIs" required:"yes"`
	} `positional-args:"yes"`
}

func (c *Command) Execute(args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("unknown positional arguments: %s", strings.Join(args, " "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer stop()

	paths, cleanup, err := source.Resolve(ctx, c.Args.Archives)
	if err != nil {
		return err
	}
	defer cleanup()

	var failed bool
	n := len(paths)
	for i, p := range paths {
		logger := internal.NewLogger(i, n, p)

		if err = c.list(ctx, p); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}

			failed = true
			logger.Printf("list error: %v", err)
		}
	}

	if failed {
		return errors.New("some archives could not be listed")
	}

	return nil
}

func (c *Command) list(ctx context.Context, path string) error {
	a := pyzipgrep.NewArchive(path)
	if !a.Validate(ctx) {
		return fmt.Errorf("%q is not a valid archive", path)
	}

	members, err := a.List(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s:\n", path)
	for _, m := range members {
		fmt.Printf("\t%s\n", m)
	}

	if !c.Long {
		return nil
	}

	md := a.Metadata()
	if md == nil {
		fmt.Printf("\t(empty archive)\n")
		return nil
	}

	fmt.Printf("\t%d member(s), %s on disk, %s compressed, %s uncompressed, %.1f%% space saved, modified %s\n",
		md.MemberCount,
		humanize.IBytes(uint64(md.Size)),
		humanize.IBytes(uint64(md.TotalCompressed)),
		humanize.IBytes(uint64(md.TotalUncompressed)),
		md.Ratio,
		md.ModTime.Format("2006-01-02 15:04:05"))
	return nil
}
