package main

import (
	"errors"
	"log"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/yousefabuz17/pyzipgrep/internal/grep"
	"github.com/yousefabuz17/pyzipgrep/internal/list"
)

var opts struct {
	Grep grep.Command `command:"grep" alias:"search" description:"search text inside zip archives without extracting them"`
	List list.Command `command:"list" alias:"ls" description:"list archive members and metadata without extracting them"`
}

func main() {
	_, err := flags.NewParser(&opts, flags.Default).Parse()
	switch {
	case err == nil:
	case flags.WroteHelp(err):
	case errors.Is(err, grep.ErrNoMatches):
		os.Exit(2)
	default:
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) {
			log.Printf("error: %v", err)
		}
		os.Exit(1)
	}
}
