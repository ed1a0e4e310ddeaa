package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/marginbooks/margin/pkg/fileutils"
	"github.com/robinjoseph08/golib/logger"
)

// Prints the textbook projection for a folder without touching the store,
// useful for checking what slugs and titles a shelf will produce before
// registering it.
func main() {
	log := logger.New()

	var opts struct {
		DirID int `short:"d" long:"dir-id" default:"0" description:"Directory id to derive slugs with"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		log.Err(err).Fatal("flags parse error")
	}

	if len(args) != 1 {
		fmt.Println("go run ./cmd/scripts/debug/scan-shelf <path/to/folder>")
		os.Exit(1)
	}

	entries, err := os.ReadDir(args[0])
	if err != nil {
		log.Err(err).Fatal("read dir error")
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || !fileutils.IsPDF(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		fmt.Printf("%-40s slug=%-40s title=%q\n",
			entry.Name(),
			fileutils.TextbookSlug(opts.DirID, stem),
			fileutils.TitleFromStem(stem))
	}
}
