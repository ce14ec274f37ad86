// AngelaMos | 2026
// main.go

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"

	"github.com/carterperez-dev/dojo-console/internal/importer"
)

type Params struct {
	File string `descr:"Path to the member CSV or XLSX file" positional:"true"`
}

func main() {
	boa.NewCmdT[Params]("memberctl").
		WithShort("Preview a member import file").
		WithLong("Reads a member spreadsheet the same way the import endpoint does and prints the rows it would create, update and reject. Nothing is written.").
		WithRunFunc(func(params *Params) {
			data, err := os.ReadFile(params.File)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
				os.Exit(1)
			}

			format := importer.DetectFormat(filepath.Base(params.File), "")
			res, err := importer.DryRun(format, data)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Rejected: %v\n", err)
				os.Exit(1)
			}

			printDryRun(os.Stdout, res)

			if len(res.Errors) > 0 {
				os.Exit(2)
			}
		}).
		Run()
}
