package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goliatone/go-widgets/components/widgets"
)

type validateCmd struct {
	Config []string `arg:"" type:"existingfile" help:"Configuration files to check."`
	Format string   `help:"Override the format inferred from the file extension."`
}

func (cmd *validateCmd) Run() error {
	return cmd.check(os.Stdout)
}

func (cmd *validateCmd) check(out io.Writer) error {
	service := widgets.NewService(widgets.Options{})
	var failed []error
	for _, path := range cmd.Config {
		cfg, err := decodeFile(path, cmd.Format, service.Widget().Registry())
		if err == nil {
			err = service.ValidateConfig(cfg)
		}
		if err != nil {
			fmt.Fprintf(out, "✗ %s\n%v\n", path, err)
			failed = append(failed, fmt.Errorf("%s: invalid", path))
			continue
		}
		fmt.Fprintf(out, "✓ %s\n", path)
	}
	return errors.Join(failed...)
}
