package args

import (
	"fmt"
	"io"
	"strings"

	"animalcount/internal/model"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const (
	FlagResolution = "video_resolution"
	FlagVideoPath  = "video_path"
)

var (
	// ErrInvalidArgument marks malformed command-line input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrHelp is returned after help output was requested and printed.
	ErrHelp = errors.New("help requested")
)

// Flags returns the run flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntSliceFlag{
			Name:  FlagResolution,
			Usage: fmt.Sprintf("capture resolution as two integers W H (default %d %d)", model.DefaultResolution.Width, model.DefaultResolution.Height),
		},
		&cli.PathFlag{
			Name:  FlagVideoPath,
			Usage: "video file to read instead of the live camera",
		},
	}
}

// Parse reads a RunConfig from argv (argv[0] is the program name).
// Usage errors are printed to out and returned wrapping ErrInvalidArgument.
func Parse(argv []string, out io.Writer) (model.RunConfig, error) {
	var (
		cfg model.RunConfig
		ran bool
	)

	app := &cli.App{
		Name:            "animalcount",
		Usage:           "detect one kind of livestock and count it inside a zone",
		UsageText:       "animalcount [--video_resolution W H] [--video_path PATH]",
		Flags:           Flags(),
		Writer:          out,
		ErrWriter:       out,
		HideHelpCommand: true,
		OnUsageError: func(c *cli.Context, err error, _ bool) error {
			return usageError(c, err)
		},
		ExitErrHandler: func(*cli.Context, error) {},
		Action: func(c *cli.Context) error {
			ran = true
			if c.NArg() > 0 {
				return usageError(c, errors.Errorf("unexpected arguments: %s", strings.Join(c.Args().Slice(), " ")))
			}

			var err error
			cfg, err = fromContext(c)
			if err != nil {
				return usageError(c, err)
			}
			return nil
		},
	}

	if err := app.Run(Normalize(argv)); err != nil {
		return model.RunConfig{}, err
	}
	if !ran {
		return model.RunConfig{}, ErrHelp
	}
	return cfg, nil
}

func fromContext(c *cli.Context) (model.RunConfig, error) {
	cfg := model.RunConfig{
		Resolution: model.DefaultResolution,
		VideoPath:  c.Path(FlagVideoPath),
	}

	if c.IsSet(FlagResolution) {
		values := c.IntSlice(FlagResolution)
		if len(values) != 2 {
			return model.RunConfig{}, errors.Errorf("--%s expects 2 values, got %d", FlagResolution, len(values))
		}
		if values[0] <= 0 || values[1] <= 0 {
			return model.RunConfig{}, errors.Errorf("--%s values must be positive, got %d %d", FlagResolution, values[0], values[1])
		}
		cfg.Resolution = model.Resolution{Width: values[0], Height: values[1]}
	}
	return cfg, nil
}

func usageError(c *cli.Context, err error) error {
	fmt.Fprintf(c.App.ErrWriter, "Incorrect Usage: %v\n\n", err)
	_ = cli.ShowAppHelp(c)
	return errors.Wrap(ErrInvalidArgument, err.Error())
}
