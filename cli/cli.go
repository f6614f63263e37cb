package cli

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/ipfs/go-log/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	desktop "github.com/timre13/lightmusic-desktop"
	"github.com/timre13/lightmusic-desktop/config"
	"github.com/timre13/lightmusic-desktop/embeds"
)

var ErrNotUpToDate = errors.New("desktop entry is not up to date")

const (
	configFlag   = "config"
	baseDirFlag  = "base-dir"
	outputFlag   = "output"
	logLevelFlag = "log-level"
)

type Application struct {
	logger *log.ZapEventLogger
	app    *desktop.Application
	cliapp *cli.App
}

func New() *Application {
	a := new(Application)
	a.logger = log.Logger("lightmusic/cli")
	a.app = desktop.New()
	a.init()

	return a
}

func (a *Application) Run(args []string) error {
	return a.cliapp.Run(args)
}

func (a *Application) init() {
	a.cliapp = &cli.App{
		Name:     config.AppName,
		HelpName: path.Base(os.Args[0]),
		Version:  config.Version,
		Usage:    "write the LightMusic.desktop launcher entry into the working directory",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Usage:   "path to json config file",
				EnvVars: []string{config.ConfigPathEnvKey},
			},
			&cli.StringFlag{
				Name:    baseDirFlag,
				Usage:   "directory containing the build dir (default: directory of this executable)",
				EnvVars: []string{config.BaseDirEnvKey},
			},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("desktop entry path (default: %s)", config.DesktopFileName),
				EnvVars: []string{config.OutputPathEnvKey},
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Usage:   "one of debug, info, warn, error, dev",
				EnvVars: []string{config.LoggerLevelEnvKey},
			},
		},
		Before: a.initApp,
		Action: a.generate,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Write the desktop entry and make it executable (default command)",
				Action: a.generate,
			},
			{
				Name:  "print",
				Usage: "Print the desktop entry to stdout without writing it",
				Action: func(c *cli.Context) error {
					data, err := a.app.Render()
					if err != nil {
						return err
					}
					_, err = c.App.Writer.Write(data)
					return err
				},
			},
			{
				Name:  "check",
				Usage: "Check that the desktop entry on disk is up to date",
				Action: func(c *cli.Context) error {
					status, err := a.app.Check()
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.App.Writer, "%s: %s\n", a.app.Conf.OutputPath, status)
					if err != nil {
						return err
					}
					if status != embeds.StatusUpToDate {
						return ErrNotUpToDate
					}
					return nil
				},
			},
			{
				Name:  "show",
				Usage: "Print the desktop entry fields as a table",
				Action: func(c *cli.Context) error {
					data, err := a.app.Render()
					if err != nil {
						return err
					}
					fields, err := embeds.ParseEntry(data)
					if err != nil {
						return err
					}

					table := tablewriter.NewWriter(c.App.Writer)
					table.SetBorders(tablewriter.Border{Left: false, Top: false, Right: false, Bottom: false})
					table.SetAutoWrapText(false)
					table.SetHeader([]string{"key", "value"})
					for _, field := range fields {
						table.Append([]string{field.Key, field.Value})
					}
					table.Render()

					return nil
				},
			},
		},
	}
}

func (a *Application) initApp(c *cli.Context) error {
	_, err := a.app.SetupLoggerAndConfig(c.String(configFlag))
	if err != nil {
		return err
	}

	conf := a.app.Conf
	if c.IsSet(baseDirFlag) {
		conf.BaseDir = c.String(baseDirFlag)
	}
	if c.IsSet(outputFlag) {
		conf.OutputPath = c.String(outputFlag)
	}
	if c.IsSet(logLevelFlag) {
		conf.LoggerLevel = c.String(logLevelFlag)
		desktop.SetupLogger(conf)
	}

	err = conf.Validate()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.logger.Debugf("config: %s", conf.Export())

	return nil
}

func (a *Application) generate(*cli.Context) error {
	_, err := a.app.Generate()
	return err
}
