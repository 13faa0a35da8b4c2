// Command vfscp copies, lists and manages files on FTP servers, and between FTP servers and the local disk.
//
//	vfscp cp ftp://bob@files.example.com/reports/q1.csv ./q1.csv
//	vfscp ls ftp://mirror.example.com/pub/
//	vfscp --active --netrc ~/.netrc.work mv ftp://files/in/a.txt ftp://files/done/
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/c2fo/ftpvfs/backend"
	"github.com/c2fo/ftpvfs/backend/ftp"
	"github.com/c2fo/ftpvfs/logging"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = color.New(color.FgRed).Fprintln(os.Stderr, "vfscp:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	var ftpfs *ftp.FileSystem

	app := cli.NewApp()
	app.Name = "vfscp"
	app.Usage = "Copies and manages files on ftp servers, or between an ftp server and local paths"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "log the ftp conversation (passwords are never logged)",
		},
		cli.BoolFlag{
			Name:  "passive",
			Usage: "use passive mode data connections (the default)",
		},
		cli.BoolFlag{
			Name:   "active",
			Usage:  "use active mode (PORT/EPRT) data connections",
			EnvVar: "VFS_FTP_DISABLE_PASSIVE",
		},
		cli.StringFlag{
			Name:   "netrc",
			Usage:  "`PATH` of the .netrc file used for passwords",
			EnvVar: "VFS_FTP_NETRC",
		},
		cli.BoolFlag{
			Name:  "no-netrc",
			Usage: "never read a .netrc file",
		},
		cli.StringFlag{
			Name:   "socks",
			Usage:  "connect through the SOCKS5 proxy at `HOST:PORT`",
			EnvVar: "VFS_FTP_SOCKS_PROXY",
		},
		cli.StringFlag{
			Name:   "proxy",
			Usage:  "ftp proxy gateway `[USER@]HOST[:PORT]`, used for hosts written as !host",
			EnvVar: "VFS_FTP_PROXY",
		},
	}

	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("passive") && c.GlobalBool("active") {
			return cli.NewExitError("--passive and --active are mutually exclusive", 2)
		}
		log, err := newLogger(c.GlobalBool("debug"))
		if err != nil {
			return err
		}
		ftpfs = ftp.NewFileSystem(
			ftp.WithOptions(optionsFrom(c)),
			ftp.WithLogger(log),
			ftp.WithPrompter(ftp.PrompterFunc(promptPassword)),
		)
		backend.Register(ftp.Scheme, ftpfs)
		return nil
	}
	app.After = func(*cli.Context) error {
		if ftpfs == nil {
			return nil
		}
		return ftpfs.Close()
	}

	app.Commands = commands()
	return app
}

func optionsFrom(c *cli.Context) ftp.Options {
	return ftp.Options{
		DisablePassive: c.GlobalBool("active"),
		NetrcPath:      c.GlobalString("netrc"),
		DisableNetrc:   c.GlobalBool("no-netrc"),
		SOCKSProxy:     c.GlobalString("socks"),
		ProxyHost:      c.GlobalString("proxy"),
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := logging.Config{Level: "warn", Format: "console", OutputPath: "stderr"}
	if debug {
		cfg.Level = "debug"
	}
	log, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to set up logging: %w", err)
	}
	return log.Named("vfscp"), nil
}
