package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	_ftp "github.com/jlaffaye/ftp"
	"github.com/urfave/cli"

	vfs "github.com/c2fo/ftpvfs"
	"github.com/c2fo/ftpvfs/backend/ftp"
	"github.com/c2fo/ftpvfs/options/delete"
	"github.com/c2fo/ftpvfs/utils"
	"github.com/c2fo/ftpvfs/vfssimple"
)

var (
	dirColor  = color.New(color.FgBlue, color.Bold)
	linkColor = color.New(color.FgCyan)
)

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:      "cp",
			Usage:     "copy a file; either side may be an ftp:// uri or a local path",
			ArgsUsage: "SRC DST",
			Action:    copyAction,
		},
		{
			Name:      "mv",
			Usage:     "move a file; a move within one ftp login is a server-side rename",
			ArgsUsage: "SRC DST",
			Action:    moveAction,
		},
		{
			Name:      "ls",
			Usage:     "list a remote directory",
			ArgsUsage: "URI",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "long, l", Usage: "show mode, size and modification time"},
			},
			Action: listAction,
		},
		{
			Name:      "rm",
			Usage:     "delete a remote file",
			ArgsUsage: "URI",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "force, f", Usage: "ignore files that do not exist"},
			},
			Action: removeAction,
		},
		{
			Name:      "mkdir",
			Usage:     "create a remote directory",
			ArgsUsage: "URI",
			Action:    makeDirAction,
		},
		{
			Name:      "rmdir",
			Usage:     "remove an empty remote directory",
			ArgsUsage: "URI",
			Action:    removeDirAction,
		},
		{
			Name:      "chmod",
			Usage:     "change the permission bits of a remote file with SITE CHMOD",
			ArgsUsage: "MODE URI",
			Action:    chmodAction,
		},
	}
}

func checkArgs(c *cli.Context, n int) error {
	if c.NArg() != n {
		return fmt.Errorf("%s requires %d argument(s): %s", c.Command.Name, n, c.Command.ArgsUsage)
	}
	for _, a := range c.Args() {
		if a == "" {
			return fmt.Errorf("%s requires non-empty arguments", c.Command.Name)
		}
	}
	return nil
}

func isRemote(arg string) bool {
	return strings.Contains(arg, "://")
}

func isDirArg(arg string) bool {
	return strings.HasSuffix(arg, "/")
}

// remoteFile resolves uri to an ftp file.
func remoteFile(uri string) (*ftp.File, error) {
	f, err := vfssimple.NewFile(uri)
	if err != nil {
		return nil, err
	}
	ff, ok := f.(*ftp.File)
	if !ok {
		return nil, fmt.Errorf("%s is not an ftp uri", uri)
	}
	return ff, nil
}

// remoteLocation resolves uri, with or without a trailing slash, to an ftp location.
func remoteLocation(uri string) (*ftp.Location, error) {
	loc, err := vfssimple.NewLocation(utils.EnsureTrailingSlash(uri))
	if err != nil {
		return nil, err
	}
	l, ok := loc.(*ftp.Location)
	if !ok {
		return nil, fmt.Errorf("%s is not an ftp uri", uri)
	}
	return l, nil
}

// openSource opens src for reading and returns its base name.
func openSource(src string) (io.ReadCloser, string, error) {
	if isRemote(src) {
		f, err := remoteFile(src)
		if err != nil {
			return nil, "", err
		}
		return f, f.Name(), nil
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, "", err
	}
	return f, filepath.Base(src), nil
}

// openTarget opens dst for writing. A dst naming a directory receives a file called name.
func openTarget(dst, name string) (io.WriteCloser, string, error) {
	if isRemote(dst) {
		if isDirArg(dst) {
			loc, err := remoteLocation(dst)
			if err != nil {
				return nil, "", err
			}
			f, err := loc.NewFile(name)
			if err != nil {
				return nil, "", err
			}
			return f, f.URI(), nil
		}
		f, err := remoteFile(dst)
		if err != nil {
			return nil, "", err
		}
		return f, f.URI(), nil
	}
	if info, err := os.Stat(dst); (err == nil && info.IsDir()) || isDirArg(dst) {
		dst = filepath.Join(dst, name)
	}
	f, err := os.Create(dst)
	if err != nil {
		return nil, "", err
	}
	return f, dst, nil
}

func copyFile(c *cli.Context, src, dst string) (string, error) {
	r, name, err := openSource(src)
	if err != nil {
		return "", err
	}
	w, target, err := openTarget(dst, name)
	if err != nil {
		_ = r.Close()
		return "", err
	}
	fmt.Fprintf(c.App.Writer, "Copying %s to %s\n", src, target)
	rf, rok := r.(*ftp.File)
	wf, wok := w.(*ftp.File)
	if rok && wok {
		// CopyToFile stages the data locally when both ends share a session
		return target, rf.CopyToFile(wf)
	}
	if err := utils.TouchCopyBuffered(w, r, 0); err != nil {
		_ = w.Close()
		_ = r.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		_ = r.Close()
		return "", err
	}
	return target, r.Close()
}

func copyAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	_, err := copyFile(c, c.Args().Get(0), c.Args().Get(1))
	return err
}

func moveAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	src, dst := c.Args().Get(0), c.Args().Get(1)

	if isRemote(src) && isRemote(dst) {
		f, err := remoteFile(src)
		if err != nil {
			return err
		}
		var moved vfs.File
		if isDirArg(dst) {
			loc, err := remoteLocation(dst)
			if err != nil {
				return err
			}
			moved, err = f.MoveToLocation(loc)
			if err != nil {
				return err
			}
		} else {
			target, err := remoteFile(dst)
			if err != nil {
				return err
			}
			if err := f.MoveToFile(target); err != nil {
				return err
			}
			moved = target
		}
		fmt.Fprintf(c.App.Writer, "Moved %s to %s\n", src, moved.URI())
		return nil
	}

	if _, err := copyFile(c, src, dst); err != nil {
		return err
	}
	if isRemote(src) {
		f, err := remoteFile(src)
		if err != nil {
			return err
		}
		return f.Delete()
	}
	return os.Remove(src)
}

func listAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	loc, err := remoteLocation(c.Args().Get(0))
	if err != nil {
		return err
	}
	entries, err := loc.Entries()
	if err != nil {
		return err
	}
	w := c.App.Writer
	for _, e := range entries {
		if c.Bool("long") {
			fmt.Fprintf(w, "%s %10d %s ", e.Mode, e.Size, e.Time.Format("Jan _2 15:04 2006"))
		}
		switch e.Type {
		case _ftp.EntryTypeFolder:
			_, _ = dirColor.Fprint(w, e.Name+"/")
		case _ftp.EntryTypeLink:
			_, _ = linkColor.Fprint(w, e.Name)
			if e.Target != "" {
				fmt.Fprint(w, " -> "+e.Target)
			}
		default:
			fmt.Fprint(w, e.Name)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func removeAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	f, err := remoteFile(c.Args().Get(0))
	if err != nil {
		return err
	}
	if c.Bool("force") {
		return f.Delete(delete.WithIgnoreMissing())
	}
	return f.Delete()
}

func makeDirAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	loc, err := remoteLocation(c.Args().Get(0))
	if err != nil {
		return err
	}
	return loc.MakeDir()
}

func removeDirAction(c *cli.Context) error {
	if err := checkArgs(c, 1); err != nil {
		return err
	}
	loc, err := remoteLocation(c.Args().Get(0))
	if err != nil {
		return err
	}
	return loc.RemoveDir()
}

func chmodAction(c *cli.Context) error {
	if err := checkArgs(c, 2); err != nil {
		return err
	}
	mode, err := parseMode(c.Args().Get(0))
	if err != nil {
		return err
	}
	f, err := remoteFile(c.Args().Get(1))
	if err != nil {
		return err
	}
	return f.Chmod(mode)
}

var errBadMode = errors.New("mode must be octal, between 0 and 7777")

// parseMode reads an octal chmod mode such as 644 or 4755.
func parseMode(s string) (fs.FileMode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil || n > 0o7777 {
		return 0, fmt.Errorf("%q: %w", s, errBadMode)
	}
	mode := fs.FileMode(n & 0o777)
	if n&0o4000 != 0 {
		mode |= fs.ModeSetuid
	}
	if n&0o2000 != 0 {
		mode |= fs.ModeSetgid
	}
	if n&0o1000 != 0 {
		mode |= fs.ModeSticky
	}
	return mode, nil
}

