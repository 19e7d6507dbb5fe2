package shell

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

func usage(w io.Writer, execPath string) {
	dat, err := os.ReadFile(
		filepath.Join(execPath, "./shell/helptext/usage.txt"))
	if err != nil {
		io.WriteString(w, "Error loading helptext: "+err.Error())
		return
	}
	io.WriteString(w, string(dat))
}

func usageTopic(w io.Writer, topic string, execPath string) {
	dat, err := os.ReadFile(
		filepath.Join(execPath, "./shell/helptext/"+topic+".txt"))
	if err != nil {
		io.WriteString(w, "There is no help text for the topic "+topic+"\n")
		return
	}
	io.WriteString(w, string(dat))
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if cmd.args == nil {
		usage(sc.l.Stderr(), sc.execPath)
		return nil, nil
	}
	if len(cmd.args) == 1 {
		usageTopic(sc.l.Stderr(), cmd.args[0], sc.execPath)
		return nil, nil
	}
	return nil, errors.New("help taking more than one argument not yet supported")
}
