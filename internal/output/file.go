package output

import (
	"os"
	"os/exec"
	"strings"
	"time"

	strftime "github.com/jehiah/go-strftime"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// FileOutput writes to a file whose path is a strftime template.
// The template is evaluated on every write; a new path closes the
// current file, opens the next one and runs the rotate command on the
// old path.
type FileOutput struct {
	outputPathTemplate string
	outputPath         string
	rotateExec         string
	rotateExecArgs     []string
	f                  *os.File
	log                *logrus.Logger
	now                func() time.Time
	done               func(path string, err error)
}

func NewFileOutput(log *logrus.Logger, outputPathTemplate, rotateExec string) (*FileOutput, error) {
	commands := lo.Compact(strings.Split(rotateExec, " "))
	f := &FileOutput{
		outputPathTemplate: outputPathTemplate,
		log:                log,
		now:                time.Now,
	}
	if len(commands) > 0 {
		f.rotateExec = commands[0]
		f.rotateExecArgs = commands[1:]
	}
	if err := f.refresh(); err != nil {
		return nil, err
	}
	return f, nil
}

// Path returns the file currently written to.
func (f *FileOutput) Path() string {
	return f.outputPath
}

func (f *FileOutput) refresh() error {
	npath := strftime.Format(f.outputPathTemplate, f.now())
	if npath == f.outputPath {
		return nil
	}
	nfp, err := os.OpenFile(npath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, "failed to create file `%s`", npath)
	}
	oldf := f.f
	oldp := f.outputPath

	f.outputPath = npath
	f.f = nfp
	if oldf != nil {
		if err := oldf.Close(); err != nil {
			f.log.WithField("filename", oldp).Warnf("failed to close rotated file: %v", err)
		}
	}
	if f.rotateExec != "" && oldp != "" {
		go f.runRotateExec(oldp)
	}
	return nil
}

func (f *FileOutput) runRotateExec(path string) {
	err := exec.Command(f.rotateExec, append(append([]string{}, f.rotateExecArgs...), path)...).Run()
	if err != nil {
		f.log.WithFields(logrus.Fields{
			"command":  f.rotateExec,
			"filename": path,
		}).Warnf("failed to exec after rotate command: %v", err)
	}
	if f.done != nil {
		f.done(path, err)
	}
}

func (f *FileOutput) Write(bs []byte) (int, error) {
	if err := f.refresh(); err != nil {
		return 0, err
	}
	return f.f.Write(bs)
}

func (f *FileOutput) Close() error {
	if f.f == nil {
		return nil
	}
	return f.f.Close()
}
