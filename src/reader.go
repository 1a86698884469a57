package skimmer

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/asticode/go-astilog"
	"github.com/pkg/errors"
	"github.com/skimmer/skimmer/src/util"
)

const defaultCommand = `find . -path '*/\.*' -prune -o -type f -print -o -type l -print 2> /dev/null | cut -b3-`

// Reader reads from command or standard input
type Reader struct {
	pusher   func([]byte) bool
	eventBox *util.EventBox
	delimNil bool
	event    int32
	finChan  chan bool
	mutex    sync.Mutex
	command  *exec.Cmd
}

// NewReader returns new Reader object
func NewReader(pusher func([]byte) bool, eventBox *util.EventBox, delimNil bool) *Reader {
	return &Reader{
		pusher:   pusher,
		eventBox: eventBox,
		delimNil: delimNil,
		event:    int32(EvtReady),
		finChan:  make(chan bool, 1)}
}

// startEventPoller turns the atomic flag raised on every push into
// EvtReadNew, at most once per poll interval
func (r *Reader) startEventPoller() {
	go func() {
		ptr := &r.event
		pollInterval := readerPollIntervalMin
		for {
			if atomic.CompareAndSwapInt32(ptr, int32(EvtReadNew), int32(EvtReady)) {
				r.eventBox.Set(EvtReadNew, nil)
				pollInterval = readerPollIntervalMin
			} else if atomic.LoadInt32(ptr) == int32(EvtReadFin) {
				r.finChan <- true
				return
			} else {
				pollInterval += readerPollIntervalStep
				if pollInterval > readerPollIntervalMax {
					pollInterval = readerPollIntervalMax
				}
			}
			time.Sleep(pollInterval)
		}
	}()
}

func (r *Reader) fin(err error) {
	atomic.StoreInt32(&r.event, int32(EvtReadFin))
	<-r.finChan
	r.eventBox.Set(EvtReadFin, err)
}

// ReadSource reads data from the default command or from standard input
func (r *Reader) ReadSource() {
	r.startEventPoller()
	var err error
	if util.IsTty() {
		cmd := os.Getenv("SKIMMER_DEFAULT_COMMAND")
		if len(cmd) == 0 {
			cmd = defaultCommand
		}
		err = r.readFromCommand(cmd)
	} else {
		astilog.Debug("reading standard input")
		err = r.feed(os.Stdin)
	}
	if err != nil {
		astilog.Error(err)
	}
	r.fin(err)
}

func (r *Reader) feed(src io.Reader) error {
	delim := byte('\n')
	if r.delimNil {
		delim = '\000'
	}
	reader := bufio.NewReaderSize(src, readerBufferSize)
	lines := 0
	for {
		// ReadBytes returns a new slice, so the item can hold on to it
		bytea, err := reader.ReadBytes(delim)
		byteaLen := len(bytea)
		if byteaLen > 0 {
			if err == nil {
				// Strip the delimiter and a preceding carriage return
				bytea = bytea[:byteaLen-1]
				if !r.delimNil && len(bytea) > 0 && bytea[len(bytea)-1] == '\r' {
					bytea = bytea[:len(bytea)-1]
				}
			}
			if r.pusher(bytea) {
				lines++
				atomic.StoreInt32(&r.event, int32(EvtReadNew))
			}
		}
		if err == io.EOF {
			astilog.Debugf("read %d lines", lines)
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to read input")
		}
	}
}

func (r *Reader) readFromCommand(command string) error {
	astilog.Debugf("running %q", command)
	cmd := exec.Command("sh", "-c", command)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to open command output")
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to start %q", command)
	}
	r.mutex.Lock()
	r.command = cmd
	r.mutex.Unlock()

	if err := r.feed(out); err != nil {
		return err
	}
	if err := cmd.Wait(); err != nil {
		return errors.Wrapf(err, "command %q failed", command)
	}
	return nil
}

// terminate kills the input command if it is still running
func (r *Reader) terminate() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.command != nil && r.command.Process != nil && r.command.ProcessState == nil {
		r.command.Process.Kill()
	}
}
