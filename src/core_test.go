package skimmer

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/skimmer/skimmer/src/util"
)

func runFilter(t *testing.T, query string, readErr error, lines ...string) (int, string, error) {
	t.Helper()
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Filter = &query
	opts.Printer = func(str string) { buf.WriteString(str + "\n") }

	itemList, _ := newTestList(lines...)
	eventBox := util.NewEventBox()
	store := NewRankedStore()
	matcher := newTestMatcher(opts.Sort, eventBox, store)
	eventBox.Set(EvtReadNew, nil)
	eventBox.Set(EvtReadFin, readErr)
	code, err := filter(opts, eventBox, itemList, matcher, matcher.patternBuilder)
	return code, buf.String(), err
}

func TestFilter(t *testing.T) {
	code, output, err := runFilter(t, "foo", nil, "foo/bar", "baz", "foo")
	if err != nil || code != ExitOk || output != "foo\nfoo/bar\n" {
		t.Errorf("%d %q %v", code, output, err)
	}

	code, output, _ = runFilter(t, "", nil, "b", "a")
	if code != ExitOk || output != "b\na\n" {
		t.Errorf("%d %q", code, output)
	}

	code, output, _ = runFilter(t, "qux", nil, "foo", "bar")
	if code != ExitNoMatch || len(output) > 0 {
		t.Errorf("%d %q", code, output)
	}
}

func TestFilterReadError(t *testing.T) {
	code, _, err := runFilter(t, "foo", errors.New("broken pipe"), "foo")
	if code != ExitError || err == nil {
		t.Errorf("%d %v", code, err)
	}
}
