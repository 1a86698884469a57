package skimmer

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// History is the list of accepted queries kept in a file, one per line,
// oldest first. Browsing it swaps entries into a QueryState; whatever the
// user typed before browsing is kept as the draft and edits made to older
// entries live in memory until the next query is recorded.
type History struct {
	path    string
	limit   int
	entries []string
	edits   map[int]string
	draft   string
	pos     int
}

// NewHistory loads the history file at path, creating it if it is missing
func NewHistory(path string, limit int) (*History, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		err = os.WriteFile(path, nil, 0600)
	}
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.Errorf("permission denied: %s", path)
		}
		return nil, errors.Wrapf(err, "invalid history file: %s", path)
	}
	h := &History{path: path, limit: limit}
	for _, line := range strings.Split(string(data), "\n") {
		if len(line) > 0 {
			h.entries = append(h.entries, line)
		}
	}
	h.trim()
	h.rewind()
	return h, nil
}

func (h *History) trim() {
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
	}
}

func (h *History) rewind() {
	h.pos = len(h.entries)
	h.edits = make(map[int]string)
	h.draft = ""
}

func (h *History) at(pos int) string {
	if pos == len(h.entries) {
		return h.draft
	}
	if edited, ok := h.edits[pos]; ok {
		return edited
	}
	return h.entries[pos]
}

func (h *History) stash(query *QueryState) {
	if h.pos == len(h.entries) {
		h.draft = query.String()
	} else if query.String() != h.entries[h.pos] {
		h.edits[h.pos] = query.String()
	}
}

func (h *History) move(query *QueryState, delta int) bool {
	pos := h.pos + delta
	if pos < 0 || pos > len(h.entries) {
		return false
	}
	h.stash(query)
	h.pos = pos
	return query.SetQuery(h.at(pos))
}

// older replaces the query with the previous entry. It reports whether the
// query text changed.
func (h *History) older(query *QueryState) bool {
	return h.move(query, -1)
}

func (h *History) newer(query *QueryState) bool {
	return h.move(query, 1)
}

// record appends the query to the file and forgets pending edits. Empty
// queries are not recorded.
func (h *History) record(query *QueryState) error {
	line := query.String()
	h.rewind()
	if len(line) == 0 {
		return nil
	}
	h.entries = append(h.entries, line)
	h.trim()
	h.pos = len(h.entries)
	data := strings.Join(h.entries, "\n") + "\n"
	if err := os.WriteFile(h.path, []byte(data), 0600); err != nil {
		return errors.Wrap(err, "failed to write history")
	}
	return nil
}
