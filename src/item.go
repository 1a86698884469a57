package skimmer

// Item represents each input line. Its index is the position of the line in
// the input and identifies the line for the lifetime of the process.
type Item struct {
	index int32
	text  []rune
}

// Index returns the identity of the item
func (item *Item) Index() int32 {
	return item.index
}

// Runes returns the text of the item
func (item *Item) Runes() []rune {
	return item.text
}

// AsString returns the original string
func (item *Item) AsString() string {
	return string(item.text)
}
