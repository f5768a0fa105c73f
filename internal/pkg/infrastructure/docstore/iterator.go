package docstore

// SliceIterator iterates over documents already held in memory
type SliceIterator struct {
	documents [][]byte
	pos       int
}

func NewSliceIterator(documents ...[]byte) *SliceIterator {
	return &SliceIterator{documents: documents, pos: -1}
}

func (it *SliceIterator) Next() bool {
	if it.pos+1 >= len(it.documents) {
		it.pos = len(it.documents)
		return false
	}
	it.pos++
	return true
}

func (it *SliceIterator) Document() []byte {
	if it.pos < 0 || it.pos >= len(it.documents) {
		return nil
	}
	return it.documents[it.pos]
}

func (it *SliceIterator) Err() error { return nil }

func (it *SliceIterator) Close() {}
