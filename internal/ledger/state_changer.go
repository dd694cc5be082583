package ledger

type stateChange interface {
	// revert undoes the state changes by this entry
	revert(*StateLedgerImpl)
}

type stateChanger struct {
	changes []stateChange
}

func newChanger() *stateChanger {
	return &stateChanger{}
}

func (s *stateChanger) append(change stateChange) {
	s.changes = append(s.changes, change)
}

func (s *stateChanger) revert(ledger *StateLedgerImpl, snapshot int) {
	for i := len(s.changes) - 1; i >= snapshot; i-- {
		s.changes[i].revert(ledger)
	}

	s.changes = s.changes[:snapshot]
}

func (s *stateChanger) length() int {
	return len(s.changes)
}

func (s *stateChanger) reset() {
	s.changes = []stateChange{}
}

type storageChange struct {
	key string

	// whether the key had an uncommitted value before the change
	wasDirty bool
	prevalue []byte
}

func (ch storageChange) revert(l *StateLedgerImpl) {
	if !ch.wasDirty {
		delete(l.dirty, ch.key)
		return
	}
	l.dirty[ch.key] = ch.prevalue
}
