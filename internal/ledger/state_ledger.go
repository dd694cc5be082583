package ledger

import (
	"encoding/binary"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/axiomesh/unbonding-ledger/internal/storagemgr"
	"github.com/axiomesh/unbonding-ledger/pkg/loggers"
	"github.com/axiomesh/unbonding-ledger/pkg/repo"
)

var _ StateLedger = (*StateLedgerImpl)(nil)

type StateLedgerImpl struct {
	logger  logrus.FieldLogger
	backend storagemgr.Storage
	path    string

	// uncommitted values, a nil value marks a deleted key
	dirty   map[string][]byte
	changer *stateChanger
	version uint64

	nextRevisionId int
	validRevisions []revision
}

type revision struct {
	id           int
	changerIndex int
}

func NewStateLedger(rep *repo.Repo) (*StateLedgerImpl, error) {
	p := storagemgr.GetLedgerComponentPath(rep, storagemgr.Ledger)
	backend, err := storagemgr.Open(p)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open ledger storage")
	}
	l := NewStateLedgerWithStorage(backend)
	l.path = p
	return l, nil
}

func NewStateLedgerWithStorage(backend storagemgr.Storage) *StateLedgerImpl {
	l := &StateLedgerImpl{
		logger:  loggers.Logger(loggers.Ledger),
		backend: backend,
		dirty:   make(map[string][]byte),
		changer: newChanger(),
	}
	if raw := backend.Get([]byte(versionKey)); len(raw) == 8 {
		l.version = binary.BigEndian.Uint64(raw)
	}
	versionMetric.Set(float64(l.version))
	return l
}

func (l *StateLedgerImpl) GetState(addr ethcommon.Address, key []byte) (bool, []byte) {
	k := dirtyKey(addr, key)
	if value, ok := l.dirty[k]; ok {
		return value != nil, value
	}

	start := time.Now()
	value := l.backend.Get([]byte(k))
	stateReadDuration.Observe(float64(time.Since(start)) / float64(time.Second))
	return value != nil, value
}

func (l *StateLedgerImpl) SetState(addr ethcommon.Address, key []byte, value []byte) {
	k := dirtyKey(addr, key)
	prev, wasDirty := l.dirty[k]
	l.changer.append(storageChange{
		key:      k,
		wasDirty: wasDirty,
		prevalue: prev,
	})
	if value != nil {
		value = append([]byte{}, value...)
	}
	l.dirty[k] = value
}

func (l *StateLedgerImpl) Snapshot() int {
	id := l.nextRevisionId
	l.nextRevisionId++
	l.validRevisions = append(l.validRevisions, revision{id: id, changerIndex: l.changer.length()})
	return id
}

func (l *StateLedgerImpl) RevertToSnapshot(revid int) {
	idx := -1
	for i, r := range l.validRevisions {
		if r.id == revid {
			idx = i
			break
		}
	}
	if idx == -1 {
		panic(errors.Errorf("revision id %v cannot be reverted", revid))
	}
	snapshot := l.validRevisions[idx].changerIndex

	l.changer.revert(l, snapshot)
	l.validRevisions = l.validRevisions[:idx]
}

func (l *StateLedgerImpl) Finalise() {
	l.changer.reset()
	l.validRevisions = l.validRevisions[:0]
}

func (l *StateLedgerImpl) Commit() (uint64, error) {
	if l.changer.length() != 0 {
		return 0, errors.New("commit with unfinalised changes")
	}
	start := time.Now()

	batch := l.backend.NewBatch()
	for k, v := range l.dirty {
		if v == nil {
			batch.Delete([]byte(k))
		} else {
			batch.Put([]byte(k), v)
		}
	}
	version := l.version + 1
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, version)
	batch.Put([]byte(versionKey), raw)
	batch.Commit()

	dirtyKeysPerCommit.Set(float64(len(l.dirty)))
	l.dirty = make(map[string][]byte)
	l.version = version
	versionMetric.Set(float64(version))
	commitDuration.Observe(float64(time.Since(start)) / float64(time.Second))

	l.logger.WithFields(logrus.Fields{
		"version": version,
		"elapse":  time.Since(start),
	}).Debug("Commit state")
	return version, nil
}

func (l *StateLedgerImpl) Clear() {
	l.dirty = make(map[string][]byte)
	l.changer.reset()
	l.validRevisions = l.validRevisions[:0]
}

func (l *StateLedgerImpl) Version() uint64 {
	return l.version
}

func (l *StateLedgerImpl) Close() {
	var err error
	if l.path != "" {
		err = storagemgr.Close(l.path)
	} else {
		err = l.backend.Close()
	}
	if err != nil {
		l.logger.WithField("err", err).Warn("Close ledger storage failed")
	}
}
