package common

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var ErrStateNotFound = errors.New("state not found")

// Values are stored json encoded under their key in the contract account,
// a cleared key holds no value at all.
func loadState[V any](account StateAccount, key []byte) (exist bool, v V, err error) {
	exist, data := account.GetState(key)
	if !exist || len(data) == 0 {
		return false, v, nil
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return false, v, errors.Wrapf(err, "decode state %s of %s", key, account.GetAddress())
	}
	return true, v, nil
}

func mustLoadState[V any](account StateAccount, key []byte) (v V, err error) {
	exist, v, err := loadState[V](account, key)
	if err != nil {
		return v, err
	}
	if !exist {
		return v, errors.Wrapf(ErrStateNotFound, "%s of %s", key, account.GetAddress())
	}
	return v, nil
}

func storeState[V any](account StateAccount, key []byte, v V) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode state %s of %s", key, account.GetAddress())
	}
	account.SetState(key, data)
	return nil
}

// VMMap stores every value under "<name>_<keyToString(key)>".
type VMMap[K, V any] struct {
	account     StateAccount
	name        string
	keyToString func(key K) string
}

func NewVMMap[K, V any](account StateAccount, name string, keyToString func(key K) string) *VMMap[K, V] {
	return &VMMap[K, V]{
		account:     account,
		name:        name,
		keyToString: keyToString,
	}
}

func (m *VMMap[K, V]) stateKey(k K) []byte {
	return []byte(fmt.Sprintf("%s_%s", m.name, m.keyToString(k)))
}

func (m *VMMap[K, V]) Get(k K) (exist bool, v V, err error) {
	return loadState[V](m.account, m.stateKey(k))
}

func (m *VMMap[K, V]) MustGet(k K) (V, error) {
	return mustLoadState[V](m.account, m.stateKey(k))
}

func (m *VMMap[K, V]) Put(k K, v V) error {
	return storeState(m.account, m.stateKey(k), v)
}

func (m *VMMap[K, V]) Delete(k K) error {
	m.account.SetState(m.stateKey(k), nil)
	return nil
}

// VMSlot is a single value stored under its name.
type VMSlot[V any] struct {
	account StateAccount
	key     []byte
}

func NewVMSlot[V any](account StateAccount, name string) *VMSlot[V] {
	return &VMSlot[V]{
		account: account,
		key:     []byte(name),
	}
}

func (s *VMSlot[V]) Get() (exist bool, v V, err error) {
	return loadState[V](s.account, s.key)
}

func (s *VMSlot[V]) MustGet() (V, error) {
	return mustLoadState[V](s.account, s.key)
}

func (s *VMSlot[V]) Put(v V) error {
	return storeState(s.account, s.key, v)
}

func (s *VMSlot[V]) Delete() error {
	s.account.SetState(s.key, nil)
	return nil
}

// VMArray is an index-addressable sequence, the length lives in the "<name>_len" slot
// and the i-th item in the "<name>_<i>" slot. An empty array stores nothing.
type VMArray[V any] struct {
	name   string
	length *VMSlot[uint64]
	items  *VMMap[uint64, V]
}

func NewVMArray[V any](account StateAccount, name string) *VMArray[V] {
	return &VMArray[V]{
		name:   name,
		length: NewVMSlot[uint64](account, fmt.Sprintf("%s_len", name)),
		items: NewVMMap[uint64, V](account, name, func(i uint64) string {
			return strconv.FormatUint(i, 10)
		}),
	}
}

func (a *VMArray[V]) Len() (uint64, error) {
	_, l, err := a.length.Get()
	return l, err
}

func (a *VMArray[V]) Set(i uint64, v V) error {
	l, err := a.Len()
	if err != nil {
		return err
	}
	if i >= l {
		return errors.Errorf("array %s index %d out of range %d", a.name, i, l)
	}
	return a.items.Put(i, v)
}

func (a *VMArray[V]) Push(v V) error {
	l, err := a.Len()
	if err != nil {
		return err
	}
	if err := a.items.Put(l, v); err != nil {
		return err
	}
	return a.length.Put(l + 1)
}

func (a *VMArray[V]) Values() ([]V, error) {
	l, err := a.Len()
	if err != nil {
		return nil, err
	}
	values := make([]V, 0, l)
	for i := uint64(0); i < l; i++ {
		v, err := a.items.MustGet(i)
		if err != nil {
			return nil, errors.Wrapf(err, "array %s item %d", a.name, i)
		}
		values = append(values, v)
	}
	return values, nil
}

// Reset overwrites the whole array with values, the slots past the new length are cleared.
func (a *VMArray[V]) Reset(values []V) error {
	l, err := a.Len()
	if err != nil {
		return err
	}
	for i, v := range values {
		if err := a.items.Put(uint64(i), v); err != nil {
			return err
		}
	}
	n := uint64(len(values))
	for i := n; i < l; i++ {
		if err := a.items.Delete(i); err != nil {
			return err
		}
	}
	if n == 0 {
		return a.length.Delete()
	}
	return a.length.Put(n)
}
